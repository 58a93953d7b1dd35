package warden

type Key string

const (
	// IpAddrKey stashes the IP address of an HTTP request being handled by warden.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "warden context key: " + string(k)
}
