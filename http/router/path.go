package router

import "strings"

// MuxPath rewrites ":name" path parameters into mux's "{name}" style.
//
// Guard trees declare parameters the ":name" way so one compiled set can be
// registered on engines with either convention; gin and echo take ":name"
// as-is, mux wants braces.
func MuxPath(path string) string {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if len(s) > 1 && strings.HasPrefix(s, ":") {
			segs[i] = "{" + s[1:] + "}"
		}
	}

	return strings.Join(segs, "/")
}
