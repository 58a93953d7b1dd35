package logger

import "log"

// A LoggerOptFn is a functional option configuring a WardenLogger when constructing a new one.
type LoggerOptFn func(*WardenLogger)

// WithEnv sets the environment WardenLogger is operating in.
func WithEnv(env string) func(*WardenLogger) {
	return func(l *WardenLogger) {
		l.env = env
	}
}

// WithLevel sets the log level WardenLogger uses.
func WithLevel(level LogLevel) func(*WardenLogger) {
	return func(l *WardenLogger) {
		l.ll = level
	}
}

// WithLogger sets the log.Logger WardenLogger uses.
func WithLogger(log *log.Logger) func(*WardenLogger) {
	return func(l *WardenLogger) {
		l.l = log
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) func(*WardenLogger) {
	return func(l *WardenLogger) {
		l.skip = skip
	}
}
