/*
Package logger provides logging functionality to a warden app by defining the required behavior in [Logger]
and providing an implementation of it with [WardenLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [WardenLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*WardenLogger.Warn], [*WardenLogger.Error], and [*WardenLogger.Fatal] produce messages.

# WardenLogger

Log messages emitted by [WardenLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2022/04/28 15:55:21 [DEBUG] http/guard/compile.go:43 'guard check GET /admin/1 resource=admin:user action=my:get'

The file, line number, and parent directory of where a [WardenLogger] method was called comprise the call site.
The log context is a JSON-encoded [*LogContext] for data inessential to the message proper.

# SkipLogger

Sometimes, especially with internal packages, the file and line number in a log needs to be configurable.
[SkipLogger] provides additional configuration functionality by setting the number of frames to skip
back in order to reach the desired caller.
*/
package logger
