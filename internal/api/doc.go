// Package api handles incoming HTTP requests for tasks: it decodes and
// validates request bodies, calls the task service, and writes either the
// task JSON or the {errorCode, message, details} error envelope.
//
// Every non-2xx response produced by this package, the router fallbacks and
// the recoverer middleware uses that envelope.
package api
