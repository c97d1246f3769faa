// Package middle contains middleware for use with the hddlint HTTP server.
package middle

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dekarrin/hddlint/server/result"
	"github.com/google/uuid"
)

type mwFunc http.HandlerFunc

func (sf mwFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	sf(w, req)
}

// Middleware is a function that takes a handler and returns a new handler
// which wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// DontPanic returns a Middleware that performs a panic check as it exits. If
// the function is panicking, it will write out an HTTP response with a
// generic message to the client and add it to the log.
func DontPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, r *http.Request) {
			defer panicTo500(w, r)
			next.ServeHTTP(w, r)
		})
	}
}

// RequestID returns a Middleware that assigns every request a UUID, set as
// the X-Request-Id response header, and logs the start and completion of the
// request under that ID.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set("X-Request-Id", id)

			start := time.Now()
			logRequest("INFO", r, id, "received")
			next.ServeHTTP(w, r)
			logRequest("INFO", r, id, "completed in %s", time.Since(start))
		})
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		)
		r.WriteResponse(w)
		logRequest("ERROR", req, "", r.InternalMsg)
		return true
	}
	return false
}

func logRequest(level string, req *http.Request, id string, msg string, v ...interface{}) {
	if len(level) > 5 {
		level = level[0:5]
	}
	for len(level) < 5 {
		level += " "
	}

	remoteAddrParts := strings.SplitN(req.RemoteAddr, ":", 2)
	remoteIP := remoteAddrParts[0]

	formatted := fmt.Sprintf(msg, v...)
	if id != "" {
		log.Printf("%s %s %s %s [%s]: %s", level, remoteIP, req.Method, req.URL.Path, id, formatted)
	} else {
		log.Printf("%s %s %s %s: %s", level, remoteIP, req.Method, req.URL.Path, formatted)
	}
}
