// Package api provides the HTTP API endpoints for the hddlint analysis
// server.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/dekarrin/hddlint/internal/cache"
	"github.com/dekarrin/hddlint/server/result"
	"github.com/dekarrin/hddlint/server/serr"
)

// PathPrefix is the prefix of all paths in the API. Routers should mount a
// sub-router that routes all requests to the API at this path.
const PathPrefix = "/api/v1"

// maxBodyBytes bounds the size of a request body the API will read, so a
// malicious or mistaken caller cannot exhaust server memory with an
// oversized domain/problem payload.
const maxBodyBytes = 1 << 20 // 1 MiB

// API holds dependencies needed to run the hddlint HTTP endpoints. Create
// one and assign the result of its HTTP* methods as handlers to a router.
type API struct {
	// Cache, if non-nil, is consulted before running analysis and updated
	// after a successful one.
	Cache *cache.Cache
}

// EndpointFunc is implemented by a function handling a single API
// endpoint's business logic, returning a result to be written back to the
// client.
type EndpointFunc func(req *http.Request) result.Result

func httpEndpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)
		r := ep(req)

		if r.Status == 0 {
			logHTTPResponse("ERROR", req, http.StatusInternalServerError, "endpoint result was never populated")
			http.Error(w, "An internal server error occurred", http.StatusInternalServerError)
			return
		}

		if err := r.PrepareMarshaledResponse(); err != nil {
			newResp := result.Err(http.StatusInternalServerError, "An internal server error occurred", "could not marshal JSON response: "+err.Error())
			newResp.WriteResponse(w)
			logHTTPResponse("ERROR", req, newResp.Status, newResp.InternalMsg)
			return
		}

		if r.IsErr {
			logHTTPResponse("ERROR", req, r.Status, r.InternalMsg)
		} else {
			logHTTPResponse("INFO", req, r.Status, r.InternalMsg)
		}

		r.WriteResponse(w)
	}
}

// parseJSON decodes the request body as JSON into v, which must be a
// pointer. The body is capped at maxBodyBytes and the content-type is
// required to be application/json.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")
	if strings.ToLower(contentType) != "application/json" {
		return serr.New("", serr.ErrBadContentType)
	}

	limited := io.LimitReader(req.Body, maxBodyBytes+1)
	bodyData, err := io.ReadAll(limited)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	if len(bodyData) > maxBodyBytes {
		return serr.New("", serr.ErrPayloadTooLarge)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bodyData))
	}()

	if err := json.Unmarshal(bodyData, v); err != nil {
		return serr.New("malformed JSON in request", err, serr.ErrBodyUnmarshal)
	}

	return nil
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		)
		r.WriteResponse(w)
		return true
	}
	return false
}

func logHTTPResponse(level string, req *http.Request, respStatus int, msg string) {
	if len(level) > 5 {
		level = level[0:5]
	}
	for len(level) < 5 {
		level += " "
	}

	remoteAddrParts := strings.SplitN(req.RemoteAddr, ":", 2)
	remoteIP := remoteAddrParts[0]

	log.Printf("%s %s %s %s: HTTP-%d %s", level, remoteIP, req.Method, req.URL.Path, respStatus, msg)
}
