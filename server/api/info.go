package api

import (
	"net/http"

	"github.com/dekarrin/hddlint/internal/version"
	"github.com/dekarrin/hddlint/server/result"
)

// InfoModel is the response body of GET /api/v1/info.
type InfoModel struct {
	Version struct {
		Server  string `json:"server"`
		Hddlint string `json:"hddlint"`
	} `json:"version"`
}

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API
// and server.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return httpEndpoint(api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.Hddlint = version.Current
	return result.OK(resp, "got API info")
}
