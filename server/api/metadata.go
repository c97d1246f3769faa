package api

import (
	"net/http"

	"github.com/dekarrin/hddlint"
	"github.com/dekarrin/hddlint/server/result"
)

// MetadataRequest is the body of POST /api/v1/metadata.
type MetadataRequest struct {
	Domain string `json:"domain"`
}

// HTTPPostMetadata returns a HandlerFunc that analyzes a domain and returns
// its summary report.
func (api API) HTTPPostMetadata() http.HandlerFunc {
	return httpEndpoint(api.epPostMetadata)
}

func (api API) epPostMetadata(req *http.Request) result.Result {
	var body MetadataRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), "could not parse request body: %s", err.Error())
	}

	if api.Cache != nil {
		if md, hit, err := api.Cache.GetMetadata(req.Context(), body.Domain); err == nil && hit {
			return result.OK(md, "metadata cache hit")
		}
	}

	md, err := hddlint.GetMetadata(body.Domain)
	if err != nil {
		return parsingErrorResult(err)
	}

	if api.Cache != nil {
		_ = api.Cache.PutMetadata(req.Context(), body.Domain, md)
	}

	return result.OK(md, "computed metadata for domain %q", md.DomainName)
}
