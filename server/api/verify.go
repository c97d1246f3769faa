package api

import (
	"net/http"

	"github.com/dekarrin/hddlint"
	"github.com/dekarrin/hddlint/internal/diag"
	"github.com/dekarrin/hddlint/server/result"
)

// VerifyRequest is the body of POST /api/v1/verify. Problem may be left
// empty to analyze Domain on its own.
type VerifyRequest struct {
	Domain  string `json:"domain"`
	Problem string `json:"problem"`
}

// VerifyResponse is the success body of POST /api/v1/verify.
type VerifyResponse struct {
	Warnings []string `json:"warnings"`
}

// ParsingErrorModel is the error body returned when analysis fails with a
// ParsingError.
type ParsingErrorModel struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// HTTPPostVerify returns a HandlerFunc that analyzes a domain (and optional
// problem) and returns the accumulated warning list.
func (api API) HTTPPostVerify() http.HandlerFunc {
	return httpEndpoint(api.epPostVerify)
}

func (api API) epPostVerify(req *http.Request) result.Result {
	var body VerifyRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), "could not parse request body: %s", err.Error())
	}

	if api.Cache != nil {
		if messages, hit, err := api.Cache.GetVerify(req.Context(), body.Domain, body.Problem); err == nil && hit {
			return result.OK(VerifyResponse{Warnings: messages}, "verify cache hit")
		}
	}

	warnings, err := hddlint.Verify(body.Domain, body.Problem)
	if err != nil {
		return parsingErrorResult(err)
	}

	if api.Cache != nil {
		_ = api.Cache.PutVerify(req.Context(), body.Domain, body.Problem, warnings)
	}

	return result.OK(VerifyResponse{Warnings: warningStrings(warnings)}, "verified domain, %d warning(s)", len(warnings))
}

func warningStrings(warnings []diag.WarningType) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.Error()
	}
	return out
}

func parsingErrorResult(err error) result.Result {
	pe, ok := err.(diag.ParsingError)
	if !ok {
		return result.InternalServerError("%s", err.Error())
	}
	model := ParsingErrorModel{Kind: pe.Kind.String(), Message: pe.FullMessage()}
	return result.Response(http.StatusUnprocessableEntity, model, "analysis failed: %s", pe.Error())
}
