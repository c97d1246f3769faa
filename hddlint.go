// Package hddlint is the entry point of the analyzer: it exposes the two
// operations every front end (CLI, shell, HTTP API) builds on, Verify and
// GetMetadata, each running the lex/parse/typecheck/semantic pipeline over
// raw HDDL source and returning either a result or the first ParsingError
// encountered.
package hddlint

import (
	"github.com/dekarrin/hddlint/internal/diag"
	"github.com/dekarrin/hddlint/internal/metadata"
	"github.com/dekarrin/hddlint/internal/parse"
	"github.com/dekarrin/hddlint/internal/semantic"
)

// Warning re-exports the diagnostic warning interface for callers that only
// need the top-level package.
type Warning = diag.WarningType

// ParsingError re-exports the unified error type returned by a failed
// lex/parse/semantic pass.
type ParsingError = diag.ParsingError

// MetaData re-exports the domain summary report.
type MetaData = metadata.MetaData

// Verify parses and semantically analyzes domain, and problem if non-empty,
// returning every warning accumulated across both passes. problem may be
// empty to analyze a domain on its own.
func Verify(domain string, problem string) ([]Warning, error) {
	d, err := parse.ParseDomain(domain)
	if err != nil {
		return nil, err
	}

	st, err := semantic.AnalyzeDomain(d, domain)
	if err != nil {
		return nil, err
	}

	if problem == "" {
		return st.Warnings, nil
	}

	p, err := parse.ParseProblem(problem)
	if err != nil {
		return nil, err
	}

	warnings, err := semantic.AnalyzeProblem(p, st, problem)
	if err != nil {
		return nil, err
	}
	return warnings, nil
}

// GetMetadata parses and analyzes domain and returns its summary report.
func GetMetadata(domain string) (MetaData, error) {
	d, err := parse.ParseDomain(domain)
	if err != nil {
		return MetaData{}, err
	}

	st, err := semantic.AnalyzeDomain(d, domain)
	if err != nil {
		return MetaData{}, err
	}

	return metadata.Compute(d, st), nil
}
