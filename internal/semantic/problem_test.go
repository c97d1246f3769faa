package semantic

import (
	"testing"

	"github.com/dekarrin/hddlint/internal/diag"
	"github.com/dekarrin/hddlint/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const problemDomainSrc = `(define (domain transport)
  (:types vehicle - object)
  (:predicates (at ?v - vehicle ?l - object))
  (:task deliver :parameters (?v - vehicle ?l - object))
  (:action drive :parameters (?v - vehicle ?l - object)
    :effect (at ?v ?l)
  )
  (:method m_deliver :parameters (?v - vehicle ?l - object) :task (deliver ?v ?l)
    :subtasks (and (t1 (drive ?v ?l)))
  )
)`

func analyzedDomain(t *testing.T) *SymbolTable {
	t.Helper()
	d, err := parse.ParseDomain(problemDomainSrc)
	require.NoError(t, err)
	st, err := AnalyzeDomain(d, problemDomainSrc)
	require.NoError(t, err)
	return st
}

func TestAnalyzeProblem_Valid(t *testing.T) {
	st := analyzedDomain(t)

	src := `(define (problem p)
  (:domain transport)
  (:objects truck1 - vehicle loc1 - object)
  (:init (at truck1 loc1))
  (:goal (at truck1 loc1))
)`
	p, err := parse.ParseProblem(src)
	require.NoError(t, err)

	warnings, err := AnalyzeProblem(p, st, src)
	require.NoError(t, err)
	assert.Equal(t, st.Warnings, warnings)
}

func TestAnalyzeProblem_DuplicateObject(t *testing.T) {
	st := analyzedDomain(t)

	src := `(define (problem p)
  (:domain transport)
  (:objects truck1 - vehicle truck1 - vehicle)
  (:init)
)`
	p, err := parse.ParseProblem(src)
	require.NoError(t, err)

	_, err = AnalyzeProblem(p, st, src)
	require.Error(t, err)
	pe, ok := err.(diag.ParsingError)
	require.True(t, ok)
	assert.IsType(t, diag.DuplicateObjectDeclaration{}, pe.Sem)
}

func TestAnalyzeProblem_UndefinedObjectInInitState(t *testing.T) {
	st := analyzedDomain(t)

	src := `(define (problem p)
  (:domain transport)
  (:objects truck1 - vehicle loc1 - object)
  (:init (at truck1 unknown_loc))
)`
	p, err := parse.ParseProblem(src)
	require.NoError(t, err)

	_, err = AnalyzeProblem(p, st, src)
	require.Error(t, err)
	pe, ok := err.(diag.ParsingError)
	require.True(t, ok)
	assert.IsType(t, diag.UndefinedObject{}, pe.Sem)
}

func TestAnalyzeProblem_InitTaskNetworkValidated(t *testing.T) {
	st := analyzedDomain(t)

	src := `(define (problem p)
  (:domain transport)
  (:objects truck1 - vehicle loc1 - object)
  (:htn
    :ordered-subtasks (and (t1 (deliver truck1 loc1)) )
  )
  (:init)
)`
	p, err := parse.ParseProblem(src)
	require.NoError(t, err)

	_, err = AnalyzeProblem(p, st, src)
	require.NoError(t, err)
}

func TestAnalyzeProblem_InitTaskNetworkUndefinedSubtask(t *testing.T) {
	st := analyzedDomain(t)

	src := `(define (problem p)
  (:domain transport)
  (:objects truck1 - vehicle loc1 - object)
  (:htn
    :ordered-subtasks (and (t1 (nonexistent-task truck1 loc1)) )
  )
  (:init)
)`
	p, err := parse.ParseProblem(src)
	require.NoError(t, err)

	_, err = AnalyzeProblem(p, st, src)
	require.Error(t, err)
	pe, ok := err.(diag.ParsingError)
	require.True(t, ok)
	assert.IsType(t, diag.UndefinedSubtask{}, pe.Sem)
}

func TestAnalyzeProblem_GoalValidated(t *testing.T) {
	st := analyzedDomain(t)

	src := `(define (problem p)
  (:domain transport)
  (:objects truck1 - vehicle loc1 - object)
  (:init)
  (:goal (nonexistent-predicate truck1))
)`
	p, err := parse.ParseProblem(src)
	require.NoError(t, err)

	_, err = AnalyzeProblem(p, st, src)
	require.Error(t, err)
	pe, ok := err.(diag.ParsingError)
	require.True(t, ok)
	assert.IsType(t, diag.UndefinedPredicate{}, pe.Sem)
}
