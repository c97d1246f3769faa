package semantic

import (
	"testing"

	"github.com/dekarrin/hddlint/internal/diag"
	"github.com/dekarrin/hddlint/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAnalyzeDomain_CyclicOrdering reproduces spec §8 scenario 1: a method
// whose explicit subtask ordering forms a cycle t1->t2->t3->t4->t1.
func TestAnalyzeDomain_CyclicOrdering(t *testing.T) {
	src := `(define (domain d)
  (:task deliver_abs_1 :parameters ())
  (:method m_1 :parameters () :task (deliver_abs_1)
    :subtasks (and
      (t1 (deliver_abs_1))
      (t2 (deliver_abs_1))
      (t3 (deliver_abs_1))
      (t4 (deliver_abs_1))
    )
    :ordering (and (< t1 t2) (< t2 t3) (< t3 t4) (< t4 t1))
  )
)`
	d, err := parse.ParseDomain(src)
	require.NoError(t, err)

	_, err = AnalyzeDomain(d, src)
	require.Error(t, err)
	pe, ok := err.(diag.ParsingError)
	require.True(t, ok)
	assert.Equal(t, diag.Semantic, pe.Kind)
	assert.IsType(t, diag.CyclicOrderingDeclaration{}, pe.Sem)
}

// TestAnalyzeDomain_CyclicTypeHierarchy reproduces spec §8 scenario 2.
func TestAnalyzeDomain_CyclicTypeHierarchy(t *testing.T) {
	src := `(define (domain d)
  (:types t1 t2 - t3  t4 t5 - t6  t3 t6 - t7  t7 - t1)
)`
	d, err := parse.ParseDomain(src)
	require.NoError(t, err)

	_, err = AnalyzeDomain(d, src)
	require.Error(t, err)
	pe, ok := err.(diag.ParsingError)
	require.True(t, ok)
	assert.IsType(t, diag.CyclicTypeDeclaration{}, pe.Sem)
}

// TestAnalyzeDomain_DuplicatePredicate reproduces spec §8 scenario 3.
func TestAnalyzeDomain_DuplicatePredicate(t *testing.T) {
	src := `(define (domain d)
  (:predicates
    (pred_1 ?x - object)
    (pred_1 ?x - object ?y - object)
  )
)`
	d, err := parse.ParseDomain(src)
	require.NoError(t, err)

	_, err = AnalyzeDomain(d, src)
	require.Error(t, err)
	pe, ok := err.(diag.ParsingError)
	require.True(t, ok)
	dup, ok := pe.Sem.(diag.DuplicatePredicateDeclaration)
	require.True(t, ok)
	assert.Equal(t, "pred_1", dup.Name)
}

// TestAnalyzeDomain_InconsistentPredicateArity reproduces spec §8 scenario 4.
func TestAnalyzeDomain_InconsistentPredicateArity(t *testing.T) {
	src := `(define (domain d)
  (:predicates (at ?l - object))
  (:action a :parameters (?l1 - object ?l2 - object)
    :effect (at ?l1 ?l2)
  )
)`
	d, err := parse.ParseDomain(src)
	require.NoError(t, err)

	_, err = AnalyzeDomain(d, src)
	require.Error(t, err)
	pe, ok := err.(diag.ParsingError)
	require.True(t, ok)
	arity, ok := pe.Sem.(diag.InconsistentPredicateArity)
	require.True(t, ok)
	assert.Equal(t, "at", arity.Name)
	assert.Equal(t, 1, arity.Expected)
	assert.Equal(t, 2, arity.Found)
}

// TestAnalyzeDomain_NoPrimitiveRefinement reproduces spec §8 scenario 5: a
// compound task reachable from the root that never bottoms out in a
// primitive and is never nullable.
func TestAnalyzeDomain_NoPrimitiveRefinement(t *testing.T) {
	src := `(define (domain d)
  (:task abs_3 :parameters ())
  (:method m_3 :parameters () :task (abs_3)
    :subtasks (abs_3)
  )
)`
	d, err := parse.ParseDomain(src)
	require.NoError(t, err)

	st, err := AnalyzeDomain(d, src)
	require.NoError(t, err)

	var found bool
	for _, w := range st.Warnings {
		if nr, ok := w.(diag.NoPrimitiveRefinement); ok {
			found = true
			assert.Equal(t, "abs_3", nr.Name)
		}
	}
	assert.True(t, found, "expected NoPrimitiveRefinement warning, got %+v", st.Warnings)
}

// TestAnalyzeDomain_UnsatisfiablePrecondition reproduces spec §8 scenario 6.
func TestAnalyzeDomain_UnsatisfiablePrecondition(t *testing.T) {
	src := `(define (domain d)
  (:predicates (at ?l - object))
  (:action a :parameters (?l1 - object)
    :precondition (and (at ?l1) (not (at ?l1)))
  )
)`
	d, err := parse.ParseDomain(src)
	require.NoError(t, err)

	st, err := AnalyzeDomain(d, src)
	require.NoError(t, err)

	var found bool
	for _, w := range st.Warnings {
		if up, ok := w.(diag.UnsatisfiableActionPrecondition); ok {
			found = true
			assert.Equal(t, "a", up.Name)
		}
	}
	assert.True(t, found, "expected UnsatisfiableActionPrecondition warning, got %+v", st.Warnings)
}

func TestAnalyzeDomain_DuplicateRequirement(t *testing.T) {
	src := `(define (domain d)
  (:requirements :typing :typing)
)`
	d, err := parse.ParseDomain(src)
	require.NoError(t, err)

	_, err = AnalyzeDomain(d, src)
	require.Error(t, err)
	pe, ok := err.(diag.ParsingError)
	require.True(t, ok)
	assert.IsType(t, diag.DuplicateRequirementDeclaration{}, pe.Sem)
}

func TestAnalyzeDomain_UndefinedTypeOnPredicateParam(t *testing.T) {
	src := `(define (domain d)
  (:predicates (at ?l - nonexistent))
)`
	d, err := parse.ParseDomain(src)
	require.NoError(t, err)

	_, err = AnalyzeDomain(d, src)
	require.Error(t, err)
	pe, ok := err.(diag.ParsingError)
	require.True(t, ok)
	assert.IsType(t, diag.UndefinedType{}, pe.Sem)
}

func TestAnalyzeDomain_ValidDomainNoErrors(t *testing.T) {
	src := `(define (domain d)
  (:types vehicle - object)
  (:predicates (at ?v - vehicle ?l - object))
  (:task deliver :parameters (?v - vehicle ?l - object))
  (:action drive :parameters (?v - vehicle ?l - object)
    :precondition (not (at ?v ?l))
    :effect (at ?v ?l)
  )
  (:method m_deliver :parameters (?v - vehicle ?l - object) :task (deliver ?v ?l)
    :subtasks (and (t1 (drive ?v ?l)))
  )
)`
	d, err := parse.ParseDomain(src)
	require.NoError(t, err)

	st, err := AnalyzeDomain(d, src)
	require.NoError(t, err)
	assert.Empty(t, st.Warnings)
}
