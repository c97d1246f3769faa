package parse

import (
	"testing"

	"github.com/dekarrin/hddlint/internal/ast"
	"github.com/dekarrin/hddlint/internal/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simpleDomain = `
(define (domain transport)
  (:requirements :hierarchy :typing)
  (:types
    vehicle - object
    car truck - vehicle
  )
  (:predicates
    (at ?v - vehicle ?l - object)
  )
  (:task
    deliver
    :parameters (?v - vehicle ?l - object)
  )
  (:action
    drive
    :parameters (?v - vehicle ?l - object)
    :precondition (not (at ?v ?l))
    :effect (at ?v ?l)
  )
  (:method
    m_deliver
    :parameters (?v - vehicle ?l - object)
    :task (deliver ?v ?l)
    :subtasks (and
      (t1 (drive ?v ?l))
    )
  )
)
`

func TestParseDomain_Basic(t *testing.T) {
	d, err := ParseDomain(simpleDomain)
	require.NoError(t, err)
	require.NotNil(t, d)

	assert.Equal(t, "transport", d.Name)
	require.Len(t, d.Requirements, 2)
	require.Len(t, d.Types, 3)
	require.Len(t, d.Predicates, 1)
	require.Len(t, d.CompoundTasks, 1)
	require.Len(t, d.Actions, 1)
	require.Len(t, d.Methods, 1)

	action := d.Actions[0]
	assert.Equal(t, "drive", action.Name)
	assert.True(t, action.HasPrecondition)
	assert.Equal(t, ast.FNot, action.Precondition.Kind)
	assert.True(t, action.HasEffect)
	assert.Equal(t, ast.FAtom, action.Effect.Kind)

	method := d.Methods[0]
	assert.Equal(t, "m_deliver", method.Name.Name)
	assert.Equal(t, "deliver", method.Task.Name)
	require.Len(t, method.TN.Subtasks, 1)
	require.NotNil(t, method.TN.Subtasks[0].ID)
	assert.Equal(t, "t1", method.TN.Subtasks[0].ID.Name)
	assert.Equal(t, "drive", method.TN.Subtasks[0].Task.Name)
}

func TestParseDomain_TypedListBatches(t *testing.T) {
	src := `(define (domain d)
  (:types a b - p c - q d)
)`
	d, err := ParseDomain(src)
	require.NoError(t, err)

	byName := map[string]ast.Symbol{}
	for _, s := range d.Types {
		byName[s.Name] = s
	}
	require.Contains(t, byName, "a")
	require.Contains(t, byName, "b")
	require.Contains(t, byName, "c")
	require.Contains(t, byName, "d")

	assert.Equal(t, "p", byName["a"].Type)
	assert.Equal(t, "p", byName["b"].Type)
	assert.Equal(t, "q", byName["c"].Type)
	assert.False(t, byName["d"].Typed, "trailing untyped batch has no type")
}

func TestParseDomain_WrongHeaderIsProblem(t *testing.T) {
	src := `(define (problem p) (:domain d) (:objects) (:init) )`
	_, err := ParseDomain(src)
	require.Error(t, err)
}

func TestParseProblem_Basic(t *testing.T) {
	src := `
(define (problem logistics-1)
  (:domain transport)
  (:requirements :typing)
  (:objects
    truck1 - vehicle
    loc1 loc2 - object
  )
  (:htn
    :parameters ()
    :ordered-subtasks (and
      (t1 (deliver truck1 loc1))
      (t2 (deliver truck1 loc2))
    )
  )
  (:init
    (at truck1 loc1)
  )
  (:goal (at truck1 loc2))
)
`
	p, err := ParseProblem(src)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, "logistics-1", p.Name)
	assert.Equal(t, "transport", p.DomainName)
	require.Len(t, p.Objects, 3)
	require.NotNil(t, p.InitTN)
	require.Len(t, p.InitTN.Subtasks, 2)
	require.Len(t, p.InitState, 1)
	assert.True(t, p.HasGoal)
	assert.Equal(t, ast.FAtom, p.Goal.Kind)
}

func TestParseFormula_Quantifiers(t *testing.T) {
	src := `(define (domain d)
  (:predicates (p ?x - object))
  (:action a :parameters (?x - object)
    :precondition (forall (?y - object) (p ?y))
  )
)`
	d, err := ParseDomain(src)
	require.NoError(t, err)
	f := d.Actions[0].Precondition
	require.Equal(t, ast.FForAll, f.Kind)
	require.Len(t, f.Params, 1)
	assert.Equal(t, "y", f.Params[0].Name)
	assert.Equal(t, ast.FAtom, f.Body().Kind)
}

func TestParseFormula_EqualsAndXorAndImply(t *testing.T) {
	src := `(define (domain d)
  (:predicates (p ?x - object) (q ?x - object))
  (:action a :parameters (?x - object ?y - object)
    :precondition (and (= ?x ?y) (oneof (p ?x) (q ?x)) (imply (p ?x) (q ?x)))
  )
)`
	d, err := ParseDomain(src)
	require.NoError(t, err)
	f := d.Actions[0].Precondition
	require.Equal(t, ast.FAnd, f.Kind)
	require.Len(t, f.Children, 3)
	assert.Equal(t, ast.FEquals, f.Children[0].Kind)
	assert.Equal(t, ast.FXor, f.Children[1].Kind)
	assert.Equal(t, ast.FImply, f.Children[2].Kind)
	require.Len(t, f.Children[2].Antecedents, 1)
	require.Len(t, f.Children[2].Consequents, 1)
}

func TestParseFormula_Empty(t *testing.T) {
	src := `(define (domain d)
  (:action a :parameters () :precondition () )
)`
	d, err := ParseDomain(src)
	require.NoError(t, err)
	assert.True(t, d.Actions[0].Precondition.IsEmpty())
}

func TestParseSubtasks_PositionalWithoutID(t *testing.T) {
	src := `(define (domain d)
  (:task deliver :parameters ())
  (:method m :parameters () :task (deliver)
    :subtasks (deliver)
  )
)`
	d, err := ParseDomain(src)
	require.NoError(t, err)
	require.Len(t, d.Methods[0].TN.Subtasks, 1)
	assert.Nil(t, d.Methods[0].TN.Subtasks[0].ID)
}

func TestParseOrdering_ChainForm(t *testing.T) {
	src := `(define (domain d)
  (:task t :parameters ())
  (:method m :parameters () :task (t)
    :subtasks (and (t1 (t)) (t2 (t)) (t3 (t)))
    :ordering (< t1 t2 t3)
  )
)`
	d, err := ParseDomain(src)
	require.NoError(t, err)
	ord := d.Methods[0].TN.Orderings
	require.Equal(t, ast.OrderingPartial, ord.Kind)
	require.Len(t, ord.Pairs, 2)
	assert.Equal(t, "t1", ord.Pairs[0].Before.Name)
	assert.Equal(t, "t2", ord.Pairs[0].After.Name)
	assert.Equal(t, "t2", ord.Pairs[1].Before.Name)
	assert.Equal(t, "t3", ord.Pairs[1].After.Name)
}

func TestParseOrdering_AndForm(t *testing.T) {
	src := `(define (domain d)
  (:task t :parameters ())
  (:method m :parameters () :task (t)
    :subtasks (and (t1 (t)) (t2 (t)))
    :ordering (and (< t1 t2))
  )
)`
	d, err := ParseDomain(src)
	require.NoError(t, err)
	ord := d.Methods[0].TN.Orderings
	require.Equal(t, ast.OrderingPartial, ord.Kind)
	require.Len(t, ord.Pairs, 1)
}

func TestParseConstraints(t *testing.T) {
	src := `(define (domain d)
  (:task t :parameters ())
  (:method m :parameters (?a ?b) :task (t)
    :subtasks (and (t1 (t)))
    :constraints (and (= ?a ?b) (not (= ?a ?b)))
  )
)`
	d, err := ParseDomain(src)
	require.NoError(t, err)
	cs := d.Methods[0].TN.Constraints
	require.Len(t, cs, 2)
	assert.Equal(t, ast.ConstraintEqual, cs[0].Kind)
	assert.Equal(t, ast.ConstraintNotEqual, cs[1].Kind)
}

func TestParse_SyntaxErrorUnexpectedToken(t *testing.T) {
	src := `(define (domain d) (:types (nested)))`
	_, err := ParseDomain(src)
	require.Error(t, err)
}

func TestParse_SyntaxErrorReportsLine(t *testing.T) {
	src := "(define (domain d)\n  (:bogus-section)\n)"
	_, err := ParseDomain(src)
	require.Error(t, err)
	pe, ok := err.(diag.ParsingError)
	require.True(t, ok)
	assert.Equal(t, 2, pe.Pos().Line)
}
