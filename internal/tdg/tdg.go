// Package tdg builds the bipartite Task Decomposition Graph from a verified
// domain AST and answers reachability, nullability, and recursion-shape
// queries over it.
package tdg

import "github.com/dekarrin/hddlint/internal/ast"

type taskNode struct {
	name      string
	primitive bool
}

type methodNode struct {
	name         string
	task         string
	subtaskNames []string
}

// Graph is the bipartite task<->method graph of a single domain.
type Graph struct {
	tasks         map[string]taskNode
	methods       []methodNode
	taskToMethods map[string][]int

	nullableCache map[string]bool
}

// Build constructs a Graph from d. d is assumed to have already passed
// domain semantic analysis (every subtask reference resolves).
func Build(d *ast.Domain) *Graph {
	g := &Graph{
		tasks:         map[string]taskNode{},
		taskToMethods: map[string][]int{},
	}
	for _, t := range d.CompoundTasks {
		g.tasks[t.Name] = taskNode{name: t.Name, primitive: false}
	}
	for _, a := range d.Actions {
		g.tasks[a.Name] = taskNode{name: a.Name, primitive: true}
	}
	for i, m := range d.Methods {
		var names []string
		for _, st := range m.TN.Subtasks {
			names = append(names, st.Task.Name)
		}
		g.methods = append(g.methods, methodNode{name: m.Name.Name, task: m.Task.Name, subtaskNames: names})
		g.taskToMethods[m.Task.Name] = append(g.taskToMethods[m.Task.Name], i)
	}
	return g
}

// ReachableResult is the result of a Reachable query.
type ReachableResult struct {
	Primitives []string
	Compounds  []string
	Nullable   bool
}

// Reachable returns every primitive and compound task reachable from task
// by decomposition, plus whether task itself is nullable. A primitive task
// reaches only itself and is never nullable.
func (g *Graph) Reachable(task string) ReachableResult {
	node, ok := g.tasks[task]
	if !ok {
		return ReachableResult{}
	}
	if node.primitive {
		return ReachableResult{Primitives: []string{task}}
	}

	nullables := g.ComputeNullables()
	visited := map[string]bool{task: true}
	var primitives, compounds []string
	queue := []string{task}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, mi := range g.taskToMethods[cur] {
			for _, sub := range g.methods[mi].subtaskNames {
				if visited[sub] {
					continue
				}
				visited[sub] = true
				subNode, ok := g.tasks[sub]
				if !ok {
					continue
				}
				if subNode.primitive {
					primitives = append(primitives, sub)
				} else {
					compounds = append(compounds, sub)
					queue = append(queue, sub)
				}
			}
		}
	}
	return ReachableResult{Primitives: primitives, Compounds: compounds, Nullable: nullables[task]}
}

// ComputeNullables computes the fixpoint set of nullable compound tasks:
// tasks that can decompose (directly or transitively) to the empty
// sequence. See spec §4.7 for the base/unit-reachability/induction steps
// this implements.
func (g *Graph) ComputeNullables() map[string]bool {
	if g.nullableCache != nil {
		return g.nullableCache
	}

	nullable := map[string]bool{}
	for _, m := range g.methods {
		if len(m.subtaskNames) == 0 {
			nullable[m.task] = true
		}
	}

	// U(c): unit-reachability set, starts as {c} plus any single-subtask
	// method target.
	U := map[string]map[string]bool{}
	for name, node := range g.tasks {
		if node.primitive {
			continue
		}
		u := map[string]bool{name: true}
		for _, mi := range g.taskToMethods[name] {
			m := g.methods[mi]
			if len(m.subtaskNames) == 1 {
				u[m.subtaskNames[0]] = true
			}
		}
		U[name] = u
	}

	for changed := true; changed; {
		changed = false

		for name, node := range g.tasks {
			if node.primitive || nullable[name] {
				continue
			}
			for _, mi := range g.taskToMethods[name] {
				m := g.methods[mi]
				if len(m.subtaskNames) == 0 {
					continue
				}
				allUnitNullable := true
				for _, sub := range m.subtaskNames {
					if !anyUnitReachableNullable(U, nullable, sub) {
						allUnitNullable = false
						break
					}
				}
				if allUnitNullable {
					nullable[name] = true
					changed = true
					break
				}
			}
		}

		for name, node := range g.tasks {
			if node.primitive {
				continue
			}
			u := U[name]

			var additions []string
			for x := range u {
				xNode, ok := g.tasks[x]
				if !ok || xNode.primitive {
					continue
				}
				for _, mi := range g.taskToMethods[x] {
					m := g.methods[mi]
					if len(m.subtaskNames) == 1 && !u[m.subtaskNames[0]] {
						additions = append(additions, m.subtaskNames[0])
					}
				}
			}

			for _, mi := range g.taskToMethods[name] {
				m := g.methods[mi]
				var nonNullable []string
				for _, sub := range m.subtaskNames {
					if !nullable[sub] {
						nonNullable = append(nonNullable, sub)
					}
				}
				if len(nonNullable) == 1 && !u[nonNullable[0]] {
					additions = append(additions, nonNullable[0])
				}
			}

			for _, a := range additions {
				if !u[a] {
					u[a] = true
					changed = true
				}
			}
		}
	}

	g.nullableCache = nullable
	return nullable
}

func anyUnitReachableNullable(U map[string]map[string]bool, nullable map[string]bool, task string) bool {
	u, ok := U[task]
	if !ok {
		return nullable[task] // primitive: never in U, never nullable
	}
	for x := range u {
		if nullable[x] {
			return true
		}
	}
	return false
}
