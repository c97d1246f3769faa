package tdg

// RecursionKind is the closed 5-level recursion lattice, least to most
// severe as returned by the dominance combination in GetRecursionType:
// GrowAndShrink dominates (and is absorbing), followed by
// GrowingEmptyPrefix and EmptyRecursion (tied), then Recursive, then
// NonRecursive.
type RecursionKind int

const (
	NonRecursive RecursionKind = iota
	Recursive
	GrowingEmptyPrefixRecursion
	EmptyRecursion
	GrowAndShrinkRecursion
)

func (k RecursionKind) String() string {
	switch k {
	case NonRecursive:
		return "non-recursive"
	case Recursive:
		return "recursive"
	case GrowingEmptyPrefixRecursion:
		return "growing-empty-prefix recursion"
	case EmptyRecursion:
		return "empty recursion"
	case GrowAndShrinkRecursion:
		return "grow-and-shrink recursion"
	default:
		return "unknown"
	}
}

// severity orders the lattice for dominance combination. GrowingEmptyPrefix
// and EmptyRecursion are tied per spec ("GrowAndShrink > {GrowingEmptyPrefix,
// EmptyRecursion} > Recursive > NonRecursive").
func severity(k RecursionKind) int {
	switch k {
	case GrowAndShrinkRecursion:
		return 3
	case GrowingEmptyPrefixRecursion, EmptyRecursion:
		return 2
	case Recursive:
		return 1
	default:
		return 0
	}
}

// RecursionType is a domain's final recursion classification plus a
// representative cycle (a sequence of task names) that produced it; Cycle
// is empty for NonRecursive.
type RecursionType struct {
	Kind  RecursionKind
	Cycle []string
}

type edgeRef struct {
	methodIdx int
	pos       int
}

type cycleObservation struct {
	kind  RecursionKind
	cycle []string
}

// GetRecursionType performs a depth-first enumeration of (task, method)
// paths through the TDG. Whenever a newly-appended task coincides with a
// task already on the path, a cycle is recorded; each cycle is classified
// by the nullability of every method's prefix/suffix along it, and the
// final classification is the most severe cycle observed.
func (g *Graph) GetRecursionType(nullables map[string]bool) RecursionType {
	var observations []cycleObservation

	var path []string
	onPath := map[string]int{}
	var edgeMethodIdx, edgePos []int

	var dfs func(task string)
	dfs = func(task string) {
		node, ok := g.tasks[task]
		if !ok || node.primitive {
			return
		}
		path = append(path, task)
		onPath[task] = len(path) - 1

		for _, mi := range g.taskToMethods[task] {
			m := g.methods[mi]
			for j, sub := range m.subtaskNames {
				if idx, found := onPath[sub]; found {
					edges := make([]edgeRef, 0, len(path)-idx)
					for k := idx; k <= len(path)-2; k++ {
						edges = append(edges, edgeRef{methodIdx: edgeMethodIdx[k], pos: edgePos[k]})
					}
					edges = append(edges, edgeRef{methodIdx: mi, pos: j})

					cycle := append(append([]string{}, path[idx:]...), sub)
					kind := g.classifyCycle(edges, nullables)
					observations = append(observations, cycleObservation{kind: kind, cycle: cycle})
					continue
				}
				if _, isTask := g.tasks[sub]; !isTask {
					continue
				}
				edgeMethodIdx = append(edgeMethodIdx, mi)
				edgePos = append(edgePos, j)
				dfs(sub)
				edgeMethodIdx = edgeMethodIdx[:len(edgeMethodIdx)-1]
				edgePos = edgePos[:len(edgePos)-1]
			}
		}

		delete(onPath, task)
		path = path[:len(path)-1]
	}

	visitedRoots := map[string]bool{}
	for name, node := range g.tasks {
		if node.primitive || visitedRoots[name] {
			continue
		}
		path = nil
		onPath = map[string]int{}
		edgeMethodIdx, edgePos = nil, nil
		dfs(name)
		visitedRoots[name] = true
	}

	if len(observations) == 0 {
		return RecursionType{Kind: NonRecursive}
	}

	best := observations[0]
	for _, o := range observations[1:] {
		if severity(o.kind) > severity(best.kind) {
			best = o
		}
	}
	return RecursionType{Kind: best.kind, Cycle: best.cycle}
}

func (g *Graph) classifyCycle(edges []edgeRef, nullables map[string]bool) RecursionKind {
	allPrefixNullable := true
	anySuffixNonNullable := false
	anySuffixNullableNonEmpty := false
	allSuffixEmpty := true

	for _, e := range edges {
		m := g.methods[e.methodIdx]
		prefix := m.subtaskNames[:e.pos]
		suffix := m.subtaskNames[e.pos+1:]

		if !g.allNullable(prefix, nullables) {
			allPrefixNullable = false
		}
		if len(suffix) > 0 {
			allSuffixEmpty = false
			if !g.allNullable(suffix, nullables) {
				anySuffixNonNullable = true
			} else {
				anySuffixNullableNonEmpty = true
			}
		}
	}

	if !allPrefixNullable {
		return Recursive
	}
	if anySuffixNonNullable {
		return GrowingEmptyPrefixRecursion
	}
	if allSuffixEmpty {
		return EmptyRecursion
	}
	_ = anySuffixNullableNonEmpty
	return GrowAndShrinkRecursion
}

func (g *Graph) allNullable(names []string, nullables map[string]bool) bool {
	for _, n := range names {
		node, ok := g.tasks[n]
		if !ok || node.primitive {
			return false
		}
		if !nullables[n] {
			return false
		}
	}
	return true
}
