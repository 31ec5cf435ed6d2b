package validate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/specforge/specforge/compiler/diag"
	"github.com/specforge/specforge/compiler/symbol"
	"github.com/specforge/specforge/spec"
)

// checkCycles verifies that the reference graph induced by composed-middleware
// chains and model relations is acyclic. A cycle is reported once with the
// participating chain.
func checkCycles(p *spec.Project, _ *symbol.Resolver, report *Report) {
	mwEdges := make(map[string][]string)
	mwFiles := make(map[string]string)
	for _, f := range p.Middlewares {
		if f.Def.Name == "" {
			continue
		}
		mwFiles[f.Def.Name] = f.Path
		for _, c := range f.Def.Composes {
			mwEdges[f.Def.Name] = append(mwEdges[f.Def.Name], c.Ref)
		}
	}
	reportCycles(mwEdges, mwFiles, "middleware composition", "composes", report)

	modelEdges := make(map[string][]string)
	modelFiles := make(map[string]string)
	for _, f := range p.Models {
		if f.Def.Name == "" {
			continue
		}
		modelFiles[f.Def.Name] = f.Path
		for _, name := range sortedRelations(f.Def.Relations) {
			modelEdges[f.Def.Name] = append(modelEdges[f.Def.Name], f.Def.Relations[name].Target.Ref)
		}
	}
	reportCycles(modelEdges, modelFiles, "model relation", "relations", report)
}

// reportCycles runs a depth-first search over the name graph and appends one
// diagnostic per distinct cycle, labeled with the edge kind and located at
// the field the edges come from. Nodes are visited in sorted order so the
// report is deterministic across runs.
func reportCycles(edges map[string][]string, files map[string]string, kind, field string, report *Report) {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int)
	names := make([]string, 0, len(edges))
	for name := range edges {
		names = append(names, name)
	}
	sort.Strings(names)

	var stack []string
	var visit func(name string)
	visit = func(name string) {
		state[name] = inStack
		stack = append(stack, name)
		for _, next := range edges[name] {
			switch state[next] {
			case unvisited:
				visit(next)
			case inStack:
				// Close the chain at the node that started it.
				start := 0
				for i, n := range stack {
					if n == next {
						start = i
						break
					}
				}
				chain := append(append([]string{}, stack[start:]...), next)
				report.Append(diag.Errorf(diag.CodeCycleDetected, files[next], diag.Path(field),
					"%s cycle: %s", kind, strings.Join(chain, " -> ")))
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
	}
	for _, name := range names {
		if state[name] == unvisited {
			visit(name)
		}
	}
}

func sortedMethods(methods map[string]*spec.RouteMethod) []string {
	out := make([]string, 0, len(methods))
	for m := range methods {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func sortedRelations(relations map[string]*spec.Relation) []string {
	out := make([]string, 0, len(relations))
	for name := range relations {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func itoa(i int) string { return strconv.Itoa(i) }
