// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"golang.org/x/exp/slices"

	"github.com/bee2/packloader/internal/dag"
)

// Registry maps package ids to registered packages for the duration of one
// load. It is populated before collection starts and read-only afterwards.
type Registry struct {
	order []*Package
	index map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds p under its id. When the id is already taken the new package
// replaces the old one in place and the replaced package is returned.
func (r *Registry) Register(p *Package) (replaced *Package) {
	if i, ok := r.index[p.ID]; ok {
		replaced = r.order[i]
		r.order[i] = p
		return replaced
	}
	r.index[p.ID] = len(r.order)
	r.order = append(r.order, p)
	return nil
}

// Lookup returns the package registered under id.
func (r *Registry) Lookup(id string) (*Package, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.order[i], true
}

// All returns the registered packages in registration order.
func (r *Registry) All() []*Package {
	return r.order
}

// Len returns the number of registered packages.
func (r *Registry) Len() int {
	return len(r.order)
}

// DependencyOrder returns the registered package ids ordered so that every
// package comes after the prerequisites it declares. Prerequisites that are not
// registered are ignored. A prerequisite cycle yields a *dag.CycleError.
func (r *Registry) DependencyOrder() ([]string, error) {
	return r.dependencyGraph().TopologicalSort()
}

// RequiredBy maps each registered package id to the registered packages that
// declare it as a prerequisite, in registration order. Packages nothing
// requires are absent.
func (r *Registry) RequiredBy() map[string][]string {
	g := r.dependencyGraph()
	out := make(map[string][]string)
	for _, p := range r.order {
		if deps := g.Dependents(p.ID); len(deps) > 0 {
			out[p.ID] = slices.Compact(slices.Clone(deps))
		}
	}
	return out
}

// dependencyGraph has an edge from each prerequisite to the package requiring
// it. Self references and unregistered ids are skipped.
func (r *Registry) dependencyGraph() *dag.Graph {
	g := dag.New()
	for _, p := range r.order {
		g.AddNode(p.ID)
	}
	for _, p := range r.order {
		for _, pre := range p.Prerequisites {
			if pre != p.ID && g.HasNode(pre) {
				g.AddEdge(pre, p.ID)
			}
		}
	}
	return g
}
