// SPDX-License-Identifier: MPL-2.0

package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestTopologicalSort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		nodes []string
		edges [][2]string
		want  []string
	}{
		{name: "empty graph", want: nil},
		{name: "single package", nodes: []string{"core"}, want: []string{"core"}},
		{
			name:  "chain",
			edges: [][2]string{{"core", "styles"}, {"styles", "ext"}},
			want:  []string{"core", "styles", "ext"},
		},
		{
			name:  "registration order is kept within a level",
			nodes: []string{"ext", "music", "core"},
			edges: [][2]string{{"core", "ext"}},
			want:  []string{"music", "core", "ext"},
		},
		{
			name:  "diamond",
			edges: [][2]string{{"core", "a"}, {"core", "b"}, {"a", "ext"}, {"b", "ext"}},
			want:  []string{"core", "a", "b", "ext"},
		},
		{
			name:  "duplicate edges",
			edges: [][2]string{{"core", "ext"}, {"core", "ext"}},
			want:  []string{"core", "ext"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := New()
			for _, n := range tt.nodes {
				g.AddNode(n)
			}
			for _, e := range tt.edges {
				g.AddEdge(e[0], e[1])
			}
			order, err := g.TopologicalSort()
			if err != nil {
				t.Fatalf("TopologicalSort() error = %v", err)
			}
			if !slices.Equal(order, tt.want) {
				t.Errorf("TopologicalSort() = %v, want %v", order, tt.want)
			}
		})
	}
}

func TestTopologicalSort_Cycles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		edges     [][2]string
		wantStuck []string
	}{
		{name: "self prerequisite", edges: [][2]string{{"a", "a"}}, wantStuck: []string{"a"}},
		{name: "pair", edges: [][2]string{{"a", "b"}, {"b", "a"}}, wantStuck: []string{"a", "b"}},
		{
			name:      "ring with dependent",
			edges:     [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "ext"}},
			wantStuck: []string{"a", "b", "c", "ext"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := New()
			for _, e := range tt.edges {
				g.AddEdge(e[0], e[1])
			}
			_, err := g.TopologicalSort()
			var cycleErr *CycleError
			if !errors.As(err, &cycleErr) {
				t.Fatalf("expected *CycleError, got %T: %v", err, err)
			}
			if !slices.Equal(cycleErr.Cycle, tt.wantStuck) {
				t.Errorf("Cycle = %v, want %v", cycleErr.Cycle, tt.wantStuck)
			}
		})
	}
}

func TestGraph_Accessors(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddEdge("core", "ext")
	g.AddEdge("core", "music")
	g.AddNode("core")

	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}
	if !g.HasNode("music") || g.HasNode("absent") {
		t.Error("HasNode() reports wrong membership")
	}
	if got := g.Dependents("core"); !slices.Equal(got, []string{"ext", "music"}) {
		t.Errorf("Dependents(core) = %v", got)
	}
}

func TestCycleError_Message(t *testing.T) {
	t.Parallel()

	err := &CycleError{Cycle: []string{"a", "b", "c"}}
	if want := "prerequisite cycle detected: a -> b -> c"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
