package spec

import "testing"

func TestPropIsScalar(t *testing.T) {
	tests := []struct {
		kind     PropKind
		expected bool
	}{
		{KindString, true},
		{KindNumber, true},
		{KindBoolean, true},
		{KindObject, false},
		{KindArray, false},
		{KindMap, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			p := Prop{Kind: tt.kind}
			if got := p.IsScalar(); got != tt.expected {
				t.Errorf("IsScalar() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPropWalkVisitsAllNodes(t *testing.T) {
	elem := Prop{Name: "", Kind: KindString, Path: "List[]"}
	p := Prop{
		Name: "Root",
		Kind: KindObject,
		Path: "Root",
		Children: []Prop{
			{Name: "A", Kind: KindString, Path: "Root/A"},
			{Name: "List", Kind: KindArray, Path: "Root/List", Element: &elem},
		},
	}

	var visited []string
	p.Walk(func(n *Prop) bool {
		visited = append(visited, n.Path)
		return true
	})

	want := []string{"Root", "Root/A", "Root/List", "List[]"}
	if len(visited) != len(want) {
		t.Fatalf("visited %d nodes, want %d: %v", len(visited), len(want), visited)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %q, want %q", i, visited[i], want[i])
		}
	}
}

func TestPropWalkStops(t *testing.T) {
	p := Prop{
		Name: "Root",
		Kind: KindObject,
		Children: []Prop{
			{Name: "A", Kind: KindString},
			{Name: "B", Kind: KindString},
		},
	}

	count := 0
	p.Walk(func(n *Prop) bool {
		count++
		return false
	})

	if count != 1 {
		t.Errorf("walk visited %d nodes after stop, want 1", count)
	}
}

func TestPropCloneIsDeep(t *testing.T) {
	elem := Prop{Kind: KindString, Path: "List[]"}
	orig := Prop{
		Name:     "Root",
		Kind:     KindObject,
		Children: []Prop{{Name: "List", Kind: KindArray, Element: &elem}},
	}

	cp := orig.Clone()
	cp.Children[0].Element.Kind = KindNumber
	cp.Children[0].Name = "Changed"

	if orig.Children[0].Name != "List" {
		t.Error("clone shares child slice with original")
	}
	if orig.Children[0].Element.Kind != KindString {
		t.Error("clone shares element pointer with original")
	}
}
