package uml

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vk/classcanvas/internal/canvas"
	"github.com/vk/classcanvas/internal/config"
)

func TestEdges(t *testing.T) {
	ids := map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"}
	testCases := []struct {
		name  string
		rel   config.Relations
		namer EdgeNamer
		want  []*canvas.Edge
	}{
		{
			name:  "no relations",
			namer: KindNamer,
			want:  []*canvas.Edge{},
		},
		{
			name: "inheritance composition association",
			rel: config.Relations{
				Inheritance: map[string]string{"B": "A", "X": "A"},
				Composition: map[string][]string{"C": {"D", "Missing"}},
				Association: map[string][]string{"D": {"A"}},
			},
			namer: KindNamer,
			want: []*canvas.Edge{
				{ID: "inherit-0", FromNode: "b", FromSide: "top", ToNode: "a", ToSide: "bottom", Color: "2"},
				{ID: "comp-1", FromNode: "c", FromSide: "right", ToNode: "d", ToSide: "left", Color: "3"},
				{ID: "assoc-2", FromNode: "d", FromSide: "right", ToNode: "a", ToSide: "left", Color: "4"},
			},
		},
		{
			name: "association skips self and inheritance pairs",
			rel: config.Relations{
				Inheritance: map[string]string{"B": "A"},
				Association: map[string][]string{"A": {"A", "B", "C"}, "B": {"A"}},
			},
			namer: SequentialNamer("edge"),
			want: []*canvas.Edge{
				{ID: "edge-0", FromNode: "b", FromSide: "top", ToNode: "a", ToSide: "bottom", Color: "2"},
				{ID: "edge-1", FromNode: "a", FromSide: "right", ToNode: "c", ToSide: "left", Color: "4"},
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Edges(tc.rel, ids, tc.namer)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Edges() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKeyRelations(t *testing.T) {
	rel := config.Relations{
		Inheritance:    map[string]string{"B": "A"},
		Composition:    map[string][]string{"A": {"C", "D"}},
		KeyComposition: map[string][]string{"A": {"C"}},
	}

	got := KeyRelations(rel)

	want := config.Relations{
		Inheritance: map[string]string{"B": "A"},
		Composition: map[string][]string{"A": {"C"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("KeyRelations() mismatch (-want +got):\n%s", diff)
	}
}
