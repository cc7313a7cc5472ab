package index

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeFlattening(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
	}{
		{"empty", nil},
		{"single", []string{"mail"}},
		{"flat", []string{"a", "b", "c"}},
		{"nested", []string{"web/mail", "web/bank", "web/shop/amazon", "web/shop/ebay", "phone"}},
		{"prefix path", []string{"a", "a/b", "a/b/c"}},
		{"similar names", []string{"a/b", "a/b.c", "a/b/d", "a-c/d", "a.x"}},
		{"duplicates", []string{"x/y", "x/y"}},
		{"deep", []string{"1/2/3/4/5", "1/2/3/x", "1/y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := slices.Clone(tt.paths)
			SortForTree(input)
			tree := BuildTree(input)

			got := tree.Paths()
			want := slices.Compact(slices.Sorted(slices.Values(tt.paths)))
			slices.Sort(got)
			assert.Equal(t, want, got)
		})
	}
}

func TestTreeSharesPrefixNodes(t *testing.T) {
	paths := []string{"web/mail", "web/bank", "phone"}
	SortForTree(paths)
	tree := BuildTree(paths)

	// root, web, mail, bank, phone
	require.Len(t, tree.Nodes, 5)
	assert.Equal(t, -1, tree.Nodes[Root].Parent)
	assert.Len(t, tree.Nodes[Root].Children, 2)

	for handle, node := range tree.Nodes[1:] {
		if node.Name == "web" {
			assert.Len(t, node.Children, 2)
			for _, child := range node.Children {
				assert.Equal(t, handle+1, tree.Nodes[child].Parent)
			}
		}
	}
}

func TestTreeOfPairs(t *testing.T) {
	list := []Pair{{Path: "b/x"}, {Path: "a"}, {Path: "b/y"}}

	got := TreeOf(list).Paths()
	assert.Equal(t, []string{"a", "b/x", "b/y"}, got)
}

func TestTreeRender(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tree := TreeOf([]Pair{{Path: "web/mail"}, {Path: "web/bank"}, {Path: "phone"}, {Path: "web/shop/ebay"}})

	var buf bytes.Buffer
	require.NoError(t, tree.Render(&buf))

	want := "" +
		"├── phone\n" +
		"└── web/\n" +
		"    ├── bank\n" +
		"    ├── mail\n" +
		"    └── shop/\n" +
		"        └── ebay\n"
	assert.Equal(t, want, buf.String())
}
