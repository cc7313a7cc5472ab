package index

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/PolarWolf314/rpass/internal/ui"
)

// Root is the handle of the synthetic root node.
const Root = 0

// Node is one path segment.
type Node struct {
	Name     string
	Parent   int
	Children []int

	// Terminal marks the last segment of an input path.
	Terminal bool
}

// Tree is an arena of path segments addressed by integer handles.
type Tree struct {
	Nodes []Node
}

// BuildTree builds the segment tree of paths. paths must be sorted so that
// paths sharing leading segments are adjacent, as SortForTree does; the
// builder only compares each path with its predecessor.
func BuildTree(paths []string) *Tree {
	t := &Tree{Nodes: []Node{{Parent: -1}}}

	var stack []int
	var prev []string

	for _, p := range paths {
		if p == "" {
			continue
		}
		segments := strings.Split(p, "/")

		shared := 0
		for shared < len(segments) && shared < len(prev) && segments[shared] == prev[shared] {
			shared++
		}
		stack = stack[:shared]

		for _, segment := range segments[shared:] {
			parent := Root
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			stack = append(stack, t.add(segment, parent))
		}

		t.Nodes[stack[len(stack)-1]].Terminal = true
		prev = segments
	}

	return t
}

// TreeOf sorts a copy of list for the builder and returns its tree.
func TreeOf(list []Pair) *Tree {
	paths := make([]string, 0, len(list))
	for _, p := range list {
		paths = append(paths, p.Path)
	}
	SortForTree(paths)
	return BuildTree(paths)
}

// SortForTree sorts paths descending, segment by segment.
func SortForTree(paths []string) {
	slices.SortFunc(paths, func(a, b string) int {
		return slices.Compare(strings.Split(b, "/"), strings.Split(a, "/"))
	})
}

func (t *Tree) add(name string, parent int) int {
	handle := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{Name: name, Parent: parent})
	t.Nodes[parent].Children = append(t.Nodes[parent].Children, handle)
	return handle
}

// Path joins the segments from the root to node.
func (t *Tree) Path(node int) string {
	var segments []string
	for n := node; n != Root && n >= 0; n = t.Nodes[n].Parent {
		segments = append(segments, t.Nodes[n].Name)
	}
	slices.Reverse(segments)
	return strings.Join(segments, "/")
}

// Paths returns the path of every terminal node in depth-first order.
func (t *Tree) Paths() []string {
	var paths []string
	t.Walk(func(node, _ int) {
		if t.Nodes[node].Terminal {
			paths = append(paths, t.Path(node))
		}
	})
	return paths
}

// Walk visits every node below the root depth first, children in
// ascending order.
func (t *Tree) Walk(fn func(node, depth int)) {
	var visit func(node, depth int)
	visit = func(node, depth int) {
		children := t.Nodes[node].Children
		for i := len(children) - 1; i >= 0; i-- {
			fn(children[i], depth)
			visit(children[i], depth+1)
		}
	}
	visit(Root, 0)
}

// Render prints the tree with box drawing guides. Segments with children
// are styled as directories.
func (t *Tree) Render(w io.Writer) error {
	var render func(node int, prefix string) error
	render = func(node int, prefix string) error {
		children := t.Nodes[node].Children
		for i := len(children) - 1; i >= 0; i-- {
			child := t.Nodes[children[i]]
			last := i == 0

			branch, indent := ui.TreeBranch, ui.TreeIndent
			if last {
				branch, indent = ui.TreeLast, ui.TreeSpace
			}

			name := child.Name
			if len(child.Children) > 0 {
				name = ui.Directory.Sprint(name)
			}
			if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, name); err != nil {
				return err
			}
			if err := render(children[i], prefix+indent); err != nil {
				return err
			}
		}
		return nil
	}
	return render(Root, "")
}
