// Package tree builds a hierarchical, expandable tree out of a flat
// namespace of delimited keys, and flattens it back into rows a list
// widget can render.
package tree

import (
	"sort"
	"strings"

	"github.com/studiowebux/redis-nav/internal/redisstore"
)

// Kind tags whether a Node is a virtual grouping node or corresponds to a
// real stored key.
type Kind int

const (
	KindFolder Kind = iota
	KindLeaf
)

// Node is one element of the key tree. Children are owned exclusively by
// their parent; there are no back-references.
type Node struct {
	Name     string
	FullKey  string // set iff Kind == KindLeaf
	Kind     Kind
	DataType redisstore.DataType
	Children []*Node
	Expanded bool
	Loaded   bool
}

// IsFolder reports whether the node groups children without itself being a
// stored key. A leaf with children still returns false here.
func (n *Node) IsFolder() bool {
	return n.Kind == KindFolder
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.Children)
}

// Builder turns (key, type) pairs into a sorted forest of Nodes, splitting
// keys on any of a configured set of single-character delimiters.
type Builder struct {
	Delimiters []rune
}

// NewBuilder constructs a Builder for the given delimiter set.
func NewBuilder(delimiters []rune) *Builder {
	return &Builder{Delimiters: delimiters}
}

// Entry pairs a full key with its datastore type, the Builder's input unit.
type Entry struct {
	Key  string
	Type redisstore.DataType
}

// Build constructs the root-level forest from entries. Input order does not
// affect the result: the final sort is total.
func (b *Builder) Build(entries []Entry) []*Node {
	var roots []*Node
	for _, e := range entries {
		b.insert(&roots, b.split(e.Key), e.Key, e.Type)
	}
	sortTree(roots)
	return roots
}

func (b *Builder) split(key string) []string {
	isDelim := func(r rune) bool {
		for _, d := range b.Delimiters {
			if r == d {
				return true
			}
		}
		return false
	}
	parts := strings.FieldsFunc(key, isDelim)
	return parts
}

func (b *Builder) insert(nodes *[]*Node, parts []string, fullKey string, dt redisstore.DataType) {
	if len(parts) == 0 {
		return
	}

	name := parts[0]
	rest := parts[1:]

	var node *Node
	for _, n := range *nodes {
		if n.Name == name {
			node = n
			break
		}
	}

	if len(rest) == 0 {
		if node == nil {
			*nodes = append(*nodes, &Node{
				Name:     name,
				FullKey:  fullKey,
				Kind:     KindLeaf,
				DataType: dt,
				Loaded:   true,
			})
			return
		}
		// Promote folder to leaf, or overwrite an existing leaf's type
		// (later key wins).
		node.FullKey = fullKey
		node.Kind = KindLeaf
		node.DataType = dt
		return
	}

	if node == nil {
		node = &Node{Name: name, Kind: KindFolder, Loaded: true}
		*nodes = append(*nodes, node)
	}
	b.insert(&node.Children, rest, fullKey, dt)
}

func sortTree(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool {
		a, bNode := nodes[i], nodes[j]
		if a.IsFolder() != bNode.IsFolder() {
			return a.IsFolder() // folders before leaves
		}
		return a.Name < bNode.Name
	})
	for _, n := range nodes {
		sortTree(n.Children)
	}
}

// Row is a linearized projection of one visible node, suitable for a list
// widget. Path is the index path from the root, used to resolve back to the
// originating Node.
type Row struct {
	Depth      int
	Path       []int
	Name       string
	IsFolder   bool
	Expanded   bool
	ChildCount int
	FullKey    string
	DataType   redisstore.DataType
}

// Flatten performs a depth-first walk of nodes, descending into a node's
// children only if it is expanded.
func Flatten(nodes []*Node) []Row {
	var rows []Row
	var walk func(ns []*Node, depth int, path []int)
	walk = func(ns []*Node, depth int, path []int) {
		for i, n := range ns {
			p := append(append([]int{}, path...), i)
			rows = append(rows, Row{
				Depth:      depth,
				Path:       p,
				Name:       n.Name,
				IsFolder:   n.IsFolder(),
				Expanded:   n.Expanded,
				ChildCount: n.ChildCount(),
				FullKey:    n.FullKey,
				DataType:   n.DataType,
			})
			if n.Expanded {
				walk(n.Children, depth+1, p)
			}
		}
	}
	walk(nodes, 0, nil)
	return rows
}

// NodeAt resolves a path (as produced by Flatten) back to its Node.
func NodeAt(roots []*Node, path []int) *Node {
	nodes := roots
	var cur *Node
	for _, idx := range path {
		if idx < 0 || idx >= len(nodes) {
			return nil
		}
		cur = nodes[idx]
		nodes = cur.Children
	}
	return cur
}

// Toggle flips a folder's (or leaf-with-children's) expanded state.
// Toggling a childless leaf is a no-op.
func Toggle(n *Node) {
	if n == nil || len(n.Children) == 0 {
		return
	}
	n.Expanded = !n.Expanded
}
