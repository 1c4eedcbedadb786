package model

import "github.com/armon/go-radix"

// NameIndex resolves entity names (tag names, place names) to one or more
// ids. Place names are not guaranteed unique in the source data, so lookup
// returns a slice. Backed by a radix tree rather than a map so that
// diagnostic prefix search (`graphcore places --like=`) comes for free via
// WalkPrefix.
type NameIndex struct {
	tree *radix.Tree
}

func NewNameIndex() *NameIndex {
	return &NameIndex{tree: radix.New()}
}

// Insert records that name resolves to id, appending to any existing
// entries for that exact name.
func (n *NameIndex) Insert(name string, id uint32) {
	if v, ok := n.tree.Get(name); ok {
		ids := v.([]uint32)
		n.tree.Insert(name, append(ids, id))
		return
	}
	n.tree.Insert(name, []uint32{id})
}

// Lookup returns every id registered under the exact name.
func (n *NameIndex) Lookup(name string) ([]uint32, bool) {
	v, ok := n.tree.Get(name)
	if !ok {
		return nil, false
	}
	return v.([]uint32), true
}

// WalkPrefix yields every (name, ids) pair whose name starts with prefix,
// for the CLI's typo-diagnostic path.
func (n *NameIndex) WalkPrefix(prefix string, fn func(name string, ids []uint32) bool) {
	n.tree.WalkPrefix(prefix, func(s string, v interface{}) bool {
		return fn(s, v.([]uint32))
	})
}

func (n *NameIndex) Len() int { return n.tree.Len() }
