// Copyright 2022 Sogang University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package btree

import (
	"fmt"
	"io"
)

// ascend visits the keys of the subtree in order, returning false as soon as
// iter does.
func (n *node[K]) ascend(iter KeyIterator[K]) bool {
	for i, key := range n.keys {
		if !n.leaf() && !n.children[i].ascend(iter) {
			return false
		}
		if !iter(key) {
			return false
		}
	}
	if !n.leaf() {
		return n.children[len(n.children)-1].ascend(iter)
	}
	return true
}

// Ascend calls the iterator for every key in the tree in ascending order,
// until iterator returns false.
func (t *BTree[K]) Ascend(iterator KeyIterator[K]) {
	t.root.ascend(iterator)
}

// Traverse returns all keys in the tree in ascending order.
func (t *BTree[K]) Traverse() []K {
	out := make([]K, 0, t.length)
	t.Ascend(func(key K) bool {
		out = append(out, key)
		return true
	})
	return out
}

// walk visits the subtree depth-first, parents before children.
func (n *node[K]) walk(depth int, fn func(depth int, keys []K) bool) bool {
	if !fn(depth, n.keys) {
		return false
	}
	for _, child := range n.children {
		if !child.walk(depth+1, fn) {
			return false
		}
	}
	return true
}

// Walk calls fn with the keys of every node, visiting a node before its
// children and children from left to right, until fn returns false.  The root
// is at depth 0.  fn must not retain or modify keys.
func (t *BTree[K]) Walk(fn func(depth int, keys []K) bool) {
	t.root.walk(0, fn)
}

// Levels returns the keys of every node in level order: Levels()[d][j] holds
// the keys of the j-th node from the left at depth d.
func (t *BTree[K]) Levels() (levels [][][]K) {
	for level := []*node[K]{t.root}; 0 < len(level); {
		var (
			next []*node[K]
			row  = make([][]K, 0, len(level))
		)
		for _, n := range level {
			row = append(row, append([]K(nil), n.keys...))
			next = append(next, n.children...)
		}
		levels = append(levels, row)
		level = next
	}
	return
}

// Fprint writes the structure of the tree to w, one node per line in the
// order of Walk.
func (t *BTree[K]) Fprint(w io.Writer) (err error) {
	t.Walk(func(depth int, keys []K) bool {
		_, err = fmt.Fprintf(w, "Level %d Keys: %v\n", depth, keys)
		return err == nil
	})
	return
}
