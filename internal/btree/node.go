// Copyright 2014 Google Inc.
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
	"sort"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// cut removes s[i:j] and clears the vacated tail, so that a node dropped from
// a children list is not kept alive by the backing array.
func cut[S ~[]E, E any](s S, i, j int) S {
	n := len(s)
	s = slices.Delete(s, i, j)
	var zero E
	for k, tail := len(s), s[:n]; k < n; k++ {
		tail[k] = zero
	}
	return s
}

// keys stores keys in a node.
type keys[K constraints.Ordered] []K

func (s *keys[K]) insertAt(i int, key K) {
	*s = slices.Insert(*s, i, key)
}

func (s *keys[K]) removeAt(i int) K {
	key := (*s)[i]
	*s = cut(*s, i, i+1)
	return key
}

func (s *keys[K]) pop() K {
	return s.removeAt(len(*s) - 1)
}

// truncate keeps the first i keys.
func (s *keys[K]) truncate(i int) {
	*s = cut(*s, i, len(*s))
}

// find returns the index of the first key not less than the given key.
// 'found' is true if the key at that index equals the given key.
func (s keys[K]) find(key K) (index int, found bool) {
	i := sort.Search(len(s), func(i int) bool {
		return key <= s[i]
	})
	return i, i < len(s) && s[i] == key
}

// upper returns the index of the first key greater than the given key, that
// is, the position after any keys equal to it.
func (s keys[K]) upper(key K) int {
	return sort.Search(len(s), func(i int) bool {
		return key < s[i]
	})
}

// children stores child nodes in a node.
type children[K constraints.Ordered] []*node[K]

func (c *children[K]) insertAt(i int, n *node[K]) {
	*c = slices.Insert(*c, i, n)
}

func (c *children[K]) removeAt(i int) *node[K] {
	n := (*c)[i]
	*c = cut(*c, i, i+1)
	return n
}

func (c *children[K]) pop() *node[K] {
	return c.removeAt(len(*c) - 1)
}

// truncate keeps the first i children.
func (c *children[K]) truncate(i int) {
	*c = cut(*c, i, len(*c))
}

// node is a single node in a tree.
//
// It must at all times maintain the invariant that either
//   - len(children) == 0 (the node is a leaf), or
//   - len(children) == len(keys) + 1
type node[K constraints.Ordered] struct {
	keys     keys[K]
	children children[K]
}

// leaf reports whether the node has no children.
func (n *node[K]) leaf() bool {
	return len(n.children) == 0
}

// split moves all keys and children after index i into next, which must be
// empty, and returns the key that existed at i.  The current node keeps the
// keys before i and the children up to and including i.
func (n *node[K]) split(i int, next *node[K]) K {
	key := n.keys[i]
	next.keys = append(next.keys, n.keys[i+1:]...)
	n.keys.truncate(i)
	if !n.leaf() {
		next.children = append(next.children, n.children[i+1:]...)
		n.children.truncate(i + 1)
	}
	return key
}

// search reports whether the subtree rooted at this node holds the given key.
func (n *node[K]) search(key K) bool {
	i, found := n.keys.find(key)
	if found {
		return true
	} else if n.leaf() {
		return false
	}
	return n.children[i].search(key)
}

// first returns the smallest key in the subtree.
func first[K constraints.Ordered](n *node[K]) (_ K, found bool) {
	if n == nil {
		return
	}
	for !n.leaf() {
		n = n.children[0]
	}
	if len(n.keys) == 0 {
		return
	}
	return n.keys[0], true
}

// last returns the largest key in the subtree.
func last[K constraints.Ordered](n *node[K]) (_ K, found bool) {
	if n == nil {
		return
	}
	for !n.leaf() {
		n = n.children[len(n.children)-1]
	}
	if len(n.keys) == 0 {
		return
	}
	return n.keys[len(n.keys)-1], true
}
