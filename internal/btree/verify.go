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
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// ErrCorrupt is the cause of every error returned by Verify.
var ErrCorrupt = errors.New("btree: corrupt tree")

// bound is an optional limit on the keys of a subtree.
type bound[K constraints.Ordered] struct {
	key   K
	valid bool
}

// Verify checks the structural invariants of the tree: node occupancy, the
// number of children of internal nodes, key order within and across nodes,
// equal depth of all leaves and the entry count.  It returns nil if all of
// them hold, or an error describing the first violation found.
func (t *BTree[K]) Verify() error {
	v := verifier[K]{tree: t, leafDepth: -1}
	if err := v.verify(t.root, 0, bound[K]{}, bound[K]{}); err != nil {
		return err
	}
	if v.count != t.length {
		return errors.Wrapf(ErrCorrupt, "holds %d keys, but length is %d", v.count, t.length)
	}
	return nil
}

type verifier[K constraints.Ordered] struct {
	tree      *BTree[K]
	leafDepth int
	count     int
}

// verify checks the subtree rooted at n, whose keys must lie within
// [lo, hi].  Bounds are inclusive since equal keys may be held more than once.
func (v *verifier[K]) verify(n *node[K], depth int, lo, hi bound[K]) error {
	if len(n.keys) > v.tree.maxKeys() {
		return errors.Wrapf(ErrCorrupt, "node %v at depth %d holds more than %d keys", n.keys, depth, v.tree.maxKeys())
	}
	if 0 < depth && len(n.keys) < v.tree.minKeys() {
		return errors.Wrapf(ErrCorrupt, "node %v at depth %d holds fewer than %d keys", n.keys, depth, v.tree.minKeys())
	}
	for i, key := range n.keys {
		if 0 < i && key < n.keys[i-1] {
			return errors.Wrapf(ErrCorrupt, "node %v at depth %d is out of order", n.keys, depth)
		}
		if (lo.valid && key < lo.key) || (hi.valid && hi.key < key) {
			return errors.Wrapf(ErrCorrupt, "node %v at depth %d is not separated by its parent keys", n.keys, depth)
		}
	}
	v.count += len(n.keys)

	if n.leaf() {
		if v.leafDepth < 0 {
			v.leafDepth = depth
		} else if v.leafDepth != depth {
			return errors.Wrapf(ErrCorrupt, "leaf %v at depth %d, want depth %d", n.keys, depth, v.leafDepth)
		}
		return nil
	}
	if len(n.children) != len(n.keys)+1 {
		return errors.Wrapf(ErrCorrupt, "node %v at depth %d has %d children", n.keys, depth, len(n.children))
	}
	if len(n.keys) == 0 {
		return errors.Wrapf(ErrCorrupt, "internal node at depth %d holds no keys", depth)
	}
	for i, child := range n.children {
		clo, chi := lo, hi
		if 0 < i {
			clo = bound[K]{key: n.keys[i-1], valid: true}
		}
		if i < len(n.keys) {
			chi = bound[K]{key: n.keys[i], valid: true}
		}
		if err := v.verify(child, depth+1, clo, chi); err != nil {
			return err
		}
	}
	return nil
}
