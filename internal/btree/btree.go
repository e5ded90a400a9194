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

// Package btree implements in-memory B-trees of a fixed minimum degree.
//
// A tree of minimum degree t keeps between t-1 and 2t-1 keys in every node
// other than the root, which may hold anywhere from 0 to 2t-1 keys.  Internal
// nodes with k keys have exactly k+1 children and all leaves are at the same
// depth.  Insertion splits full nodes on the way down so that a key is never
// pushed into a full node; deletion grows minimal children on the way down by
// borrowing a key from a sibling or merging with one.
//
// Equal keys may be inserted more than once; the tree then holds one entry
// per insertion and Search finds any of them, while Delete removes exactly
// one.
//
// A BTree has no internal locking.  Concurrent readers are safe, but a writer
// must exclude all other readers and writers of the same tree.
package btree

import (
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

const DefaultFreeListSize = 32

// ErrBadDegree is returned for a minimum degree below 2, for which no node
// can satisfy the occupancy bounds.
var ErrBadDegree = errors.New("btree: bad degree")

// ValidateDegree checks that degree can be used as a minimum degree.
func ValidateDegree(degree int) error {
	if degree < 2 {
		return errors.Wrapf(ErrBadDegree, "got %d, want at least 2", degree)
	}
	return nil
}

// FreeList represents a free list of BTree nodes.  By default each
// BTree has its own FreeList, but multiple BTrees can share the same
// FreeList.
type FreeList[K constraints.Ordered] struct {
	mu       sync.Mutex
	freelist children[K]
}

// NewFreeList creates a new free list.
// size is the maximum size of the returned free list.
func NewFreeList[K constraints.Ordered](size int) *FreeList[K] {
	return &FreeList[K]{freelist: make(children[K], 0, size)}
}

func (f *FreeList[K]) newNode() (n *node[K]) {
	f.mu.Lock()
	index := len(f.freelist) - 1
	if index < 0 {
		f.mu.Unlock()
		return new(node[K])
	}
	n = f.freelist[index]
	f.freelist[index] = nil
	f.freelist = f.freelist[:index]
	f.mu.Unlock()
	return
}

// freeNode clears the given node and adds it to the list, returning true if
// it was added and false if it was discarded.
func (f *FreeList[K]) freeNode(n *node[K]) (out bool) {
	n.keys.truncate(0)
	n.children.truncate(0)
	f.mu.Lock()
	if len(f.freelist) < cap(f.freelist) {
		f.freelist = append(f.freelist, n)
		out = true
	}
	f.mu.Unlock()
	return
}

// KeyIterator allows callers of Ascend to iterate in-order over the tree.
// When this function returns false, iteration will stop and Ascend will
// immediately return.
type KeyIterator[K constraints.Ordered] func(K) bool

// Stats counts the structural changes a tree has gone through.
type Stats struct {
	Splits       int // node splits, including splits of the root
	Grows        int // root replacements by a new root on insertion
	Shrinks      int // root replacements by its only child on deletion
	BorrowsLeft  int
	BorrowsRight int
	Merges       int // all merges, including those on deletion from an internal node
	LeftMerges   int // merges of a last child into its left sibling
}

// BTree is a generic implementation of a B-tree.
//
// BTree stores keys in an ordered structure, allowing easy insertion,
// removal, and iteration.
type BTree[K constraints.Ordered] struct {
	degree   int
	length   int
	root     *node[K]
	freelist *FreeList[K]
	stats    Stats
}

// New creates a new B-tree with the given minimum degree.
//
// New(2), for example, will create a 2-3-4 tree (each node contains 1-3 keys
// and 2-4 children).  New panics if the degree is less than 2.
func New[K constraints.Ordered](degree int) *BTree[K] {
	return NewWithFreeList(degree, NewFreeList[K](DefaultFreeListSize))
}

// NewWithFreeList creates a new B-tree that uses the given node free list.
func NewWithFreeList[K constraints.Ordered](degree int, f *FreeList[K]) *BTree[K] {
	if err := ValidateDegree(degree); err != nil {
		panic(err)
	}
	return &BTree[K]{
		degree:   degree,
		root:     f.newNode(),
		freelist: f,
	}
}

// maxKeys returns the max number of keys to allow per node.
func (t *BTree[K]) maxKeys() int {
	return t.degree*2 - 1
}

// minKeys returns the min number of keys to allow per node
// (ignored for the root node).
func (t *BTree[K]) minKeys() int {
	return t.degree - 1
}

// Search reports whether the key is in the tree.
func (t *BTree[K]) Search(key K) bool {
	return t.root.search(key)
}

// Insert adds the given key to the tree.  A key equal to one already in the
// tree is added as a separate entry.
func (t *BTree[K]) Insert(key K) {
	if len(t.root.keys) == t.maxKeys() {
		oldroot := t.root
		t.root = t.freelist.newNode()
		t.root.children = append(t.root.children, oldroot)
		t.splitChild(t.root, 0)
		t.stats.Grows++
		glog.V(2).Infof("btree: root grew to height %d with median %v", t.Height(), t.root.keys[0])
	}
	t.insertNonFull(t.root, key)
	t.length++
}

// splitChild splits the full child at index i of parent.  The median key moves
// up into parent at index i and the upper half of the child becomes a new
// sibling at index i+1.
func (t *BTree[K]) splitChild(parent *node[K], i int) {
	next := t.freelist.newNode()
	median := parent.children[i].split(t.degree-1, next)
	parent.keys.insertAt(i, median)
	parent.children.insertAt(i+1, next)
	t.stats.Splits++
}

// insertNonFull inserts a key into the subtree rooted at n, which must not be
// full, splitting any full node before descending into it.
func (t *BTree[K]) insertNonFull(n *node[K], key K) {
	i := n.keys.upper(key)
	if n.leaf() {
		n.keys.insertAt(i, key)
		return
	}
	if len(n.children[i].keys) == t.maxKeys() {
		t.splitChild(n, i)
		if n.keys[i] < key {
			i++ // we want second split node
		}
	}
	t.insertNonFull(n.children[i], key)
}

// Delete removes one entry equal to the given key from the tree, reporting
// whether such an entry existed.
func (t *BTree[K]) Delete(key K) bool {
	ok := t.remove(t.root, key)
	if len(t.root.keys) == 0 && !t.root.leaf() {
		oldroot := t.root
		t.root = t.root.children[0]
		t.freelist.freeNode(oldroot)
		t.stats.Shrinks++
		glog.V(2).Infof("btree: root shrank to height %d", t.Height())
	}
	if ok {
		t.length--
	}
	return ok
}

// Min returns the smallest key in the tree, or (zeroValue, false) if the tree is empty.
func (t *BTree[K]) Min() (K, bool) {
	return first(t.root)
}

// Max returns the largest key in the tree, or (zeroValue, false) if the tree is empty.
func (t *BTree[K]) Max() (K, bool) {
	return last(t.root)
}

// Len returns the number of entries currently in the tree.
func (t *BTree[K]) Len() int {
	return t.length
}

// Degree returns the minimum degree of the tree.
func (t *BTree[K]) Degree() int {
	return t.degree
}

// Height returns the number of levels in the tree.  An empty tree has a
// single, empty leaf and therefore height 1.
func (t *BTree[K]) Height() (height int) {
	for n := t.root; ; n = n.children[0] {
		height++
		if n.leaf() {
			return
		}
	}
}

// Stats returns the structural changes counted since the tree was created.
func (t *BTree[K]) Stats() Stats {
	return t.stats
}

// Clear removes all keys from the tree.  If addNodesToFreelist is true,
// t's nodes are added to its freelist as part of this call, until the freelist
// is full.  Otherwise, the root node is simply dereferenced and the subtree
// left to Go's normal GC processes.
func (t *BTree[K]) Clear(addNodesToFreelist bool) {
	if addNodesToFreelist {
		t.root.reset(t.freelist)
	}
	t.root, t.length = t.freelist.newNode(), 0
}

// reset returns a subtree to the freelist.  It breaks out immediately if the
// freelist is full, since the only benefit of iterating is to fill that
// freelist up.  Returns true if parent reset call should continue.
func (n *node[K]) reset(f *FreeList[K]) bool {
	for _, child := range n.children {
		if !child.reset(f) {
			return false
		}
	}
	return f.freeNode(n)
}
