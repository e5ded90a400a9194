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

// remove removes one entry equal to key from the subtree rooted at n.  Every
// node it descends into, other than the root, holds at least t keys, so that a
// key can be taken out of it without breaking the occupancy bound.
func (t *BTree[K]) remove(n *node[K], key K) bool {
	i, found := n.keys.find(key)
	if found {
		if n.leaf() {
			n.keys.removeAt(i)
			return true
		}
		return t.removeInternal(n, i, key)
	}
	if n.leaf() {
		return false
	}
	if len(n.children[i].keys) <= t.minKeys() {
		t.fill(n, i)
		// A borrow moves a separator but keeps key within child i, while a merge
		// drops a separator and may shift the child to its left.  Neither brings
		// key into n, so the first key not less than key selects the child again.
		i, _ = n.keys.find(key)
	}
	return t.remove(n.children[i], key)
}

// removeInternal removes the key at index i of the internal node n.
func (t *BTree[K]) removeInternal(n *node[K], i int, key K) bool {
	switch left, right := n.children[i], n.children[i+1]; {
	case t.minKeys() < len(left.keys):
		pred, _ := last(left)
		n.keys[i] = pred
		return t.remove(left, pred)
	case t.minKeys() < len(right.keys):
		succ, _ := first(right)
		n.keys[i] = succ
		return t.remove(right, succ)
	default:
		t.merge(n, i)
		return t.remove(left, key)
	}
}

// fill grows child i of n to at least t keys, so that a deletion may descend
// through it.
//
// Sibling keys are preferred over merging:
//
//	a) the left sibling has a key to spare
//	b) the right sibling has a key to spare
//	c) we must merge with the right sibling, or with the left one when
//	   child i is the last child
func (t *BTree[K]) fill(n *node[K], i int) {
	switch {
	case 0 < i && t.minKeys() < len(n.children[i-1].keys):
		t.borrowLeft(n, i)
	case i < len(n.keys) && t.minKeys() < len(n.children[i+1].keys):
		t.borrowRight(n, i)
	case i < len(n.keys):
		t.merge(n, i)
	default:
		t.merge(n, i-1)
		t.stats.LeftMerges++
	}
}

// borrowLeft rotates the last key of child i-1 up into n and the separator
// down to the front of child i.
func (t *BTree[K]) borrowLeft(n *node[K], i int) {
	child, stealFrom := n.children[i], n.children[i-1]
	child.keys.insertAt(0, n.keys[i-1])
	n.keys[i-1] = stealFrom.keys.pop()
	if !stealFrom.leaf() {
		child.children.insertAt(0, stealFrom.children.pop())
	}
	t.stats.BorrowsLeft++
}

// borrowRight rotates the first key of child i+1 up into n and the separator
// down to the end of child i.
func (t *BTree[K]) borrowRight(n *node[K], i int) {
	child, stealFrom := n.children[i], n.children[i+1]
	child.keys = append(child.keys, n.keys[i])
	n.keys[i] = stealFrom.keys.removeAt(0)
	if !stealFrom.leaf() {
		child.children = append(child.children, stealFrom.children.removeAt(0))
	}
	t.stats.BorrowsRight++
}

// merge absorbs the separator at index i and child i+1 of n into child i.
// The emptied sibling is returned to the free list.
func (t *BTree[K]) merge(n *node[K], i int) {
	child := n.children[i]
	mergeKey := n.keys.removeAt(i)
	mergeChild := n.children.removeAt(i + 1)
	child.keys = append(child.keys, mergeKey)
	child.keys = append(child.keys, mergeChild.keys...)
	child.children = append(child.children, mergeChild.children...)
	t.freelist.freeNode(mergeChild)
	t.stats.Merges++
}
