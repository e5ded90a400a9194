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

// Package index provides an integer key index backed by a B-tree and a gRPC
// service exposing it.  The index serializes access to the underlying tree:
// searches and traversals may run concurrently with each other, while
// insertions and deletions run alone.
package index

import (
	"io"
	"strings"
	"sync"

	"github.com/9rum/keytree/internal/btree"
	"github.com/pkg/errors"
)

// Index represents a set of int64 keys, which may hold equal keys more than
// once.
type Index struct {
	mu   sync.RWMutex
	tree *btree.BTree[int64]
}

// New creates a new index backed by a B-tree with the given minimum degree.
func New(degree int) (*Index, error) {
	if err := btree.ValidateDegree(degree); err != nil {
		return nil, errors.Wrap(err, "index")
	}
	return &Index{tree: btree.New[int64](degree)}, nil
}

// Search reports whether the key is in the index.
func (x *Index) Search(key int64) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.tree.Search(key)
}

// Insert adds the key to the index.
func (x *Index) Insert(keys ...int64) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, key := range keys {
		x.tree.Insert(key)
	}
}

// Delete removes one entry equal to the key, reporting whether it existed.
func (x *Index) Delete(key int64) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.tree.Delete(key)
}

// Traverse returns all keys in ascending order.
func (x *Index) Traverse() []int64 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.tree.Traverse()
}

// Dump writes the node structure of the underlying tree to w.
func (x *Index) Dump(w io.Writer) error {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.tree.Fprint(w)
}

// String returns the node structure of the underlying tree.
func (x *Index) String() string {
	var b strings.Builder
	// writes to a strings.Builder never fail
	_ = x.Dump(&b)
	return b.String()
}

// Len returns the number of entries in the index.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.tree.Len()
}

// Stats returns the structural statistics and the height of the underlying
// tree.
func (x *Index) Stats() (btree.Stats, int) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.tree.Stats(), x.tree.Height()
}

// Summary returns the length, degree, height and structural statistics of
// the underlying tree by name.
func (x *Index) Summary() map[string]interface{} {
	x.mu.RLock()
	defer x.mu.RUnlock()
	stats := x.tree.Stats()
	return map[string]interface{}{
		"len":          x.tree.Len(),
		"degree":       x.Degree(),
		"height":       x.tree.Height(),
		"splits":       stats.Splits,
		"grows":        stats.Grows,
		"shrinks":      stats.Shrinks,
		"borrowsLeft":  stats.BorrowsLeft,
		"borrowsRight": stats.BorrowsRight,
		"merges":       stats.Merges,
		"leftMerges":   stats.LeftMerges,
	}
}

// Degree returns the minimum degree of the underlying tree.  The degree is
// fixed at construction, so no lock is taken.
func (x *Index) Degree() int {
	return x.tree.Degree()
}

// Reset removes all keys from the index.
func (x *Index) Reset() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.tree.Clear(true)
}

// Verify checks the invariants of the underlying tree.
func (x *Index) Verify() error {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.tree.Verify()
}
