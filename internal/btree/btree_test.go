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
	"flag"
	"fmt"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

func init() {
	seed := time.Now().Unix()
	fmt.Println(seed)
	rand.Seed(seed)
}

// perm returns a random permutation of n keys in the range [0, n).
func perm(n int) []int {
	return rand.Perm(n)
}

// rang returns an ordered list of keys in the range [0, n).
func rang(n int) (out []int) {
	for i := 0; i < n; i++ {
		out = append(out, i)
	}
	return
}

// rangrev returns a reversed ordered list of keys in the range [0, n).
func rangrev(n int) (out []int) {
	for i := n - 1; 0 <= i; i-- {
		out = append(out, i)
	}
	return
}

// all extracts all keys from a tree in order as a slice.
func all[K constraints.Ordered](t *BTree[K]) (out []K) {
	t.Ascend(func(k K) bool {
		out = append(out, k)
		return true
	})
	return
}

var btreeDegree = flag.Int("degree", 32, "B-tree degree")

func TestBTree(t *testing.T) {
	tr := New[int](*btreeDegree)
	const treeSize = 10000
	for i := 0; i < 10; i++ {
		if min, ok := tr.Min(); ok || min != 0 {
			t.Fatalf("empty min, got %+v", min)
		}
		if max, ok := tr.Max(); ok || max != 0 {
			t.Fatalf("empty max, got %+v", max)
		}
		for _, key := range perm(treeSize) {
			tr.Insert(key)
		}
		if err := tr.Verify(); err != nil {
			t.Fatal(err)
		}
		for _, key := range perm(treeSize) {
			if !tr.Search(key) {
				t.Fatal("search did not find key", key)
			}
		}
		if tr.Search(treeSize) {
			t.Fatal("search found key", treeSize)
		}
		if min, ok := tr.Min(); !ok || min != 0 {
			t.Fatalf("min: ok %v want 0, got %+v", ok, min)
		}
		if max, ok := tr.Max(); !ok || max != treeSize-1 {
			t.Fatalf("max: ok %v want %d, got %+v", ok, treeSize-1, max)
		}
		got := all(tr)
		want := rang(treeSize)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("mismatch:\n got: %v\nwant: %v", got, want)
		}
		if got = tr.Traverse(); !reflect.DeepEqual(got, want) {
			t.Fatalf("traverse mismatch:\n got: %v\nwant: %v", got, want)
		}

		for _, key := range perm(treeSize) {
			if !tr.Delete(key) {
				t.Fatalf("didn't find %v", key)
			}
		}
		if got = all(tr); 0 < len(got) {
			t.Fatalf("some left!: %v", got)
		}
		if err := tr.Verify(); err != nil {
			t.Fatal(err)
		}
		if height := tr.Height(); height != 1 {
			t.Fatalf("empty tree has height %d", height)
		}
	}
}

func ExampleBTree() {
	tr := New[int](*btreeDegree)
	for i := 0; i < 10; i++ {
		tr.Insert(i)
	}
	fmt.Println("len:      ", tr.Len())
	fmt.Println("search3:  ", tr.Search(3))
	fmt.Println("search100:", tr.Search(100))
	fmt.Println("del4:     ", tr.Delete(4))
	fmt.Println("del100:   ", tr.Delete(100))
	tr.Insert(100)
	v, ok := tr.Min()
	fmt.Println("min:      ", v, ok)
	v, ok = tr.Max()
	fmt.Println("max:      ", v, ok)
	fmt.Println("traverse: ", tr.Traverse())
	fmt.Println("len:      ", tr.Len())
	// Output:
	// len:       10
	// search3:   true
	// search100: false
	// del4:      true
	// del100:    false
	// min:       0 true
	// max:       100 true
	// traverse:  [0 1 2 3 5 6 7 8 9 100]
	// len:       10
}

func TestInsertSplitsRoot(t *testing.T) {
	tr := New[int](2)
	for _, key := range []int{10, 20, 5} {
		tr.Insert(key)
	}
	if got, want := tr.Levels(), [][][]int{{{5, 10, 20}}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("levels:\n got: %v\nwant: %v", got, want)
	}

	// The root is full, so it is split before 6 is pushed down.
	tr.Insert(6)
	tr.Insert(12)
	if got, want := tr.Levels(), [][][]int{{{10}}, {{5, 6}, {12, 20}}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("levels:\n got: %v\nwant: %v", got, want)
	}
	if stats := tr.Stats(); stats.Grows != 1 || stats.Splits != 1 {
		t.Fatalf("stats: %+v", stats)
	}

	for _, key := range []int{30, 7, 17} {
		tr.Insert(key)
	}
	if got, want := tr.Levels(), [][][]int{{{10, 20}}, {{5, 6, 7}, {12, 17}, {30}}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("levels:\n got: %v\nwant: %v", got, want)
	}
	if err := tr.Verify(); err != nil {
		t.Fatal(err)
	}

	if !tr.Delete(6) {
		t.Fatal("didn't find 6")
	}
	if got, want := tr.Traverse(), []int{5, 7, 10, 12, 17, 20, 30}; !reflect.DeepEqual(got, want) {
		t.Fatalf("traverse:\n got: %v\nwant: %v", got, want)
	}
	if err := tr.Verify(); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteAscending(t *testing.T) {
	tr := New[int](2)
	for _, key := range perm(20) {
		tr.Insert(key)
	}
	for _, key := range rang(20) {
		if !tr.Delete(key) {
			t.Fatalf("didn't find %v", key)
		}
		if err := tr.Verify(); err != nil {
			t.Fatalf("after deleting %d: %v", key, err)
		}
		if got, want := all(tr), rang(20)[key+1:]; len(got) != len(want) || (0 < len(want) && !reflect.DeepEqual(got, want)) {
			t.Fatalf("after deleting %d:\n got: %v\nwant: %v", key, got, want)
		}
	}
	if tr.Len() != 0 || tr.Height() != 1 {
		t.Fatalf("len %d height %d, want an empty leaf", tr.Len(), tr.Height())
	}
}

func TestDeleteDescending(t *testing.T) {
	tr := New[int](3)
	for _, key := range perm(100) {
		tr.Insert(key)
	}
	for _, key := range rangrev(100) {
		if !tr.Delete(key) {
			t.Fatalf("didn't find %v", key)
		}
		if err := tr.Verify(); err != nil {
			t.Fatalf("after deleting %d: %v", key, err)
		}
		if max, ok := tr.Max(); ok != (0 < key) || (ok && max != key-1) {
			t.Fatalf("after deleting %d: max %v %v", key, max, ok)
		}
	}
}

func TestDeleteAbsent(t *testing.T) {
	tr := New[int](2)
	if tr.Delete(1) {
		t.Fatal("deleted from an empty tree")
	}
	for _, key := range rang(50) {
		tr.Insert(key * 2)
	}
	for _, key := range rang(50) {
		if tr.Delete(key*2 + 1) {
			t.Fatalf("deleted absent key %d", key*2+1)
		}
		if err := tr.Verify(); err != nil {
			t.Fatal(err)
		}
	}
	if tr.Len() != 50 {
		t.Fatalf("len %d, want 50", tr.Len())
	}
}

func TestRoundTrip(t *testing.T) {
	for _, degree := range []int{2, 3, 5} {
		tr := New[int](degree)
		for _, key := range perm(200) {
			tr.Insert(key * 2)
		}
		for _, key := range perm(200) {
			fresh := key*2 + 1
			before := tr.Traverse()
			tr.Insert(fresh)
			if !tr.Search(fresh) {
				t.Fatalf("degree %d: search did not find %d", degree, fresh)
			}
			if !tr.Delete(fresh) {
				t.Fatalf("degree %d: didn't find %d", degree, fresh)
			}
			if tr.Search(fresh) {
				t.Fatalf("degree %d: search found deleted %d", degree, fresh)
			}
			if after := tr.Traverse(); !reflect.DeepEqual(before, after) {
				t.Fatalf("degree %d: round trip of %d:\n got: %v\nwant: %v", degree, fresh, after, before)
			}
			if err := tr.Verify(); err != nil {
				t.Fatal(err)
			}
		}
	}
}

func TestDuplicates(t *testing.T) {
	tr := New[int](2)
	for i := 0; i < 3; i++ {
		tr.Insert(5)
	}
	for _, key := range perm(10) {
		tr.Insert(key)
	}
	if tr.Len() != 13 {
		t.Fatalf("len %d, want 13", tr.Len())
	}
	if err := tr.Verify(); err != nil {
		t.Fatal(err)
	}
	if got, want := tr.Traverse(), []int{0, 1, 2, 3, 4, 5, 5, 5, 5, 6, 7, 8, 9}; !reflect.DeepEqual(got, want) {
		t.Fatalf("traverse:\n got: %v\nwant: %v", got, want)
	}
	for i := 0; i < 4; i++ {
		if !tr.Search(5) {
			t.Fatalf("search did not find 5 with %d copies deleted", i)
		}
		if !tr.Delete(5) {
			t.Fatalf("didn't find copy %d of 5", i)
		}
		if err := tr.Verify(); err != nil {
			t.Fatal(err)
		}
	}
	if tr.Search(5) || tr.Delete(5) {
		t.Fatal("found 5 after deleting all copies")
	}
}

func TestDuplicatesRandom(t *testing.T) {
	for _, degree := range []int{2, 3} {
		tr := New[int](degree)
		counts := make(map[int]int)
		for i := 0; i < 5000; i++ {
			key := rand.Intn(30)
			if rand.Intn(2) == 0 {
				tr.Insert(key)
				counts[key]++
			} else if ok := tr.Delete(key); ok != (0 < counts[key]) {
				t.Fatalf("degree %d: delete %d reported %v with %d copies", degree, key, ok, counts[key])
			} else if ok {
				counts[key]--
			}
			if err := tr.Verify(); err != nil {
				t.Fatalf("degree %d: %v", degree, err)
			}
		}
		var want []int
		for _, key := range rang(30) {
			for i := 0; i < counts[key]; i++ {
				want = append(want, key)
			}
		}
		if got := all(tr); len(got) != len(want) || (0 < len(want) && !reflect.DeepEqual(got, want)) {
			t.Fatalf("degree %d:\n got: %v\nwant: %v", degree, got, want)
		}
	}
}

func TestStringKeys(t *testing.T) {
	tr := New[string](2)
	for _, key := range []string{"pear", "apple", "fig", "kiwi", "banana", "cherry"} {
		tr.Insert(key)
	}
	if got, want := all(tr), []string{"apple", "banana", "cherry", "fig", "kiwi", "pear"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("mismatch:\n got: %v\nwant: %v", got, want)
	}
	if !tr.Delete("fig") || tr.Search("fig") {
		t.Fatal("fig was not deleted")
	}
	if err := tr.Verify(); err != nil {
		t.Fatal(err)
	}
}

func TestBadDegree(t *testing.T) {
	for _, degree := range []int{-1, 0, 1} {
		if err := ValidateDegree(degree); !errors.Is(err, ErrBadDegree) {
			t.Fatalf("degree %d: got %v, want %v", degree, err, ErrBadDegree)
		}
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("degree %d: New did not panic", degree)
				}
			}()
			New[int](degree)
		}()
	}
	if err := ValidateDegree(2); err != nil {
		t.Fatal(err)
	}
}

func TestClear(t *testing.T) {
	f := NewFreeList[int](DefaultFreeListSize)
	tr := NewWithFreeList(2, f)
	for _, key := range perm(100) {
		tr.Insert(key)
	}
	tr.Clear(true)
	if tr.Len() != 0 || 0 < len(all(tr)) {
		t.Fatalf("tree not cleared: %v", all(tr))
	}
	if len(f.freelist) == 0 {
		t.Fatal("no nodes returned to the freelist")
	}
	for _, key := range perm(100) {
		tr.Insert(key)
	}
	if err := tr.Verify(); err != nil {
		t.Fatal(err)
	}
	if got := all(tr); !reflect.DeepEqual(got, rang(100)) {
		t.Fatalf("mismatch:\n got: %v\nwant: %v", got, rang(100))
	}
}

func TestSharedFreeList(t *testing.T) {
	f := NewFreeList[int](DefaultFreeListSize)
	t1, t2 := NewWithFreeList(2, f), NewWithFreeList(3, f)
	for _, key := range perm(500) {
		t1.Insert(key)
	}
	for _, key := range perm(500) {
		t1.Delete(key)
		t2.Insert(key)
	}
	if err := t1.Verify(); err != nil {
		t.Fatal(err)
	}
	if err := t2.Verify(); err != nil {
		t.Fatal(err)
	}
	if got := all(t2); !reflect.DeepEqual(got, rang(500)) {
		t.Fatalf("mismatch:\n got: %v\nwant: %v", got, rang(500))
	}
}

const benchmarkTreeSize = 10000

func BenchmarkInsert(b *testing.B) {
	b.StopTimer()
	insertP := perm(benchmarkTreeSize)
	b.StartTimer()
	i := 0
	for i < b.N {
		tr := New[int](*btreeDegree)
		for _, key := range insertP {
			tr.Insert(key)
			i++
			if b.N <= i {
				return
			}
		}
	}
}

func BenchmarkSearch(b *testing.B) {
	b.StopTimer()
	size := 100000
	insertP := perm(size)
	tr := New[int](*btreeDegree)
	for _, key := range insertP {
		tr.Insert(key)
	}
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		tr.Search(i % size)
	}
}

func BenchmarkDeleteInsert(b *testing.B) {
	b.StopTimer()
	insertP := perm(benchmarkTreeSize)
	tr := New[int](*btreeDegree)
	for _, key := range insertP {
		tr.Insert(key)
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tr.Delete(insertP[i%benchmarkTreeSize])
		tr.Insert(insertP[i%benchmarkTreeSize])
	}
}
