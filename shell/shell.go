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

// Package shell implements an interactive command loop over a key index.
// Each operation is read from its own line, either as a menu number or as a
// command name, with its operands following on the same line or, when
// omitted, on the next one:
//
//	1, insert    insert any number of keys
//	2, search    search for a key
//	3, delete    delete a key
//	4, display   print the tree structure level by level
//	5, exit      leave the loop
//	traverse     print all keys in ascending order
//	stats        print the structural statistics of the tree
//	help         print the available operations
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/9rum/keytree/index"
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// Tree is the key index driven by the shell.  It is satisfied by
// *index.Client and, through Local, by *index.Index.
type Tree interface {
	Search(ctx context.Context, key int64) (bool, error)
	Insert(ctx context.Context, keys ...int64) error
	Delete(ctx context.Context, key int64) (bool, error)
	Traverse(ctx context.Context) ([]int64, error)
	Dump(ctx context.Context) (string, error)
	Stats(ctx context.Context) (map[string]interface{}, error)
}

// local adapts an in-process index to Tree.
type local struct {
	x *index.Index
}

// Local returns a Tree operating on the given in-process index.
func Local(x *index.Index) Tree {
	return local{x}
}

func (l local) Search(_ context.Context, key int64) (bool, error) {
	return l.x.Search(key), nil
}

func (l local) Insert(_ context.Context, keys ...int64) error {
	l.x.Insert(keys...)
	return nil
}

func (l local) Delete(_ context.Context, key int64) (bool, error) {
	return l.x.Delete(key), nil
}

func (l local) Traverse(context.Context) ([]int64, error) {
	return l.x.Traverse(), nil
}

func (l local) Dump(context.Context) (string, error) {
	return l.x.String(), nil
}

func (l local) Stats(context.Context) (map[string]interface{}, error) {
	return l.x.Summary(), nil
}

const options = "Options: 1:insert, 2:search, 3:delete, 4:display, 5: exit"

// MaxLineSize is the longest input line the shell accepts.
const MaxLineSize = 64 << 20

var (
	found    = color.New(color.FgGreen)
	notFound = color.New(color.FgRed)
	header   = color.New(color.Bold)
)

// Shell reads operations from a line-oriented input and applies them to a
// Tree.
type Shell struct {
	scanner *bufio.Scanner
	out     io.Writer
	tree    Tree
}

// New creates a new shell reading from in and writing to out.
func New(in io.Reader, out io.Writer, tree Tree) *Shell {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineSize)
	return &Shell{
		scanner: scanner,
		out:     out,
		tree:    tree,
	}
}

// Run processes operations until exit is requested or the input ends.  Errors
// returned by the tree are printed and do not stop the loop; Run only returns
// an error if the input cannot be read.
func (s *Shell) Run(ctx context.Context) error {
	header.Fprintln(s.out, "B-Tree Operations")
	fmt.Fprintln(s.out, options)
	for {
		fmt.Fprint(s.out, "\nEnter operation: ")
		line, ok := s.readLine()
		if !ok {
			return s.scanner.Err()
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if exit := s.process(ctx, strings.ToLower(fields[0]), fields[1:]); exit {
			fmt.Fprintln(s.out, "Exiting program.")
			return nil
		}
	}
}

// readLine returns the next input line.
func (s *Shell) readLine() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	return s.scanner.Text(), true
}

// operands returns args, or the fields of the next input line after printing
// prompt when args is empty.
func (s *Shell) operands(args []string, prompt string) []string {
	if 0 < len(args) {
		return args
	}
	fmt.Fprint(s.out, prompt)
	line, _ := s.readLine()
	return strings.Fields(line)
}

// process applies a single operation and reports whether the loop should end.
func (s *Shell) process(ctx context.Context, command string, args []string) (exit bool) {
	var err error
	switch command {
	case "1", "insert":
		err = s.insert(ctx, s.operands(args, "Enter numbers to insert into tree :\n"))
	case "2", "search":
		err = s.search(ctx, s.operands(args, "Enter value to search: "))
	case "3", "delete":
		err = s.delete(ctx, s.operands(args, "Enter value to delete: "))
	case "4", "display":
		err = s.display(ctx)
	case "5", "exit", "quit":
		return true
	case "traverse":
		err = s.traverse(ctx)
	case "stats":
		err = s.stats(ctx)
	case "help":
		fmt.Fprintln(s.out, options+", traverse, stats")
	default:
		fmt.Fprintln(s.out, "Invalid choice! Try again.")
	}
	if err != nil {
		notFound.Fprintf(s.out, "error: %v\n", err)
	}
	return false
}

// parseKeys parses every field as a key.
func parseKeys(fields []string) ([]int64, error) {
	keys := make([]int64, 0, len(fields))
	for _, field := range fields {
		key, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, errors.Errorf("invalid number %q", field)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// parseKey parses a single key.
func parseKey(fields []string) (int64, error) {
	if len(fields) != 1 {
		return 0, errors.New("expected a single number")
	}
	keys, err := parseKeys(fields)
	if err != nil {
		return 0, err
	}
	return keys[0], nil
}

func (s *Shell) insert(ctx context.Context, fields []string) error {
	keys, err := parseKeys(fields)
	if err != nil {
		return err
	}
	return errors.Wrap(s.tree.Insert(ctx, keys...), "insert")
}

func (s *Shell) search(ctx context.Context, fields []string) error {
	key, err := parseKey(fields)
	if err != nil {
		return err
	}
	ok, err := s.tree.Search(ctx, key)
	if err != nil {
		return errors.Wrap(err, "search")
	}
	if ok {
		found.Fprintf(s.out, "%d is found in B-Tree.\n", key)
	} else {
		notFound.Fprintf(s.out, "%d is NOT found in B-Tree.\n", key)
	}
	return nil
}

func (s *Shell) delete(ctx context.Context, fields []string) error {
	key, err := parseKey(fields)
	if err != nil {
		return err
	}
	ok, err := s.tree.Delete(ctx, key)
	if err != nil {
		return errors.Wrap(err, "delete")
	}
	if ok {
		found.Fprintf(s.out, "%d deleted.\n", key)
	} else {
		notFound.Fprintf(s.out, "%d not found.\n", key)
	}
	return nil
}

func (s *Shell) display(ctx context.Context) error {
	dump, err := s.tree.Dump(ctx)
	if err != nil {
		return errors.Wrap(err, "display")
	}
	header.Fprintln(s.out, "\nB-Tree Structure:")
	fmt.Fprintln(s.out, dump)
	return nil
}

func (s *Shell) traverse(ctx context.Context) error {
	keys, err := s.tree.Traverse(ctx)
	if err != nil {
		return errors.Wrap(err, "traverse")
	}
	fmt.Fprintln(s.out, keys)
	return nil
}

func (s *Shell) stats(ctx context.Context) error {
	stats, err := s.tree.Stats(ctx)
	if err != nil {
		return errors.Wrap(err, "stats")
	}
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "%s: %v\n", name, stats[name])
	}
	return nil
}
