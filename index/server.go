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

package index

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/golang/glog"
	"github.com/golang/protobuf/ptypes/empty"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// indexServer implements the server API for Index service.
type indexServer struct {
	UnimplementedIndexServer
	index *Index
	done  chan<- os.Signal
	once  sync.Once
}

// NewIndexServer creates a new index server serving the given index.  done
// is closed once Finalize is called; it may also be registered with
// signal.Notify by the caller.
func NewIndexServer(done chan<- os.Signal, index *Index) IndexServer {
	return &indexServer{
		index: index,
		done:  done,
	}
}

// Search reports whether the given key is in the index.
func (s *indexServer) Search(ctx context.Context, in *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error) {
	glog.V(1).Infof("Search called with key: %d", in.GetValue())

	return wrapperspb.Bool(s.index.Search(in.GetValue())), nil
}

// Insert adds the given key to the index.
func (s *indexServer) Insert(ctx context.Context, in *wrapperspb.Int64Value) (*empty.Empty, error) {
	glog.V(1).Infof("Insert called with key: %d", in.GetValue())

	s.index.Insert(in.GetValue())
	return new(empty.Empty), nil
}

// Delete removes one entry equal to the given key and reports whether it
// existed.
func (s *indexServer) Delete(ctx context.Context, in *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error) {
	glog.V(1).Infof("Delete called with key: %d", in.GetValue())

	return wrapperspb.Bool(s.index.Delete(in.GetValue())), nil
}

// Traverse returns all keys in ascending order, encoded by EncodeKeys.
func (s *indexServer) Traverse(ctx context.Context, in *empty.Empty) (*wrapperspb.BytesValue, error) {
	glog.V(1).Info("Traverse called")

	return wrapperspb.Bytes(EncodeKeys(s.index.Traverse())), nil
}

// Dump returns the node structure of the index.
func (s *indexServer) Dump(ctx context.Context, in *empty.Empty) (*wrapperspb.StringValue, error) {
	glog.V(1).Info("Dump called")

	var b strings.Builder
	if err := s.index.Dump(&b); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.String(b.String()), nil
}

// Stats returns the size, shape and structural statistics of the index.
func (s *indexServer) Stats(ctx context.Context, in *empty.Empty) (*structpb.Struct, error) {
	glog.V(1).Info("Stats called")

	out, err := structpb.NewStruct(s.index.Summary())
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// Reset removes all keys from the index.
func (s *indexServer) Reset(ctx context.Context, in *empty.Empty) (*empty.Empty, error) {
	glog.Info("Reset called")

	s.index.Reset()
	return new(empty.Empty), nil
}

// Finalize terminates the index service.
func (s *indexServer) Finalize(ctx context.Context, in *empty.Empty) (*empty.Empty, error) {
	defer s.once.Do(func() {
		signal.Stop(s.done)
		close(s.done)
	})

	glog.Infof("Finalize called with %d keys", s.index.Len())
	defer glog.Flush()

	return new(empty.Empty), nil
}
