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

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client wraps an IndexClient with plain Go types.
type Client struct {
	c IndexClient
}

// NewClient creates a new client of the index served over cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{c: NewIndexClient(cc)}
}

// Search reports whether the key is in the remote index.
func (c *Client) Search(ctx context.Context, key int64) (bool, error) {
	r, err := c.c.Search(ctx, wrapperspb.Int64(key))
	if err != nil {
		return false, err
	}
	return r.GetValue(), nil
}

// Insert adds the keys to the remote index, stopping at the first failure.
func (c *Client) Insert(ctx context.Context, keys ...int64) error {
	for _, key := range keys {
		if _, err := c.c.Insert(ctx, wrapperspb.Int64(key)); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes one entry equal to the key from the remote index, reporting
// whether it existed.
func (c *Client) Delete(ctx context.Context, key int64) (bool, error) {
	r, err := c.c.Delete(ctx, wrapperspb.Int64(key))
	if err != nil {
		return false, err
	}
	return r.GetValue(), nil
}

// Traverse returns all keys of the remote index in ascending order.
func (c *Client) Traverse(ctx context.Context) ([]int64, error) {
	r, err := c.c.Traverse(ctx, new(emptypb.Empty))
	if err != nil {
		return nil, err
	}
	keys, err := DecodeKeys(r.GetValue())
	if err != nil {
		return nil, status.Error(codes.DataLoss, err.Error())
	}
	return keys, nil
}

// Dump returns the node structure of the remote index.
func (c *Client) Dump(ctx context.Context) (string, error) {
	r, err := c.c.Dump(ctx, new(emptypb.Empty))
	if err != nil {
		return "", err
	}
	return r.GetValue(), nil
}

// Stats returns the statistics of the remote index by name.
func (c *Client) Stats(ctx context.Context) (map[string]interface{}, error) {
	r, err := c.c.Stats(ctx, new(emptypb.Empty))
	if err != nil {
		return nil, err
	}
	return r.AsMap(), nil
}

// Reset removes all keys from the remote index.
func (c *Client) Reset(ctx context.Context) error {
	_, err := c.c.Reset(ctx, new(emptypb.Empty))
	return err
}

// Finalize stops the remote index service.
func (c *Client) Finalize(ctx context.Context) error {
	_, err := c.c.Finalize(ctx, new(emptypb.Empty))
	return err
}
