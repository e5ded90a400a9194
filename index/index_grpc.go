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

	"github.com/golang/protobuf/ptypes/empty"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The Index service is built from well-known message types only, so it is
// registered by hand rather than generated from a proto file.
const (
	ServiceName = "keytree.Index"

	searchMethod   = "/" + ServiceName + "/Search"
	insertMethod   = "/" + ServiceName + "/Insert"
	deleteMethod   = "/" + ServiceName + "/Delete"
	traverseMethod = "/" + ServiceName + "/Traverse"
	dumpMethod     = "/" + ServiceName + "/Dump"
	statsMethod    = "/" + ServiceName + "/Stats"
	resetMethod    = "/" + ServiceName + "/Reset"
	finalizeMethod = "/" + ServiceName + "/Finalize"
)

// IndexClient is the client API for Index service.
type IndexClient interface {
	Search(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	Insert(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*empty.Empty, error)
	Delete(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	Traverse(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Dump(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Stats(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	Reset(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*empty.Empty, error)
	Finalize(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*empty.Empty, error)
}

type indexClient struct {
	cc grpc.ClientConnInterface
}

// NewIndexClient creates a new client for Index service.
func NewIndexClient(cc grpc.ClientConnInterface) IndexClient {
	return &indexClient{cc}
}

func (c *indexClient) Search(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, searchMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *indexClient) Insert(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	if err := c.cc.Invoke(ctx, insertMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *indexClient) Delete(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, deleteMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *indexClient) Traverse(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, traverseMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *indexClient) Dump(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, dumpMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *indexClient) Stats(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, statsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *indexClient) Reset(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	if err := c.cc.Invoke(ctx, resetMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *indexClient) Finalize(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	if err := c.cc.Invoke(ctx, finalizeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// IndexServer is the server API for Index service.
// All implementations must embed UnimplementedIndexServer
// for forward compatibility.
type IndexServer interface {
	Search(context.Context, *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error)
	Insert(context.Context, *wrapperspb.Int64Value) (*empty.Empty, error)
	Delete(context.Context, *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error)
	Traverse(context.Context, *empty.Empty) (*wrapperspb.BytesValue, error)
	Dump(context.Context, *empty.Empty) (*wrapperspb.StringValue, error)
	Stats(context.Context, *empty.Empty) (*structpb.Struct, error)
	Reset(context.Context, *empty.Empty) (*empty.Empty, error)
	Finalize(context.Context, *empty.Empty) (*empty.Empty, error)
	mustEmbedUnimplementedIndexServer()
}

// UnimplementedIndexServer must be embedded to have forward compatible implementations.
type UnimplementedIndexServer struct {
}

func (UnimplementedIndexServer) Search(context.Context, *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Search not implemented")
}
func (UnimplementedIndexServer) Insert(context.Context, *wrapperspb.Int64Value) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Insert not implemented")
}
func (UnimplementedIndexServer) Delete(context.Context, *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Delete not implemented")
}
func (UnimplementedIndexServer) Traverse(context.Context, *empty.Empty) (*wrapperspb.BytesValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Traverse not implemented")
}
func (UnimplementedIndexServer) Dump(context.Context, *empty.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Dump not implemented")
}
func (UnimplementedIndexServer) Stats(context.Context, *empty.Empty) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Stats not implemented")
}
func (UnimplementedIndexServer) Reset(context.Context, *empty.Empty) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Reset not implemented")
}
func (UnimplementedIndexServer) Finalize(context.Context, *empty.Empty) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Finalize not implemented")
}
func (UnimplementedIndexServer) mustEmbedUnimplementedIndexServer() {}

// RegisterIndexServer registers the Index service and its implementation to
// the given registrar.
func RegisterIndexServer(s grpc.ServiceRegistrar, srv IndexServer) {
	s.RegisterService(&indexServiceDesc, srv)
}

// unaryHandler adapts a typed method of IndexServer to a grpc.MethodDesc
// handler.
func unaryHandler[Req, Resp any](fullMethod string, call func(IndexServer, context.Context, *Req) (*Resp, error)) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(IndexServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(IndexServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var indexServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IndexServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Search", Handler: unaryHandler(searchMethod, IndexServer.Search)},
		{MethodName: "Insert", Handler: unaryHandler(insertMethod, IndexServer.Insert)},
		{MethodName: "Delete", Handler: unaryHandler(deleteMethod, IndexServer.Delete)},
		{MethodName: "Traverse", Handler: unaryHandler(traverseMethod, IndexServer.Traverse)},
		{MethodName: "Dump", Handler: unaryHandler(dumpMethod, IndexServer.Dump)},
		{MethodName: "Stats", Handler: unaryHandler(statsMethod, IndexServer.Stats)},
		{MethodName: "Reset", Handler: unaryHandler(resetMethod, IndexServer.Reset)},
		{MethodName: "Finalize", Handler: unaryHandler(finalizeMethod, IndexServer.Finalize)},
	},
	Streams: []grpc.StreamDesc{},
}
