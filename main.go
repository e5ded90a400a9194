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

// Package main implements the key index server.  The server may be stopped
// by a signal or by the Finalize call of a client.  With -shell, it runs the
// interactive command loop instead, either over a local index or, with -addr,
// over a running server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/9rum/keytree/index"
	"github.com/9rum/keytree/shell"
	"github.com/golang/glog"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func main() {
	port := flag.Int("p", 50051, "The server port")
	degree := flag.Int("t", 2, "The minimum degree of the B-tree")
	interactive := flag.Bool("shell", false, "Run the interactive command loop instead of the server")
	addr := flag.String("addr", "", "The server address for the command loop; a local index is used if empty")
	flag.Parse()
	defer glog.Flush()

	var err error
	if *interactive {
		err = runShell(*addr, *degree)
	} else {
		err = serve(*port, *degree)
	}
	if err != nil {
		glog.Fatalf("failed to run: %v", err)
	}
}

func serve(port, degree int) error {
	x, err := index.New(degree)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return errors.Wrap(err, "listen")
	}

	server := newServer(x)
	glog.Infof("server listening at %v with degree %d", lis.Addr(), x.Degree())

	return server.Serve(lis)
}

func newServer(x *index.Index) *grpc.Server {
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_recovery.UnaryServerInterceptor(),
		),
	)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func(done <-chan os.Signal, server *grpc.Server) {
		<-done
		server.GracefulStop()
	}(done, server)

	index.RegisterIndexServer(server, index.NewIndexServer(done, x))

	return server
}

func runShell(addr string, degree int) error {
	if addr == "" {
		x, err := index.New(degree)
		if err != nil {
			return err
		}
		return shell.New(os.Stdin, os.Stdout, shell.Local(x)).Run(context.Background())
	}

	conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return errors.Wrapf(err, "dial %s", addr)
	}
	defer conn.Close()

	glog.Infof("connected to %s", addr)
	return shell.New(os.Stdin, os.Stdout, index.NewClient(conn)).Run(context.Background())
}
