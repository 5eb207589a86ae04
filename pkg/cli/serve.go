package cli

import (
	"fmt"
	"net"

	"google.golang.org/grpc"

	"github.com/mindscript-lang/mindscript/internal/config"
	"github.com/mindscript-lang/mindscript/internal/store"
	"github.com/mindscript-lang/mindscript/internal/typesvc"
)

// Serve opens the SQLite registry at cfg.Registry (if any) and runs
// the typesvc gRPC server on cfg.Listen until the listener errors or
// the process is killed.
func Serve(cfg *config.Config) error {
	var registry *store.Registry
	if cfg.Registry != "" {
		r, err := store.Open(cfg.Registry)
		if err != nil {
			return fmt.Errorf("opening registry: %w", err)
		}
		defer r.Close()
		registry = r
	}

	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Listen, err)
	}

	grpcServer := grpc.NewServer()
	typesvc.Register(grpcServer, typesvc.NewServer(registry))

	return grpcServer.Serve(lis)
}
