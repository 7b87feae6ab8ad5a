// Package grpc exposes the roster record service over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/roster/internal/logging"
	pb "github.com/dmitrijs2005/roster/internal/proto"
	"github.com/dmitrijs2005/roster/internal/server/models"
	"google.golang.org/grpc"
)

// RecordService is the business logic the handlers delegate to.
type RecordService interface {
	List(ctx context.Context) ([]models.Record, error)
	Create(ctx context.Context, rec models.Record) (models.Record, error)
	Update(ctx context.Context, rec models.Record) error
	Delete(ctx context.Context, id string) error
	DeleteBatch(ctx context.Context, ids []string) (int64, error)
}

type GRPCServer struct {
	pb.UnimplementedRosterServiceServer
	address string
	records RecordService
	metrics *Metrics
	logger  logging.Logger
}

// NewGRPCServer builds a server for address. metrics may be nil.
func NewGRPCServer(address string, l logging.Logger, rs RecordService, m *Metrics) *GRPCServer {
	return &GRPCServer{
		address: address,
		logger:  l.With("module", "grpc_server"),
		records: rs,
		metrics: m,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{s.loggingInterceptor}
	if s.metrics != nil {
		interceptors = append(interceptors, s.metrics.UnaryInterceptor)
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	pb.RegisterRosterServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	<-stopped
	return nil
}
