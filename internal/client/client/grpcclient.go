package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/roster/internal/client/models"
	"github.com/dmitrijs2005/roster/internal/common"
	pb "github.com/dmitrijs2005/roster/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// DefaultCallTimeout bounds a single RPC when the caller's context has no
// deadline of its own.
const DefaultCallTimeout = 10 * time.Second

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      pb.RosterServiceClient
}

// NewRosterClient creates a client for the roster server at endpointURL.
// No connection is made until the first call.
func NewRosterClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.timeoutInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewRosterServiceClient(conn)
	return nil
}

func (s *GRPCClient) timeoutInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetStatus() != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) List(ctx context.Context) ([]models.Record, error) {
	resp, err := s.client.List(ctx, &pb.ListRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	result := make([]models.Record, 0, len(resp.GetRecords()))
	for _, r := range resp.GetRecords() {
		result = append(result, fromPB(r))
	}
	return result, nil
}

func (s *GRPCClient) Create(ctx context.Context, r models.Record) (string, error) {
	resp, err := s.client.Create(ctx, &pb.CreateRequest{Record: toPB(r)})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.GetId(), nil
}

func (s *GRPCClient) Update(ctx context.Context, id string, in models.RecordInput) error {
	req := &pb.UpdateRequest{Id: id, Record: toPB(in.Apply(models.Record{}))}
	if _, err := s.client.Update(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Delete(ctx context.Context, id string) error {
	if _, err := s.client.Delete(ctx, &pb.DeleteRequest{Id: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) DeleteBatch(ctx context.Context, ids []string) error {
	if len(ids) > common.MaxBatchSize {
		return fmt.Errorf("%w: %d ids", common.ErrBatchTooLarge, len(ids))
	}
	if _, err := s.client.DeleteBatch(ctx, &pb.DeleteBatchRequest{Ids: ids}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", common.ErrDuplicateKey, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func toPB(r models.Record) *pb.Record {
	return &pb.Record{
		Id:         r.ID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		RegNumber:  r.RegNumber,
		PageNumber: r.PageNumber,
		Notes:      r.Notes,
		CreatedAt:  r.CreatedAt,
	}
}

func fromPB(r *pb.Record) models.Record {
	if r == nil {
		return models.Record{}
	}
	return models.Record{
		ID:         r.Id,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		RegNumber:  r.RegNumber,
		PageNumber: r.PageNumber,
		Notes:      r.Notes,
		CreatedAt:  r.CreatedAt,
	}
}
