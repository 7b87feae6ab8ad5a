package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/roster/internal/common"
	pb "github.com/dmitrijs2005/roster/internal/proto"
	"github.com/dmitrijs2005/roster/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) List(ctx context.Context, req *pb.ListRequest) (*pb.ListResponse, error) {
	recs, err := s.records.List(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out := make([]*pb.Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, toPB(r))
	}
	return &pb.ListResponse{Records: out}, nil
}

func (s *GRPCServer) Create(ctx context.Context, req *pb.CreateRequest) (*pb.CreateResponse, error) {
	if req.GetRecord() == nil {
		return nil, status.Error(codes.InvalidArgument, "record is required")
	}

	rec, err := s.records.Create(ctx, fromPB(req.GetRecord()))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "record created", "id", rec.ID)
	return &pb.CreateResponse{Id: rec.ID}, nil
}

func (s *GRPCServer) Update(ctx context.Context, req *pb.UpdateRequest) (*pb.UpdateResponse, error) {
	if req.GetRecord() == nil {
		return nil, status.Error(codes.InvalidArgument, "record is required")
	}

	rec := fromPB(req.GetRecord())
	rec.ID = req.Id
	if err := s.records.Update(ctx, rec); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.UpdateResponse{}, nil
}

func (s *GRPCServer) Delete(ctx context.Context, req *pb.DeleteRequest) (*pb.DeleteResponse, error) {
	if err := s.records.Delete(ctx, req.Id); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.DeleteResponse{}, nil
}

func (s *GRPCServer) DeleteBatch(ctx context.Context, req *pb.DeleteBatchRequest) (*pb.DeleteBatchResponse, error) {
	n, err := s.records.DeleteBatch(ctx, req.Ids)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.DeleteBatchResponse{Deleted: n}, nil
}

// toStatus maps service errors onto gRPC codes. Unknown errors are logged
// and hidden behind codes.Internal.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrDuplicateKey):
		return status.Error(codes.AlreadyExists, common.ErrDuplicateKey.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "record not found")
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrBatchTooLarge):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, common.ErrorInternal.Error())
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
