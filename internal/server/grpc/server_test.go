package grpc

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/roster/internal/client/client"
	cm "github.com/dmitrijs2005/roster/internal/client/models"
	cs "github.com/dmitrijs2005/roster/internal/client/services"
	"github.com/dmitrijs2005/roster/internal/common"
	"github.com/dmitrijs2005/roster/internal/logging"
	"github.com/dmitrijs2005/roster/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", logging.Nop(), &memService{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err, "Run returned error on graceful stop")
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop(), &memService{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.Error(t, srv.Run(ctx))
}

// startBufconn serves svc over an in-memory listener and returns a roster
// client connected to it.
func startBufconn(t *testing.T, svc RecordService, m *Metrics) *client.GRPCClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := NewGRPCServer("bufnet", logging.Nop(), svc, m)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	c, err := client.NewRosterClient("passthrough:///bufnet", time.Second,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)

	t.Cleanup(func() {
		c.Close()
		cancel()
		<-done
	})
	return c
}

func TestEndToEnd_ClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := startBufconn(t, &memService{}, NewMetrics())

	require.NoError(t, c.Ping(ctx))

	id, err := c.Create(ctx, cm.Record{FirstName: "Ali", RegNumber: "1", PageNumber: "1", CreatedAt: 10})
	require.NoError(t, err)

	_, err = c.Create(ctx, cm.Record{FirstName: "Omar", RegNumber: "1", PageNumber: "1", CreatedAt: 11})
	require.ErrorIs(t, err, common.ErrDuplicateKey)

	_, err = c.Create(ctx, cm.Record{RegNumber: "2"})
	require.ErrorIs(t, err, common.ErrorValidation)

	require.ErrorIs(t, c.Update(ctx, "missing", cm.RecordInput{FirstName: "X", RegNumber: "9"}), common.ErrorNotFound)
	require.NoError(t, c.Update(ctx, id, cm.RecordInput{FirstName: "Ali", LastName: "Hassan", RegNumber: "1", PageNumber: "1"}))

	recs, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, cm.Record{ID: id, FirstName: "Ali", LastName: "Hassan", RegNumber: "1", PageNumber: "1", CreatedAt: 10}, recs[0])

	require.NoError(t, c.Delete(ctx, id))
	recs, err = c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestEndToEnd_StoreDeleteAllOverRemoteBackend(t *testing.T) {
	ctx := context.Background()
	svc := &memService{}
	c := startBufconn(t, svc, nil)

	store := cs.NewRosterService(c, timex.NewManualClock(time.Unix(1700000000, 0)), logging.Nop())
	for i := range common.MaxBatchSize + 20 {
		_, err := store.Add(ctx, cm.RecordInput{FirstName: "S", RegNumber: fmt.Sprint(i), PageNumber: "1"})
		require.NoError(t, err)
	}

	_, err := store.Add(ctx, cm.RecordInput{FirstName: "Dup", RegNumber: "3", PageNumber: "1"})
	require.ErrorIs(t, err, common.ErrDuplicateKey)

	require.NoError(t, store.DeleteAll(ctx))
	assert.Equal(t, 0, store.Len())

	remaining, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
