package client

import (
	"context"

	"github.com/dmitrijs2005/roster/internal/client/services"
)

// Client is a remote roster backend.
type Client interface {
	services.Repository
	Ping(ctx context.Context) error
	Close() error
}
