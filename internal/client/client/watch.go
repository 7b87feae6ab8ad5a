package client

import (
	"context"
	"time"
)

// Pinger is anything that can report whether the server is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// WatchOnline pings p every interval until ctx is done and calls notify
// whenever reachability changes. The first probe happens immediately and is
// always reported.
func WatchOnline(ctx context.Context, p Pinger, interval time.Duration, notify func(online bool)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var known, last bool
	probe := func() {
		online := p.Ping(ctx) == nil
		if ctx.Err() != nil {
			return
		}
		if !known || online != last {
			known, last = true, online
			notify(online)
		}
	}

	probe()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe()
		}
	}
}
