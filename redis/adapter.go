package redis

import (
	"context"

	"github.com/traduckxion/transcribe/provider"
)

var _ provider.Provider = (*Client)(nil)

// Name implements provider.Provider.
func (c *Client) Name() string {
	return c.cfg.Name
}

// IsAvailable reports whether the server answers a ping. A closed client
// is never available.
func (c *Client) IsAvailable(ctx context.Context) bool {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return false
	}
	return c.rdb.Ping(ctx).Err() == nil
}
