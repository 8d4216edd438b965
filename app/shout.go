package app

import (
	"context"

	"github.com/cogciprocate/shoutit/domain"
)

// ShoutService submits a shout to the remote shout endpoint.
type ShoutService interface {
	// Shout posts text wrapped in a {"message": text} envelope. Any error
	// (transport, timeout, non-2xx) is returned as-is; there are no retries.
	Shout(ctx context.Context, text string) (domain.Receipt, error)
}
