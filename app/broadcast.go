package app

import "context"

// Broadcaster fans a shout out to every subscribed device.
// Implemented by infrastructure (e.g. the OneSignal push client).
type Broadcaster interface {
	Broadcast(ctx context.Context, text string) (Delivery, error)
}

// Delivery summarizes what the push backend accepted.
type Delivery struct {
	ID         string
	Recipients int
}
