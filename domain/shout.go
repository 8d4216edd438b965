package domain

import "time"

// Shout is one message typed by the user. It lives for a single submission.
type Shout struct {
	Text string
}

// Receipt is what the shout endpoint answered with. The body is never typed;
// it is only kept for display.
type Receipt struct {
	StatusCode int
	Raw        string // Compacted JSON, or trimmed text for non-JSON bodies
	ReceivedAt time.Time
}

// String returns the response body's string form ("" when the body was empty).
func (r Receipt) String() string {
	return r.Raw
}

// ShoutedText is the primary success notification for a shout.
func ShoutedText(text string) string {
	return "\"" + text + "\" has been shouted!"
}

// ResponseText is the secondary notification echoing the raw response.
func ResponseText(r Receipt) string {
	return "The response is: " + r.String()
}
