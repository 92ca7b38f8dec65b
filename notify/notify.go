package notify

import (
	"context"
	"fmt"
	"time"
)

// Message carries what a finder reported, templated into each channel.
type Message struct {
	PetID      string
	PetName    string
	Location   []byte // raw location JSON, exactly as reported
	ReportedAt time.Time
}

// Title and Body render the fixed notification template shared by all
// channels.
func (m Message) Title() string {
	return "Your pet has been found!"
}

func (m Message) Body() string {
	return fmt.Sprintf("Good news! Someone scanned %s's tag. Reported location: %s", m.PetName, string(m.Location))
}

// Notification is one channel-bound delivery attempt.
type Notification struct {
	Channel   string // "email" or "push"
	Recipient string // email address or device token
	Message   Message
}

// ChannelHandler sends a notification over one transport. Implementations
// must honor ctx cancellation; one call is one attempt, retries are not the
// handler's job.
type ChannelHandler interface {
	Send(ctx context.Context, notif Notification) error
}

// Outcome is the per-channel result of a dispatch. It is logged, never
// persisted and never surfaced to the finder.
type Outcome struct {
	Channel   string
	Recipient string
	Err       error
}

func (o Outcome) Success() bool { return o.Err == nil }
