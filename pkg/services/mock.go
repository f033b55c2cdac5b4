package services

import (
	"context"
	"sync"
)

// RecordedReply is one SendReply call captured by RecordingNotifier.
type RecordedReply struct {
	PhoneNumberID string
	To            string
	Body          string
	ReplyToID     string
}

// RecordingNotifier is a Notifier that records calls instead of hitting the
// Graph API. Tests use it as a stub, and main falls back to it when no API
// token is configured so the inbox stays usable offline.
type RecordingNotifier struct {
	mu      sync.Mutex
	replies []RecordedReply

	// Err, when set, is returned by every SendReply; nothing is recorded.
	Err error
}

func (n *RecordingNotifier) SendReply(ctx context.Context, phoneNumberID, to, body, replyToID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.replies = append(n.replies, RecordedReply{
		PhoneNumberID: phoneNumberID,
		To:            to,
		Body:          body,
		ReplyToID:     replyToID,
	})
	return nil
}

// Calls returns a copy of the recorded replies.
func (n *RecordingNotifier) Calls() []RecordedReply {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]RecordedReply, len(n.replies))
	copy(out, n.replies)
	return out
}
