package services

import (
	"context"
	"fmt"
	"strings"

	"WaDesk/models"
	"WaDesk/pkg/events"
	"WaDesk/pkg/store"

	"go.uber.org/zap"
)

// IncomingMessage is what the ingress layer hands to the inbox: the minimal
// fields of a Graph text message. Non-text messages never get this far.
type IncomingMessage struct {
	ID            string
	From          string
	Body          string
	Timestamp     int64
	PhoneNumberID string
}

// Inbox is the message lifecycle service: the only component that creates or
// transitions messages. Every mutation persists through the store first and
// then pushes the fresh snapshot to all subscribers.
type Inbox struct {
	store    *store.Store
	registry *events.Registry
	notifier Notifier
	logger   *zap.Logger
}

func NewInbox(st *store.Store, reg *events.Registry, n Notifier, logger *zap.Logger) *Inbox {
	return &Inbox{store: st, registry: reg, notifier: n, logger: logger}
}

// Receive stores a new inbound message. Status always starts unread with
// empty notes.
func (s *Inbox) Receive(in IncomingMessage) {
	s.store.Append(models.Message{
		ID:                    in.ID,
		From:                  in.From,
		Text:                  models.Text{Body: in.Body},
		Timestamp:             in.Timestamp,
		Status:                models.StatusUnread,
		Notes:                 "",
		BusinessPhoneNumberID: in.PhoneNumberID,
	})
	s.broadcast()
	s.logger.Info("message received", zap.String("id", in.ID), zap.String("from", in.From))
}

// MarkRead moves a message to read. Returns false when the id is unknown.
// Transitions are permissive: the status is overwritten whatever it was
// before, matching how the dashboard has always behaved.
func (s *Inbox) MarkRead(id string) bool {
	return s.setStatus(id, models.StatusRead)
}

// Archive moves a message to archived. Archiving an already archived message
// succeeds and changes nothing.
func (s *Inbox) Archive(id string) bool {
	return s.setStatus(id, models.StatusArchived)
}

func (s *Inbox) setStatus(id string, status models.Status) bool {
	if !s.store.Mutate(id, func(m *models.Message) { m.Status = status }) {
		return false
	}
	s.broadcast()
	return true
}

// AttachNotes stores the operator's note on the message and delivers it back
// to the sender as a threaded reply on the given channel. The note is
// persisted and broadcast before delivery is attempted so it is never lost
// from the dashboard; a delivery failure is still returned so the operator
// knows the reply did not reach the recipient and can retry.
func (s *Inbox) AttachNotes(ctx context.Context, id, notes, phoneNumberID string) error {
	if strings.TrimSpace(notes) == "" || strings.TrimSpace(phoneNumberID) == "" {
		return ErrMissingFields
	}

	var to, replyTo string
	ok := s.store.Mutate(id, func(m *models.Message) {
		m.Notes = notes
		to = m.From
		replyTo = m.ID
	})
	if !ok {
		return ErrNotFound
	}
	s.broadcast()

	if err := s.notifier.SendReply(ctx, phoneNumberID, to, notes, replyTo); err != nil {
		s.logger.Error("reply delivery failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}

// Snapshot exposes the store mapping for the read API.
func (s *Inbox) Snapshot() models.Snapshot {
	return s.store.Snapshot()
}

func (s *Inbox) broadcast() {
	s.registry.Broadcast(s.store.Snapshot())
}
