package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message inbox entry
type Message struct {
	ID      string    `json:"id"`
	Sender  string    `json:"sender"`
	Subject string    `json:"subject"`
	Preview string    `json:"preview"`
	SentAt  time.Time `json:"sentAt"`
	Unread  bool      `json:"unread"`
}

// MessageParams named constructor input
type MessageParams struct {
	ID      string
	Sender  string
	Subject string
	Preview string
	SentAt  time.Time
	Unread  bool
}

func NewMessage(p MessageParams) (*Message, error) {
	if strings.TrimSpace(p.Sender) == "" {
		return nil, fmt.Errorf("%w: message sender is required", ErrInvalidEntity)
	}
	if p.SentAt.IsZero() {
		return nil, fmt.Errorf("%w: message sentAt is required", ErrInvalidEntity)
	}

	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}

	return &Message{
		ID:      id,
		Sender:  p.Sender,
		Subject: p.Subject,
		Preview: p.Preview,
		SentAt:  p.SentAt,
		Unread:  p.Unread,
	}, nil
}
