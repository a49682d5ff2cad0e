package repository

import (
	"sort"
	"sync"

	"careconnect/internal/models"
)

// MessageRepository read-only inbox
type MessageRepository struct {
	mu       sync.RWMutex
	messages []*models.Message
}

func NewMessageRepository(messages []*models.Message) *MessageRepository {
	return &MessageRepository{messages: append([]*models.Message(nil), messages...)}
}

func (r *MessageRepository) All() []*models.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(make([]*models.Message, 0, len(r.messages)), r.messages...)
}

func (r *MessageRepository) FindByID(id string) *models.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (r *MessageRepository) Unread() []*models.Message {
	all := r.All()
	out := make([]*models.Message, 0, len(all))
	for _, m := range all {
		if m.Unread {
			out = append(out, m)
		}
	}
	return out
}

func (r *MessageRepository) UnreadCount() int {
	return len(r.Unread())
}

// Recent newest first; equal timestamps keep insertion order
func (r *MessageRepository) Recent() []*models.Message {
	out := r.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SentAt.After(out[j].SentAt)
	})
	return out
}
