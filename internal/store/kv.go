package store

import (
	"context"
	"errors"
)

// ErrMiss is returned by Get when the key has never been written (or was removed).
var ErrMiss = errors.New("key not found")

// KV namespaced string key-value store backing settings persistence.
// Keys are independent; no atomicity across keys is provided.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

const (
	settingsSegment = "settings_v1"
	profileSegment  = "caregiver_profile_v1"
)

// Keys builds the stable key layout for one application namespace.
type Keys struct {
	Namespace string
}

// NewKeys panics on an empty namespace: every key must be namespaced.
func NewKeys(namespace string) Keys {
	if namespace == "" {
		panic("store: NewKeys requires a non-empty namespace")
	}
	return Keys{Namespace: namespace}
}

// Setting "<ns>:settings_v1:<field>"
func (k Keys) Setting(field string) string {
	return k.Namespace + ":" + settingsSegment + ":" + field
}

// Profile "<ns>:caregiver_profile_v1"
func (k Keys) Profile() string {
	return k.Namespace + ":" + profileSegment
}
