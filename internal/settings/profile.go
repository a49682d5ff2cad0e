package settings

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"careconnect/internal/models"
	"careconnect/internal/store"
)

// ProfileStore caregiver profile document under "<ns>:caregiver_profile_v1".
// Unlike settings fields, profile saves are awaited: the edit screen reports failure.
type ProfileStore struct {
	kv     store.KV
	keys   store.Keys
	logger *zap.Logger
}

func NewProfileStore(kv store.KV, keys store.Keys, logger *zap.Logger) *ProfileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileStore{
		kv:     kv,
		keys:   keys,
		logger: logger.With(zap.String("component", "profile")),
	}
}

// Load returns an empty profile when none was saved.
func (p *ProfileStore) Load(ctx context.Context) (*models.CaregiverProfile, error) {
	raw, err := p.kv.Get(ctx, p.keys.Profile())
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return &models.CaregiverProfile{}, nil
		}
		return nil, fmt.Errorf("failed to load caregiver profile: %w", err)
	}

	profile, err := models.ProfileFromJSON(raw)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (p *ProfileStore) Save(ctx context.Context, profile *models.CaregiverProfile) error {
	raw, err := profile.ToJSON()
	if err != nil {
		return err
	}
	if err := p.kv.Set(ctx, p.keys.Profile(), raw); err != nil {
		p.logger.Warn("Failed to save caregiver profile", zap.Error(err))
		return fmt.Errorf("failed to save caregiver profile: %w", err)
	}
	p.logger.Debug("Saved caregiver profile", zap.String("key", p.keys.Profile()))
	return nil
}

// Clear removes the saved profile (sign-out).
func (p *ProfileStore) Clear(ctx context.Context) error {
	if err := p.kv.Remove(ctx, p.keys.Profile()); err != nil {
		return fmt.Errorf("failed to clear caregiver profile: %w", err)
	}
	return nil
}
