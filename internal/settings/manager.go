package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"careconnect/internal/models"
	"careconnect/internal/store"
)

// Manager in-memory settings record backed by a KV store.
//
// Memory is the source of truth for the running session. Setters update it
// synchronously and persist in the background; a failed write is logged at
// warn level and leaves the in-memory value in place.
type Manager struct {
	kv     store.KV
	keys   store.Keys
	logger *zap.Logger

	mu       sync.RWMutex
	current  models.Settings
	versions map[string]uint64 // bumped on every in-memory write of a field

	fieldLocks map[string]*sync.Mutex // serializes writes of one field
	writes     inflight
}

// NewManager returns a manager holding the defaults. Call Load to pick up persisted values.
func NewManager(kv store.KV, keys store.Keys, logger *zap.Logger) *Manager {
	if kv == nil {
		panic("settings: NewManager requires a store.KV")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	locks := make(map[string]*sync.Mutex, len(Fields))
	for _, f := range Fields {
		locks[f] = &sync.Mutex{}
	}

	m := &Manager{
		kv:         kv,
		keys:       keys,
		logger:     logger.With(zap.String("component", "settings")),
		current:    models.DefaultSettings(),
		versions:   make(map[string]uint64, len(Fields)),
		fieldLocks: locks,
	}
	m.writes.init()
	return m
}

// Load re-syncs every field from the store: present valid values are applied,
// absent keys fall back to the default, and unreadable or invalid values keep
// the current in-memory value. Safe to call repeatedly.
//
// The returned error joins read failures so a caller may surface them; the
// state has been updated either way.
func (m *Manager) Load(ctx context.Context) error {
	// our own pending writes must land before we read them back
	m.Wait()

	m.mu.RLock()
	started := make(map[string]uint64, len(Fields))
	for f, v := range m.versions {
		started[f] = v
	}
	m.mu.RUnlock()

	type result struct {
		value string
		found bool
		err   error
	}
	results := make([]result, len(Fields))

	g, gctx := errgroup.WithContext(ctx)
	for i, field := range Fields {
		i, field := i, field
		g.Go(func() error {
			v, err := m.kv.Get(gctx, m.keys.Setting(field))
			switch {
			case err == nil:
				results[i] = result{value: v, found: true}
			case errors.Is(err, store.ErrMiss):
				results[i] = result{}
			default:
				results[i] = result{err: err}
			}
			// never abort sibling reads
			return nil
		})
	}
	_ = g.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()

	defaults := models.DefaultSettings()
	var errs []error
	for i, field := range Fields {
		r := results[i]

		if m.versions[field] != started[field] {
			// a setter ran while we were reading; its value is newer
			continue
		}
		if r.err != nil {
			m.logger.Warn("Failed to read setting, keeping current value",
				zap.String("field", field),
				zap.Error(r.err),
			)
			errs = append(errs, fmt.Errorf("read %s: %w", field, r.err))
			continue
		}
		if !r.found {
			m.applyLocked(field, defaults)
			continue
		}
		if !m.applyStoredLocked(field, r.value) {
			m.logger.Warn("Ignoring invalid persisted setting",
				zap.String("field", field),
				zap.String("value", r.value),
			)
		}
	}

	m.logger.Debug("Settings loaded", zap.Any("settings", m.current))
	return errors.Join(errs...)
}

// applyLocked copies field from src into the current record
func (m *Manager) applyLocked(field string, src models.Settings) {
	switch field {
	case FieldHandedness:
		m.current.Handedness = src.Handedness
	case FieldTextSize:
		m.current.TextSize = src.TextSize
	case FieldReminderFrequency:
		m.current.ReminderFrequency = src.ReminderFrequency
	case FieldNotifications:
		m.current.Notifications = src.Notifications
	case FieldHighContrast:
		m.current.HighContrast = src.HighContrast
	case FieldA11yOverlay:
		m.current.A11yOverlay = src.A11yOverlay
	}
}

// applyStoredLocked parses a persisted string; false when it is not a legal value
func (m *Manager) applyStoredLocked(field, raw string) bool {
	switch field {
	case FieldHandedness:
		h := models.Handedness(raw)
		if !h.Valid() {
			return false
		}
		m.current.Handedness = h
	case FieldTextSize:
		s := models.TextSize(raw)
		if !s.Valid() {
			return false
		}
		m.current.TextSize = s
	case FieldReminderFrequency:
		f := models.ReminderFrequency(raw)
		if !f.Valid() {
			return false
		}
		m.current.ReminderFrequency = f
	case FieldNotifications:
		m.current.Notifications = parseStoredBool(raw)
	case FieldHighContrast:
		m.current.HighContrast = parseStoredBool(raw)
	case FieldA11yOverlay:
		m.current.A11yOverlay = parseStoredBool(raw)
	}
	return true
}

// Snapshot copy of the current record
func (m *Manager) Snapshot() models.Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Manager) Handedness() models.Handedness { return m.Snapshot().Handedness }

func (m *Manager) TextSize() models.TextSize { return m.Snapshot().TextSize }

func (m *Manager) ReminderFrequency() models.ReminderFrequency {
	return m.Snapshot().ReminderFrequency
}

func (m *Manager) Notifications() bool { return m.Snapshot().Notifications }

func (m *Manager) HighContrast() bool { return m.Snapshot().HighContrast }

func (m *Manager) A11yOverlay() bool { return m.Snapshot().A11yOverlay }

// SetHandedness direct assignment from the layout switch. Only "left" and
// "right" are accepted; any other value leaves the mode alone and the
// unchanged current mode is returned.
func (m *Manager) SetHandedness(h models.Handedness) models.Handedness {
	if h != models.HandednessLeft && h != models.HandednessRight {
		current := m.Handedness()
		m.logger.Debug("Rejected handedness assignment",
			zap.String("requested", string(h)),
			zap.String("current", string(current)),
		)
		return current
	}
	m.update(FieldHandedness, string(h), func(s *models.Settings) { s.Handedness = h })
	return h
}

// SetHandednessMode selects any of the three modes, including "toggle".
func (m *Manager) SetHandednessMode(h models.Handedness) (models.Handedness, error) {
	if !h.Valid() {
		return m.Handedness(), fmt.Errorf("%w: handedness %q", ErrInvalidValue, h)
	}
	m.update(FieldHandedness, string(h), func(s *models.Settings) { s.Handedness = h })
	return h, nil
}

// ToggleHandedness flips left and right. It never produces the "toggle" mode;
// from "toggle" it goes to left.
func (m *Manager) ToggleHandedness() models.Handedness {
	var next models.Handedness
	m.update(FieldHandedness, "", func(s *models.Settings) {
		next = s.Handedness.Opposite()
		s.Handedness = next
	})
	return next
}

// SetTextSize invalid values return the current size and ErrInvalidValue.
func (m *Manager) SetTextSize(size models.TextSize) (models.TextSize, error) {
	if !size.Valid() {
		return m.TextSize(), fmt.Errorf("%w: text size %q", ErrInvalidValue, size)
	}
	m.update(FieldTextSize, string(size), func(s *models.Settings) { s.TextSize = size })
	return size, nil
}

// SetReminderFrequency invalid values return the current frequency and ErrInvalidValue.
func (m *Manager) SetReminderFrequency(f models.ReminderFrequency) (models.ReminderFrequency, error) {
	if !f.Valid() {
		return m.ReminderFrequency(), fmt.Errorf("%w: reminder frequency %q", ErrInvalidValue, f)
	}
	m.update(FieldReminderFrequency, string(f), func(s *models.Settings) { s.ReminderFrequency = f })
	return f, nil
}

func (m *Manager) SetNotifications(on bool) bool {
	m.update(FieldNotifications, formatBool(on), func(s *models.Settings) { s.Notifications = on })
	return on
}

func (m *Manager) SetHighContrast(on bool) bool {
	m.update(FieldHighContrast, formatBool(on), func(s *models.Settings) { s.HighContrast = on })
	return on
}

func (m *Manager) SetA11yOverlay(on bool) bool {
	m.update(FieldA11yOverlay, formatBool(on), func(s *models.Settings) { s.A11yOverlay = on })
	return on
}

// update applies mutate under the lock, then persists the field in the background.
// value "" means: read the persisted form back from the record after mutate.
func (m *Manager) update(field, value string, mutate func(*models.Settings)) {
	m.mu.Lock()
	mutate(&m.current)
	if value == "" {
		value = m.persistedLocked(field)
	}
	m.versions[field]++
	version := m.versions[field]
	m.mu.Unlock()

	m.persist(field, value, version)
}

func (m *Manager) persistedLocked(field string) string {
	switch field {
	case FieldHandedness:
		return string(m.current.Handedness)
	case FieldTextSize:
		return string(m.current.TextSize)
	case FieldReminderFrequency:
		return string(m.current.ReminderFrequency)
	case FieldNotifications:
		return formatBool(m.current.Notifications)
	case FieldHighContrast:
		return formatBool(m.current.HighContrast)
	case FieldA11yOverlay:
		return formatBool(m.current.A11yOverlay)
	}
	return ""
}

// persist fire-and-forget write. Writes of one field are serialized and a
// write superseded by a newer in-memory value is skipped, so the store ends
// with the last value set.
func (m *Manager) persist(field, value string, version uint64) {
	key := m.keys.Setting(field)
	lock := m.fieldLocks[field]

	m.writes.add()
	go func() {
		defer m.writes.done()

		lock.Lock()
		defer lock.Unlock()

		m.mu.RLock()
		latest := m.versions[field]
		m.mu.RUnlock()
		if version < latest {
			m.logger.Debug("Skipping superseded write", zap.String("key", key))
			return
		}

		if err := m.kv.Set(context.Background(), key, value); err != nil {
			m.logger.Warn("Failed to persist setting",
				zap.String("key", key),
				zap.String("value", value),
				zap.Error(err),
			)
			return
		}
		m.logger.Debug("Persisted setting", zap.String("key", key), zap.String("value", value))
	}()
}

// Wait blocks until every background write started so far has settled.
func (m *Manager) Wait() {
	m.writes.wait()
}

// inflight counts background writes. Unlike sync.WaitGroup it may be
// incremented while another goroutine is waiting.
type inflight struct {
	mu   sync.Mutex
	cond *sync.Cond
	n    int
}

func (f *inflight) init() { f.cond = sync.NewCond(&f.mu) }

func (f *inflight) add() {
	f.mu.Lock()
	f.n++
	f.mu.Unlock()
}

func (f *inflight) done() {
	f.mu.Lock()
	f.n--
	if f.n == 0 {
		f.cond.Broadcast()
	}
	f.mu.Unlock()
}

func (f *inflight) wait() {
	f.mu.Lock()
	for f.n > 0 {
		f.cond.Wait()
	}
	f.mu.Unlock()
}
