package settings

import (
	"fmt"

	"careconnect/internal/models"
)

// Get current value of a field in its persisted string form.
func (m *Manager) Get(name string) (string, error) {
	field, err := NormalizeField(name)
	if err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.persistedLocked(field), nil
}

// SetField string-keyed setter used by the CLI. Each field keeps its own policy:
// handedness takes only "left"/"right" and returns the unchanged mode otherwise
// (no error); enum fields and booleans return the current value with
// ErrInvalidValue. The returned string is the value in effect afterwards.
func (m *Manager) SetField(name, value string) (string, error) {
	field, err := NormalizeField(name)
	if err != nil {
		return "", err
	}

	switch field {
	case FieldHandedness:
		return string(m.SetHandedness(models.Handedness(value))), nil
	case FieldTextSize:
		v, err := m.SetTextSize(models.TextSize(value))
		return string(v), err
	case FieldReminderFrequency:
		v, err := m.SetReminderFrequency(models.ReminderFrequency(value))
		return string(v), err
	}

	on, err := parseBoolInput(value)
	if err != nil {
		current, _ := m.Get(field)
		return current, fmt.Errorf("%w: %s %q", ErrInvalidValue, field, value)
	}
	switch field {
	case FieldNotifications:
		m.SetNotifications(on)
	case FieldHighContrast:
		m.SetHighContrast(on)
	case FieldA11yOverlay:
		m.SetA11yOverlay(on)
	}
	return formatBool(on), nil
}

func parseBoolInput(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, ErrInvalidValue
}
