package settings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidValue value is not a member of the field's enumeration
	ErrInvalidValue = errors.New("invalid setting value")
	// ErrUnknownField no such setting
	ErrUnknownField = errors.New("unknown setting field")
)

// Field names double as the persisted key suffix ("<ns>:settings_v1:<field>").
const (
	FieldHandedness        = "handedness"
	FieldTextSize          = "text_size"
	FieldReminderFrequency = "reminder_frequency"
	FieldNotifications     = "notifications"
	FieldHighContrast      = "high_contrast"
	FieldA11yOverlay       = "a11y_overlay"
)

// Fields every persisted setting, in display order
var Fields = []string{
	FieldHandedness,
	FieldTextSize,
	FieldReminderFrequency,
	FieldNotifications,
	FieldHighContrast,
	FieldA11yOverlay,
}

var fieldAliases = map[string]string{
	"textsize":          FieldTextSize,
	"reminderfrequency": FieldReminderFrequency,
	"highcontrast":      FieldHighContrast,
	"a11yoverlay":       FieldA11yOverlay,
}

// NormalizeField accepts the persisted name ("text_size") or the record name ("textSize").
func NormalizeField(name string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, f := range Fields {
		if lower == f {
			return f, nil
		}
	}
	if f, ok := fieldAliases[lower]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// parseStoredBool persisted booleans are true only for the literal "true"
func parseStoredBool(s string) bool {
	return s == "true"
}
