package models

// Handedness which side interactive controls are anchored to
type Handedness string

const (
	HandednessLeft   Handedness = "left"
	HandednessRight  Handedness = "right"
	HandednessToggle Handedness = "toggle" // user switches sides from the UI at will
)

// Valid reports whether h is one of the three modes.
func (h Handedness) Valid() bool {
	switch h {
	case HandednessLeft, HandednessRight, HandednessToggle:
		return true
	}
	return false
}

// Opposite flips between left and right. Anything that is not left flips to left.
func (h Handedness) Opposite() Handedness {
	if h == HandednessLeft {
		return HandednessRight
	}
	return HandednessLeft
}

// TextSize reading size preference
type TextSize string

const (
	TextSizeSmall  TextSize = "small"
	TextSizeMedium TextSize = "medium"
	TextSizeLarge  TextSize = "large"
)

func (s TextSize) Valid() bool {
	switch s {
	case TextSizeSmall, TextSizeMedium, TextSizeLarge:
		return true
	}
	return false
}

// ReminderFrequency cadence of caregiver reminders
type ReminderFrequency string

const (
	ReminderDaily  ReminderFrequency = "daily"
	ReminderWeekly ReminderFrequency = "weekly"
	ReminderCustom ReminderFrequency = "custom"
)

func (f ReminderFrequency) Valid() bool {
	switch f {
	case ReminderDaily, ReminderWeekly, ReminderCustom:
		return true
	}
	return false
}

// Settings the full preference record. Every field always holds a legal value.
type Settings struct {
	Handedness        Handedness        `json:"handedness"`
	TextSize          TextSize          `json:"textSize"`
	ReminderFrequency ReminderFrequency `json:"reminderFrequency"`
	Notifications     bool              `json:"notifications"`
	HighContrast      bool              `json:"highContrast"`
	A11yOverlay       bool              `json:"a11yOverlay"`
}

// DefaultSettings values used before (and in the absence of) anything persisted.
func DefaultSettings() Settings {
	return Settings{
		Handedness:        HandednessLeft,
		TextSize:          TextSizeMedium,
		ReminderFrequency: ReminderDaily,
		Notifications:     true,
		HighContrast:      false,
		A11yOverlay:       false,
	}
}
