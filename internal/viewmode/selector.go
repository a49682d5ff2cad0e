package viewmode

import (
	"strings"
	"sync"

	"careconnect/internal/models"
)

// Mode which projection of the patient list is displayed
type Mode string

const (
	All              Mode = "all"
	NeedingAttention Mode = "needing_attention"
	UpcomingVisits   Mode = "upcoming_visits"
)

// Modes every recognised mode, in menu order
var Modes = []Mode{All, NeedingAttention, UpcomingVisits}

// ParseMode accepts the snake_case names and their camelCase/kebab-case forms.
// ok is false for anything else; the returned mode is then All.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")) {
	case "all":
		return All, true
	case "needing_attention", "needingattention":
		return NeedingAttention, true
	case "upcoming_visits", "upcomingvisits":
		return UpcomingVisits, true
	}
	return All, false
}

// Normalize unknown modes collapse to All
func (m Mode) Normalize() Mode {
	switch m {
	case All, NeedingAttention, UpcomingVisits:
		return m
	}
	return All
}

// PatientSource derived views a selector can project.
// *repository.PatientRepository satisfies it.
type PatientSource interface {
	All() []*models.Patient
	NeedingAttentionSorted() []*models.Patient
	UpcomingVisitsSorted() []*models.Patient
}

// View one evaluated projection. Treat Patients as read-only; the same View
// is handed to every caller until the mode changes.
type View struct {
	Mode     Mode
	Patients []*models.Patient
}

// Selector maps a mode onto the source's derived view and memoizes the last
// result.
type Selector struct {
	source PatientSource

	mu   sync.Mutex
	last *View
}

// NewSelector panics when source is nil.
func NewSelector(source PatientSource) *Selector {
	if source == nil {
		panic("viewmode: NewSelector called without a patient source")
	}
	return &Selector{source: source}
}

// Select returns the memoized view while mode is unchanged and re-evaluates
// when it changes.
func (s *Selector) Select(mode Mode) *View {
	mode = mode.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last != nil && s.last.Mode == mode {
		return s.last
	}

	s.last = &View{Mode: mode, Patients: s.project(mode)}
	return s.last
}

// Invalidate drops the memoized view so the next Select re-reads the source.
func (s *Selector) Invalidate() {
	s.mu.Lock()
	s.last = nil
	s.mu.Unlock()
}

func (s *Selector) project(mode Mode) []*models.Patient {
	switch mode {
	case NeedingAttention:
		return s.source.NeedingAttentionSorted()
	case UpcomingVisits:
		return s.source.UpcomingVisitsSorted()
	default:
		return s.source.All()
	}
}
