package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidEntity constructor input failed validation
var ErrInvalidEntity = errors.New("invalid entity")

// Criticality patient acuity. CriticalityNone is the null value of the datasets.
type Criticality string

const (
	CriticalityCritical Criticality = "critical"
	CriticalityHigh     Criticality = "high"
	CriticalityMedium   Criticality = "medium"
	CriticalityLow      Criticality = "low"
	CriticalityNone     Criticality = ""
)

var criticalityRank = map[Criticality]int{
	CriticalityCritical: 0,
	CriticalityHigh:     1,
	CriticalityMedium:   2,
	CriticalityLow:      3,
}

// Rank 0 is most critical. ok is false for CriticalityNone and unknown values.
func (c Criticality) Rank() (rank int, ok bool) {
	rank, ok = criticalityRank[c]
	return rank, ok
}

// Patient immutable after construction
type Patient struct {
	ID          string      `json:"id"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Criticality Criticality `json:"criticality"`
	NextVisit   *time.Time  `json:"nextVisit"`
	Room        string      `json:"room,omitempty"`
	Diagnosis   string      `json:"diagnosis,omitempty"`
}

// FullName "First Last", trimmed when either part is missing
func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// PatientParams named constructor input
type PatientParams struct {
	ID          string
	FirstName   string
	LastName    string
	Criticality Criticality
	NextVisit   *time.Time
	Room        string
	Diagnosis   string
}

// NewPatient validates params. An empty ID gets a generated UUID.
func NewPatient(p PatientParams) (*Patient, error) {
	if strings.TrimSpace(p.FirstName) == "" && strings.TrimSpace(p.LastName) == "" {
		return nil, fmt.Errorf("%w: patient needs a first or last name", ErrInvalidEntity)
	}
	if _, ok := p.Criticality.Rank(); !ok && p.Criticality != CriticalityNone {
		return nil, fmt.Errorf("%w: unknown criticality %q", ErrInvalidEntity, p.Criticality)
	}

	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}

	var nextVisit *time.Time
	if p.NextVisit != nil {
		v := *p.NextVisit
		nextVisit = &v
	}

	return &Patient{
		ID:          id,
		FirstName:   strings.TrimSpace(p.FirstName),
		LastName:    strings.TrimSpace(p.LastName),
		Criticality: p.Criticality,
		NextVisit:   nextVisit,
		Room:        p.Room,
		Diagnosis:   p.Diagnosis,
	}, nil
}
