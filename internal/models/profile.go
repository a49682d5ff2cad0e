package models

import (
	"encoding/json"
	"fmt"
)

// CaregiverProfile profile document persisted as one JSON value.
// PhotoURI is nil when no photo was chosen.
type CaregiverProfile struct {
	PhotoURI     *string `json:"photoUri"`
	Name         string  `json:"name"`
	TitleRole    string  `json:"titleRole"`
	Position     string  `json:"position"`
	Organization string  `json:"organization"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
}

// ToJSON serializes the profile. photoUri is always present (null when unset).
func (p *CaregiverProfile) ToJSON() (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal caregiver profile: %w", err)
	}
	return string(raw), nil
}

// ProfileFromJSON parses a document written by ToJSON. Missing string fields decode as "".
func ProfileFromJSON(data string) (*CaregiverProfile, error) {
	var p CaregiverProfile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal caregiver profile: %w", err)
	}
	return &p, nil
}
