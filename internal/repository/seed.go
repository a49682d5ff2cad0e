package repository

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"careconnect/internal/models"
)

//go:embed seed.json
var seedJSON []byte

// Times in the fixture are offsets from "now" (Go durations) so the demo
// dataset always has something due today, overdue and upcoming.
type seedFile struct {
	Patients []struct {
		ID          models.StringID    `json:"id"`
		FirstName   string             `json:"firstName"`
		LastName    string             `json:"lastName"`
		Criticality models.Criticality `json:"criticality"`
		NextVisitIn string             `json:"nextVisitIn"`
		Room        string             `json:"room"`
		Diagnosis   string             `json:"diagnosis"`
	} `json:"patients"`
	Tasks []struct {
		ID           models.StringID   `json:"id"`
		Title        string            `json:"title"`
		Status       models.TaskStatus `json:"status"`
		Priority     models.Priority   `json:"priority"`
		Patient      string            `json:"patient"`
		DueIn        string            `json:"dueIn"`
		CompletedAgo string            `json:"completedAgo"`
		Notes        string            `json:"notes"`
	} `json:"tasks"`
	Messages []struct {
		ID      models.StringID `json:"id"`
		Sender  string          `json:"sender"`
		Subject string          `json:"subject"`
		Preview string          `json:"preview"`
		SentAgo string          `json:"sentAgo"`
		Unread  bool            `json:"unread"`
	} `json:"messages"`
}

// Dataset entities decoded from a fixture
type Dataset struct {
	Patients []*models.Patient
	Tasks    []*models.Task
	Messages []*models.Message
}

// LoadSeed decodes the embedded demo dataset relative to now.
func LoadSeed(now time.Time) (*Dataset, error) {
	return ParseDataset(seedJSON, now)
}

// ParseDataset decodes a fixture document. Every entity goes through its constructor.
func ParseDataset(data []byte, now time.Time) (*Dataset, error) {
	var f seedFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset: %w", err)
	}

	ds := &Dataset{}
	for i, p := range f.Patients {
		visit, err := offset(now, p.NextVisitIn, 1)
		if err != nil {
			return nil, fmt.Errorf("patient %d: %w", i, err)
		}
		patient, err := models.NewPatient(models.PatientParams{
			ID:          string(p.ID),
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Criticality: p.Criticality,
			NextVisit:   visit,
			Room:        p.Room,
			Diagnosis:   p.Diagnosis,
		})
		if err != nil {
			return nil, fmt.Errorf("patient %d: %w", i, err)
		}
		ds.Patients = append(ds.Patients, patient)
	}

	for i, t := range f.Tasks {
		due, err := offset(now, t.DueIn, 1)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		completed, err := offset(now, t.CompletedAgo, -1)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		task, err := models.NewTask(models.TaskParams{
			ID:          string(t.ID),
			Title:       t.Title,
			Status:      t.Status,
			Priority:    t.Priority,
			Patient:     t.Patient,
			DueDate:     due,
			CompletedAt: completed,
			Notes:       t.Notes,
		})
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		ds.Tasks = append(ds.Tasks, task)
	}

	for i, m := range f.Messages {
		sent, err := offset(now, m.SentAgo, -1)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		if sent == nil {
			sent = &now
		}
		msg, err := models.NewMessage(models.MessageParams{
			ID:      string(m.ID),
			Sender:  m.Sender,
			Subject: m.Subject,
			Preview: m.Preview,
			SentAt:  *sent,
			Unread:  m.Unread,
		})
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		ds.Messages = append(ds.Messages, msg)
	}

	return ds, nil
}

// offset now + sign*d; empty means no timestamp
func offset(now time.Time, d string, sign time.Duration) (*time.Time, error) {
	if d == "" {
		return nil, nil
	}
	dur, err := time.ParseDuration(d)
	if err != nil {
		return nil, fmt.Errorf("bad offset %q: %w", d, err)
	}
	t := now.Add(sign * dur)
	return &t, nil
}
