package domain

import (
	"errors"
	"time"
)

var ErrJobNotFound = errors.New("job not found")

type Status string

const (
	StatusPending   Status = "pending"
	StatusInterview Status = "interview"
	StatusDeclined  Status = "declined"
)

// Valid reports whether s is one of the known statuses. Any valid status may
// follow any other.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInterview, StatusDeclined:
		return true
	}
	return false
}

type Job struct {
	ID        string
	Company   string
	Position  string
	Status    Status
	UserID    string // owner
	CreatedAt time.Time
	UpdatedAt time.Time
}
