package models

import (
	"fmt"
	"strings"
)

// Priority is the urgency of a todo
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is applied when a todo is created without a priority
const DefaultPriority = PriorityMedium

// Priorities lists every valid priority from least to most urgent
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority maps a case-insensitive string to a Priority
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: priority %q (must be: low, medium, high)", ErrInvalidInput, s)
	}
	return p, nil
}

// Status is where a todo stands. It is set directly, there are no guarded transitions.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// DefaultStatus is applied when a todo is created without a status
const DefaultStatus = StatusPending

// Statuses lists every valid status in workflow order
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Label returns a human readable form ("in_progress" -> "In progress")
func (s Status) Label() string {
	text := strings.ReplaceAll(string(s), "_", " ")
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}

// ParseStatus maps a case-insensitive string to a Status. "in-progress" is accepted.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	st := Status(normalized)
	if !st.Valid() {
		return "", fmt.Errorf("%w: status %q (must be: pending, in_progress, completed)", ErrInvalidInput, s)
	}
	return st, nil
}
