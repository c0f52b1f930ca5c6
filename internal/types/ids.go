// Package types holds identifier helpers shared by every layer.
package types

import (
	"strings"

	"github.com/google/uuid"
)

// ID aliases document what an identifier refers to. They are plain strings on the wire.
type (
	// ProjectID identifies a project
	ProjectID = string
	// TodoID identifies a todo
	TodoID = string
	// UserID identifies a user
	UserID = string
	// AssignmentID identifies a row of the todo/user join
	AssignmentID = string
)

// NewID returns a fresh random identifier. IDs are generated by the application so
// SQLite and PostgreSQL behave the same.
func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether s is a well-formed identifier
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// OptionalID normalizes a caller-supplied ID. Blank stays blank so the store generates
// one; anything else must be well formed.
func OptionalID(s string) (string, bool) {
	id := NormalizeID(s)
	if id == "" {
		return "", true
	}
	return id, IsValidID(id)
}

// NormalizeID trims whitespace and lowercases s so IDs compare byte-for-byte
func NormalizeID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// UniqueIDs returns ids with duplicates and blanks removed, keeping first occurrences in order
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = NormalizeID(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
