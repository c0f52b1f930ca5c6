package models

import "time"

// DefaultProjectColor is used when a project is created without a color
const DefaultProjectColor = "#3B82F6"

// ProjectColors is the palette offered when picking a project color
var ProjectColors = []string{
	"#3B82F6", "#EF4444", "#10B981", "#F59E0B", "#8B5CF6",
	"#EC4899", "#06B6D4", "#84CC16", "#F97316", "#6366F1",
}

// Project groups todos. Deleting a project removes its todos.
type Project struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	Color       string    `db:"color" json:"color"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// GetID returns the project ID (used by quiet CLI output)
func (p *Project) GetID() string {
	return p.ID
}

// ProjectStats is a project together with counts of its todos
type ProjectStats struct {
	Project
	TodoCount      int `db:"todo_count" json:"todo_count"`
	CompletedCount int `db:"completed_count" json:"completed_count"`
}
