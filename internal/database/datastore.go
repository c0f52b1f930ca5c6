package database

import "context"

// DataStore defines the unified interface for all data operations needed by the services.
// It is composed of smaller, domain-specific interfaces so consumers can depend on
// only what they use (e.g., TodoRepository, AssignmentRepository).
type DataStore interface {
	ProjectRepository
	TodoRepository
	UserRepository
	AssignmentRepository

	Ping(ctx context.Context) error
}
