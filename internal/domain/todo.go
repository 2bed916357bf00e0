package domain

import "time"

// Todo is the domain entity. It does not depend on Gin, Postgres or Redis.
// Description is nil when the todo has no description; an empty string is
// never stored in its place.
type Todo struct {
	ID          int64
	Title       string
	Description *string
	Completed   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
