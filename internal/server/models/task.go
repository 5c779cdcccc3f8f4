package models

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          int64
	UserID      int64
	Heading     string
	Description string
	IsCompleted bool
}
