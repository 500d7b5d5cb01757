package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLength is the maximum number of characters in a trimmed task title.
const MaxTitleLength = 200

// Task is a titled, optionally described, completable work item.
// The zero ID means the task has not been stored yet.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskUpdate carries a partial update. A nil field is left unchanged;
// a non-nil field overwrites the stored value, including with a zero value.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}

// IsEmpty reports whether the update supplies no fields at all.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Completed == nil
}

// NewTask builds an unstored Task with both timestamps set to now.
// Returns a ValidationError if the title is invalid.
func NewTask(title, description string, now time.Time) (Task, error) {
	if err := ValidateTitle(title); err != nil {
		return Task{}, err
	}

	return Task{
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ValidateTitle checks that title is non-empty after trimming whitespace and
// at most MaxTitleLength characters long.
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLength {
		return NewValidationError("title", "must be at most 200 characters", ErrTitleTooLong)
	}
	return nil
}

// Validate checks the invariants every stored Task must satisfy.
func (t Task) Validate() error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return NewValidationError("updatedAt", "cannot be before createdAt", nil)
	}
	return nil
}

// Apply returns a copy of t with the supplied fields of u applied and
// UpdatedAt set to now. UpdatedAt never moves before CreatedAt.
// ID and CreatedAt are never modified.
func (t Task) Apply(u TaskUpdate, now time.Time) (Task, error) {
	if u.Title != nil {
		if err := ValidateTitle(*u.Title); err != nil {
			return Task{}, err
		}
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}

	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.UpdatedAt = now
	return t, nil
}
