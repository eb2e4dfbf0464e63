package models

import "time"

// Story is a theatrical piece. Stories are deactivated rather than removed so historical
// attendance keeps resolving.
type Story struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// Character belongs to a story and is removed with it.
type Character struct {
	ID          string    `db:"id" json:"id"`
	StoryID     string    `db:"story_id" json:"storyId"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// StoryWithCharacters bundles a story with its cast list.
type StoryWithCharacters struct {
	Story
	Characters []Character `json:"characters"`
}
