package models

import "time"

// Show is a scheduled performance.
type Show struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	StoryID   *string   `db:"story_id" json:"storyId,omitempty"`
	ShowDate  time.Time `db:"show_date" json:"showDate"`
	Venue     *string   `db:"venue" json:"venue,omitempty"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
