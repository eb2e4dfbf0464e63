package models

import "time"

// PracticeLink points members at rehearsal material.
type PracticeLink struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	URL         string    `db:"url" json:"url"`
	StoryID     *string   `db:"story_id" json:"storyId,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedBy   *string   `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
