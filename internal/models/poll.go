package models

import (
	"time"

	"github.com/lib/pq"
)

// Poll is a single-choice question. Options are addressed by index from responses.
type Poll struct {
	ID             string         `db:"id" json:"id"`
	NotificationID *string        `db:"notification_id" json:"notificationId,omitempty"`
	Question       string         `db:"question" json:"question"`
	Options        pq.StringArray `db:"options" json:"options"`
	IsActive       bool           `db:"is_active" json:"isActive"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
}

// PollResponse records one member's selected option for a poll.
type PollResponse struct {
	ID             string    `db:"id" json:"id"`
	PollID         string    `db:"poll_id" json:"pollId"`
	MemberID       string    `db:"member_id" json:"memberId"`
	SelectedOption int       `db:"selected_option" json:"selectedOption"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// PollResponseWithMember resolves the responding member; Member is nil when the member is gone.
type PollResponseWithMember struct {
	PollResponse
	Member *Member `json:"member,omitempty"`
}

// PollTally aggregates responses per option.
type PollTally struct {
	PollID         string   `json:"pollId"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	OptionCounts   []int    `json:"optionCounts"`
	Percentages    []int    `json:"percentages"`
	TotalResponses int      `json:"totalResponses"`
}
