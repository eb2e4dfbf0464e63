package models

import "time"

// MemberReport is a free-text message submitted by a member to the admins.
type MemberReport struct {
	ID        string    `db:"id" json:"id"`
	MemberID  string    `db:"member_id" json:"memberId"`
	Subject   string    `db:"subject" json:"subject"`
	Content   string    `db:"content" json:"content"`
	IsRead    bool      `db:"is_read" json:"isRead"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// MemberReportWithMember resolves the submitting member.
type MemberReportWithMember struct {
	MemberReport
	Member *Member `json:"member,omitempty"`
}
