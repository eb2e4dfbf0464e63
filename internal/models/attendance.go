package models

import (
	"time"

	"github.com/lib/pq"
)

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent  AttendanceStatus = "present"
	AttendanceStatusAbsent   AttendanceStatus = "absent"
	AttendanceStatusReplaced AttendanceStatus = "replaced"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusReplaced:
		return true
	default:
		return false
	}
}

// Attended reports whether the status counts towards a member's attendance percentage.
// A member who replaced someone else was on stage, so replaced counts as attended.
func (s AttendanceStatus) Attended() bool {
	return s == AttendanceStatusPresent || s == AttendanceStatusReplaced
}

// AttendanceRecord is a single attendance entry for one member on one date.
// Reason applies to absent records; ReplacedMemberID names the member this record's member replaced.
type AttendanceRecord struct {
	ID               string           `db:"id" json:"id"`
	MemberID         string           `db:"member_id" json:"memberId"`
	Date             time.Time        `db:"date" json:"date"`
	Status           AttendanceStatus `db:"status" json:"status"`
	StoryID          *string          `db:"story_id" json:"storyId,omitempty"`
	RoleID           *string          `db:"role_id" json:"roleId,omitempty"`
	CharacterIDs     pq.StringArray   `db:"character_ids" json:"characterIds"`
	TimeIn           *string          `db:"time_in" json:"timeIn,omitempty"`
	TimeOut          *string          `db:"time_out" json:"timeOut,omitempty"`
	Reason           *string          `db:"reason" json:"reason,omitempty"`
	ReplacedMemberID *string          `db:"replaced_member_id" json:"replacedMemberId,omitempty"`
	EventType        *string          `db:"event_type" json:"eventType,omitempty"`
	CreatedAt        time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updatedAt"`
}

// AttendanceWithRelations is an attendance record with its referenced entities resolved.
// A nil relation means the referenced row is missing; it is never an error.
type AttendanceWithRelations struct {
	AttendanceRecord
	Member         *Member `json:"member,omitempty"`
	Story          *Story  `json:"story,omitempty"`
	Role           *Role   `json:"role,omitempty"`
	ReplacedMember *Member `json:"replacedMember,omitempty"`
}

// AttendanceFilter holds the optional predicates applied to joined attendance.
// Empty values and "all" mean no constraint. Dates are YYYY-MM-DD and inclusive.
type AttendanceFilter struct {
	DateFrom     string `json:"dateFrom,omitempty" form:"dateFrom"`
	DateTo       string `json:"dateTo,omitempty" form:"dateTo"`
	StatusFilter string `json:"statusFilter,omitempty" form:"statusFilter"`
	StoryFilter  string `json:"storyFilter,omitempty" form:"storyFilter"`
	MemberFilter string `json:"memberFilter,omitempty" form:"memberFilter"`
	EventFilter  string `json:"eventFilter,omitempty" form:"eventFilter"`
}
