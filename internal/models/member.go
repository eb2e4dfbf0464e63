package models

import "time"

// Member is a troupe volunteer (sevarthi). MhtID is the external identifier used at login.
type Member struct {
	ID         string    `db:"id" json:"id"`
	MhtID      string    `db:"mht_id" json:"mhtId"`
	Name       string    `db:"name" json:"name"`
	Email      *string   `db:"email" json:"email,omitempty"`
	Mobile     *string   `db:"mobile" json:"mobile,omitempty"`
	IsAdmin    bool      `db:"is_admin" json:"isAdmin"`
	AuthUserID *string   `db:"auth_user_id" json:"authUserId,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// MemberFilter narrows member listings.
type MemberFilter struct {
	Search  string
	IsAdmin *bool
}
