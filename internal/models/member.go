package models

import "time"

// MemberType classifies farm workers.
type MemberType string

const (
	MemberPermanent MemberType = "Permanent"
	MemberTemporary MemberType = "Temporary"
)

// Member is a registered farm worker.
type Member struct {
	ID        string     `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Type      MemberType `db:"type" json:"type"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}
