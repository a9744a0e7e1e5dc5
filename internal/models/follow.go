package models

import (
	"time"

	"github.com/google/uuid"
)

// SelfFollowConstraint is the named CHECK constraint forbidding a user from
// following themselves. The database enforces it so two concurrent requests
// cannot race past an application-level pre-check; the service layer maps
// violations of this specific constraint to a Forbidden error.
const SelfFollowConstraint = "user_cannot_follow_self"

// Follow is a directed edge in the social graph: follower follows followed.
// The ordered pair is the composite primary key, so the edge has no identity
// beyond the pair and at most one edge can exist per pair.
type Follow struct {
	FollowerID uuid.UUID `gorm:"type:uuid;primaryKey" json:"follower_id"`
	FollowedID uuid.UUID `gorm:"type:uuid;primaryKey;check:user_cannot_follow_self,follower_id <> followed_id" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"-"`
	Followed User `gorm:"foreignKey:FollowedID" json:"-"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
