// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The three engagement edges share one contract: a synthetic id, an
// (actor, target) pair guarded by a composite unique index, and a creation
// timestamp. The unique index is what makes edge creation idempotent under
// concurrent requests; there is no read-then-write check anywhere.

// Like links a user to a post they liked.
type Like struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_like_pair" json:"user_id"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_like_pair;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Like) TableName() string { return "likes" }

// BeforeCreate assigns a UUID primary key when none was provided.
func (l *Like) BeforeCreate(_ *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Retweet links a user to a post they re-shared. The matching derived Post
// row is created in the same transaction (see repository.RetweetRepository).
type Retweet struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_retweet_pair" json:"user_id"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_retweet_pair;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Retweet) TableName() string { return "retweets" }

// BeforeCreate assigns a UUID primary key when none was provided.
func (r *Retweet) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Follow links a follower to the user they follow.
type Follow struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	FollowerID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FollowingID string    `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair;index" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string { return "follows" }

// BeforeCreate assigns a UUID primary key when none was provided.
func (f *Follow) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
