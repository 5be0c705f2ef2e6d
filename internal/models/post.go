// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostKind identifies the shape of a post. Exactly one shape applies to any
// post; the shapes are encoded in storage as two nullable self-references.
type PostKind string

const (
	// PostKindOriginal is a post with neither parent nor retweet reference.
	PostKindOriginal PostKind = "original"
	// PostKindReply is a post attached to a parent post.
	PostKindReply PostKind = "reply"
	// PostKindRetweet is a derived post created by a re-share.
	PostKindRetweet PostKind = "retweet"
)

// Post represents a timeline entry: an original post, a reply, or a derived
// retweet row. Content is null only for the retweet shape (a re-share without
// quote text). Posts are immutable after creation and hard-deleted, so a
// removed original disappears from embedded snapshots instead of lingering
// as a tombstone.
type Post struct {
	ID        string  `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User    `gorm:"foreignKey:UserID" json:"user"`
	Content   *string `gorm:"type:varchar(280)" json:"content"`
	Image     *string `json:"image,omitempty"`
	ParentID  *string `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	RetweetOf *string `gorm:"type:uuid;index" json:"retweet_of,omitempty"`
	// CreatedAt is the sole ordering key for every listing.
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// LikeCount is not persisted; computed at query time
	LikeCount int64 `gorm:"->" json:"like_count"`
	// RetweetCount is not persisted; computed at query time
	RetweetCount int64 `gorm:"->" json:"retweet_count"`
	// ReplyCount is not persisted; computed at query time
	ReplyCount int64 `gorm:"->" json:"reply_count"`
	// Liked indicates whether the requesting viewer liked this post (computed)
	Liked bool `gorm:"->" json:"liked"`
	// Retweeted indicates whether the requesting viewer re-shared this post (computed)
	Retweeted bool `gorm:"->" json:"retweeted"`

	// RetweetOfPost is the current state of the re-shared original, joined at
	// read time. Nil when this post is not a retweet or the original was deleted.
	RetweetOfPost *Post `gorm:"-" json:"retweet_of_post,omitempty"`
}

// NewOriginalPost builds a post with the original shape.
func NewOriginalPost(authorID, content string, image *string) *Post {
	return &Post{UserID: authorID, Content: &content, Image: image}
}

// NewReplyPost builds a post with the reply shape, attached to parentID.
func NewReplyPost(authorID, parentID, content string, image *string) *Post {
	return &Post{UserID: authorID, ParentID: &parentID, Content: &content, Image: image}
}

// NewRetweetPost builds the derived row for a re-share of originalID.
// quote may be nil for a plain retweet without quote text.
func NewRetweetPost(authorID, originalID string, quote *string) *Post {
	return &Post{UserID: authorID, RetweetOf: &originalID, Content: quote}
}

// Kind reports which of the three mutually exclusive shapes this post has.
func (p *Post) Kind() PostKind {
	switch {
	case p.RetweetOf != nil:
		return PostKindRetweet
	case p.ParentID != nil:
		return PostKindReply
	default:
		return PostKindOriginal
	}
}

// BeforeCreate assigns the UUID primary key and enforces the shape invariant:
// parent_id and retweet_of are mutually exclusive, and content may be null
// only for the retweet shape.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.ParentID != nil && p.RetweetOf != nil {
		return NewValidationError("post cannot be both a reply and a retweet")
	}
	if p.Content == nil && p.RetweetOf == nil {
		return NewValidationError("content is required for non-retweet posts")
	}
	return nil
}
