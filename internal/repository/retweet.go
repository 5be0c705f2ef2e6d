// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"zhi/internal/models"
	"zhi/internal/observability"

	"gorm.io/gorm"
)

// errAlreadyRetweeted aborts the retweet transaction when the edge insert hit
// the unique index. It never escapes this package; callers see applied=false.
var errAlreadyRetweeted = errors.New("already retweeted")

// RetweetRepository is the composition transaction for re-shares. A retweet is
// an edge row plus a derived post row; both commit or neither does. A crash
// between the two inserts must never leave an edge without its derived post,
// which is why the pair lives in one transaction rather than two calls.
type RetweetRepository interface {
	// Retweet inserts the edge and the derived post atomically. It returns
	// (nil, false, nil) when the actor already retweeted the post. The derived
	// post comes back with its author and a snapshot of the original so the
	// caller can render without a second round trip.
	Retweet(ctx context.Context, actorID, originalID string, quote *string) (*models.Post, bool, error)
	// Unretweet deletes the edge and the derived post row(s) atomically and
	// reports whether an edge was removed.
	Unretweet(ctx context.Context, actorID, originalID string) (bool, error)
}

type retweetRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewRetweetRepository creates a new retweet repository.
func NewRetweetRepository(db *gorm.DB) RetweetRepository {
	return &retweetRepository{db: db, log: observability.NewRepoLogger("retweets")}
}

func (r *retweetRepository) Retweet(ctx context.Context, actorID, originalID string, quote *string) (*models.Post, bool, error) {
	var derived *models.Post

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The original must exist before an edge may point at it.
		var exists int64
		if err := tx.Model(&models.Post{}).Where("id = ?", originalID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return models.NewNotFoundError("Post", originalID)
		}

		applied, err := insertEdge(tx, RetweetEdges, actorID, originalID)
		if err != nil {
			return err
		}
		if !applied {
			return errAlreadyRetweeted
		}

		derived = models.NewRetweetPost(actorID, originalID, quote)
		if err := tx.Create(derived).Error; err != nil {
			return err
		}

		// Read back the author and the original's aggregate snapshot inside
		// the transaction, so the result reflects the state being committed.
		if err := tx.First(&derived.User, "id = ?", actorID).Error; err != nil {
			return err
		}
		var original models.Post
		if err := applyPostDetails(tx, actorID).
			Preload("User").
			First(&original, "posts.id = ?", originalID).Error; err != nil {
			return err
		}
		derived.RetweetOfPost = &original
		return nil
	})

	if errors.Is(err, errAlreadyRetweeted) {
		return nil, false, nil
	}
	if err != nil {
		r.log.LogError(ctx, err, "retweet")
		return nil, false, asAppError(err)
	}
	r.log.LogWrite(ctx, "retweet", map[string]interface{}{
		"actor_id":    actorID,
		"original_id": originalID,
	})
	return derived, true, nil
}

func (r *retweetRepository) Unretweet(ctx context.Context, actorID, originalID string) (bool, error) {
	removed := false

	// Transactional even though a missing edge deletes nothing: the pair must
	// never be observed half-removed by a concurrent retweet.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		removed, err = removeEdge(tx, RetweetEdges, actorID, originalID)
		if err != nil {
			return err
		}
		return tx.
			Where("user_id = ? AND retweet_of = ?", actorID, originalID).
			Delete(&models.Post{}).Error
	})
	if err != nil {
		r.log.LogError(ctx, err, "unretweet")
		return false, models.NewInternalError(err)
	}
	if removed {
		r.log.LogWrite(ctx, "unretweet", map[string]interface{}{
			"actor_id":    actorID,
			"original_id": originalID,
		})
	}
	return removed, nil
}
