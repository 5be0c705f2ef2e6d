// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"zhi/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post storage and feed assembly.
// The viewerID parameter personalizes the computed liked/retweeted flags;
// pass the empty string for an anonymous viewer.
type PostRepository interface {
	// Create inserts an original or reply post. Replies fail with a NOT_FOUND
	// AppError when the parent does not exist.
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string, viewerID string) (*models.Post, error)
	Exists(ctx context.Context, id string) (bool, error)
	// Delete removes the post iff requesterID is its author. A false result is
	// the normal "nothing to do" outcome, not a failure.
	Delete(ctx context.Context, id string, requesterID string) (bool, error)
	// GetFeed lists top-level posts (replies excluded), newest first.
	GetFeed(ctx context.Context, limit, offset int, viewerID string) ([]*models.Post, error)
	// GetByAuthor lists one author's top-level posts and retweets, newest first.
	GetByAuthor(ctx context.Context, authorID string, limit, offset int, viewerID string) ([]*models.Post, error)
	// GetReplies lists a post's replies in conversational order, oldest first.
	GetReplies(ctx context.Context, parentID string, limit, offset int, viewerID string) ([]*models.Post, error)
	CountReplies(ctx context.Context, postID string) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// postAggregateSelect computes the live engagement counts per row. Counts are
// never stored; recomputing them on every read gives read-after-write
// consistency immediately after a like, retweet or reply.
const postAggregateSelect = "posts.*, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS like_count, " +
	"(SELECT COUNT(*) FROM retweets WHERE retweets.post_id = posts.id) AS retweet_count, " +
	"(SELECT COUNT(*) FROM posts AS replies WHERE replies.parent_id = posts.id) AS reply_count"

// applyPostDetails adds subqueries to fetch counts and the viewer's
// liked/retweeted flags in a single query.
func applyPostDetails(db *gorm.DB, viewerID string) *gorm.DB {
	if viewerID == "" {
		return db.Select(postAggregateSelect + ", false AS liked, false AS retweeted")
	}
	return db.Select(postAggregateSelect+
		", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS liked"+
		", EXISTS(SELECT 1 FROM retweets WHERE retweets.post_id = posts.id AND retweets.user_id = ?) AS retweeted",
		viewerID, viewerID)
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	db := r.db.WithContext(ctx)

	if post.ParentID == nil {
		if err := db.Create(post).Error; err != nil {
			return asAppError(err)
		}
		return nil
	}

	// Reply creation checks the parent inside the same transaction so the
	// reference cannot vanish between check and insert.
	err := db.Transaction(func(tx *gorm.DB) error {
		var parent models.Post
		if err := tx.Select("id").First(&parent, "id = ?", *post.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", *post.ParentID)
			}
			return err
		}
		return tx.Create(post).Error
	})
	return asAppError(err)
}

func (r *postRepository) GetByID(ctx context.Context, id string, viewerID string) (*models.Post, error) {
	var post models.Post
	err := applyPostDetails(r.db.WithContext(ctx), viewerID).
		Preload("User").
		First(&post, "posts.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	if err := r.attachOriginals(ctx, []*models.Post{&post}, viewerID); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) Delete(ctx context.Context, id string, requesterID string) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id", "user_id", "retweet_of").
			First(&post, "id = ? AND user_id = ?", id, requesterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		// A derived retweet row never outlives its edge. Deleting one through
		// the owner-delete path removes the pair, the same as Unretweet would,
		// so the original's retweet_count and the actor's retweeted flag stay
		// consistent and a later re-retweet is not blocked.
		if post.RetweetOf != nil {
			if _, err := removeEdge(tx, RetweetEdges, requesterID, *post.RetweetOf); err != nil {
				return err
			}
		}

		res := tx.Where("id = ?", id).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return deleted, nil
}

func (r *postRepository) GetFeed(ctx context.Context, limit, offset int, viewerID string) ([]*models.Post, error) {
	var posts []*models.Post
	err := applyPostDetails(r.db.WithContext(ctx), viewerID).
		Preload("User").
		Where("posts.parent_id IS NULL").
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachOriginals(ctx, posts, viewerID); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetByAuthor(ctx context.Context, authorID string, limit, offset int, viewerID string) ([]*models.Post, error) {
	var posts []*models.Post
	err := applyPostDetails(r.db.WithContext(ctx), viewerID).
		Preload("User").
		Where("posts.user_id = ? AND posts.parent_id IS NULL", authorID).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachOriginals(ctx, posts, viewerID); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetReplies(ctx context.Context, parentID string, limit, offset int, viewerID string) ([]*models.Post, error) {
	var posts []*models.Post
	// Oldest first: replies read as a conversation.
	err := applyPostDetails(r.db.WithContext(ctx), viewerID).
		Preload("User").
		Where("posts.parent_id = ?", parentID).
		Order("posts.created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) CountReplies(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("parent_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// attachOriginals joins the current state of re-shared originals onto retweet
// rows in one batched query. A deleted original simply stays absent; the
// retweet row keeps rendering without its snapshot.
func (r *postRepository) attachOriginals(ctx context.Context, posts []*models.Post, viewerID string) error {
	ids := make([]string, 0, len(posts))
	seen := map[string]struct{}{}
	for _, p := range posts {
		if p.RetweetOf == nil {
			continue
		}
		if _, ok := seen[*p.RetweetOf]; ok {
			continue
		}
		seen[*p.RetweetOf] = struct{}{}
		ids = append(ids, *p.RetweetOf)
	}
	if len(ids) == 0 {
		return nil
	}

	var originals []*models.Post
	err := applyPostDetails(r.db.WithContext(ctx), viewerID).
		Preload("User").
		Where("posts.id IN ?", ids).
		Find(&originals).Error
	if err != nil {
		return models.NewInternalError(err)
	}

	byID := make(map[string]*models.Post, len(originals))
	for _, o := range originals {
		byID[o.ID] = o
	}
	for _, p := range posts {
		if p.RetweetOf == nil {
			continue
		}
		p.RetweetOfPost = byID[*p.RetweetOf]
	}
	return nil
}

// asAppError passes AppErrors through and wraps anything else as internal.
func asAppError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewInternalError(err)
}
