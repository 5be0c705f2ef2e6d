// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EdgeKind describes one of the engagement relations. All three share the
// same storage shape: a synthetic id, an (actor, target) pair under a
// composite unique index, and a creation timestamp. Columns are fixed
// descriptors, never user input.
type EdgeKind struct {
	Table     string
	ActorCol  string
	TargetCol string
}

// The three edge kinds of the engine.
var (
	LikeEdges    = EdgeKind{Table: "likes", ActorCol: "user_id", TargetCol: "post_id"}
	RetweetEdges = EdgeKind{Table: "retweets", ActorCol: "user_id", TargetCol: "post_id"}
	FollowEdges  = EdgeKind{Table: "follows", ActorCol: "follower_id", TargetCol: "following_id"}
)

// EdgeRepository defines idempotent operations over one edge kind.
type EdgeRepository interface {
	// Create inserts the (actor, target) edge. It returns false when the edge
	// already existed; the duplicate is absorbed by the unique index rather
	// than surfaced as an error.
	Create(ctx context.Context, actorID, targetID string) (bool, error)
	// Remove deletes the edge and reports whether a row was removed.
	Remove(ctx context.Context, actorID, targetID string) (bool, error)
	Exists(ctx context.Context, actorID, targetID string) (bool, error)
	// ListTargetsFor returns target ids for the actor, newest edge first.
	ListTargetsFor(ctx context.Context, actorID string) ([]string, error)
	// ListActorsFor returns actor ids for the target, newest edge first.
	ListActorsFor(ctx context.Context, targetID string) ([]string, error)
}

type edgeRepository struct {
	db   *gorm.DB
	kind EdgeKind
}

// NewEdgeRepository creates an EdgeRepository for the given edge kind.
func NewEdgeRepository(db *gorm.DB, kind EdgeKind) EdgeRepository {
	return &edgeRepository{db: db, kind: kind}
}

// insertEdge runs the idempotent edge insert on the given handle, which may
// be a transaction. Duplicate pairs are resolved by the unique index via
// ON CONFLICT DO NOTHING, so two concurrent inserts of the same pair never
// race on a read-then-write check; exactly one reports applied.
func insertEdge(db *gorm.DB, kind EdgeKind, actorID, targetID string) (bool, error) {
	res := db.Exec(
		fmt.Sprintf("INSERT INTO %s (id, %s, %s, created_at) VALUES (?, ?, ?, ?) ON CONFLICT DO NOTHING",
			kind.Table, kind.ActorCol, kind.TargetCol),
		uuid.NewString(), actorID, targetID, time.Now().UTC(),
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// removeEdge deletes the (actor, target) row and reports whether one existed.
func removeEdge(db *gorm.DB, kind EdgeKind, actorID, targetID string) (bool, error) {
	res := db.Exec(
		fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s = ?", kind.Table, kind.ActorCol, kind.TargetCol),
		actorID, targetID,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// edgeExists reports whether the (actor, target) row is present.
func edgeExists(db *gorm.DB, kind EdgeKind, actorID, targetID string) (bool, error) {
	var count int64
	err := db.Table(kind.Table).
		Where(fmt.Sprintf("%s = ? AND %s = ?", kind.ActorCol, kind.TargetCol), actorID, targetID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *edgeRepository) Create(ctx context.Context, actorID, targetID string) (bool, error) {
	return insertEdge(r.db.WithContext(ctx), r.kind, actorID, targetID)
}

func (r *edgeRepository) Remove(ctx context.Context, actorID, targetID string) (bool, error) {
	return removeEdge(r.db.WithContext(ctx), r.kind, actorID, targetID)
}

func (r *edgeRepository) Exists(ctx context.Context, actorID, targetID string) (bool, error) {
	return edgeExists(r.db.WithContext(ctx), r.kind, actorID, targetID)
}

func (r *edgeRepository) ListTargetsFor(ctx context.Context, actorID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table(r.kind.Table).
		Where(r.kind.ActorCol+" = ?", actorID).
		Order("created_at DESC").
		Pluck(r.kind.TargetCol, &ids).Error
	return ids, err
}

func (r *edgeRepository) ListActorsFor(ctx context.Context, targetID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table(r.kind.Table).
		Where(r.kind.TargetCol+" = ?", targetID).
		Order("created_at DESC").
		Pluck(r.kind.ActorCol, &ids).Error
	return ids, err
}
