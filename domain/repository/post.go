package repository

import (
	"context"
	"time"

	"ember-scriptorium/domain/model"
)

// IPost defines the generated-post persistence contract.
type IPost interface {
	Insert(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	// FindApprovedByID treats a pending or rejected post as absent; export is
	// a privilege of approval, not mere existence.
	FindApprovedByID(ctx context.Context, id string) (*model.Post, error)
	// FindByStatus lists posts in one status, newest first by orderBy field.
	FindByStatus(ctx context.Context, status, orderBy string) ([]model.Post, error)
	// ApprovePending flips a pending post to approved and stamps approvedAt.
	// Returns the number of documents modified (0 means absent or not pending).
	ApprovePending(ctx context.Context, id string, approvedAt time.Time) (int64, error)
	// UpdateContent replaces the content fields and creation timestamp in
	// place, leaving status and approval timestamp untouched.
	UpdateContent(ctx context.Context, id string, content *model.PostContent, createdAt time.Time) error
}
