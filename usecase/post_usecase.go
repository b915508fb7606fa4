package usecase

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"ember-scriptorium/domain/model"
	"ember-scriptorium/domain/repository"
	"ember-scriptorium/infrastructure/logger"

	"github.com/google/uuid"
)

// IPostUsecase is the approval state machine plus the export packager.
type IPostUsecase interface {
	Generate(ctx context.Context) (*model.Post, error)
	Queue(ctx context.Context) ([]model.Post, error)
	Approved(ctx context.Context) ([]model.Post, error)
	Approve(ctx context.Context, id string) error
	Regenerate(ctx context.Context, id string) (*model.Post, error)
	Export(ctx context.Context, id string) ([]byte, string, error)
}

type postUsecase struct {
	postRepo    repository.IPost
	quotes      IQuoteUsecase
	synthesizer ISynthesizer
}

func NewPostUsecase(postRepo repository.IPost, quotes IQuoteUsecase, synthesizer ISynthesizer) IPostUsecase {
	return &postUsecase{postRepo: postRepo, quotes: quotes, synthesizer: synthesizer}
}

// Generate draws a quote, synthesizes content and persists a new pending
// post. Selector and synthesis failures abort before anything is written;
// there is no partial post.
func (u *postUsecase) Generate(ctx context.Context) (*model.Post, error) {
	quote, err := u.quotes.SelectNext(ctx)
	if err != nil {
		return nil, err
	}

	content, err := u.synthesizer.Synthesize(ctx, Snapshot{
		QuoteText:      quote.Quote,
		Theme:          quote.Theme,
		Tone:           quote.Tone,
		VisualKeywords: quote.VisualKeywords,
	})
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		ID:             uuid.NewString(),
		QuoteID:        quote.ID,
		QuoteText:      quote.Quote,
		Theme:          quote.Theme,
		Tone:           quote.Tone,
		VisualKeywords: quote.VisualKeywords,
		ImageData:      content.ImageData,
		Caption:        content.Caption,
		Hashtags:       content.Hashtags,
		FullCaption:    content.FullCaption,
		Status:         model.StatusPending,
		CreatedAt:      time.Now().UTC(),
		ApprovedAt:     nil,
	}
	if err := u.postRepo.Insert(ctx, post); err != nil {
		return nil, err
	}
	logger.GetLogger().WithField("post_id", post.ID).WithField("quote_id", quote.ID).Info("Generated new pending post")
	return post, nil
}

func (u *postUsecase) Queue(ctx context.Context) ([]model.Post, error) {
	return u.postRepo.FindByStatus(ctx, model.StatusPending, "created_at")
}

func (u *postUsecase) Approved(ctx context.Context) ([]model.Post, error) {
	return u.postRepo.FindByStatus(ctx, model.StatusApproved, "approved_at")
}

// Approve moves a pending post to approved and stamps the approval time. An
// absent id and an already-decided post both surface as not found.
func (u *postUsecase) Approve(ctx context.Context, id string) error {
	modified, err := u.postRepo.ApprovePending(ctx, id, time.Now().UTC())
	if err != nil {
		return err
	}
	if modified == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// Regenerate re-runs synthesis against the post's stored snapshot and swaps
// the content fields in place. Status and approval timestamp are untouched.
func (u *postUsecase) Regenerate(ctx context.Context, id string) (*model.Post, error) {
	post, err := u.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := u.synthesizer.Synthesize(ctx, Snapshot{
		QuoteText:      post.QuoteText,
		Theme:          post.Theme,
		Tone:           post.Tone,
		VisualKeywords: post.VisualKeywords,
	})
	if err != nil {
		return nil, err
	}

	if err := u.postRepo.UpdateContent(ctx, id, content, time.Now().UTC()); err != nil {
		return nil, err
	}
	return u.postRepo.FindByID(ctx, id)
}

// Export packages an approved post as a zip holding exactly the image and a
// human-readable caption file. Pending and rejected posts are not found here.
func (u *postUsecase) Export(ctx context.Context, id string) ([]byte, string, error) {
	post, err := u.postRepo.FindApprovedByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	imageBytes, err := base64.StdEncoding.DecodeString(post.ImageData)
	if err != nil {
		return nil, "", fmt.Errorf("decode stored image: %w", err)
	}

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	imageEntry, err := archive.Create(fmt.Sprintf("image_%s.png", post.ID))
	if err != nil {
		return nil, "", err
	}
	if _, err := imageEntry.Write(imageBytes); err != nil {
		return nil, "", err
	}

	captionEntry, err := archive.Create(fmt.Sprintf("caption_%s.txt", post.ID))
	if err != nil {
		return nil, "", err
	}
	captionText := fmt.Sprintf("%s\n\nGenerated: %s\nQuote: %s",
		post.FullCaption, post.CreatedAt.Format(time.RFC3339), post.QuoteText)
	if _, err := captionEntry.Write([]byte(captionText)); err != nil {
		return nil, "", err
	}

	if err := archive.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("ember_post_%s.zip", post.ID), nil
}
