package usecase_test

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ember-scriptorium/domain/model"
	"ember-scriptorium/domain/repository"
	"ember-scriptorium/infrastructure/cache"
	"ember-scriptorium/infrastructure/secrets"
	"ember-scriptorium/usecase"
)

// In-memory fakes backing a full generate -> approve -> export run.

type memQuoteRepository struct {
	quotes map[string]*model.Quote
}

func (r *memQuoteRepository) ReplaceAll(_ context.Context, quotes []model.Quote) error {
	r.quotes = map[string]*model.Quote{}
	for i := range quotes {
		q := quotes[i]
		r.quotes[q.ID] = &q
	}
	return nil
}

func (r *memQuoteRepository) List(_ context.Context, _, _ int64) ([]model.Quote, int64, error) {
	out := make([]model.Quote, 0, len(r.quotes))
	for _, q := range r.quotes {
		out = append(out, *q)
	}
	return out, int64(len(out)), nil
}

func (r *memQuoteRepository) FindAvailable(_ context.Context, cutoff time.Time) ([]model.Quote, error) {
	var out []model.Quote
	for _, q := range r.quotes {
		if q.LastUsed == nil || q.LastUsed.Before(cutoff) {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *memQuoteRepository) FindLeastRecentlyUsed(_ context.Context, limit int64) ([]model.Quote, error) {
	var out []model.Quote
	for _, q := range r.quotes {
		out = append(out, *q)
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (r *memQuoteRepository) StampUsage(_ context.Context, id string, usedAt time.Time) (*model.Quote, error) {
	q, ok := r.quotes[id]
	if !ok {
		return nil, model.ErrNoQuotesAvailable
	}
	q.LastUsed = &usedAt
	q.TimesUsed++
	copied := *q
	return &copied, nil
}

type memPostRepository struct {
	posts map[string]*model.Post
}

func (r *memPostRepository) Insert(_ context.Context, post *model.Post) error {
	copied := *post
	r.posts[post.ID] = &copied
	return nil
}

func (r *memPostRepository) FindByID(_ context.Context, id string) (*model.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memPostRepository) FindApprovedByID(_ context.Context, id string) (*model.Post, error) {
	p, ok := r.posts[id]
	if !ok || p.Status != model.StatusApproved {
		return nil, model.ErrPostNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memPostRepository) FindByStatus(_ context.Context, status, _ string) ([]model.Post, error) {
	var out []model.Post
	for _, p := range r.posts {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memPostRepository) ApprovePending(_ context.Context, id string, approvedAt time.Time) (int64, error) {
	p, ok := r.posts[id]
	if !ok || p.Status != model.StatusPending {
		return 0, nil
	}
	p.Status = model.StatusApproved
	p.ApprovedAt = &approvedAt
	return 1, nil
}

func (r *memPostRepository) UpdateContent(_ context.Context, id string, content *model.PostContent, createdAt time.Time) error {
	p, ok := r.posts[id]
	if !ok {
		return model.ErrPostNotFound
	}
	p.ImageData = content.ImageData
	p.Caption = content.Caption
	p.Hashtags = content.Hashtags
	p.FullCaption = content.FullCaption
	p.CreatedAt = createdAt
	return nil
}

type memSettingsRepository struct {
	fields map[string]string
}

func (r *memSettingsRepository) Get(_ context.Context) (*model.Settings, error) {
	if len(r.fields) == 0 {
		return nil, nil
	}
	return &model.Settings{
		OpenAIAPIKey:         r.fields["openai_api_key"],
		InstagramAppID:       r.fields["instagram_app_id"],
		InstagramAppSecret:   r.fields["instagram_app_secret"],
		InstagramAccessToken: r.fields["instagram_access_token"],
		TikTokAccessToken:    r.fields["tiktok_access_token"],
	}, nil
}

func (r *memSettingsRepository) Upsert(_ context.Context, fields map[string]string) error {
	for k, v := range fields {
		r.fields[k] = v
	}
	return nil
}

type scriptedGenerator struct {
	image   []byte
	caption string
}

func (g *scriptedGenerator) GenerateImage(context.Context, string) ([]byte, error) {
	return g.image, nil
}

func (g *scriptedGenerator) GenerateText(context.Context, string, string) (string, error) {
	return g.caption, nil
}

func TestGenerateApproveExportFlow(t *testing.T) {
	ctx := context.Background()

	cipher, err := secrets.NewCipher("pipeline-passphrase")
	require.NoError(t, err)
	encryptedKey, err := cipher.Encrypt("sk-test")
	require.NoError(t, err)

	quoteRepo := &memQuoteRepository{quotes: map[string]*model.Quote{
		"q1": {ID: "q1", Quote: "We burned, quietly.", Theme: "loss", Tone: "quiet", VisualKeywords: "embers"},
	}}
	postRepo := &memPostRepository{posts: map[string]*model.Post{}}
	settingsRepo := &memSettingsRepository{fields: map[string]string{"openai_api_key": encryptedKey}}
	generator := &scriptedGenerator{
		image:   testPNG(t),
		caption: "A line from the ledger.\n\n#dark #academia",
	}

	settingsUsecase := usecase.NewSettingsUsecase(settingsRepo, cipher)
	quoteUsecase := usecase.NewQuoteUsecase(quoteRepo, cache.NewDrawGuard(nil))
	synthesizer := usecase.NewSynthesizer(settingsUsecase, func(apiKey string) repository.IGenerator {
		assert.Equal(t, "sk-test", apiKey, "the decrypted key reaches the provider client")
		return generator
	})
	postUsecase := usecase.NewPostUsecase(postRepo, quoteUsecase, synthesizer)

	post, err := postUsecase.Generate(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, post.Status)
	assert.Equal(t, "q1", post.QuoteID)
	assert.NotEmpty(t, post.ImageData)
	assert.Equal(t, "A line from the ledger.", post.Caption)
	assert.Equal(t, 1, quoteRepo.quotes["q1"].TimesUsed)

	queue, err := postUsecase.Queue(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 1)

	_, _, err = postUsecase.Export(ctx, post.ID)
	assert.ErrorIs(t, err, model.ErrPostNotFound, "pending posts cannot be exported")

	require.NoError(t, postUsecase.Approve(ctx, post.ID))
	assert.ErrorIs(t, postUsecase.Approve(ctx, post.ID), model.ErrPostNotFound, "approval is not repeatable")

	approved, err := postUsecase.Approved(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.NotNil(t, approved[0].ApprovedAt)

	data, filename, err := postUsecase.Export(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "ember_post_"+post.ID+".zip", filename)

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, reader.File, 2)

	names := []string{reader.File[0].Name, reader.File[1].Name}
	assert.Contains(t, names, "image_"+post.ID+".png")
	assert.Contains(t, names, "caption_"+post.ID+".txt")
}
