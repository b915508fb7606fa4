package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"ember-scriptorium/domain/model"
	httpHandler "ember-scriptorium/interfaces/http"
	"ember-scriptorium/usecase"
)

type MockPostUsecase struct {
	mock.Mock
}

func (m *MockPostUsecase) Generate(ctx context.Context) (*model.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostUsecase) Queue(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostUsecase) Approved(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostUsecase) Approve(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostUsecase) Regenerate(ctx context.Context, id string) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostUsecase) Export(ctx context.Context, id string) ([]byte, string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func newRouter(uc usecase.IPostUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := httpHandler.NewPostHandler(uc)
	router := gin.New()
	router.POST("/posts/generate", handler.Generate)
	router.POST("/posts/approve/:postId", handler.Approve)
	router.GET("/posts/download/:postId", handler.Download)
	return router
}

func TestGenerateWithoutCredentials(t *testing.T) {
	uc := new(MockPostUsecase)
	uc.On("Generate", mock.Anything).Return(nil, model.ErrCredentialsMissing)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts/generate", nil)
	newRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "generation credentials not configured")
}

func TestGenerateProviderFailure(t *testing.T) {
	uc := new(MockPostUsecase)
	uc.On("Generate", mock.Anything).
		Return(nil, &model.GenerationError{Stage: model.StageImage, Err: errors.New("rate limited")})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts/generate", nil)
	newRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGenerateEmptyBank(t *testing.T) {
	uc := new(MockPostUsecase)
	uc.On("Generate", mock.Anything).Return(nil, model.ErrNoQuotesAvailable)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts/generate", nil)
	newRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApproveUnknownPost(t *testing.T) {
	uc := new(MockPostUsecase)
	uc.On("Approve", mock.Anything, "missing").Return(model.ErrPostNotFound)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts/approve/missing", nil)
	newRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownloadHeaders(t *testing.T) {
	uc := new(MockPostUsecase)
	uc.On("Export", mock.Anything, "post-1").Return([]byte("zip-bytes"), "ember_post_post-1.zip", nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts/download/post-1", nil)
	newRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=ember_post_post-1.zip", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "zip-bytes", rec.Body.String())
}
