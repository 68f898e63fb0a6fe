package services

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"psycenter/internal/domain/models"
	"psycenter/internal/lib/apperr"
	"psycenter/internal/storage"
	"psycenter/internal/transport/http/dto"
)

// MockBlogRepository реализация мок-репозитория
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) SaveBlogPost(ctx context.Context, post models.BlogPost) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockBlogRepository) UpdateBlogPost(ctx context.Context, post models.BlogPost) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockBlogRepository) DeleteBlogPost(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBlogRepository) BlogPostByID(ctx context.Context, id string) (models.BlogPost, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) BlogPostBySlug(ctx context.Context, slug string) (models.BlogPost, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(models.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) BlogPosts(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.BlogPost), args.Error(1)
}

func postRequest(slug string) dto.BlogPostRequest {
	return dto.BlogPostRequest{
		Title:     "Как подготовить ребёнка к школе",
		Slug:      slug,
		Content:   "Текст статьи",
		Author:    "Психолог центра",
		Published: true,
	}
}

func TestBlogService_CreatePost(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		req       dto.BlogPostRequest
		mockSetup func(repo *MockBlogRepository)
		wantKind  apperr.Kind
	}{
		{
			name: "successful creation",
			req:  postRequest("school"),
			mockSetup: func(repo *MockBlogRepository) {
				repo.On("BlogPostBySlug", ctx, "school").Return(models.BlogPost{}, storage.ErrNotFound).Once()
				repo.On("SaveBlogPost", ctx, mock.MatchedBy(func(p models.BlogPost) bool {
					return p.ID != "" && p.CreatedAt.Equal(p.UpdatedAt) && p.Tags != nil
				})).Return(nil).Once()
			},
		},
		{
			name: "duplicate slug",
			req:  postRequest("school"),
			mockSetup: func(repo *MockBlogRepository) {
				repo.On("BlogPostBySlug", ctx, "school").Return(models.BlogPost{ID: "p1", Slug: "school"}, nil).Once()
			},
			wantKind: apperr.KindConflict,
		},
		{
			name: "slug taken concurrently",
			req:  postRequest("school"),
			mockSetup: func(repo *MockBlogRepository) {
				repo.On("BlogPostBySlug", ctx, "school").Return(models.BlogPost{}, storage.ErrNotFound).Once()
				repo.On("SaveBlogPost", ctx, mock.Anything).Return(fmt.Errorf("repo: %w", storage.ErrAlreadyExists)).Once()
			},
			wantKind: apperr.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockBlogRepository)
			tt.mockSetup(repo)
			service := NewBlogService(slog.Default(), repo)

			resp, err := service.CreatePost(ctx, tt.req)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				assert.Equal(t, "Slug already exists", apperr.MessageOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.req.Slug, resp.Slug)
				assert.NotEmpty(t, resp.ID)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestBlogService_UpdatePost(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("refreshes updated_at and keeps created_at", func(t *testing.T) {
		repo := new(MockBlogRepository)
		service := NewBlogService(slog.Default(), repo)
		service.now = func() time.Time { return created.Add(48 * time.Hour) }

		repo.On("BlogPostByID", ctx, "p1").Return(models.BlogPost{ID: "p1", Slug: "old", CreatedAt: created, UpdatedAt: created}, nil).Once()
		repo.On("UpdateBlogPost", ctx, mock.AnythingOfType("models.BlogPost")).Return(nil).Once()

		got, err := service.UpdatePost(ctx, "p1", postRequest("new"))
		require.NoError(t, err)
		assert.Equal(t, created, got.CreatedAt)
		assert.Equal(t, created.Add(48*time.Hour), got.UpdatedAt)
		assert.Equal(t, "new", got.Slug)

		// slug is not looked up on update
		repo.AssertNotCalled(t, "BlogPostBySlug", mock.Anything, mock.Anything)
	})

	t.Run("unknown post", func(t *testing.T) {
		repo := new(MockBlogRepository)
		service := NewBlogService(slog.Default(), repo)

		repo.On("BlogPostByID", ctx, "missing").Return(models.BlogPost{}, storage.ErrNotFound).Once()

		_, err := service.UpdatePost(ctx, "missing", postRequest("x"))
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("slug collision rejected by store", func(t *testing.T) {
		repo := new(MockBlogRepository)
		service := NewBlogService(slog.Default(), repo)

		repo.On("BlogPostByID", ctx, "p2").Return(models.BlogPost{ID: "p2", CreatedAt: created}, nil).Once()
		repo.On("UpdateBlogPost", ctx, mock.Anything).Return(storage.ErrAlreadyExists).Once()

		_, err := service.UpdatePost(ctx, "p2", postRequest("taken"))
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})
}

func TestBlogService_Lookups(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBlogRepository)
	service := NewBlogService(slog.Default(), repo)

	repo.On("BlogPostBySlug", ctx, "missing").Return(models.BlogPost{}, storage.ErrNotFound).Once()
	repo.On("BlogPosts", ctx, models.BlogFilter{PublishedOnly: true}).Return([]models.BlogPost{{ID: "p1", Published: true}}, nil).Once()
	repo.On("DeleteBlogPost", ctx, "gone").Return(storage.ErrNotFound).Once()

	_, err := service.GetPostBySlug(ctx, "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	posts, err := service.ListPosts(ctx, true)
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	assert.ErrorIs(t, service.DeletePost(ctx, "gone"), ErrPostNotFound)
	repo.AssertExpectations(t)
}
