package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"psycenter/internal/domain/models"
	"psycenter/internal/lib/apperr"
	"psycenter/internal/lib/logger/sl"
	"psycenter/internal/repository"
	"psycenter/internal/services/uniqueness"
	"psycenter/internal/storage"
	"psycenter/internal/transport/http/dto"
)

var (
	ErrPostNotFound = apperr.NotFound("Blog post not found")
	ErrSlugExists   = apperr.Conflict("Slug already exists")
)

type BlogService struct {
	log  *slog.Logger
	repo repository.BlogRepository
	now  func() time.Time
}

func NewBlogService(log *slog.Logger, repo repository.BlogRepository) *BlogService {
	return &BlogService{log: log, repo: repo, now: time.Now}
}

// CreatePost создает новый пост; slug должен быть уникальным
func (s *BlogService) CreatePost(ctx context.Context, req dto.BlogPostRequest) (models.BlogPost, error) {
	const op = "blog_service.CreatePost"
	log := s.log.With(
		slog.String("op", op),
		slog.String("slug", req.Slug),
	)

	log.Info("creating new blog post", slog.String("title", req.Title))

	err := uniqueness.Ensure(ctx, func(ctx context.Context) error {
		_, err := s.repo.BlogPostBySlug(ctx, req.Slug)
		return err
	}, ErrSlugExists)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			log.Warn("slug conflict detected")
		} else {
			log.Error("failed to check slug", sl.Err(err))
		}
		return models.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	post := postFromRequest(req)
	post.ID = uuid.NewString()
	post.CreatedAt = now
	post.UpdatedAt = now

	if err := s.repo.SaveBlogPost(ctx, post); err != nil {
		err = uniqueness.FromStorage(err, ErrSlugExists)
		if apperr.KindOf(err) != apperr.KindConflict {
			log.Error("failed to create post", sl.Err(err))
		}
		return models.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post created successfully", slog.String("post_id", post.ID))

	return post, nil
}

// UpdatePost replaces the post content and refreshes updated_at. The slug is
// not pre-checked here; a collision is still refused by the store.
func (s *BlogService) UpdatePost(ctx context.Context, id string, req dto.BlogPostRequest) (models.BlogPost, error) {
	const op = "blog_service.UpdatePost"
	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", id),
	)

	existing, err := s.GetPostByID(ctx, id)
	if err != nil {
		return models.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	post := postFromRequest(req)
	post.ID = existing.ID
	post.CreatedAt = existing.CreatedAt
	post.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateBlogPost(ctx, post); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.BlogPost{}, fmt.Errorf("%s: %w", op, ErrPostNotFound)
		}
		err = uniqueness.FromStorage(err, ErrSlugExists)
		if apperr.KindOf(err) != apperr.KindConflict {
			log.Error("failed to update post", sl.Err(err))
		}
		return models.BlogPost{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post updated")

	return post, nil
}

func (s *BlogService) DeletePost(ctx context.Context, id string) error {
	const op = "blog_service.DeletePost"

	if err := s.repo.DeleteBlogPost(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrPostNotFound)
		}
		s.log.Error("failed to delete post", slog.String("op", op), slog.String("post_id", id), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("post deleted", slog.String("op", op), slog.String("post_id", id))

	return nil
}

func (s *BlogService) GetPostByID(ctx context.Context, id string) (models.BlogPost, error) {
	const op = "blog_service.GetPostByID"

	post, err := s.repo.BlogPostByID(ctx, id)
	if err != nil {
		return models.BlogPost{}, s.lookupErr(op, err)
	}

	return post, nil
}

func (s *BlogService) GetPostBySlug(ctx context.Context, slug string) (models.BlogPost, error) {
	const op = "blog_service.GetPostBySlug"

	post, err := s.repo.BlogPostBySlug(ctx, slug)
	if err != nil {
		return models.BlogPost{}, s.lookupErr(op, err)
	}

	return post, nil
}

func (s *BlogService) ListPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	const op = "blog_service.ListPosts"

	posts, err := s.repo.BlogPosts(ctx, models.BlogFilter{PublishedOnly: publishedOnly})
	if err != nil {
		s.log.Error("failed to list posts", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return posts, nil
}

func (s *BlogService) lookupErr(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrPostNotFound)
	}
	s.log.Error("failed to get post", slog.String("op", op), sl.Err(err))
	return fmt.Errorf("%s: %w", op, err)
}

func postFromRequest(req dto.BlogPostRequest) models.BlogPost {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	return models.BlogPost{
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Author:    req.Author,
		Tags:      tags,
		ImageURL:  req.ImageURL,
		Published: req.Published,
	}
}
