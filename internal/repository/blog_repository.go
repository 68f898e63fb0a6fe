package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"

	"psycenter/internal/domain/models"
)

const blogTable = "blog_posts"

var blogColumns = []string{
	"id", "title", "slug", "excerpt", "content", "author",
	"tags", "image_url", "published", "created_at", "updated_at",
}

type BlogRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewBlogRepository(db *pgxpool.Pool) *BlogRepo {
	return &BlogRepo{db: db, sb: builder()}
}

func scanBlogPost(row rowScanner) (models.BlogPost, error) {
	var post models.BlogPost
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Excerpt,
		&post.Content,
		&post.Author,
		&post.Tags,
		&post.ImageURL,
		&post.Published,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	return post, err
}

func (b *BlogRepo) SaveBlogPost(ctx context.Context, post models.BlogPost) error {
	const op = "repository.blog_repository.SaveBlogPost"

	query, args, err := b.sb.Insert(blogTable).
		Columns(blogColumns...).
		Values(
			post.ID,
			post.Title,
			post.Slug,
			post.Excerpt,
			post.Content,
			post.Author,
			nonNil(post.Tags),
			post.ImageURL,
			post.Published,
			post.CreatedAt,
			post.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	if _, err := b.db.Exec(ctx, query, args...); err != nil {
		return translate(op, err)
	}

	return nil
}

// UpdateBlogPost replaces every field except id and created_at. A slug taken
// by another post is rejected by the unique index.
func (b *BlogRepo) UpdateBlogPost(ctx context.Context, post models.BlogPost) error {
	const op = "repository.blog_repository.UpdateBlogPost"

	return execAffecting(ctx, b.db, op, b.sb.Update(blogTable).
		Set("title", post.Title).
		Set("slug", post.Slug).
		Set("excerpt", post.Excerpt).
		Set("content", post.Content).
		Set("author", post.Author).
		Set("tags", nonNil(post.Tags)).
		Set("image_url", post.ImageURL).
		Set("published", post.Published).
		Set("updated_at", post.UpdatedAt).
		Where(sq.Eq{"id": post.ID}))
}

// DeleteBlogPost -> обычное удаление из базы данных
func (b *BlogRepo) DeleteBlogPost(ctx context.Context, id string) error {
	const op = "repository.blog_repository.DeleteBlogPost"

	return execAffecting(ctx, b.db, op, b.sb.Delete(blogTable).Where(sq.Eq{"id": id}))
}

func (b *BlogRepo) BlogPostByID(ctx context.Context, id string) (models.BlogPost, error) {
	return b.blogPostBy(ctx, "repository.blog_repository.BlogPostByID", sq.Eq{"id": id})
}

func (b *BlogRepo) BlogPostBySlug(ctx context.Context, slug string) (models.BlogPost, error) {
	return b.blogPostBy(ctx, "repository.blog_repository.BlogPostBySlug", sq.Eq{"slug": slug})
}

func (b *BlogRepo) blogPostBy(ctx context.Context, op string, where sq.Eq) (models.BlogPost, error) {
	query, args, err := b.sb.Select(blogColumns...).
		From(blogTable).
		Where(where).
		ToSql()
	if err != nil {
		return models.BlogPost{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	post, err := scanBlogPost(b.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.BlogPost{}, translate(op, err)
	}

	return post, nil
}

func (b *BlogRepo) BlogPosts(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, error) {
	const op = "repository.blog_repository.BlogPosts"

	queryBuilder := b.sb.Select(blogColumns...).From(blogTable)

	if filter.PublishedOnly {
		queryBuilder = queryBuilder.Where(sq.Eq{"published": true})
	}

	query, args, err := queryBuilder.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := b.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(op, err)
	}
	defer rows.Close()

	posts := make([]models.BlogPost, 0)
	for rows.Next() {
		post, err := scanBlogPost(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return posts, nil
}
