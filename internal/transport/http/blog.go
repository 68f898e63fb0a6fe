package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"psycenter/internal/transport/http/dto"
	"psycenter/internal/transport/http/dto/response"
)

// ListPosts godoc
// @Summary Список статей блога
// @Tags blog
// @Produce json
// @Param published_only query bool false "Только опубликованные" default(true)
// @Success 200 {array} models.BlogPost
// @Failure 400 {object} response.ErrorResponse
// @Router /api/blog [get]
func (r *Routers) ListPosts(c echo.Context) error {
	const op = "http.routers.ListPosts"
	log := r.log.With(slog.String("op", op))

	publishedOnly := true
	if raw := c.QueryParam("published_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("validation", "published_only must be a boolean"))
		}
		publishedOnly = v
	}

	posts, err := r.Blog.ListPosts(c.Request().Context(), publishedOnly)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, posts)
}

// GetPostBySlug godoc
// @Summary Статья по slug
// @Tags blog
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} response.ErrorResponse
// @Router /api/blog/{slug} [get]
func (r *Routers) GetPostBySlug(c echo.Context) error {
	const op = "http.routers.GetPostBySlug"
	log := r.log.With(slog.String("op", op), slog.String("slug", c.Param("slug")))

	post, err := r.Blog.GetPostBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, post)
}

// GetPostByID godoc
// @Summary Статья по id
// @Tags blog
// @Produce json
// @Param id path string true "ID статьи"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} response.ErrorResponse
// @Router /api/blog/id/{id} [get]
func (r *Routers) GetPostByID(c echo.Context) error {
	const op = "http.routers.GetPostByID"
	log := r.log.With(slog.String("op", op), slog.String("post_id", c.Param("id")))

	post, err := r.Blog.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, post)
}

// CreatePost godoc
// @Summary Новая статья
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BlogPostRequest true "Статья"
// @Success 200 {object} models.BlogPost
// @Failure 400 {object} response.ErrorResponse "Slug уже занят"
// @Router /api/blog [post]
func (r *Routers) CreatePost(c echo.Context) error {
	const op = "http.routers.CreatePost"
	log := r.log.With(slog.String("op", op))

	var req dto.BlogPostRequest
	if ok, err := r.bind(c, log, &req); !ok {
		return err
	}

	post, err := r.Blog.CreatePost(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, post)
}

// UpdatePost godoc
// @Summary Обновление статьи
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID статьи"
// @Param request body dto.BlogPostRequest true "Статья"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} response.ErrorResponse
// @Router /api/blog/{id} [put]
func (r *Routers) UpdatePost(c echo.Context) error {
	const op = "http.routers.UpdatePost"
	log := r.log.With(slog.String("op", op), slog.String("post_id", c.Param("id")))

	var req dto.BlogPostRequest
	if ok, err := r.bind(c, log, &req); !ok {
		return err
	}

	post, err := r.Blog.UpdatePost(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Удаление статьи
// @Tags blog
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID статьи"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /api/blog/{id} [delete]
func (r *Routers) DeletePost(c echo.Context) error {
	const op = "http.routers.DeletePost"
	log := r.log.With(slog.String("op", op), slog.String("post_id", c.Param("id")))

	if err := r.Blog.DeletePost(c.Request().Context(), c.Param("id")); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "Blog post deleted"})
}
