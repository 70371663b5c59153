package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-blog-api/internal/model"
	"github.com/iliyamo/movie-blog-api/internal/queue"
	"github.com/iliyamo/movie-blog-api/internal/repository"
	queue_publisher "github.com/iliyamo/movie-blog-api/internal/service"
)

// PostStore is the data store the post endpoints depend on. It is satisfied
// by *repository.PostRepo; tests substitute an in-memory fake.
type PostStore interface {
	List(ctx context.Context) ([]*model.Post, error)
	GetByID(ctx context.Context, id uint64) (*model.Post, error)
	Create(ctx context.Context, p *model.Post) error
	Update(ctx context.Context, p *model.Post) error
	Delete(ctx context.Context, id uint64) error
}

// PostHandler bundles dependencies for the blog post endpoints. Publish is
// the event sink for post.created; it defaults to the RabbitMQ publisher and
// is best-effort everywhere it is called.
type PostHandler struct {
	Posts   PostStore
	Publish func(ctx context.Context, event queue.PostCreatedEvent) error
}

func NewPostHandler(p PostStore) *PostHandler {
	return &PostHandler{Posts: p, Publish: queue_publisher.PublishPostCreated}
}

type postReq struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	MovieTitle  string `json:"movie_title"`
	ReleaseDate string `json:"release_date"`
	Director    string `json:"director"`
	Genre       string `json:"genre"`
}

// ListPosts handles GET /v1/posts and returns all posts.
func (h *PostHandler) ListPosts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Posts.List(ctx)
	if err != nil {
		log.Printf("posts: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch posts"})
	}
	if items == nil {
		items = []*model.Post{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetPost handles GET /v1/posts/:id.
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		log.Printf("posts: get %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch post"})
	}
	return c.JSON(http.StatusOK, p)
}

// CreatePost handles POST /v1/posts. The route is protected, so the author
// is the authenticated user. A post.created event is published best-effort;
// a broker outage never fails the request.
func (h *PostHandler) CreatePost(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req postReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and content are required"})
	}

	p := &model.Post{
		Title:       req.Title,
		Content:     req.Content,
		MovieTitle:  strings.TrimSpace(req.MovieTitle),
		ReleaseDate: strings.TrimSpace(req.ReleaseDate),
		Director:    strings.TrimSpace(req.Director),
		Genre:       strings.TrimSpace(req.Genre),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Posts.Create(ctx, p); err != nil {
		log.Printf("posts: create: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create post"})
	}

	_ = h.Publish(ctx, queue.PostCreatedEvent{
		PostID:     p.ID,
		AuthorID:   uid,
		Title:      p.Title,
		MovieTitle: p.MovieTitle,
		CreatedAt:  p.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{"message": "post created", "post_id": p.ID})
}

// UpdatePost handles PUT /v1/posts/:id and rewrites all mutable fields.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req postReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and content are required"})
	}

	p := &model.Post{
		ID:          id,
		Title:       req.Title,
		Content:     req.Content,
		MovieTitle:  strings.TrimSpace(req.MovieTitle),
		ReleaseDate: strings.TrimSpace(req.ReleaseDate),
		Director:    strings.TrimSpace(req.Director),
		Genre:       strings.TrimSpace(req.Genre),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Posts.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		log.Printf("posts: update %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update post"})
	}

	updated, err := h.Posts.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"message": "post updated"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeletePost handles DELETE /v1/posts/:id.
func (h *PostHandler) DeletePost(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		log.Printf("posts: delete %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete post"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "post deleted"})
}
