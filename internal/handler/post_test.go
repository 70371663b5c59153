package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-blog-api/internal/model"
	"github.com/iliyamo/movie-blog-api/internal/queue"
	"github.com/iliyamo/movie-blog-api/internal/repository"
)

// fakePostStore is an in-memory PostStore mirroring the repository's
// not-found semantics.
type fakePostStore struct {
	byID   map[uint64]*model.Post
	nextID uint64
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{byID: map[uint64]*model.Post{}, nextID: 1}
}

func (s *fakePostStore) List(_ context.Context) ([]*model.Post, error) {
	var out []*model.Post
	for id := uint64(1); id < s.nextID; id++ {
		if p, ok := s.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePostStore) GetByID(_ context.Context, id uint64) (*model.Post, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	return p, nil
}

func (s *fakePostStore) Create(_ context.Context, p *model.Post) error {
	p.ID = s.nextID
	p.CreatedAt = time.Now().UTC()
	s.byID[p.ID] = p
	s.nextID++
	return nil
}

func (s *fakePostStore) Update(_ context.Context, p *model.Post) error {
	old, ok := s.byID[p.ID]
	if !ok {
		return repository.ErrPostNotFound
	}
	p.CreatedAt = old.CreatedAt
	s.byID[p.ID] = p
	return nil
}

func (s *fakePostStore) Delete(_ context.Context, id uint64) error {
	if _, ok := s.byID[id]; !ok {
		return repository.ErrPostNotFound
	}
	delete(s.byID, id)
	return nil
}

func testPostHandler() (*PostHandler, *fakePostStore, *[]queue.PostCreatedEvent) {
	store := newFakePostStore()
	var published []queue.PostCreatedEvent
	h := &PostHandler{
		Posts: store,
		Publish: func(_ context.Context, ev queue.PostCreatedEvent) error {
			published = append(published, ev)
			return nil
		},
	}
	return h, store, &published
}

func request(e *echo.Echo, method, target, body string, uid uint64) (echo.Context, *httptest.ResponseRecorder) {
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != 0 {
		c.Set("user_id", uid)
	}
	return c, rec
}

func TestListPosts_Empty(t *testing.T) {
	h, _, _ := testPostHandler()
	e := echo.New()

	c, rec := request(e, http.MethodGet, "/v1/posts", "", 0)
	require.NoError(t, h.ListPosts(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestCreatePost_RequiresIdentity(t *testing.T) {
	h, store, published := testPostHandler()
	e := echo.New()

	c, rec := request(e, http.MethodPost, "/v1/posts", `{"title":"t","content":"c"}`, 0)
	require.NoError(t, h.CreatePost(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, store.byID)
	assert.Empty(t, *published)
}

func TestCreatePost_Success(t *testing.T) {
	h, store, published := testPostHandler()
	e := echo.New()

	body := `{"title":"Blade Runner revisited","content":"still great","movie_title":"Blade Runner","release_date":"1982-06-25","director":"Ridley Scott","genre":"sci-fi"}`
	c, rec := request(e, http.MethodPost, "/v1/posts", body, 7)
	require.NoError(t, h.CreatePost(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"post_id":1`)

	p := store.byID[1]
	require.NotNil(t, p)
	assert.Equal(t, "Blade Runner", p.MovieTitle)

	require.Len(t, *published, 1)
	ev := (*published)[0]
	assert.Equal(t, uint64(1), ev.PostID)
	assert.Equal(t, uint64(7), ev.AuthorID)
}

func TestCreatePost_MissingFields(t *testing.T) {
	h, _, published := testPostHandler()
	e := echo.New()

	for _, body := range []string{`{}`, `{"title":"t"}`, `{"content":"c"}`, `{"title":" ","content":"c"}`} {
		c, rec := request(e, http.MethodPost, "/v1/posts", body, 7)
		require.NoError(t, h.CreatePost(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
	assert.Empty(t, *published)
}

func TestGetPost(t *testing.T) {
	h, store, _ := testPostHandler()
	e := echo.New()
	store.byID[1] = &model.Post{ID: 1, Title: "t", Content: "c"}
	store.nextID = 2

	c, rec := request(e, http.MethodGet, "/v1/posts/1", "", 0)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.GetPost(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = request(e, http.MethodGet, "/v1/posts/99", "", 0)
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.GetPost(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = request(e, http.MethodGet, "/v1/posts/abc", "", 0)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.GetPost(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdatePost(t *testing.T) {
	h, store, _ := testPostHandler()
	e := echo.New()
	store.byID[1] = &model.Post{ID: 1, Title: "old", Content: "old"}
	store.nextID = 2

	c, rec := request(e, http.MethodPut, "/v1/posts/1", `{"title":"new","content":"fresh"}`, 7)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdatePost(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "new", store.byID[1].Title)

	c, rec = request(e, http.MethodPut, "/v1/posts/42", `{"title":"new","content":"fresh"}`, 7)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.UpdatePost(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletePost(t *testing.T) {
	h, store, _ := testPostHandler()
	e := echo.New()
	store.byID[1] = &model.Post{ID: 1, Title: "t", Content: "c"}
	store.nextID = 2

	c, rec := request(e, http.MethodDelete, "/v1/posts/1", "", 7)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.DeletePost(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.byID)

	c, rec = request(e, http.MethodDelete, "/v1/posts/1", "", 7)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.DeletePost(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
