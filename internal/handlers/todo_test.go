package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	dom "github.com/appdotbuilder/simple-todo-4b0a/internal/domain"
	"github.com/appdotbuilder/simple-todo-4b0a/internal/dto"
	"github.com/appdotbuilder/simple-todo-4b0a/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	nextID int64
	now    time.Time
	rows   map[int64]dom.Todo
}

func newMemRepo() *memRepo {
	return &memRepo{
		nextID: 1,
		now:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		rows:   make(map[int64]dom.Todo),
	}
}

func (m *memRepo) tick() time.Time {
	m.now = m.now.Add(time.Millisecond)
	return m.now
}

func (m *memRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	ts := m.tick()
	t.ID = m.nextID
	m.nextID++
	t.CreatedAt = ts
	t.UpdatedAt = ts
	m.rows[t.ID] = t
	return t, nil
}

func (m *memRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	t, ok := m.rows[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	return t, nil
}

func (m *memRepo) List(ctx context.Context) ([]dom.Todo, error) {
	var list []dom.Todo
	for _, t := range m.rows {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (m *memRepo) Update(ctx context.Context, id int64, row dom.Todo) (dom.Todo, error) {
	existing, ok := m.rows[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	row.ID = id
	row.CreatedAt = existing.CreatedAt
	row.UpdatedAt = m.tick()
	m.rows[id] = row
	return row, nil
}

func (m *memRepo) Delete(ctx context.Context, id int64) (bool, error) {
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTodoHandler(service.NewTodoService(newMemRepo(), nil))
	api := r.Group("/api/v1")
	api.POST("/todos", h.Create)
	api.GET("/todos", h.List)
	api.GET("/todos/:id", h.GetByID)
	api.PATCH("/todos/:id", h.Update)
	api.DELETE("/todos/:id", h.Delete)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTodoHandler_Create(t *testing.T) {
	t.Run("created with defaults", func(t *testing.T) {
		r := newTestRouter()
		w := doRequest(t, r, http.MethodPost, "/api/v1/todos", `{"title":"Buy milk"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp dto.TodoResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Buy milk", resp.Title)
		assert.Nil(t, resp.Description)
		assert.False(t, resp.Completed)
	})

	t.Run("description persisted", func(t *testing.T) {
		r := newTestRouter()
		w := doRequest(t, r, http.MethodPost, "/api/v1/todos", `{"title":"Call mom","description":"on Sunday"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp dto.TodoResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Description)
		assert.Equal(t, "on Sunday", *resp.Description)
	})

	t.Run("missing title is 400", func(t *testing.T) {
		r := newTestRouter()
		w := doRequest(t, r, http.MethodPost, "/api/v1/todos", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("whitespace title is 400", func(t *testing.T) {
		r := newTestRouter()
		w := doRequest(t, r, http.MethodPost, "/api/v1/todos", `{"title":"   "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTodoHandler_GetByID(t *testing.T) {
	r := newTestRouter()
	w := doRequest(t, r, http.MethodPost, "/api/v1/todos", `{"title":"One"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("found", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/v1/todos/1", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.TodoResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "One", resp.Title)
	})

	t.Run("missing id is 200 null, not 404", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/v1/todos/999", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))
	})

	t.Run("invalid id is 400", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/v1/todos/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTodoHandler_List(t *testing.T) {
	r := newTestRouter()
	for _, title := range []string{"A", "B", "C"} {
		w := doRequest(t, r, http.MethodPost, "/api/v1/todos", `{"title":"`+title+`"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doRequest(t, r, http.MethodGet, "/api/v1/todos", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ListTodosResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "C", resp.Items[0].Title)
	assert.Equal(t, "B", resp.Items[1].Title)
	assert.Equal(t, "A", resp.Items[2].Title)
}

func TestTodoHandler_Update(t *testing.T) {
	setup := func(t *testing.T) *gin.Engine {
		t.Helper()
		r := newTestRouter()
		w := doRequest(t, r, http.MethodPost, "/api/v1/todos", `{"title":"X","description":"Y"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		return r
	}

	t.Run("completed only, rest preserved", func(t *testing.T) {
		r := setup(t)
		w := doRequest(t, r, http.MethodPatch, "/api/v1/todos/1", `{"completed":true}`)
		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.TodoResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "X", resp.Title)
		require.NotNil(t, resp.Description)
		assert.Equal(t, "Y", *resp.Description)
		assert.True(t, resp.Completed)
	})

	t.Run("description null clears it", func(t *testing.T) {
		r := setup(t)
		w := doRequest(t, r, http.MethodPatch, "/api/v1/todos/1", `{"description":null}`)
		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.TodoResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Nil(t, resp.Description)
		assert.Equal(t, "X", resp.Title)
	})

	t.Run("empty title is 400", func(t *testing.T) {
		r := setup(t)
		w := doRequest(t, r, http.MethodPatch, "/api/v1/todos/1", `{"title":"  "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing id is 200 null", func(t *testing.T) {
		r := setup(t)
		w := doRequest(t, r, http.MethodPatch, "/api/v1/todos/999", `{"completed":true}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))
	})
}

func TestTodoHandler_Delete(t *testing.T) {
	r := newTestRouter()
	w := doRequest(t, r, http.MethodPost, "/api/v1/todos", `{"title":"Gone soon"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("first delete reports true", func(t *testing.T) {
		w := doRequest(t, r, http.MethodDelete, "/api/v1/todos/1", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.DeleteTodoResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Deleted)
	})

	t.Run("second delete reports false with 200", func(t *testing.T) {
		w := doRequest(t, r, http.MethodDelete, "/api/v1/todos/1", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.DeleteTodoResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Deleted)
	})

	t.Run("invalid id is 400", func(t *testing.T) {
		w := doRequest(t, r, http.MethodDelete, "/api/v1/todos/zero", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
