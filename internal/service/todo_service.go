package service

import (
	"context"
	"errors"
	"strings"

	dom "github.com/appdotbuilder/simple-todo-4b0a/internal/domain"
	"github.com/appdotbuilder/simple-todo-4b0a/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"

	"github.com/appdotbuilder/simple-todo-4b0a/internal/cache"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmptyTitle = errors.New("title must not be empty")
)

// TodoPatch is a partial update. A nil pointer leaves the stored value
// untouched. Description carries an extra set-flag so that "clear the
// description" (DescriptionSet with nil Description) stays distinct from
// "don't touch it" (DescriptionSet false).
type TodoPatch struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Completed      *bool
}

type TodoService struct {
	repo  repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache) *TodoService {
	return &TodoService{repo: r, cache: c}
}

func (s *TodoService) Create(ctx context.Context, title string, desc *string) (dom.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return dom.Todo{}, ErrEmptyTitle
	}
	// An omitted or blank description is stored as NULL, never as "".
	if desc != nil {
		trimmed := strings.TrimSpace(*desc)
		if trimmed == "" {
			desc = nil
		} else {
			desc = &trimmed
		}
	}

	t, err := s.repo.Create(ctx, dom.Todo{
		Title:       title,
		Description: desc,
	})
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TodoService) List(ctx context.Context) ([]dom.Todo, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("list", func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Todo), nil
	}
	return s.repo.List(ctx)
}

func (s *TodoService) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	return t, nil
}

// Update applies the present fields of patch and always advances updated_at,
// even when the patch is empty. An empty patch is a valid request.
func (s *TodoService) Update(ctx context.Context, id int64, patch TodoPatch) (dom.Todo, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	merged := existing
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return dom.Todo{}, ErrEmptyTitle
		}
		merged.Title = title
	}
	if patch.DescriptionSet {
		if patch.Description == nil {
			merged.Description = nil
		} else {
			trimmed := strings.TrimSpace(*patch.Description)
			if trimmed == "" {
				merged.Description = nil
			} else {
				merged.Description = &trimmed
			}
		}
	}
	if patch.Completed != nil {
		merged.Completed = *patch.Completed
	}
	t, err := s.repo.Update(ctx, id, merged)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

// Delete reports whether a row was removed. A missing id is not an error.
func (s *TodoService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidateCache(ctx)
	}
	return deleted, nil
}

func (s *TodoService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}
