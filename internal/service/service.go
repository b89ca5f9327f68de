package service

import (
	"context"
	"fmt"
	"strings"

	"example.com/notetaker/internal/notes"
	"example.com/notetaker/internal/stringsx"
)

// NoteRepo is the persistence dependency; it must be stubbed in unit tests.
type NoteRepo interface {
	List(ctx context.Context) ([]notes.Note, error)
	Create(ctx context.Context, title, content string) (notes.Note, error)
	Get(ctx context.Context, id int64) (notes.Note, error)
	Update(ctx context.Context, id int64, p notes.NotePatch) (notes.Note, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string) ([]notes.Note, error)
}

// Service contains note rules independent from transport/database.
type Service struct {
	repo NoteRepo
}

func New(repo NoteRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]notes.Note, error) {
	return s.repo.List(ctx)
}

// Create requires a non-blank title and content.
func (s *Service) Create(ctx context.Context, title, content string) (notes.Note, error) {
	if stringsx.IsEmpty(title) || stringsx.IsEmpty(content) {
		return notes.Note{}, fmt.Errorf("%w: title and content are required", notes.ErrValidation)
	}
	return s.repo.Create(ctx, title, content)
}

func (s *Service) Get(ctx context.Context, id int64) (notes.Note, error) {
	if id <= 0 {
		return notes.Note{}, notes.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Update applies a partial patch. Absent fields are kept; a present field
// may not be blank, so a note can never lose its title or content.
func (s *Service) Update(ctx context.Context, id int64, p notes.NotePatch) (notes.Note, error) {
	if p.Empty() {
		return notes.Note{}, fmt.Errorf("%w: no fields to update", notes.ErrValidation)
	}
	if p.Title != nil && stringsx.IsEmpty(*p.Title) {
		return notes.Note{}, fmt.Errorf("%w: title must not be blank", notes.ErrValidation)
	}
	if p.Content != nil && stringsx.IsEmpty(*p.Content) {
		return notes.Note{}, fmt.Errorf("%w: content must not be blank", notes.ErrValidation)
	}
	if id <= 0 {
		return notes.Note{}, notes.ErrNotFound
	}
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return notes.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// Search returns notes whose title or content contains q. A blank query
// yields an empty list rather than every note.
func (s *Service) Search(ctx context.Context, q string) ([]notes.Note, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []notes.Note{}, nil
	}
	return s.repo.Search(ctx, q)
}
