package noteservice

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/checksum"
	"github.com/starford/laguz/internal/index"
	"github.com/starford/laguz/internal/parser"
	"github.com/starford/laguz/internal/props"
	"github.com/starford/laguz/internal/storage"
)

// NoteDetail is the full representation of a note.
type NoteDetail struct {
	Path        string           `json:"path"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	Checksum    string           `json:"checksum"`
	Tags        []string         `json:"tags"`
	Frontmatter map[string]any   `json:"frontmatter,omitempty"`
	Properties  []props.Property `json:"properties"`
	Backlinks   []string         `json:"backlinks"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// NoteListItem is a lightweight item in a list response.
type NoteListItem struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Checksum  string    `json:"checksum"`
	Tags      []string  `json:"tags"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service coordinates storage and index operations.
type Service struct {
	store  storage.Provider
	db     *index.DB
	parser *parser.Parser
	engine *props.Engine

	onProperty func(path, key string)
}

// NewService creates a new note service.
func NewService(store storage.Provider, db *index.DB, p *parser.Parser) *Service {
	return &Service{store: store, db: db, parser: p, engine: props.NewEngine()}
}

// OnPropertyChange registers a callback invoked after a property mutation has
// been persisted and reindexed. Used to publish realtime events.
func (s *Service) OnPropertyChange(fn func(path, key string)) {
	s.onProperty = fn
}

// GetNote reads a note from storage, parses it, and enriches with backlinks.
func (s *Service) GetNote(_ context.Context, path string) (*NoteDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return s.buildNoteDetail(path, data)
}

// CreateNote writes a new note and indexes it.
func (s *Service) CreateNote(_ context.Context, path string, content []byte) (*NoteDetail, error) {
	if _, err := s.store.Read(path); err == nil {
		return nil, apperr.ErrAlreadyExists
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, content); err != nil {
		return nil, err
	}
	return s.buildNoteDetail(path, content)
}

// UpdateNote writes updated content with optimistic concurrency.
func (s *Service) UpdateNote(_ context.Context, path string, content []byte, ifMatch string) (*NoteDetail, error) {
	existing, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum.Sum(existing) {
		return nil, apperr.ErrConflict
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, content); err != nil {
		return nil, err
	}
	return s.buildNoteDetail(path, content)
}

// DeleteNote removes a note from storage and index.
func (s *Service) DeleteNote(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		return err
	}
	return s.db.DeleteNote(path)
}

// ListNotes returns paginated notes with optional tag filter.
func (s *Service) ListNotes(_ context.Context, limit, offset int, tag, sort string) ([]NoteListItem, int, error) {
	rows, total, err := s.db.ListNotes(limit, offset, tag, sort)
	if err != nil {
		return nil, 0, err
	}
	items := make([]NoteListItem, len(rows))
	for i, r := range rows {
		items[i] = NoteListItem{
			Path:      r.Path,
			Title:     r.Title,
			Checksum:  r.Checksum,
			Tags:      nonNilSlice(r.Tags),
			UpdatedAt: r.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Graph returns all nodes and links for graph visualization.
func (s *Service) Graph(_ context.Context) ([]index.GraphNode, []index.GraphLink, error) {
	return s.db.Graph()
}

// Backlinks returns all note paths that link to the given target.
func (s *Service) Backlinks(_ context.Context, target string) ([]string, error) {
	return s.db.Backlinks(target)
}

// ListProperties parses the note fresh from storage and returns its inline
// properties in document order. Offsets are relative to the full file
// content, so they can be fed back into SetProperty.
func (s *Service) ListProperties(_ context.Context, path string) ([]props.Property, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return s.engine.Parse(string(data)), nil
}

// QueryProperties searches stored properties across the whole index,
// optionally filtered by key and/or kind.
func (s *Service) QueryProperties(_ context.Context, key, kind string, limit int) ([]index.PropertyRow, error) {
	return s.db.QueryProperties(key, kind, limit)
}

// Records returns the grouped property records of one note.
func (s *Service) Records(_ context.Context, path string) ([]index.Record, error) {
	return s.db.Records(path)
}

// SetProperty rewrites the value of the note's nth inline property (0-based,
// document order), persists the updated content, and reindexes the note.
func (s *Service) SetProperty(_ context.Context, path string, propIndex int, newValue string) (*NoteDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	content := string(data)
	parsed := s.engine.Parse(content)
	if propIndex < 0 || propIndex >= len(parsed) {
		return nil, apperr.ErrInvalid
	}
	updated := []byte(props.ReplaceProperty(content, parsed[propIndex], newValue))
	if err := s.store.Write(path, updated); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, updated); err != nil {
		return nil, err
	}
	if s.onProperty != nil {
		s.onProperty(path, parsed[propIndex].Key)
	}
	return s.buildNoteDetail(path, updated)
}

// AddProperty appends a [key::value] property to the end of the given
// 1-indexed line, persists the updated content, and reindexes the note.
// Line 0 targets the last line of the note.
func (s *Service) AddProperty(_ context.Context, path string, line int, key, value string) (*NoteDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	content := string(data)
	lineCount := strings.Count(content, "\n") + 1
	if line == 0 {
		line = lineCount
	}
	if line < 1 || line > lineCount {
		return nil, apperr.ErrInvalid
	}
	updated := []byte(props.InsertProperty(content, line, key, value))
	if err := s.store.Write(path, updated); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, updated); err != nil {
		return nil, err
	}
	if s.onProperty != nil {
		s.onProperty(path, key)
	}
	return s.buildNoteDetail(path, updated)
}

// IndexFile parses data and upserts it into the index.
// Exported so that sync and watcher can reuse it.
func (s *Service) IndexFile(path string, data []byte) error {
	res, err := s.parser.Parse(data)
	if err != nil {
		return err
	}
	cs := checksum.Sum(data)
	return s.db.UpsertNote(index.NoteRow{
		Path:      path,
		Title:     res.Title,
		Checksum:  cs,
		Tags:      nonNilSlice(res.Tags),
		UpdatedAt: time.Now(),
	}, res.Body, res.Links, res.Props)
}

// buildNoteDetail constructs a NoteDetail from raw data without re-reading the file.
func (s *Service) buildNoteDetail(path string, data []byte) (*NoteDetail, error) {
	res, err := s.parser.Parse(data)
	if err != nil {
		return nil, err
	}
	bl, err := s.db.Backlinks(path)
	if err != nil {
		return nil, err
	}
	properties := res.Props
	if properties == nil {
		properties = []props.Property{}
	}
	return &NoteDetail{
		Path:        path,
		Title:       res.Title,
		Content:     string(data),
		Checksum:    checksum.Sum(data),
		Tags:        nonNilSlice(res.Tags),
		Frontmatter: res.Frontmatter,
		Properties:  properties,
		Backlinks:   nonNilSlice(bl),
		UpdatedAt:   time.Now(),
	}, nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
