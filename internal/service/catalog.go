package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"chordbook/internal/editor"
	"chordbook/internal/lib/logger/utils"
	"chordbook/internal/models"
	"chordbook/internal/record"
	"chordbook/internal/storage"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

var (
	ErrStoreRead  = errors.New("document store read failed")
	ErrStoreWrite = errors.New("document store write failed")

	// ErrSaveInProgress rejects a second save of a form whose write has
	// not returned yet.
	ErrSaveInProgress = errors.New("song form is already being saved")
)

// Catalog is the application state: the songs loaded from the document
// store and the one add/edit form that may be open.
type Catalog struct {
	mu         sync.Mutex
	store      storage.DocumentStore
	collection string
	pageSize   int

	songs   []models.Song
	loading bool
	editor  *editor.Machine
	// sessions with a store write in flight
	saving  map[uint64]struct{}
}

func NewCatalog(store storage.DocumentStore, collection string, pageSize int) *Catalog {
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}
	return &Catalog{
		store:      store,
		collection: collection,
		pageSize:   pageSize,
		songs:      []models.Song{},
		loading:    true,
		editor:     editor.New(),
		saving:     map[uint64]struct{}{},
	}
}

// Load fetches the whole collection. On failure the catalog stays usable
// with no songs.
func (c *Catalog) Load(ctx context.Context) error {
	utils.Logger.Debug("Catalog.Load", zap.String("collection", c.collection))

	songs, err := c.store.FetchAll(ctx, c.collection)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		utils.Logger.Error("Catalog.Load - store.FetchAll failed", zap.Error(err), zap.String("collection", c.collection))
		c.songs = []models.Song{}
		return fmt.Errorf("Catalog.Load - store.FetchAll failed: %w: %w", ErrStoreRead, err)
	}
	if songs == nil {
		songs = []models.Song{}
	}
	c.songs = songs
	utils.Logger.Info("Catalog.Load - songs loaded", zap.Int("count", len(songs)))
	return nil
}

func (c *Catalog) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func matches(song models.Song, filter *models.SongFilter) bool {
	if filter == nil {
		return true
	}
	if q := strings.ToLower(filter.Query); q != "" {
		if !strings.Contains(strings.ToLower(song.Title), q) && !strings.Contains(strings.ToLower(song.Creator), q) {
			return false
		}
	}
	if !anyValue(filter.Language) && song.Language != filter.Language {
		return false
	}
	if !anyValue(filter.Type) && song.Type != filter.Type {
		return false
	}
	return true
}

func anyValue(v string) bool {
	return v == "" || strings.EqualFold(v, "all")
}

// Songs returns one page of the songs matching filter. A missing page size
// falls back to the catalog's.
func (c *Catalog) Songs(filter *models.SongFilter, pagination *models.Pagination) models.SongPage {
	page, size := 1, c.pageSize
	if pagination != nil {
		page = pagination.Page
		if pagination.PageSize > 0 {
			size = pagination.PageSize
		}
	}
	pagination = models.NewPagination(page, size)

	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := lo.Filter(c.songs, func(song models.Song, _ int) bool {
		return matches(song, filter)
	})
	start, end := pagination.Window(len(filtered))

	return models.SongPage{
		Songs:   append([]models.Song{}, filtered[start:end]...),
		Total:   len(filtered),
		HasMore: end < len(filtered),
		Loading: c.loading,
	}
}

type Facets struct {
	Languages []string `json:"languages"`
	Types     []string `json:"types"`
}

// Facets lists the distinct non-empty languages and types in first-seen order.
func (c *Catalog) Facets() Facets {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Facets{
		Languages: lo.Uniq(lo.Compact(lo.Map(c.songs, func(s models.Song, _ int) string { return s.Language }))),
		Types:     lo.Uniq(lo.Compact(lo.Map(c.songs, func(s models.Song, _ int) string { return s.Type }))),
	}
}

func (c *Catalog) find(id string) (int, bool) {
	for i := range c.songs {
		if c.songs[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (c *Catalog) Song(id string) (models.Song, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.find(id)
	if !ok {
		return models.Song{}, storage.ErrSongNotFound
	}
	return c.songs[i], nil
}

// Sections returns the detail view of a song for chords or lyrics.
func (c *Catalog) Sections(id string, kind models.ListKind) ([]record.VisibleSection, error) {
	song, err := c.Song(id)
	if err != nil {
		return nil, err
	}
	return record.Visible(song, kind), nil
}
