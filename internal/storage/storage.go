// internal/storage/storage.go
package storage

import (
	"context"
	"errors"

	"chordbook/internal/models"
)

var ErrSongNotFound = errors.New("song not found")

//go:generate mockgen -destination=mocks/mock_storage.go -package=mock_storage chordbook/internal/storage DocumentStore

// DocumentStore is the remote collection the catalog is loaded from and
// written back to.
type DocumentStore interface {
	FetchAll(ctx context.Context, collection string) ([]models.Song, error)
	Insert(ctx context.Context, collection string, fields models.SongFields) (string, error)
	Replace(ctx context.Context, collection string, id string, fields models.SongFields) error
}
