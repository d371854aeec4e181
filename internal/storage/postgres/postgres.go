package postgres

import (
	"context"
	"fmt"

	"chordbook/internal/lib/logger/utils"
	"chordbook/internal/models"
	"chordbook/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PgStorage keeps every collection's documents as JSONB rows of one table.
type PgStorage struct {
	pool *pgxpool.Pool
}

func NewPgStorage(pool *pgxpool.Pool) *PgStorage {
	return &PgStorage{pool: pool}
}

// FetchAll returns every document of the collection in insertion order.
func (s *PgStorage) FetchAll(ctx context.Context, collection string) ([]models.Song, error) {
	query := `SELECT id, body FROM documents WHERE collection = $1 ORDER BY created_at, id`

	rows, err := s.pool.Query(ctx, query, collection)
	if err != nil {
		utils.Logger.Error("PgStorage.FetchAll - query failed", zap.Error(err), zap.String("collection", collection))
		return nil, fmt.Errorf("PgStorage.FetchAll - query failed: %w", err)
	}
	defer rows.Close()

	songs := []models.Song{}
	for rows.Next() {
		var id string
		var body []byte
		if err := rows.Scan(&id, &body); err != nil {
			utils.Logger.Error("PgStorage.FetchAll - rows.Scan failed", zap.Error(err))
			return nil, fmt.Errorf("PgStorage.FetchAll - rows.Scan failed: %w", err)
		}
		song, err := storage.DecodeDocument(id, body)
		if err != nil {
			utils.Logger.Warn("PgStorage.FetchAll - skipping undecodable document", zap.Error(err), zap.String("id", id))
			continue
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		utils.Logger.Error("PgStorage.FetchAll - rows.Err failed", zap.Error(err))
		return nil, fmt.Errorf("PgStorage.FetchAll - rows.Err failed: %w", err)
	}

	return songs, nil
}

// Insert stores a new document and returns its generated id.
func (s *PgStorage) Insert(ctx context.Context, collection string, fields models.SongFields) (string, error) {
	body, err := storage.EncodeDocument(fields)
	if err != nil {
		return "", err
	}

	query := `
        INSERT INTO documents (collection, id, body)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	var id string
	err = s.pool.QueryRow(ctx, query, collection, uuid.NewString(), body).Scan(&id)
	if err != nil {
		utils.Logger.Error("PgStorage.Insert - queryRow failed", zap.Error(err), zap.String("collection", collection))
		return "", fmt.Errorf("PgStorage.Insert - queryRow failed: %w", err)
	}
	return id, nil
}

// Replace overwrites the whole document with the given id.
func (s *PgStorage) Replace(ctx context.Context, collection string, id string, fields models.SongFields) error {
	body, err := storage.EncodeDocument(fields)
	if err != nil {
		return err
	}

	query := `
        UPDATE documents
        SET body = $1, updated_at = CURRENT_TIMESTAMP
        WHERE collection = $2 AND id = $3
    `
	result, err := s.pool.Exec(ctx, query, body, collection, id)
	if err != nil {
		utils.Logger.Error("PgStorage.Replace - exec failed", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("PgStorage.Replace - exec failed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrSongNotFound
	}
	return nil
}
