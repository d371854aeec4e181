// Package importer loads a JSON export of song documents into a document
// store, upgrading legacy records on the way in.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"chordbook/internal/lib/logger/utils"
	"chordbook/internal/models"
	"chordbook/internal/record"
	"chordbook/internal/storage"
)

// Result counts the documents of one import run. Skipped documents could
// not be decoded; Failed ones were rejected by the store.
type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

type Importer struct {
	store      storage.DocumentStore
	collection string
}

func New(store storage.DocumentStore, collection string) *Importer {
	return &Importer{store: store, collection: collection}
}

// Normalize rewrites a decoded song in the current shape: both order arrays
// present and every section named by them. Songs with no order array at all
// are returned unchanged, since their sections have no position to keep.
func Normalize(song models.Song) models.SongFields {
	fields := song.SongFields
	if song.SectionOrder == nil && song.LyricsOrder == nil {
		return fields
	}
	chords := record.Deserialize(song, models.Chords)
	lyrics := record.Deserialize(song, models.Lyrics)
	record.Serialize(chords, lyrics).Apply(&fields)
	return fields
}

// Import reads a JSON array of documents from r and inserts each one. The
// store assigns new ids; the exported id is only used in logs. A document
// that fails does not stop the run.
func (im *Importer) Import(ctx context.Context, r io.Reader) (Result, error) {
	var docs []json.RawMessage
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return Result{}, fmt.Errorf("Importer.Import - decode export failed: %w", err)
	}

	var res Result
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("Importer.Import - interrupted after %d documents: %w", i, err)
		}

		id := fmt.Sprintf("#%d", i)
		var head struct {
			ID any `json:"id"`
		}
		if err := json.Unmarshal(doc, &head); err != nil {
			utils.Logger.Warn("Importer.Import - skipping document", zap.String("id", id), zap.Error(err))
			res.Skipped++
			continue
		}
		if head.ID != nil {
			id = fmt.Sprint(head.ID)
		}

		song, err := storage.DecodeDocument(id, doc)
		if err != nil {
			utils.Logger.Warn("Importer.Import - skipping document", zap.String("id", id), zap.Error(err))
			res.Skipped++
			continue
		}

		newID, err := im.store.Insert(ctx, im.collection, Normalize(song))
		if err != nil {
			utils.Logger.Error("Importer.Import - store.Insert failed", zap.String("id", id), zap.Error(err))
			res.Failed++
			continue
		}
		utils.Logger.Debug("Importer.Import - document imported", zap.String("from", id), zap.String("to", newID))
		res.Imported++
	}

	utils.Logger.Info("Importer.Import - done",
		zap.String("collection", im.collection),
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed))
	return res, nil
}
