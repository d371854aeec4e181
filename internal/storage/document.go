package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"chordbook/internal/models"
)

// legacyRow is the array-shaped section entry written by early revisions.
type legacyRow struct {
	Section string `json:"section"`
	Content string `json:"content"`
}

type rawDocument struct {
	Title        string          `json:"title"`
	Creator      string          `json:"creator"`
	Language     string          `json:"language"`
	Type         string          `json:"type"`
	Chords       json.RawMessage `json:"chords"`
	Lyrics       json.RawMessage `json:"lyrics"`
	SectionOrder []string        `json:"sectionOrder"`
	LyricsOrder  []string        `json:"lyricsOrder"`
}

// DecodeDocument turns a stored document into a Song. It is the only place
// that understands the array-shaped chords/lyrics of legacy records: those
// become a map, and when the matching order array is missing the array
// position supplies it.
func DecodeDocument(id string, data []byte) (models.Song, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Song{}, fmt.Errorf("DecodeDocument - unmarshal %s failed: %w", id, err)
	}

	song := models.Song{
		ID: id,
		SongFields: models.SongFields{
			Title:        raw.Title,
			Creator:      raw.Creator,
			Language:     raw.Language,
			Type:         raw.Type,
			SectionOrder: raw.SectionOrder,
			LyricsOrder:  raw.LyricsOrder,
		},
	}

	chords, chordOrder, err := decodeSections(raw.Chords)
	if err != nil {
		return models.Song{}, fmt.Errorf("DecodeDocument - chords of %s: %w", id, err)
	}
	lyrics, lyricOrder, err := decodeSections(raw.Lyrics)
	if err != nil {
		return models.Song{}, fmt.Errorf("DecodeDocument - lyrics of %s: %w", id, err)
	}

	song.Chords = chords
	song.Lyrics = lyrics
	if song.SectionOrder == nil && chordOrder != nil {
		song.SectionOrder = chordOrder
	}
	if song.LyricsOrder == nil && lyricOrder != nil {
		song.LyricsOrder = lyricOrder
	}
	return song, nil
}

// decodeSections accepts a map or a legacy array. The order is only
// returned for arrays.
func decodeSections(data json.RawMessage) (map[string]string, []string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]string{}, nil, nil
	}

	if trimmed[0] == '[' {
		var rows []legacyRow
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, nil, err
		}
		content := make(map[string]string, len(rows))
		order := make([]string, 0, len(rows))
		for _, row := range rows {
			if row.Section == "" {
				continue
			}
			content[row.Section] = row.Content
			order = append(order, row.Section)
		}
		return content, order, nil
	}

	content := map[string]string{}
	if err := json.Unmarshal(trimmed, &content); err != nil {
		return nil, nil, err
	}
	return content, nil, nil
}

// EncodeDocument is the inverse of DecodeDocument for current-shape songs.
func EncodeDocument(fields models.SongFields) ([]byte, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("EncodeDocument - marshal failed: %w", err)
	}
	return data, nil
}
