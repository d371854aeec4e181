// Package record converts between the editor's ordered section rows and the
// persisted map-plus-order representation of a song.
package record

import (
	"strings"

	"golang.org/x/exp/slices"

	"chordbook/internal/models"
)

// Sections is the persisted, keyed form of a song's chords and lyrics.
type Sections struct {
	Chords       map[string]string `json:"chords"`
	Lyrics       map[string]string `json:"lyrics"`
	SectionOrder []string          `json:"sectionOrder"`
	LyricsOrder  []string          `json:"lyricsOrder"`
}

// Apply copies the sections into f, replacing whatever was there.
func (s Sections) Apply(f *models.SongFields) {
	f.Chords = s.Chords
	f.Lyrics = s.Lyrics
	f.SectionOrder = s.SectionOrder
	f.LyricsOrder = s.LyricsOrder
}

// IsCanonical reports whether name is one of models.CanonicalSections.
func IsCanonical(name string) bool {
	return slices.Contains(models.CanonicalSections, name)
}

// ResolveName returns the effective section name of a row.
func ResolveName(row models.EditableSection) string {
	if row.Custom {
		return strings.TrimSpace(row.CustomSection)
	}
	return row.Section
}

// Serialize builds the persisted sections from the chords and lyrics rows.
// Rows resolving to an empty name are dropped. A repeated name keeps every
// position in the order array while the map holds the last content.
func Serialize(chords, lyrics []models.EditableSection) Sections {
	chordMap, chordOrder := serializeList(chords)
	lyricMap, lyricOrder := serializeList(lyrics)
	return Sections{
		Chords:       chordMap,
		Lyrics:       lyricMap,
		SectionOrder: chordOrder,
		LyricsOrder:  lyricOrder,
	}
}

func serializeList(rows []models.EditableSection) (map[string]string, []string) {
	content := make(map[string]string, len(rows))
	order := make([]string, 0, len(rows))
	for _, row := range rows {
		name := ResolveName(row)
		if name == "" {
			continue
		}
		content[name] = row.Content
		order = append(order, name)
	}
	return content, order
}

// orderFor returns the order array used for kind. A song without the kind's
// own array (legacy records have no lyricsOrder) borrows the other one.
func orderFor(song models.Song, kind models.ListKind) []string {
	if order := song.Order(kind); order != nil {
		return order
	}
	return song.Order(kind.Other())
}

// Deserialize rebuilds the editor rows of one kind from a stored song.
func Deserialize(song models.Song, kind models.ListKind) []models.EditableSection {
	order := orderFor(song, kind)
	content := song.Content(kind)

	rows := make([]models.EditableSection, 0, len(order))
	for _, name := range order {
		// missing keys read as "" from a nil or partial map
		text := content[name]
		if IsCanonical(name) {
			rows = append(rows, models.CanonicalRow(name, text))
		} else {
			rows = append(rows, models.CustomRow(name, text))
		}
	}
	return rows
}
