// internal/models/song.go
package models

import "fmt"

// Song is a persisted chord/lyric sheet. ID is assigned by the document store.
type Song struct {
	ID string `json:"id"`
	SongFields
}

// SongFields is the stored document without its identifier.
//
// A nil order slice means the field is absent from the stored document,
// an empty slice means it is present and empty.
type SongFields struct {
	Title        string            `json:"title"`
	Creator      string            `json:"creator"`
	Language     string            `json:"language"`
	Type         string            `json:"type"`
	Chords       map[string]string `json:"chords"`
	Lyrics       map[string]string `json:"lyrics"`
	SectionOrder []string          `json:"sectionOrder"`
	LyricsOrder  []string          `json:"lyricsOrder"`
}

const (
	DefaultLanguage = "English"
	DefaultType     = "Fast Song"
)

// Choices offered by the add/edit form. Stored values are not restricted to these.
var (
	Languages = []string{"English", "Tagalog"}
	Types     = []string{"Fast Song", "Slow Song"}
)

// ListKind selects the chords or the lyrics half of a song.
type ListKind string

const (
	Chords ListKind = "chords"
	Lyrics ListKind = "lyrics"
)

func ParseListKind(s string) (ListKind, error) {
	switch ListKind(s) {
	case Chords, Lyrics:
		return ListKind(s), nil
	}
	return "", fmt.Errorf("unknown list kind %q", s)
}

// Other returns the opposite list kind.
func (k ListKind) Other() ListKind {
	if k == Chords {
		return Lyrics
	}
	return Chords
}

// Content returns the section map of the given kind.
func (f *SongFields) Content(kind ListKind) map[string]string {
	if kind == Lyrics {
		return f.Lyrics
	}
	return f.Chords
}

// Order returns the order array of the given kind, nil when absent.
func (f *SongFields) Order(kind ListKind) []string {
	if kind == Lyrics {
		return f.LyricsOrder
	}
	return f.SectionOrder
}

type SongFilter struct {
	Query    string
	Language string
	Type     string
}
