package record

import (
	"strings"

	"golang.org/x/exp/slices"

	"chordbook/internal/models"
)

// VisibleSection is one numbered section of the song detail view.
type VisibleSection struct {
	Number  int    `json:"number"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Visible lists the sections of kind shown on the detail view: the order
// array entries that have non-blank content. Songs without any order array
// list every map entry by name.
func Visible(song models.Song, kind models.ListKind) []VisibleSection {
	content := song.Content(kind)
	order := orderFor(song, kind)
	if len(order) == 0 {
		order = make([]string, 0, len(content))
		for name := range content {
			order = append(order, name)
		}
		slices.Sort(order)
	}

	sections := make([]VisibleSection, 0, len(order))
	for _, name := range order {
		text := content[name]
		if strings.TrimSpace(text) == "" {
			continue
		}
		sections = append(sections, VisibleSection{
			Number:  len(sections) + 1,
			Name:    name,
			Content: text,
		})
	}
	return sections
}
