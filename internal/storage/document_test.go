package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chordbook/internal/models"
	"chordbook/internal/storage"
)

func TestDecodeDocument(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected models.SongFields
	}{
		{
			name: "Current shape",
			body: `{"title":"Amazing Grace","creator":"John Newton","language":"English","type":"Slow Song",
				"chords":{"Intro":"C G"},"lyrics":{"Verse":"Amazing grace"},
				"sectionOrder":["Intro"],"lyricsOrder":["Verse"]}`,
			expected: models.SongFields{
				Title: "Amazing Grace", Creator: "John Newton", Language: "English", Type: "Slow Song",
				Chords:       map[string]string{"Intro": "C G"},
				Lyrics:       map[string]string{"Verse": "Amazing grace"},
				SectionOrder: []string{"Intro"},
				LyricsOrder:  []string{"Verse"},
			},
		},
		{
			name: "Missing lyrics order stays absent",
			body: `{"title":"T","creator":"C","chords":{"Verse":"C G","Chorus":"Am F"},"sectionOrder":["Verse","Chorus"]}`,
			expected: models.SongFields{
				Title: "T", Creator: "C",
				Chords:       map[string]string{"Verse": "C G", "Chorus": "Am F"},
				Lyrics:       map[string]string{},
				SectionOrder: []string{"Verse", "Chorus"},
			},
		},
		{
			name: "Legacy array chords",
			body: `{"title":"T","creator":"C","chords":[{"section":"Verse","content":"G"},{"section":"","content":"lost"},{"section":"Chorus","content":"D"}]}`,
			expected: models.SongFields{
				Title: "T", Creator: "C",
				Chords:       map[string]string{"Verse": "G", "Chorus": "D"},
				Lyrics:       map[string]string{},
				SectionOrder: []string{"Verse", "Chorus"},
			},
		},
		{
			name: "Legacy array keeps explicit order",
			body: `{"chords":[{"section":"Verse","content":"G"},{"section":"Chorus","content":"D"}],"sectionOrder":["Chorus","Verse"],
				"lyrics":[{"section":"Verse","content":"la"}]}`,
			expected: models.SongFields{
				Chords:       map[string]string{"Verse": "G", "Chorus": "D"},
				Lyrics:       map[string]string{"Verse": "la"},
				SectionOrder: []string{"Chorus", "Verse"},
				LyricsOrder:  []string{"Verse"},
			},
		},
		{
			name: "Null sections",
			body: `{"title":"T","chords":null,"lyricsOrder":[]}`,
			expected: models.SongFields{
				Title:       "T",
				Chords:      map[string]string{},
				Lyrics:      map[string]string{},
				LyricsOrder: []string{},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			song, err := storage.DecodeDocument("id-1", []byte(tc.body))
			require.NoError(t, err)
			assert.Equal(t, "id-1", song.ID)
			assert.Equal(t, tc.expected, song.SongFields)
		})
	}
}

func TestDecodeDocument_Invalid(t *testing.T) {
	_, err := storage.DecodeDocument("bad", []byte(`{"chords":"C G"}`))
	assert.Error(t, err)

	_, err = storage.DecodeDocument("bad", []byte(`not json`))
	assert.Error(t, err)
}

func TestEncodeDocument_RoundTrip(t *testing.T) {
	fields := models.SongFields{
		Title:        "Amazing Grace",
		Creator:      "John Newton",
		Language:     "English",
		Type:         "Fast Song",
		Chords:       map[string]string{"Intro": "C G Am F"},
		Lyrics:       map[string]string{},
		SectionOrder: []string{"Intro"},
		LyricsOrder:  []string{},
	}

	data, err := storage.EncodeDocument(fields)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"lyricsOrder":[]`)

	song, err := storage.DecodeDocument("abc123", data)
	require.NoError(t, err)
	assert.Equal(t, fields, song.SongFields)
}
