// Package editor holds the add/edit song form as a small state machine.
//
// A Machine is not safe for concurrent use; the catalog that owns it
// serializes access.
package editor

import (
	"errors"

	"chordbook/internal/models"
	"chordbook/internal/record"
)

var (
	ErrNoSession = errors.New("no song form is open")
	ErrRowIndex  = errors.New("section row index out of range")
)

type State int

const (
	Idle State = iota
	Creating
	Editing
)

func (s State) String() string {
	switch s {
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	default:
		return "idle"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Details are the scalar fields of the form.
type Details struct {
	Title    string `json:"title"`
	Creator  string `json:"creator"`
	Language string `json:"language"`
	Type     string `json:"type"`
}

// Session is one open add or edit form.
type Session struct {
	ID     uint64                   `json:"id"`
	State  State                    `json:"state"`
	SongID string                   `json:"songId,omitempty"`
	Details
	Chords []models.EditableSection `json:"chords"`
	Lyrics []models.EditableSection `json:"lyrics"`
}

type Machine struct {
	session *Session
	seq     uint64
}

func New() *Machine {
	return &Machine{}
}

func (m *Machine) State() State {
	if m.session == nil {
		return Idle
	}
	return m.session.State
}

// Current returns the open session, or nil when Idle.
func (m *Machine) Current() *Session {
	return m.session
}

// OpenCreate starts a blank add form, replacing any open form.
func (m *Machine) OpenCreate() *Session {
	m.seq++
	m.session = &Session{
		ID:    m.seq,
		State: Creating,
		Details: Details{
			Language: models.DefaultLanguage,
			Type:     models.DefaultType,
		},
		Chords: []models.EditableSection{models.CanonicalRow("Intro", "")},
		Lyrics: []models.EditableSection{models.CanonicalRow("Verse", "")},
	}
	return m.session
}

// OpenEdit starts an edit form seeded from song, replacing any open form.
func (m *Machine) OpenEdit(song models.Song) *Session {
	m.seq++
	m.session = &Session{
		ID:     m.seq,
		State:  Editing,
		SongID: song.ID,
		Details: Details{
			Title:    song.Title,
			Creator:  song.Creator,
			Language: song.Language,
			Type:     song.Type,
		},
		Chords: seedRows(record.Deserialize(song, models.Chords)),
		Lyrics: seedRows(record.Deserialize(song, models.Lyrics)),
	}
	return m.session
}

// every list keeps at least one row
func seedRows(rows []models.EditableSection) []models.EditableSection {
	if len(rows) == 0 {
		return []models.EditableSection{{}}
	}
	return rows
}

// Cancel discards the open form.
func (m *Machine) Cancel() error {
	if m.session == nil {
		return ErrNoSession
	}
	m.session = nil
	return nil
}

// Complete closes the form after a successful save. It reports false when
// the session that issued the save is no longer the open one.
func (m *Machine) Complete(sessionID uint64) bool {
	if m.session == nil || m.session.ID != sessionID {
		return false
	}
	m.session = nil
	return true
}

func (m *Machine) open() (*Session, error) {
	if m.session == nil {
		return nil, ErrNoSession
	}
	return m.session, nil
}

func (m *Machine) SetDetails(d Details) error {
	s, err := m.open()
	if err != nil {
		return err
	}
	s.Details = d
	return nil
}

func (m *Machine) AddRow(kind models.ListKind) error {
	s, err := m.open()
	if err != nil {
		return err
	}
	rows := s.rows(kind)
	*rows = append(*rows, models.EditableSection{})
	return nil
}

// RemoveRow deletes the row at index. Removing the last remaining row of a
// list is a no-op and reports false.
func (m *Machine) RemoveRow(kind models.ListKind, index int) (bool, error) {
	s, err := m.open()
	if err != nil {
		return false, err
	}
	rows := s.rows(kind)
	if index < 0 || index >= len(*rows) {
		return false, ErrRowIndex
	}
	if len(*rows) == 1 {
		return false, nil
	}
	*rows = append((*rows)[:index:index], (*rows)[index+1:]...)
	return true, nil
}

func (m *Machine) ChangeField(kind models.ListKind, index int, change Change) error {
	if err := change.Validate(); err != nil {
		return err
	}
	s, err := m.open()
	if err != nil {
		return err
	}
	rows := *s.rows(kind)
	if index < 0 || index >= len(rows) {
		return ErrRowIndex
	}
	change.apply(&rows[index])
	return nil
}

func (s *Session) rows(kind models.ListKind) *[]models.EditableSection {
	if kind == models.Lyrics {
		return &s.Lyrics
	}
	return &s.Chords
}

// Clone returns a copy that shares no rows with s.
func (s *Session) Clone() Session {
	out := *s
	out.Chords = append([]models.EditableSection(nil), s.Chords...)
	out.Lyrics = append([]models.EditableSection(nil), s.Lyrics...)
	return out
}

// Payload serializes the form into a storable document.
func (s *Session) Payload() models.SongFields {
	fields := models.SongFields{
		Title:    s.Title,
		Creator:  s.Creator,
		Language: s.Language,
		Type:     s.Type,
	}
	record.Serialize(s.Chords, s.Lyrics).Apply(&fields)
	return fields
}
