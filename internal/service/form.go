package service

import (
	"context"
	"fmt"

	"chordbook/internal/editor"
	"chordbook/internal/lib/logger/utils"
	"chordbook/internal/models"
	"chordbook/internal/record"
	"chordbook/internal/storage"

	"go.uber.org/zap"
)

// FormView is a snapshot of the editor for callers outside the lock.
type FormView struct {
	State   editor.State    `json:"state"`
	Session *editor.Session `json:"session,omitempty"`
}

func (c *Catalog) view() FormView {
	current := c.editor.Current()
	if current == nil {
		return FormView{State: editor.Idle}
	}
	session := current.Clone()
	return FormView{State: session.State, Session: &session}
}

func (c *Catalog) Form() FormView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view()
}

func (c *Catalog) OpenCreate() FormView {
	c.mu.Lock()
	defer c.mu.Unlock()

	session := c.editor.OpenCreate()
	utils.Logger.Debug("Catalog.OpenCreate", zap.Uint64("session", session.ID))
	return c.view()
}

func (c *Catalog) OpenEdit(id string) (FormView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.find(id)
	if !ok {
		return FormView{}, fmt.Errorf("Catalog.OpenEdit - %s: %w", id, storage.ErrSongNotFound)
	}
	session := c.editor.OpenEdit(c.songs[i])
	utils.Logger.Debug("Catalog.OpenEdit", zap.Uint64("session", session.ID), zap.String("song_id", id))
	return c.view(), nil
}

func (c *Catalog) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editor.Cancel()
}

func (c *Catalog) SetDetails(d editor.Details) (FormView, error) {
	return c.mutate(func(m *editor.Machine) error { return m.SetDetails(d) })
}

func (c *Catalog) AddRow(kind models.ListKind) (FormView, error) {
	return c.mutate(func(m *editor.Machine) error { return m.AddRow(kind) })
}

// RemoveRow reports false when the row was kept because it is the last one.
func (c *Catalog) RemoveRow(kind models.ListKind, index int) (FormView, bool, error) {
	var removed bool
	view, err := c.mutate(func(m *editor.Machine) error {
		var err error
		removed, err = m.RemoveRow(kind, index)
		return err
	})
	return view, removed, err
}

func (c *Catalog) ChangeField(kind models.ListKind, index int, change editor.Change) (FormView, error) {
	return c.mutate(func(m *editor.Machine) error { return m.ChangeField(kind, index, change) })
}

func (c *Catalog) mutate(fn func(m *editor.Machine) error) (FormView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := fn(c.editor); err != nil {
		return FormView{}, err
	}
	return c.view(), nil
}

// SaveResult is the stored song and whether it was newly created.
type SaveResult struct {
	Song    models.Song
	Created bool
}

// Save validates the open form and writes it to the document store. The
// write is not cancelled with ctx once issued. Only a successful write
// updates the song list and closes the form, and only if the same form is
// still open; a failed write leaves the form untouched for a retry. A form
// has at most one write in flight; a second Save returns ErrSaveInProgress.
func (c *Catalog) Save(ctx context.Context) (SaveResult, error) {
	c.mu.Lock()
	session := c.editor.Current()
	if session == nil {
		c.mu.Unlock()
		return SaveResult{}, editor.ErrNoSession
	}
	if err := record.Validate(session.Title, session.Creator); err != nil {
		c.mu.Unlock()
		utils.Logger.Warn("Catalog.Save - validation failed", zap.Error(err))
		return SaveResult{}, err
	}
	if _, busy := c.saving[session.ID]; busy {
		c.mu.Unlock()
		utils.Logger.Warn("Catalog.Save - save already in progress", zap.Uint64("session", session.ID))
		return SaveResult{}, ErrSaveInProgress
	}
	payload := session.Payload()
	sessionID, songID, state := session.ID, session.SongID, session.State
	c.saving[sessionID] = struct{}{}
	c.mu.Unlock()

	utils.Logger.Debug("Catalog.Save", zap.Uint64("session", sessionID), zap.Stringer("state", state), zap.String("title", payload.Title))

	ctx = context.WithoutCancel(ctx)
	created := state == editor.Creating
	var err error
	if created {
		songID, err = c.store.Insert(ctx, c.collection, payload)
	} else {
		err = c.store.Replace(ctx, c.collection, songID, payload)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.saving, sessionID)

	if err != nil {
		utils.Logger.Error("Catalog.Save - store write failed", zap.Error(err), zap.Uint64("session", sessionID), zap.String("song_id", songID))
		return SaveResult{}, fmt.Errorf("Catalog.Save - store write failed: %w: %w", ErrStoreWrite, err)
	}

	song := models.Song{ID: songID, SongFields: payload}
	if i, ok := c.find(songID); ok && !created {
		c.songs[i] = song
	} else {
		c.songs = append(c.songs, song)
	}
	closed := c.editor.Complete(sessionID)

	utils.Logger.Info("Catalog.Save - song saved", zap.String("song_id", songID), zap.Bool("created", created), zap.Bool("form_closed", closed))
	return SaveResult{Song: song, Created: created}, nil
}
