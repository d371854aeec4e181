package songs

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"chordbook/internal/editor"
	"chordbook/internal/lib/logger/utils"
	"chordbook/internal/lib/response"
	"chordbook/internal/models"
)

// customSentinel is the section value older clients send for "Custom…".
const customSentinel = "__custom__"

// @Summary Get the open song form
// @Tags editor
// @Produce json
// @Success 200 {object} service.FormView
// @Router /editor [get]
func (h *SongHandlers) GetFormHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.catalog.Form())
}

// @Summary Open a blank add-song form
// @Description Replaces any form that is already open.
// @Tags editor
// @Produce json
// @Success 201 {object} service.FormView
// @Router /editor [post]
func (h *SongHandlers) OpenCreateHandler(w http.ResponseWriter, r *http.Request) {
	utils.Logger.Info("OpenCreateHandler called")
	response.JSON(w, http.StatusCreated, h.catalog.OpenCreate())
}

// @Summary Open an edit form for a song
// @Description Replaces any form that is already open.
// @Tags editor
// @Produce json
// @Param id path string true "Song ID"
// @Success 201 {object} service.FormView
// @Failure 404 {object} response.ErrorBody
// @Router /editor/songs/{id} [post]
func (h *SongHandlers) OpenEditHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	utils.Logger.Info("OpenEditHandler called", zap.String("id", id))

	form, err := h.catalog.OpenEdit(id)
	if err != nil {
		h.writeError(w, err, "Failed to open song")
		return
	}
	response.JSON(w, http.StatusCreated, form)
}

// @Summary Discard the open form
// @Tags editor
// @Success 204 "No Content"
// @Failure 409 {object} response.ErrorBody
// @Router /editor [delete]
func (h *SongHandlers) CancelHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Cancel(); err != nil {
		h.writeError(w, err, "Failed to close form")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Set title, creator, language and type
// @Tags editor
// @Accept json
// @Produce json
// @Param body body editor.Details true "Form details"
// @Success 200 {object} service.FormView
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /editor/details [put]
func (h *SongHandlers) SetDetailsHandler(w http.ResponseWriter, r *http.Request) {
	var details editor.Details
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		utils.Logger.Warn("SetDetailsHandler - invalid request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	form, err := h.catalog.SetDetails(details)
	if err != nil {
		h.writeError(w, err, "Failed to update form")
		return
	}
	response.JSON(w, http.StatusOK, form)
}

func listKind(w http.ResponseWriter, r *http.Request) (models.ListKind, bool) {
	kind, err := models.ParseListKind(mux.Vars(r)["kind"])
	if err != nil {
		response.Error(w, http.StatusNotFound, "Unknown section list")
		return "", false
	}
	return kind, true
}

func rowIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := mux.Vars(r)["index"]
	index, err := strconv.Atoi(idStr)
	if err != nil {
		utils.Logger.Warn("invalid section index", zap.Error(err), zap.String("index", idStr))
		response.Error(w, http.StatusBadRequest, "Invalid section index")
		return 0, false
	}
	return index, true
}

// @Summary Add a section row
// @Tags editor
// @Produce json
// @Param kind path string true "chords or lyrics"
// @Success 200 {object} service.FormView
// @Failure 409 {object} response.ErrorBody
// @Router /editor/{kind} [post]
func (h *SongHandlers) AddRowHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := listKind(w, r)
	if !ok {
		return
	}

	form, err := h.catalog.AddRow(kind)
	if err != nil {
		h.writeError(w, err, "Failed to add section")
		return
	}
	response.JSON(w, http.StatusOK, form)
}

// @Summary Remove a section row
// @Description The last row of a list cannot be removed.
// @Tags editor
// @Produce json
// @Param kind path string true "chords or lyrics"
// @Param index path int true "Row index"
// @Success 200 {object} service.FormView
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /editor/{kind}/{index} [delete]
func (h *SongHandlers) RemoveRowHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := listKind(w, r)
	if !ok {
		return
	}
	index, ok := rowIndex(w, r)
	if !ok {
		return
	}

	form, removed, err := h.catalog.RemoveRow(kind, index)
	if err != nil {
		h.writeError(w, err, "Failed to remove section")
		return
	}
	if !removed {
		response.Error(w, http.StatusConflict, "At least one section is required")
		return
	}
	response.JSON(w, http.StatusOK, form)
}

type changeRequest struct {
	Field  editor.Field `json:"field"`
	Value  string       `json:"value"`
	Custom bool         `json:"custom"`
}

// @Summary Change one field of a section row
// @Description field is section, customSection or content. For section, custom=true (or value "__custom__") selects a custom name.
// @Tags editor
// @Accept json
// @Produce json
// @Param kind path string true "chords or lyrics"
// @Param index path int true "Row index"
// @Param body body changeRequest true "Field change"
// @Success 200 {object} service.FormView
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /editor/{kind}/{index} [patch]
func (h *SongHandlers) ChangeFieldHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := listKind(w, r)
	if !ok {
		return
	}
	index, ok := rowIndex(w, r)
	if !ok {
		return
	}

	var req changeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Logger.Warn("ChangeFieldHandler - invalid request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	change := editor.Change{Field: req.Field, Value: req.Value, Custom: req.Custom}
	if req.Field == editor.FieldSection && req.Value == customSentinel {
		change = editor.SelectCustom()
	}
	if err := change.Validate(); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	form, err := h.catalog.ChangeField(kind, index, change)
	if err != nil {
		h.writeError(w, err, "Failed to change section")
		return
	}
	response.JSON(w, http.StatusOK, form)
}

// @Summary Save the open form
// @Description Creates or replaces the song in the document store. A failed write keeps the form open.
// @Tags editor
// @Produce json
// @Success 201 {object} models.Song "Created"
// @Success 200 {object} models.Song "Updated"
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Failure 502 {object} response.ErrorBody
// @Router /editor/save [post]
func (h *SongHandlers) SaveHandler(w http.ResponseWriter, r *http.Request) {
	utils.Logger.Info("SaveHandler called")

	result, err := h.catalog.Save(r.Context())
	if err != nil {
		h.writeError(w, err, "Failed to save song")
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	response.JSON(w, status, result.Song)
	utils.Logger.Info("SaveHandler - song saved", zap.String("song_id", result.Song.ID), zap.Bool("created", result.Created))
}
