// internal/api/handlers/songs/songs_handlers.go
package songs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"chordbook/internal/editor"
	"chordbook/internal/lib/logger/utils"
	"chordbook/internal/lib/response"
	"chordbook/internal/models"
	"chordbook/internal/record"
	"chordbook/internal/service"
	"chordbook/internal/storage"
	_ "chordbook/internal/swagger"
)

type SongHandlers struct {
	catalog *service.Catalog
}

func NewSongHandlers(catalog *service.Catalog) *SongHandlers {
	return &SongHandlers{
		catalog: catalog,
	}
}

// NewRouter registers every endpoint on a fresh router.
func NewRouter(h *SongHandlers) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", h.HealthCheckHandler).Methods("GET")
	router.HandleFunc("/songs", h.GetSongsHandler).Methods("GET")
	router.HandleFunc("/songs/facets", h.GetFacetsHandler).Methods("GET")
	router.HandleFunc("/songs/{id}", h.GetSongHandler).Methods("GET")
	router.HandleFunc("/songs/{id}/sections", h.GetSectionsHandler).Methods("GET")

	router.HandleFunc("/editor", h.GetFormHandler).Methods("GET")
	router.HandleFunc("/editor", h.OpenCreateHandler).Methods("POST")
	router.HandleFunc("/editor", h.CancelHandler).Methods("DELETE")
	router.HandleFunc("/editor/songs/{id}", h.OpenEditHandler).Methods("POST")
	router.HandleFunc("/editor/details", h.SetDetailsHandler).Methods("PUT")
	router.HandleFunc("/editor/save", h.SaveHandler).Methods("POST")
	router.HandleFunc("/editor/{kind}", h.AddRowHandler).Methods("POST")
	router.HandleFunc("/editor/{kind}/{index}", h.RemoveRowHandler).Methods("DELETE")
	router.HandleFunc("/editor/{kind}/{index}", h.ChangeFieldHandler).Methods("PATCH")

	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return router
}

// @Summary List songs
// @Description Search by title or creator, filter by language and type, one page at a time.
// @Tags songs
// @Produce json
// @Param q query string false "Case-insensitive title or creator search"
// @Param language query string false "Language filter, 'all' for any"
// @Param type query string false "Type filter, 'all' for any"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Songs per page" default(8)
// @Success 200 {object} models.SongPage
// @Router /songs [get]
func (h *SongHandlers) GetSongsHandler(w http.ResponseWriter, r *http.Request) {
	utils.Logger.Info("GetSongsHandler called")

	queryParams := r.URL.Query()
	page, _ := strconv.Atoi(queryParams.Get("page"))
	pageSize, _ := strconv.Atoi(queryParams.Get("pageSize"))

	var pagination *models.Pagination
	if page > 0 || pageSize > 0 {
		pagination = &models.Pagination{Page: page, PageSize: pageSize}
	}

	filter := &models.SongFilter{
		Query:    queryParams.Get("q"),
		Language: queryParams.Get("language"),
		Type:     queryParams.Get("type"),
	}

	result := h.catalog.Songs(filter, pagination)

	response.JSON(w, http.StatusOK, result)
	utils.Logger.Debug("GetSongsHandler - songs listed", zap.Int("count", len(result.Songs)), zap.Int("total", result.Total))
}

// @Summary List languages and types
// @Tags songs
// @Produce json
// @Success 200 {object} service.Facets
// @Router /songs/facets [get]
func (h *SongHandlers) GetFacetsHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.catalog.Facets())
}

// @Summary Get song by ID
// @Tags songs
// @Produce json
// @Param id path string true "Song ID"
// @Success 200 {object} models.Song
// @Failure 404 {object} response.ErrorBody
// @Router /songs/{id} [get]
func (h *SongHandlers) GetSongHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	song, err := h.catalog.Song(id)
	if err != nil {
		h.writeError(w, err, "Failed to get song")
		return
	}

	response.JSON(w, http.StatusOK, song)
}

type sectionsResponse struct {
	Mode      models.ListKind         `json:"mode"`
	Transpose string                  `json:"transpose"`
	Sections  []record.VisibleSection `json:"sections"`
}

// @Summary Get the chords or lyrics sections of a song
// @Description Sections with non-blank content, in display order. The transpose value is echoed and not applied.
// @Tags songs
// @Produce json
// @Param id path string true "Song ID"
// @Param mode query string false "chords or lyrics" default(chords)
// @Param transpose query string false "Original, +1, +2, -1, -2" default(Original)
// @Success 200 {object} sectionsResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /songs/{id}/sections [get]
func (h *SongHandlers) GetSectionsHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	queryParams := r.URL.Query()

	mode := models.Chords
	if m := queryParams.Get("mode"); m != "" {
		var err error
		if mode, err = models.ParseListKind(m); err != nil {
			utils.Logger.Warn("GetSectionsHandler - invalid mode", zap.String("mode", m))
			response.Error(w, http.StatusBadRequest, "Invalid mode")
			return
		}
	}
	transpose := queryParams.Get("transpose")
	if transpose == "" {
		transpose = "Original"
	}

	sections, err := h.catalog.Sections(id, mode)
	if err != nil {
		h.writeError(w, err, "Failed to get sections")
		return
	}

	response.JSON(w, http.StatusOK, sectionsResponse{Mode: mode, Transpose: transpose, Sections: sections})
}

func (h *SongHandlers) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// writeError maps domain errors onto status codes; anything unknown is a 500.
func (h *SongHandlers) writeError(w http.ResponseWriter, err error, fallback string) {
	var vErr *record.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.Error(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, storage.ErrSongNotFound):
		response.Error(w, http.StatusNotFound, "Song not found")
	case errors.Is(err, editor.ErrNoSession):
		response.Error(w, http.StatusConflict, "No song form is open")
	case errors.Is(err, editor.ErrRowIndex):
		response.Error(w, http.StatusBadRequest, "Invalid section index")
	case errors.Is(err, service.ErrSaveInProgress):
		response.Error(w, http.StatusConflict, "Song is already being saved")
	case errors.Is(err, service.ErrStoreWrite):
		response.Error(w, http.StatusBadGateway, "Failed to save song")
	default:
		utils.Logger.Error("request failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, fallback)
	}
}
