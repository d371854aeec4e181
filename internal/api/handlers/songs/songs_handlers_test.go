package songs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chordbook/internal/api/handlers/songs"
	"chordbook/internal/models"
	"chordbook/internal/service"
	"chordbook/internal/storage"
	mock_storage "chordbook/internal/storage/mocks"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSongs() []models.Song {
	return []models.Song{
		{ID: "a1", SongFields: models.SongFields{
			Title: "Amazing Grace", Creator: "John Newton", Language: "English", Type: "Slow Song",
			Chords:       map[string]string{"Verse": "G C G", "Chorus": "D G", "Bridge": "  "},
			Lyrics:       map[string]string{"Verse": "Amazing grace"},
			SectionOrder: []string{"Verse", "Bridge", "Chorus"},
		}},
		{ID: "b2", SongFields: models.SongFields{
			Title: "Dakilang Katapatan", Creator: "Thomas Chisholm", Language: "Tagalog", Type: "Slow Song",
		}},
		{ID: "c3", SongFields: models.SongFields{
			Title: "Shout to the Lord", Creator: "Darlene Zschech", Language: "English", Type: "Fast Song",
		}},
	}
}

func newTestRouter(t *testing.T, ctrl *gomock.Controller) (*mux.Router, *mock_storage.MockDocumentStore) {
	t.Helper()
	store := mock_storage.NewMockDocumentStore(ctrl)
	store.EXPECT().FetchAll(gomock.Any(), "songs").Return(testSongs(), nil)

	catalog := service.NewCatalog(store, "songs", 2)
	require.NoError(t, catalog.Load(context.Background()))
	return songs.NewRouter(songs.NewSongHandlers(catalog)), store
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type formBody struct {
	State   string `json:"state"`
	Session *struct {
		ID       uint64                   `json:"id"`
		State    string                   `json:"state"`
		SongID   string                   `json:"songId"`
		Title    string                   `json:"title"`
		Creator  string                   `json:"creator"`
		Language string                   `json:"language"`
		Type     string                   `json:"type"`
		Chords   []models.EditableSection `json:"chords"`
		Lyrics   []models.EditableSection `json:"lyrics"`
	} `json:"session"`
}

func decodeForm(t *testing.T, w *httptest.ResponseRecorder) formBody {
	t.Helper()
	var form formBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &form))
	return form
}

func TestGetSongsHandler_Unit(t *testing.T) {
	testCases := []struct {
		name          string
		queryParams   string
		expectedIDs   []string
		expectedTotal int
		expectedMore  bool
	}{
		{
			name:          "No filters, first page",
			queryParams:   "",
			expectedIDs:   []string{"a1", "b2"},
			expectedTotal: 3,
			expectedMore:  true,
		},
		{
			name:          "Second page",
			queryParams:   "?page=2&pageSize=2",
			expectedIDs:   []string{"c3"},
			expectedTotal: 3,
		},
		{
			name:          "Search by creator",
			queryParams:   "?q=newton",
			expectedIDs:   []string{"a1"},
			expectedTotal: 1,
		},
		{
			name:          "Filter by language and type",
			queryParams:   "?language=English&type=Fast%20Song",
			expectedIDs:   []string{"c3"},
			expectedTotal: 1,
		},
		{
			name:          "All matches everything",
			queryParams:   "?language=all&type=all&pageSize=8",
			expectedIDs:   []string{"a1", "b2", "c3"},
			expectedTotal: 3,
		},
		{
			name:          "Page number too large to multiply",
			queryParams:   "?page=4611686018427387904",
			expectedIDs:   []string{},
			expectedTotal: 3,
		},
		{
			name:          "No match",
			queryParams:   "?q=zzz",
			expectedIDs:   []string{},
			expectedTotal: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			router, _ := newTestRouter(t, ctrl)

			w := do(router, http.MethodGet, "/songs"+tc.queryParams, "")

			require.Equal(t, http.StatusOK, w.Code)
			var page models.SongPage
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
			ids := make([]string, 0, len(page.Songs))
			for _, s := range page.Songs {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
			assert.Equal(t, tc.expectedTotal, page.Total)
			assert.Equal(t, tc.expectedMore, page.HasMore)
			assert.False(t, page.Loading)
		})
	}
}

func TestGetFacetsHandler_Unit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, _ := newTestRouter(t, ctrl)

	w := do(router, http.MethodGet, "/songs/facets", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"languages":["English","Tagalog"],"types":["Slow Song","Fast Song"]}`, w.Body.String())
}

func TestGetSongHandler_Unit(t *testing.T) {
	testCases := []struct {
		name           string
		id             string
		expectedStatus int
		expectedTitle  string
	}{
		{name: "Found", id: "c3", expectedStatus: http.StatusOK, expectedTitle: "Shout to the Lord"},
		{name: "Not found", id: "zz", expectedStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			router, _ := newTestRouter(t, ctrl)

			w := do(router, http.MethodGet, "/songs/"+tc.id, "")

			assert.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedStatus != http.StatusOK {
				assert.JSONEq(t, `{"error":"Song not found"}`, w.Body.String())
				return
			}
			var song models.Song
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &song))
			assert.Equal(t, tc.expectedTitle, song.Title)
		})
	}
}

func TestGetSectionsHandler_Unit(t *testing.T) {
	testCases := []struct {
		name           string
		target         string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Chords by default, blank sections hidden",
			target:         "/songs/a1/sections",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"mode":"chords","transpose":"Original","sections":[{"number":1,"name":"Verse","content":"G C G"},{"number":2,"name":"Chorus","content":"D G"}]}`,
		},
		{
			name:           "Lyrics borrow the chord order",
			target:         "/songs/a1/sections?mode=lyrics&transpose=%2B1",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"mode":"lyrics","transpose":"+1","sections":[{"number":1,"name":"Verse","content":"Amazing grace"}]}`,
		},
		{
			name:           "Song without sections",
			target:         "/songs/b2/sections",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"mode":"chords","transpose":"Original","sections":[]}`,
		},
		{
			name:           "Invalid mode",
			target:         "/songs/a1/sections?mode=tabs",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid mode"}`,
		},
		{
			name:           "Unknown song",
			target:         "/songs/zz/sections",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Song not found"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			router, _ := newTestRouter(t, ctrl)

			w := do(router, http.MethodGet, tc.target, "")

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestEditorHandlers_CreateFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, store := newTestRouter(t, ctrl)

	w := do(router, http.MethodGet, "/editor", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":"idle"}`, w.Body.String())

	w = do(router, http.MethodPost, "/editor", "")
	require.Equal(t, http.StatusCreated, w.Code)
	form := decodeForm(t, w)
	assert.Equal(t, "creating", form.State)
	require.NotNil(t, form.Session)
	assert.Equal(t, "English", form.Session.Language)
	assert.Equal(t, "Fast Song", form.Session.Type)
	assert.Equal(t, []models.EditableSection{models.CanonicalRow("Intro", "")}, form.Session.Chords)
	assert.Equal(t, []models.EditableSection{models.CanonicalRow("Verse", "")}, form.Session.Lyrics)

	w = do(router, http.MethodPut, "/editor/details", `{"title":"New Song","creator":"Me","language":"Tagalog","type":"Slow Song"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodPatch, "/editor/chords/0", `{"field":"content","value":"C G Am F"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodPost, "/editor/chords", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeForm(t, w).Session.Chords, 2)

	w = do(router, http.MethodPatch, "/editor/chords/1", `{"field":"section","value":"__custom__"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(router, http.MethodPatch, "/editor/chords/1", `{"field":"customSection","value":" Tag "}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(router, http.MethodPatch, "/editor/chords/1", `{"field":"content","value":"F G C"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.CustomRow(" Tag ", "F G C"), decodeForm(t, w).Session.Chords[1])

	expected := models.SongFields{
		Title: "New Song", Creator: "Me", Language: "Tagalog", Type: "Slow Song",
		Chords:       map[string]string{"Intro": "C G Am F", "Tag": "F G C"},
		Lyrics:       map[string]string{"Verse": ""},
		SectionOrder: []string{"Intro", "Tag"},
		LyricsOrder:  []string{"Verse"},
	}
	store.EXPECT().Insert(gomock.Any(), "songs", expected).Return("new1", nil)

	w = do(router, http.MethodPost, "/editor/save", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var saved models.Song
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, "new1", saved.ID)
	assert.Equal(t, expected, saved.SongFields)

	w = do(router, http.MethodGet, "/editor", "")
	assert.JSONEq(t, `{"state":"idle"}`, w.Body.String())

	w = do(router, http.MethodGet, "/songs/new1", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEditorHandlers_EditFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, store := newTestRouter(t, ctrl)

	w := do(router, http.MethodPost, "/editor/songs/a1", "")
	require.Equal(t, http.StatusCreated, w.Code)
	form := decodeForm(t, w)
	assert.Equal(t, "editing", form.State)
	assert.Equal(t, "a1", form.Session.SongID)
	assert.Equal(t, []models.EditableSection{
		models.CanonicalRow("Verse", "G C G"),
		models.CanonicalRow("Bridge", "  "),
		models.CanonicalRow("Chorus", "D G"),
	}, form.Session.Chords)

	w = do(router, http.MethodDelete, "/editor/chords/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	store.EXPECT().Replace(gomock.Any(), "songs", "a1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, fields models.SongFields) error {
			assert.Equal(t, []string{"Verse", "Chorus"}, fields.SectionOrder)
			assert.Equal(t, map[string]string{"Verse": "G C G", "Chorus": "D G"}, fields.Chords)
			return nil
		})

	w = do(router, http.MethodPost, "/editor/save", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/songs/a1/sections", "")
	assert.JSONEq(t, `{"mode":"chords","transpose":"Original","sections":[{"number":1,"name":"Verse","content":"G C G"},{"number":2,"name":"Chorus","content":"D G"}]}`, w.Body.String())
}

func TestEditorHandlers_Errors(t *testing.T) {
	testCases := []struct {
		name           string
		setup          []string
		method         string
		target         string
		body           string
		mockStoreFn    func(s *mock_storage.MockDocumentStore)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Save without a form",
			method:         http.MethodPost,
			target:         "/editor/save",
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"No song form is open"}`,
		},
		{
			name:           "Cancel without a form",
			method:         http.MethodDelete,
			target:         "/editor",
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"No song form is open"}`,
		},
		{
			name:           "Edit unknown song",
			method:         http.MethodPost,
			target:         "/editor/songs/zz",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Song not found"}`,
		},
		{
			name:           "Save with blank title",
			setup:          []string{"POST /editor"},
			method:         http.MethodPost,
			target:         "/editor/save",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"title is required"}`,
		},
		{
			name:           "Store write failure",
			setup:          []string{"POST /editor/songs/c3"},
			method:         http.MethodPost,
			target:         "/editor/save",
			mockStoreFn: func(s *mock_storage.MockDocumentStore) {
				s.EXPECT().Replace(gomock.Any(), "songs", "c3", gomock.Any()).Return(errors.New("connection refused"))
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"Failed to save song"}`,
		},
		{
			name:           "Removed song on replace",
			setup:          []string{"POST /editor/songs/c3"},
			method:         http.MethodPost,
			target:         "/editor/save",
			mockStoreFn: func(s *mock_storage.MockDocumentStore) {
				s.EXPECT().Replace(gomock.Any(), "songs", "c3", gomock.Any()).Return(storage.ErrSongNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Song not found"}`,
		},
		{
			name:           "Remove the last row",
			setup:          []string{"POST /editor"},
			method:         http.MethodDelete,
			target:         "/editor/lyrics/0",
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"At least one section is required"}`,
		},
		{
			name:           "Row out of range",
			setup:          []string{"POST /editor"},
			method:         http.MethodPatch,
			target:         "/editor/chords/5",
			body:           `{"field":"content","value":"x"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid section index"}`,
		},
		{
			name:           "Non-numeric row",
			setup:          []string{"POST /editor"},
			method:         http.MethodDelete,
			target:         "/editor/chords/first",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid section index"}`,
		},
		{
			name:           "Unknown field",
			setup:          []string{"POST /editor"},
			method:         http.MethodPatch,
			target:         "/editor/chords/0",
			body:           `{"field":"tempo","value":"fast"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"unknown section field \"tempo\""}`,
		},
		{
			name:           "Unknown list",
			setup:          []string{"POST /editor"},
			method:         http.MethodPost,
			target:         "/editor/tabs",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Unknown section list"}`,
		},
		{
			name:           "Invalid details body",
			setup:          []string{"POST /editor"},
			method:         http.MethodPut,
			target:         "/editor/details",
			body:           `invalid json`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request body"}`,
		},
		{
			name:           "Details without a form",
			method:         http.MethodPut,
			target:         "/editor/details",
			body:           `{"title":"x"}`,
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"No song form is open"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			router, store := newTestRouter(t, ctrl)
			if tc.mockStoreFn != nil {
				tc.mockStoreFn(store)
			}

			for _, step := range tc.setup {
				method, target, _ := strings.Cut(step, " ")
				require.Less(t, do(router, method, target, "").Code, 300, step)
			}

			w := do(router, tc.method, tc.target, tc.body)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestEditorHandlers_FailedSaveKeepsForm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, store := newTestRouter(t, ctrl)

	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/editor", "").Code)
	require.Equal(t, http.StatusOK, do(router, http.MethodPut, "/editor/details", `{"title":"T","creator":"C","language":"English","type":"Fast Song"}`).Code)

	gomock.InOrder(
		store.EXPECT().Insert(gomock.Any(), "songs", gomock.Any()).Return("", errors.New("timeout")),
		store.EXPECT().Insert(gomock.Any(), "songs", gomock.Any()).Return("x9", nil),
	)

	w := do(router, http.MethodPost, "/editor/save", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "creating", decodeForm(t, do(router, http.MethodGet, "/editor", "")).State)

	w = do(router, http.MethodPost, "/editor/save", "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "idle", decodeForm(t, do(router, http.MethodGet, "/editor", "")).State)
}

func TestEditorHandlers_DoubleSave(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, store := newTestRouter(t, ctrl)

	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/editor", "").Code)
	require.Equal(t, http.StatusOK, do(router, http.MethodPut, "/editor/details", `{"title":"T","creator":"C","language":"English","type":"Fast Song"}`).Code)

	var second *httptest.ResponseRecorder
	store.EXPECT().Insert(gomock.Any(), "songs", gomock.Any()).
		DoAndReturn(func(context.Context, string, models.SongFields) (string, error) {
			second = do(router, http.MethodPost, "/editor/save", "")
			return "x1", nil
		}).Times(1)

	w := do(router, http.MethodPost, "/editor/save", "")

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, second)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.JSONEq(t, `{"error":"Song is already being saved"}`, second.Body.String())

	w = do(router, http.MethodGet, "/songs?pageSize=8", "")
	var page models.SongPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 4, page.Total)
}

func TestHealthCheckHandler_Unit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, _ := newTestRouter(t, ctrl)

	w := do(router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
