package watchlist

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	return NewHandlers(newTestStore(t), zerolog.Nop())
}

func doAdd(t *testing.T, h *Handlers, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/watchlist", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Add(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAddHandler(t *testing.T) {
	h := newTestHandlers(t)

	rec := doAdd(t, h, `{"kind":"movie","id":157336,"title":"Interstellar","year":"2014"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var entry Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, "movie:157336", entry.Key)
	assert.NotEmpty(t, entry.ID)
}

func TestAddHandlerValidation(t *testing.T) {
	h := newTestHandlers(t)

	tests := []struct {
		name string
		body string
	}{
		{"bad kind", `{"kind":"series","id":1,"title":"X"}`},
		{"missing id", `{"kind":"movie","title":"X"}`},
		{"missing title", `{"kind":"movie","id":1}`},
		{"malformed json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doAdd(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAddHandlerDuplicate(t *testing.T) {
	h := newTestHandlers(t)

	body := `{"kind":"movie","id":157336,"title":"Interstellar"}`
	require.Equal(t, http.StatusCreated, doAdd(t, h, body).Code)
	assert.Equal(t, http.StatusConflict, doAdd(t, h, body).Code)
}

func TestListHandler(t *testing.T) {
	h := newTestHandlers(t)
	doAdd(t, h, `{"kind":"movie","id":1,"title":"A"}`)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/watchlist", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var response ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.OK)
	assert.Equal(t, 1, response.Total)
}

func TestRemoveHandler(t *testing.T) {
	h := newTestHandlers(t)

	rec := doAdd(t, h, `{"kind":"movie","id":1,"title":"A"}`)
	var entry Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))

	e := echo.New()

	remove := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/watchlist/"+id, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id)
		if err := h.Remove(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		return rec
	}

	assert.Equal(t, http.StatusNoContent, remove(entry.ID).Code)
	assert.Equal(t, http.StatusNotFound, remove(entry.ID).Code)
}
