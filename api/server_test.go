package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/derivanim/shape"
	"github.com/matt-g-everett/derivanim/stream"
)

type fakePlayback struct {
	frame *stream.Frame
}

func (f *fakePlayback) Latest() *stream.Frame { return f.frame }
func (f *fakePlayback) Current() string        { return "increment" }
func (f *fakePlayback) Scenes() []string       { return []string{"increment", "speedometer"} }

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestFrame(t *testing.T) {
	pb := &fakePlayback{}
	h := NewApi(":0", pb, nil).Handler()
	assert.Equal(t, http.StatusServiceUnavailable, get(t, h, "/frame").Code)

	pb.frame = stream.NewFrame(3, 1.25, "increment", []shape.Element{{Name: "counter", Kind: "text", Hex: "#ffffff", Opacity: 1, Label: "1"}})
	rec := get(t, h, "/frame")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got stream.Frame
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint32(3), got.Index)
	assert.Equal(t, "increment", got.Scene)
	require.Len(t, got.Elements, 1)
	assert.Equal(t, "1", got.Elements[0].Label)
	assert.Equal(t, "#ffffff", got.Elements[0].Hex)
}

func TestScenes(t *testing.T) {
	h := NewApi(":0", &fakePlayback{}, nil).Handler()
	rec := get(t, h, "/scenes")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"current":"increment","scenes":["increment","speedometer"]}`, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	h := NewApi(":0", &fakePlayback{}, nil).Handler()
	rec := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
