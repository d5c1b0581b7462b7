// Package api serves the current playback state over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/matt-g-everett/derivanim/stream"
	"github.com/matt-g-everett/derivanim/util"
)

// Playback is the part of the stream controller the API reads.
type Playback interface {
	Latest() *stream.Frame
	Current() string
	Scenes() []string
}

type Api struct {
	addr     string
	playback Playback
	logger   *slog.Logger
}

func NewApi(addr string, playback Playback, logger *slog.Logger) *Api {
	a := new(Api)
	a.addr = addr
	a.playback = playback
	a.logger = util.OrNop(logger)
	return a
}

// Handler routes GET /frame, /scenes and /healthz.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /frame", a.frame)
	mux.HandleFunc("GET /scenes", a.scenes)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

func (a *Api) frame(w http.ResponseWriter, _ *http.Request) {
	f := a.playback.Latest()
	if f == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	a.writeJSON(w, f)
}

func (a *Api) scenes(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, struct {
		Current string   `json:"current"`
		Scenes  []string `json:"scenes"`
	}{a.playback.Current(), a.playback.Scenes()})
}

func (a *Api) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Warn("response not written", "error", err)
	}
}

// Serve listens until ctx is cancelled.
func (a *Api) Serve(ctx context.Context) error {
	srv := &http.Server{Addr: a.addr, Handler: a.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	a.logger.Info("Listening...", "addr", a.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
