package web

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jaminalder/timetravel-tic-tac-toe/internal/app"
)

type handlers struct {
	svc       *app.Service
	tpl       *templates
	log       *slog.Logger
	heartbeat time.Duration
}

func (h *handlers) renderBoard(gs app.GameState) ([]byte, error) {
	return renderTemplate(h.tpl.board, newBoardData(gs))
}

// broadcastBoard is the service renderer; a failed render broadcasts nothing.
func (h *handlers) broadcastBoard(gs app.GameState) []byte {
	b, err := h.renderBoard(gs)
	if err != nil {
		h.log.Error("render broadcast", "game", gs.ID, "error", err)
		return nil
	}
	return b
}

func (h *handlers) writeHTML(w http.ResponseWriter, b []byte, err error) {
	if err != nil {
		h.log.Error("render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	b, err := renderTemplate(h.tpl.index, nil)
	h.writeHTML(w, b, err)
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.CreateGame()
	if err != nil {
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	b, err := renderTemplate(h.tpl.game, newBoardData(*gs))
	h.writeHTML(w, b, err)
}

func (h *handlers) board(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	b, err := h.renderBoard(*gs)
	h.writeHTML(w, b, err)
}

// formInt reads an integer form field, replying 400 when it is missing or malformed.
func formInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return 0, false
	}
	v, err := strconv.Atoi(r.Form.Get(name))
	if err != nil {
		http.Error(w, "bad "+name, http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

// command replies with the board fragment after a controller command.
// Rejected commands are not errors for the player: the unchanged board is returned.
// Plain form posts (no htmx) are redirected back to the full page.
func (h *handlers) command(w http.ResponseWriter, r *http.Request, gs *app.GameState, err error) {
	if errors.Is(err, app.ErrNotFound) || gs == nil {
		http.NotFound(w, r)
		return
	}
	if r.Header.Get("HX-Request") != "true" {
		http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
		return
	}
	b, rerr := h.renderBoard(*gs)
	h.writeHTML(w, b, rerr)
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	cell, ok := formInt(w, r, "cell")
	if !ok {
		return
	}
	gs, err := h.svc.Play(chi.URLParam(r, "id"), cell)
	h.command(w, r, gs, err)
}

func (h *handlers) jump(w http.ResponseWriter, r *http.Request) {
	step, ok := formInt(w, r, "step")
	if !ok {
		return
	}
	gs, err := h.svc.JumpTo(chi.URLParam(r, "id"), step)
	h.command(w, r, gs, err)
}

func (h *handlers) sort(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.ToggleSort(chi.URLParam(r, "id"))
	h.command(w, r, gs, err)
}

func (h *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// Non-EventSource requests only get the headers
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer unsub()
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, "board", b)
			flusher.Flush()
		}
	}
}

// writeEvent frames payload as one SSE event, one data line per payload line.
func writeEvent(w io.Writer, event string, payload []byte) {
	_, _ = io.WriteString(w, "event: "+event+"\n")
	for _, line := range bytes.Split(payload, []byte("\n")) {
		_, _ = io.WriteString(w, "data: ")
		_, _ = w.Write(line)
		_, _ = io.WriteString(w, "\n")
	}
	_, _ = io.WriteString(w, "\n")
}
