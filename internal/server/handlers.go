package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"reelhub/internal/media"
)

func (s *Server) platforms(w http.ResponseWriter, _ *http.Request) {
	ok(w, s.svc.Platforms())
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	ok(w, s.svc.Home(r.Context(), chi.URLParam(r, "platform")))
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		fail(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	ok(w, s.svc.Search(r.Context(), chi.URLParam(r, "platform"), q))
}

func (s *Server) detail(w http.ResponseWriter, r *http.Request) {
	id, found := requireID(w, r)
	if !found {
		return
	}
	d, found := s.svc.Detail(r.Context(), chi.URLParam(r, "platform"), id)
	if !found {
		fail(w, http.StatusNotFound, "detail not found")
		return
	}
	ok(w, d)
}

func (s *Server) episodes(w http.ResponseWriter, r *http.Request) {
	id, found := requireID(w, r)
	if !found {
		return
	}
	ok(w, s.svc.Episodes(r.Context(), chi.URLParam(r, "platform"), id))
}

func (s *Server) video(w http.ResponseWriter, r *http.Request) {
	id, found := requireID(w, r)
	if !found {
		return
	}
	ok(w, s.svc.Video(r.Context(), chi.URLParam(r, "platform"), id))
}

func requireID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		fail(w, http.StatusBadRequest, "missing query parameter id")
		return "", false
	}
	return id, true
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	entries, err := s.tracker.Entries(r.Context())
	if err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	ok(w, entries)
}

func (s *Server) addHistory(w http.ResponseWriter, r *http.Request) {
	var entry media.HistoryEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		fail(w, http.StatusBadRequest, "invalid history entry")
		return
	}
	if entry.Platform == "" || entry.ID == "" {
		fail(w, http.StatusBadRequest, "platform and id are required")
		return
	}
	if err := s.tracker.Add(r.Context(), entry); err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}

	entries, err := s.tracker.Entries(r.Context())
	if err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	created(w, entries)
}

// deleteHistory removes one entry when platform and id are given, and
// clears the history otherwise.
func (s *Server) deleteHistory(w http.ResponseWriter, r *http.Request) {
	platform, id := r.URL.Query().Get("platform"), r.URL.Query().Get("id")

	var err error
	switch {
	case platform != "" && id != "":
		err = s.tracker.Remove(r.Context(), platform, id)
	case platform == "" && id == "":
		err = s.tracker.Clear(r.Context())
	default:
		fail(w, http.StatusBadRequest, "platform and id must be given together")
		return
	}
	if err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.history(w, r)
}

type platformBody struct {
	Code string `json:"code"`
}

func (s *Server) activePlatform(w http.ResponseWriter, r *http.Request) {
	code, err := s.tracker.ActivePlatform(r.Context())
	if err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	ok(w, platformBody{Code: code})
}

func (s *Server) setActivePlatform(w http.ResponseWriter, r *http.Request) {
	var body platformBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		fail(w, http.StatusBadRequest, "invalid body")
		return
	}
	if !s.svc.Has(body.Code) {
		fail(w, http.StatusBadRequest, "unknown platform "+body.Code)
		return
	}
	if err := s.tracker.SetActivePlatform(r.Context(), body.Code); err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	ok(w, body)
}

func (s *Server) askAI(w http.ResponseWriter, r *http.Request) {
	prompt := strings.TrimSpace(r.URL.Query().Get("prompt"))
	if prompt == "" {
		fail(w, http.StatusBadRequest, "missing query parameter prompt")
		return
	}
	ok(w, map[string]string{"reply": s.svc.AskAI(r.Context(), prompt)})
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	f, hdr, err := r.FormFile("file")
	if err != nil {
		fail(w, http.StatusBadRequest, "missing form file \"file\"")
		return
	}
	defer f.Close()

	msg, err := s.svc.Upload(r.Context(), hdr.Filename, f)
	if err != nil {
		fail(w, http.StatusBadGateway, err.Error())
		return
	}
	ok(w, map[string]string{"message": msg})
}
