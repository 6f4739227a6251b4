package static

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// Handler serves a built single-page app. Unknown paths fall back to
// index.html so client-side routes resolve; /api paths never do.
type Handler struct {
	files fs.FS
}

func NewHandler(files fs.FS) *Handler {
	return &Handler{files: files}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = "index.html"
	}

	if info, err := fs.Stat(h.files, name); err == nil && !info.IsDir() {
		http.ServeFileFS(w, r, h.files, name)
		return
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.serveIndex(w, r)
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	index, err := fs.ReadFile(h.files, "index.html")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(index)
}
