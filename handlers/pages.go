package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// PagesHandler serves a pre-built static frontend. A request for /dashboard is
// answered with the first of dashboard, dashboard.html and dashboard/index.html
// found under the pages directory; 404.html is used for misses when present.
type PagesHandler struct {
	dir string
}

func NewPagesHandler(dir string) *PagesHandler {
	return &PagesHandler{dir: dir}
}

func (h *PagesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.dir == "" {
		http.NotFound(w, r)
		return
	}

	if file, ok := h.resolve(r.URL.Path); ok {
		http.ServeFile(w, r, file)
		return
	}

	notFoundPage := filepath.Join(h.dir, "404.html")
	if isRegularFile(notFoundPage) {
		content, err := os.ReadFile(notFoundPage)
		if err == nil {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write(content)
			return
		}
	}
	http.NotFound(w, r)
}

func (h *PagesHandler) resolve(urlPath string) (string, bool) {
	cleaned := path.Clean("/" + urlPath)
	base := filepath.Join(h.dir, filepath.FromSlash(strings.TrimPrefix(cleaned, "/")))

	candidates := []string{base, base + ".html", filepath.Join(base, "index.html")}
	for _, candidate := range candidates {
		if isRegularFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isRegularFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

// HandleHealth reports liveness for load balancers
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
