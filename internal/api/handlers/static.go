package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// Static serves the single-page frontend from Dir. Paths that do not name an
// existing file get Dir/index.html.
type Static struct {
	Dir string
}

func (s *Static) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name := filepath.Join(s.Dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
	if s.serveFile(w, r, name) {
		return
	}
	if s.serveFile(w, r, filepath.Join(s.Dir, "index.html")) {
		return
	}

	writeError(w, r, http.StatusNotFound, "not found")
}

func (s *Static) serveFile(w http.ResponseWriter, r *http.Request, name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}
