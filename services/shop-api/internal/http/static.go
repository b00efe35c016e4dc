package httpx

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
)

// Static serves files from dir and answers every other GET with the index
// document, so client-side routes resolve.
func Static(dir, index string) http.Handler {
	root := http.Dir(dir)
	files := http.FileServer(root)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		if name != "/" && path.Base(name) != index {
			if f, err := root.Open(name); err == nil {
				st, statErr := f.Stat()
				_ = f.Close()
				if statErr == nil && !st.IsDir() {
					files.ServeHTTP(w, r)
					return
				}
			}
		}
		serveIndex(w, r, root, index)
	})
}

func serveIndex(w http.ResponseWriter, r *http.Request, root http.FileSystem, index string) {
	f, err := root.Open("/" + index)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to open index", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil || st.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, index, st.ModTime(), f)
}
