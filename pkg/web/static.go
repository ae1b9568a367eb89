package web

import (
	"bytes"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"time"
)

// Static serves files from subdir of fsys under urlPrefix. Responses carry a
// public Cache-Control header when maxAge is positive. Directory listings are
// not served.
func Static(fsys fs.FS, subdir, urlPrefix string, maxAge time.Duration) (http.Handler, error) {
	sub, err := fs.Sub(fsys, subdir)
	if err != nil {
		return nil, fmt.Errorf("static %s: %w", subdir, err)
	}

	files := http.StripPrefix(urlPrefix, http.FileServerFS(sub))
	cache := cacheControl(maxAge)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if p == "" || p[len(p)-1] == '/' {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", cache)
		files.ServeHTTP(w, r)
	}), nil
}

// ServeEmbeddedFile returns a handler that serves data with the given content
// type. HEAD and conditional requests are handled by http.ServeContent.
func ServeEmbeddedFile(data []byte, contentType string) http.HandlerFunc {
	modified := time.Now().UTC().Truncate(time.Second)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		http.ServeContent(w, r, "", modified, bytes.NewReader(data))
	}
}

func cacheControl(maxAge time.Duration) string {
	if maxAge <= 0 {
		return "no-cache"
	}
	return "public, max-age=" + strconv.Itoa(int(maxAge.Seconds()))
}
