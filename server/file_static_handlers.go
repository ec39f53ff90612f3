package server

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed static/*
var staticFiles embed.FS

var staticFS = mustSub(staticFiles, "static")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic("Failed to create " + dir + " sub filesystem: " + err.Error())
	}
	return sub
}

// staticFileHandler serves embedded assets by request path
func (s *Server) staticFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		info, err := fs.Stat(staticFS, name)
		if err != nil || info.IsDir() {
			if err == nil {
				err = fs.ErrNotExist
			}
			logError(r.Method, r.URL.Path, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		http.ServeFileFS(w, r, staticFS, name)
	}
}
