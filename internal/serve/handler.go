// Package serve is the development server: it serves a built site from disk
// and rebuilds it when the source files change.
package serve

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NotFoundFile is served, with a 404 status, for paths matching no file.
const NotFoundFile = "404.html"

// Handler serves the files in dir under pathPrefix. Directories serve their
// index.html and are never listed.
func Handler(dir, pathPrefix string, log *slog.Logger) http.Handler {
	files := &fileServer{root: dir, prefix: pathPrefix}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger(log),
		middleware.Recoverer,
		middleware.Compress(5),
		noCache,
	)
	r.NotFound(files.notFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	if pathPrefix == "" {
		r.Get("/*", files.ServeHTTP)
		r.Head("/*", files.ServeHTTP)
		return r
	}
	r.Get(pathPrefix, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, pathPrefix+"/", http.StatusMovedPermanently)
	})
	prefixed := http.StripPrefix(pathPrefix, files)
	r.Get(pathPrefix+"/*", prefixed.ServeHTTP)
	r.Head(pathPrefix+"/*", prefixed.ServeHTTP)
	return r
}

// fileServer serves root. When mounted behind http.StripPrefix, prefix is
// the stripped part, restored on redirects.
type fileServer struct {
	root   string
	prefix string
}

func (s *fileServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)
	if strings.HasSuffix(r.URL.Path, "/") {
		name = path.Join(name, "index.html")
	}
	f, info, err := s.open(name)
	if errors.Is(err, fs.ErrNotExist) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	if info.IsDir() {
		http.Redirect(w, r, s.prefix+r.URL.Path+"/", http.StatusMovedPermanently)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (s *fileServer) open(name string) (*os.File, fs.FileInfo, error) {
	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(name)))
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, info, nil
}

func (s *fileServer) notFound(w http.ResponseWriter, r *http.Request) {
	f, _, err := s.open("/" + NotFoundFile)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if r.Method != http.MethodHead {
		_, _ = io.Copy(w, f)
	}
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.DebugContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
