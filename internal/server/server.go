// Package server implements the HTTP shell (spec §6.3): the static
// viewer routes, and the /{zoom}/{x}/{y}.{fmt} tile endpoint backed by
// internal/tileformat and internal/tilecache.
package server

import (
	"net/http"
	"strings"

	"github.com/railwayhistory/railmap/internal/featurestore"
	"github.com/railwayhistory/railmap/internal/log"
	"github.com/railwayhistory/railmap/internal/tilecache"
	"github.com/railwayhistory/railmap/internal/tileformat"
	"github.com/railwayhistory/railmap/internal/tileid"
)

// Server answers tile and static-asset requests over HTTP (spec §6.3).
// The feature store is immutable after Load per spec §5's "Shared
// resources", so a *Server is safe to share across every request
// goroutine without its own locking; the tile cache carries its own.
type Server struct {
	store *featurestore.Store
	cache *tilecache.Cache
}

// New builds a Server over store, caching up to cacheTiles rendered
// tiles.
func New(store *featurestore.Store, cacheTiles int) *Server {
	return &Server{store: store, cache: tilecache.New(cacheTiles)}
}

// Handler returns the server's routed http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /ol.js", s.handleAsset("ol.js", "text/javascript; charset=utf-8"))
	mux.HandleFunc("GET /ol.css", s.handleAsset("ol.css", "text/css; charset=utf-8"))
	mux.HandleFunc("GET /{path...}", s.handleTile)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleAsset(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, ok := staticAssets[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Write(data)
	}
}

// handleTile serves GET /{zoom}/{x}/{y}.{fmt} (spec §6.3). Any
// malformed path, out-of-range index, or unrecognised format is a 404,
// matching tileid.ParsePath's error contract exactly.
func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if !strings.HasPrefix(path, "/") || path == "/" {
		http.NotFound(w, r)
		return
	}

	id, err := tileid.ParsePath(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if entry, ok := s.cache.Get(id); ok {
		w.Header().Set("Content-Type", entry.ContentType)
		w.Write(entry.Bytes)
		return
	}

	bytes, err := tileformat.Render(s.store, id)
	if err != nil {
		log.Logger().Error("tile render failed",
			log.String("tile", id.String()), log.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	entry := tilecache.Entry{Bytes: bytes, ContentType: id.Format.ContentType()}
	s.cache.Put(id, entry)

	w.Header().Set("Content-Type", entry.ContentType)
	w.Write(entry.Bytes)
}
