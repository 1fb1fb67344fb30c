package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eventboard/events-api/pkg/events"
	"github.com/eventboard/events-api/pkg/events/imagekey"
)

// handleGetImage streams a stored image by filename. The filename allow-list
// here is stricter than the upload one (uuid-shaped name, known extension)
// and additionally accepts gif for legacy objects.
func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if !imagekey.ValidFilename(filename) {
		s.renderError(w, r, http.StatusBadRequest, "Invalid filename")
		return
	}

	body, err := s.blobs.Download(r.Context(), imagekey.KeyForFilename(filename))
	if err != nil {
		if errors.Is(err, events.ErrObjectNotFound) {
			s.renderError(w, r, http.StatusNotFound, "Image not found")
			return
		}
		s.log.Error("image download failed", "filename", filename, "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "image download failed")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", imagekey.MIMEForFilename(filename))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := io.Copy(w, body); err != nil {
		s.log.Error("image stream interrupted", "filename", filename, "error", err)
	}
}
