package handler

import (
	"io"
	"net/http"
)

// GetBoard handles GET /board. It returns the clock line and the fixed-width
// departure board as plain text, exactly as the console prints it.
func (s *Server) GetBoard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, s.dispatch.Board(r.Context())+"\n")
}
