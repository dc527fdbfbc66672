package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"

	"github.com/pkordes/train-dispatch/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"time", "line", "train_number", "destination", "delay", "track", "eta",
}

// GetExport handles GET /export.
// It returns every departure as a board row in departure order: JSON by
// default, CSV with ?format=csv.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		requestError(w, "format must be json or csv")
		return
	}

	departures, err := s.dispatch.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows := make([]domain.BoardRow, len(departures))
	for i, d := range departures {
		rows[i] = d.Row()
	}

	if format == "csv" {
		body := buildCSV(rows)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="departures.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// buildCSV encodes rows as CSV. Blank delay and track stay empty cells.
func buildCSV(rows []domain.BoardRow) []byte {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write([]string{r.Time, r.Line, r.TrainNumber, r.Destination, r.Delay, r.Track, r.ETA})
	}
	cw.Flush()
	return buf.Bytes()
}
