package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"qtholidays-service/internal/domain/entity"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	period, err := entity.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	snapshot, err := s.summary.Fetch(r.Context(), period)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	period, err := entity.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}

	file, err := s.summary.Export(r.Context(), period, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Data)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	tiles, err := s.summary.Dashboard(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tiles)
}
