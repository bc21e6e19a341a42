package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"qtholidays-service/internal/domain/entity"
	"qtholidays-service/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

type listRecordsResponse struct {
	Service string              `json:"service"`
	Count   int                 `json:"count"`
	Records []entity.FlatRecord `json:"records"`
}

type updateRecordResponse struct {
	ID      string       `json:"id"`
	Updated entity.Patch `json:"updated"`
}

type deleteRecordResponse struct {
	ID string `json:"id"`
}

func (s *Server) handlerFor(r *http.Request) (usecase.RecordHandler, error) {
	slug := chi.URLParam(r, "slug")
	handler := s.services.GetHandler(slug)
	if handler == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownService, slug)
	}
	return handler, nil
}

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	descriptors := lo.Map(s.services.Handlers(), func(h usecase.RecordHandler, _ int) entity.Descriptor {
		return h.Descriptor()
	})
	writeJSON(w, http.StatusOK, descriptors)
}

func (s *Server) handleGetService(w http.ResponseWriter, r *http.Request) {
	handler, err := s.handlerFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, handler.Descriptor())
}

// handleListRecords lists every record unless a period narrows it
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	handler, err := s.handlerFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	period := entity.PeriodAll
	if q := r.URL.Query().Get("period"); q != "" {
		if period, err = entity.ParsePeriod(q); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	records, err := handler.List(r.Context(), period.Since(s.clock.Now()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listRecordsResponse{
		Service: handler.Descriptor().DisplayName,
		Count:   len(records),
		Records: records,
	})
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	handler, err := s.handlerFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", entity.ErrInvalidRecord, err))
		return
	}

	record, err := handler.CreateFromJSON(r.Context(), body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	handler, err := s.handlerFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var patch entity.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", entity.ErrInvalidRecord, err))
		return
	}

	id := chi.URLParam(r, "id")
	applied, err := handler.Update(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updateRecordResponse{ID: id, Updated: applied})
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	handler, err := s.handlerFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	id, err := handler.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteRecordResponse{ID: id})
}
