package server

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ezBadminton/goswiss/core"
	"github.com/ezBadminton/goswiss/export"
	"github.com/ezBadminton/goswiss/service"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, envelope{"status": "ok"}); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) listTournaments(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.manager.List(r.Context())
	if err != nil {
		s.mapServiceError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, envelope{"tournaments": summaries}); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) createTournament(w http.ResponseWriter, r *http.Request) {
	var input service.CreateInput
	if err := readJSON(w, r, &input); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	id, tournament, err := s.manager.Create(r.Context(), input)
	if err != nil {
		s.mapServiceError(w, r, err)
		return
	}

	headers := w.Header()
	headers.Set("Location", fmt.Sprintf("/tournaments/%s", id))
	data := envelope{"id": id, "tournament": tournament, "state": tournament.State().String()}
	if err := writeJSON(w, http.StatusCreated, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) getTournament(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tournament, err := s.manager.Get(r.Context(), id)
	if err != nil {
		s.mapServiceError(w, r, err)
		return
	}

	data := envelope{"id": id, "tournament": tournament, "state": tournament.State().String()}
	if err := writeJSON(w, http.StatusOK, data); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) deleteTournament(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.manager.Delete(r.Context(), id); err != nil {
		s.mapServiceError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, envelope{"message": "tournament deleted"}); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) enterRound(w http.ResponseWriter, r *http.Request) {
	pairing, err := s.manager.EnterRound(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.mapServiceError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, envelope{"pairing": pairing}); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) submitResults(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Results []core.Result `json:"results"`
	}
	if err := readJSON(w, r, &input); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	standings, err := s.manager.SubmitRoundResults(r.Context(), chi.URLParam(r, "id"), input.Results)
	if err != nil {
		s.mapServiceError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, envelope{"standings": standings}); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) editMatches(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Matches []core.Match `json:"matches"`
	}
	if err := readJSON(w, r, &input); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	standings, err := s.manager.RecomputeFromEditedLog(r.Context(), chi.URLParam(r, "id"), input.Matches)
	if err != nil {
		s.mapServiceError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, envelope{"standings": standings}); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) standings(w http.ResponseWriter, r *http.Request) {
	standings, err := s.manager.Standings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.mapServiceError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, envelope{"standings": standings}); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) headToHead(w http.ResponseWriter, r *http.Request) {
	table, err := s.manager.HeadToHead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.mapServiceError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, envelope{"head_to_head": table}); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) exportMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.manager.Matches(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.mapServiceError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteMatchesCSV(&buf, matches); err != nil {
		s.serverErrorResponse(w, r, err)
		return
	}
	s.writeFile(w, r, "text/csv", "matches.csv", buf.Bytes())
}

func (s *Server) exportStandings(w http.ResponseWriter, r *http.Request) {
	tournament, err := s.manager.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.mapServiceError(w, r, err)
		return
	}

	var buf bytes.Buffer
	err = export.WriteStandingsXLSX(&buf, tournament.CurrentStandings(), tournament.Matches())
	if err != nil {
		s.serverErrorResponse(w, r, err)
		return
	}
	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	s.writeFile(w, r, contentType, "standings.xlsx", buf.Bytes())
}

func (s *Server) writeFile(w http.ResponseWriter, r *http.Request, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.requestLogger(r).WithError(err).Error("failed to write file response")
	}
}
