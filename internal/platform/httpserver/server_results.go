package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	resultsdomainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/domain/errors"
	resultshttp "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/transport/http"
)

func (s *Server) handleRegisterProject(w http.ResponseWriter, r *http.Request) {
	var req resultshttp.RegisterProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResultsError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.results.Handler.RegisterProjectHandler(r.Context(), req)
	if err != nil {
		writeResultsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleComputeResults(w http.ResponseWriter, r *http.Request) {
	resp, err := s.results.Handler.ComputeResultsHandler(r.Context(), r.PathValue("hackathon_id"))
	if err != nil {
		writeResultsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHackathonResults(w http.ResponseWriter, r *http.Request) {
	resp, err := s.results.Handler.HackathonResultsHandler(r.Context(), r.PathValue("hackathon_id"))
	if err != nil {
		writeResultsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProjectResult(w http.ResponseWriter, r *http.Request) {
	resp, err := s.results.Handler.ProjectResultHandler(r.Context(), r.PathValue("project_id"))
	if err != nil {
		writeResultsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeResultsDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, resultsdomainerrors.ErrInvalidHackathonID),
		errors.Is(err, resultsdomainerrors.ErrInvalidProjection):
		writeResultsError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, resultsdomainerrors.ErrProjectNotFound),
		errors.Is(err, resultsdomainerrors.ErrResultNotFound):
		writeResultsError(w, http.StatusNotFound, err.Error())
	default:
		writeResultsError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeResultsError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, resultshttp.ErrorResponse{Error: message})
}
