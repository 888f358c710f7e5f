package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	votingdomainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/domain/errors"
	votinghttp "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/transport/http"
)

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.voting.Handler.CastVoteHandler(r.Context(), req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListProjectVotes(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.ListProjectVotesHandler(r.Context(), r.PathValue("project_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProjectTally(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.ProjectTallyHandler(r.Context(), r.PathValue("project_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHackathonTallies(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.HackathonTalliesHandler(r.Context(), r.PathValue("hackathon_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeVotingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingdomainerrors.ErrInvalidVoteInput):
		writeVotingError(w, http.StatusBadRequest, err.Error())
	default:
		writeVotingError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeVotingError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, votinghttp.ErrorResponse{Error: message})
}
