package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	settlementdomainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/domain/errors"
	settlementhttp "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/transport/http"
	walletdomainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/domain/errors"
	resultsdomainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/results-engine/domain/errors"
)

func (s *Server) handleSettle(w http.ResponseWriter, r *http.Request) {
	var req settlementhttp.SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSettlementError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.settlement.Handler.SettleHandler(r.Context(), req)
	if err != nil {
		writeSettlementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req settlementhttp.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSettlementError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.settlement.Handler.ConfirmPaymentHandler(r.Context(), r.PathValue("project_id"), req)
	if err != nil {
		writeSettlementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSplitPayment(w http.ResponseWriter, r *http.Request) {
	resp, err := s.settlement.Handler.GetSplitPaymentHandler(r.Context(), r.PathValue("project_id"))
	if err != nil {
		writeSettlementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSplitPayments(w http.ResponseWriter, r *http.Request) {
	resp, err := s.settlement.Handler.ListSplitPaymentsHandler(r.Context(), r.PathValue("hackathon_id"))
	if err != nil {
		writeSettlementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeSettlementDomainError also maps the ledger and result errors the
// dispatcher propagates unchanged.
func writeSettlementDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, settlementdomainerrors.ErrInvalidSettlementInput),
		errors.Is(err, settlementdomainerrors.ErrInvalidTransactionHash):
		writeSettlementError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, settlementdomainerrors.ErrNotApproved),
		errors.Is(err, settlementdomainerrors.ErrAlreadySettled),
		errors.Is(err, settlementdomainerrors.ErrNotCompleted):
		writeSettlementError(w, http.StatusConflict, err.Error())
	case errors.Is(err, settlementdomainerrors.ErrSettlementNotFound),
		errors.Is(err, resultsdomainerrors.ErrResultNotFound),
		errors.Is(err, resultsdomainerrors.ErrProjectNotFound),
		errors.Is(err, walletdomainerrors.ErrAccountNotFound):
		writeSettlementError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, walletdomainerrors.ErrInsufficientFunds):
		writeSettlementError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeSettlementError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeSettlementError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, settlementhttp.ErrorResponse{Error: message})
}
