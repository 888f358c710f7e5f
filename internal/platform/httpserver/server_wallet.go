package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	walletdomainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/domain/errors"
	wallethttp "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/transport/http"
)

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req wallethttp.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWalletError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.wallet.Handler.CreateAccountHandler(r.Context(), req)
	if err != nil {
		writeWalletDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	resp, err := s.wallet.Handler.GetBalanceHandler(r.Context(), r.PathValue("account_id"))
	if err != nil {
		writeWalletDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCredit(w http.ResponseWriter, r *http.Request) {
	var req wallethttp.MutateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWalletError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.wallet.Handler.CreditHandler(r.Context(), r.PathValue("account_id"), req)
	if err != nil {
		writeWalletDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDebit(w http.ResponseWriter, r *http.Request) {
	var req wallethttp.MutateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWalletError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.wallet.Handler.DebitHandler(r.Context(), r.PathValue("account_id"), req)
	if err != nil {
		writeWalletDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := 0
	offset := 0
	if raw := query.Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			writeWalletError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = value
	}
	if raw := query.Get("offset"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			writeWalletError(w, http.StatusBadRequest, "offset must be an integer")
			return
		}
		offset = value
	}

	resp, err := s.wallet.Handler.ListTransactionsHandler(r.Context(), r.PathValue("account_id"), limit, offset)
	if err != nil {
		writeWalletDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeWalletDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, walletdomainerrors.ErrInvalidAccountID),
		errors.Is(err, walletdomainerrors.ErrInvalidAmount):
		writeWalletError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, walletdomainerrors.ErrAccountExists):
		writeWalletError(w, http.StatusConflict, err.Error())
	case errors.Is(err, walletdomainerrors.ErrAccountNotFound):
		writeWalletError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, walletdomainerrors.ErrInsufficientFunds):
		writeWalletError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeWalletError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeWalletError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, wallethttp.ErrorResponse{Message: message})
}
