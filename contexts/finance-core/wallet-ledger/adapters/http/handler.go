package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/application"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/domain/entities"
	domainerrors "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/domain/errors"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/ports"
	httptransport "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/wallet-ledger/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateAccountHandler(
	ctx context.Context,
	req httptransport.CreateAccountRequest,
) (httptransport.AccountResponse, error) {
	account, err := h.Service.CreateAccount(ctx, req.AccountID)
	if err != nil {
		return httptransport.AccountResponse{}, err
	}
	return httptransport.AccountResponse{
		Status: "success",
		Data:   toAccountDTO(account),
	}, nil
}

func (h Handler) GetBalanceHandler(
	ctx context.Context,
	accountID string,
) (httptransport.AccountResponse, error) {
	account, err := h.Service.GetBalance(ctx, accountID)
	if err != nil {
		return httptransport.AccountResponse{}, err
	}
	return httptransport.AccountResponse{
		Status: "success",
		Data:   toAccountDTO(account),
	}, nil
}

func (h Handler) CreditHandler(
	ctx context.Context,
	accountID string,
	req httptransport.MutateBalanceRequest,
) (httptransport.MutationResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return httptransport.MutationResponse{}, err
	}
	result, err := h.Service.Credit(ctx, accountID, amount, req.Reference)
	if err != nil {
		return httptransport.MutationResponse{}, err
	}
	return httptransport.MutationResponse{
		Status: "success",
		Data:   toMutationDTO(result),
	}, nil
}

func (h Handler) DebitHandler(
	ctx context.Context,
	accountID string,
	req httptransport.MutateBalanceRequest,
) (httptransport.MutationResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return httptransport.MutationResponse{}, err
	}
	result, err := h.Service.Debit(ctx, accountID, amount, req.Reference)
	if err != nil {
		return httptransport.MutationResponse{}, err
	}
	return httptransport.MutationResponse{
		Status: "success",
		Data:   toMutationDTO(result),
	}, nil
}

func (h Handler) ListTransactionsHandler(
	ctx context.Context,
	accountID string,
	limit int,
	offset int,
) (httptransport.TransactionListResponse, error) {
	items, err := h.Service.ListTransactions(ctx, accountID, limit, offset)
	if err != nil {
		return httptransport.TransactionListResponse{}, err
	}
	resp := httptransport.TransactionListResponse{
		Status: "success",
		Data:   make([]httptransport.TransactionDTO, 0, len(items)),
	}
	for _, item := range items {
		resp.Data = append(resp.Data, httptransport.TransactionDTO{
			TransactionID: item.ID,
			AccountID:     item.AccountID,
			Kind:          string(item.Kind),
			Amount:        item.Amount.String(),
			Reference:     item.Reference,
			CreatedAt:     item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

// parseAmount rejects malformed decimals before the service layer sees them,
// so the transport never feeds floats into the ledger.
func parseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, domainerrors.ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, domainerrors.ErrInvalidAmount
	}
	return amount, nil
}

func toAccountDTO(account entities.Account) httptransport.AccountDTO {
	return httptransport.AccountDTO{
		AccountID: account.ID,
		Balance:   account.Balance.String(),
		CreatedAt: account.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: account.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toMutationDTO(result ports.MutationResult) httptransport.MutationDTO {
	return httptransport.MutationDTO{
		TransactionID: result.TransactionID,
		AccountID:     result.AccountID,
		Kind:          string(result.Kind),
		Amount:        result.Amount.String(),
		Balance:       result.Balance.String(),
		CreatedAt:     result.CreatedAt.UTC().Format(time.RFC3339),
	}
}
