package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/application"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/domain/entities"
	httptransport "github.com/HarjjotSinghh/openwave-sub002/contexts/finance-core/settlement/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) SettleHandler(ctx context.Context, req httptransport.SettleRequest) (httptransport.SettleResponse, error) {
	result, err := h.Service.Settle(ctx, req.HackathonID, req.ProjectID)
	if err != nil {
		return httptransport.SettleResponse{}, err
	}
	return httptransport.SettleResponse{Payment: toPaymentDTO(result.Payment)}, nil
}

func (h Handler) ConfirmPaymentHandler(ctx context.Context, projectID string, req httptransport.ConfirmPaymentRequest) (httptransport.SplitPaymentResponse, error) {
	payment, err := h.Service.ConfirmPayment(ctx, projectID, req.TransactionHash)
	if err != nil {
		return httptransport.SplitPaymentResponse{}, err
	}
	return httptransport.SplitPaymentResponse{Payment: toPaymentDTO(payment)}, nil
}

func (h Handler) GetSplitPaymentHandler(ctx context.Context, projectID string) (httptransport.SplitPaymentResponse, error) {
	payment, err := h.Service.GetSplitPayment(ctx, projectID)
	if err != nil {
		return httptransport.SplitPaymentResponse{}, err
	}
	return httptransport.SplitPaymentResponse{Payment: toPaymentDTO(payment)}, nil
}

func (h Handler) ListSplitPaymentsHandler(ctx context.Context, hackathonID string) (httptransport.SplitPaymentListResponse, error) {
	payments, err := h.Service.ListSplitPayments(ctx, hackathonID)
	if err != nil {
		return httptransport.SplitPaymentListResponse{}, err
	}
	items := make([]httptransport.SplitPaymentDTO, 0, len(payments))
	for _, payment := range payments {
		items = append(items, toPaymentDTO(payment))
	}
	return httptransport.SplitPaymentListResponse{Items: items}, nil
}

func toPaymentDTO(payment entities.SplitPayment) httptransport.SplitPaymentDTO {
	return httptransport.SplitPaymentDTO{
		ID:               payment.ID,
		ProjectID:        payment.ProjectID,
		HackathonID:      payment.HackathonID,
		TotalAmount:      payment.TotalAmount.String(),
		ContributorShare: payment.ContributorShare.String(),
		MaintainerShare:  payment.MaintainerShare.String(),
		ContributorTxID:  payment.ContributorTxID,
		MaintainerTxID:   payment.MaintainerTxID,
		TransactionHash:  payment.TransactionHash,
		Status:           string(payment.Status),
		FailureReason:    payment.FailureReason,
		CreatedAt:        payment.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        payment.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
