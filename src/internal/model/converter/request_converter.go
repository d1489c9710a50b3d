package converter

import (
	"time"

	"coinvest-service/src/internal/entity"
	"coinvest-service/src/internal/model"
)

func RequestToResponse(req *entity.CoinRequest) *model.RequestResponse {
	resp := &model.RequestResponse{
		ID:             req.ID,
		Type:           req.Type,
		Status:         req.Status,
		Amount:         req.Amount,
		PaymentMode:    req.PaymentMode,
		SubmissionDate: req.SubmissionDate,
	}
	if req.ProofOfPayment.Valid {
		resp.ProofOfPayment = &req.ProofOfPayment.String
	}
	if req.Note.Valid {
		resp.Note = &req.Note.String
	}
	if req.ApprovalDate.Valid {
		resp.ApprovalDate = &req.ApprovalDate.Time
	}
	if req.RejectionDate.Valid {
		resp.RejectionDate = &req.RejectionDate.Time
	}
	if req.RejectionReason.Valid {
		resp.RejectionReason = &req.RejectionReason.String
	}
	return resp
}

func RequestsToResponses(requests []entity.CoinRequest) []model.RequestResponse {
	responses := make([]model.RequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, *RequestToResponse(&requests[i]))
	}
	return responses
}

func RequestToRecentTransaction(req *entity.CoinRequest) model.RecentTransaction {
	tx := model.RecentTransaction{
		ID:          req.ID,
		Type:        req.Type,
		Amount:      req.Amount,
		Status:      req.Status,
		Date:        req.SubmissionDate,
		PaymentMode: req.PaymentMode,
	}
	if req.ApprovalDate.Valid {
		tx.ApprovalDate = &req.ApprovalDate.Time
	}
	if req.Note.Valid {
		tx.Note = &req.Note.String
	}
	return tx
}

// RequestToLedgerEvent builds the event published after a money-moving
// transition.
func RequestToLedgerEvent(eventID string, req *entity.CoinRequest, occurredAt time.Time) *model.LedgerEvent {
	event := &model.LedgerEvent{
		EventID:    eventID,
		RequestID:  req.ID,
		UserID:     req.UserID,
		Type:       req.Type,
		Status:     req.Status,
		Amount:     req.Amount,
		OccurredAt: occurredAt,
	}
	if req.Note.Valid {
		event.Note = req.Note.String
	}
	return event
}
