package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coinvest-service/src/internal/entity"
	"coinvest-service/src/internal/gateway/identity"
	"coinvest-service/src/internal/gateway/messaging"
	"coinvest-service/src/internal/model"
	"coinvest-service/src/internal/model/converter"
	"coinvest-service/src/internal/repository"
	httpError "coinvest-service/src/pkg/http-error"
	"coinvest-service/src/pkg/log"
	"coinvest-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const recentTransactionCount = 10

type AdminUseCase struct {
	Log               log.Log
	Validate          *validator.Validate
	ProfileRepository repository.ProfileStore
	RequestRepository repository.RequestStore
	Identity          identity.Provider
	LedgerProducer    *messaging.LedgerProducer
	Config            *viper.Viper
}

func NewAdminUseCase(
	logger log.Log,
	validate *validator.Validate,
	profileRepository repository.ProfileStore,
	requestRepository repository.RequestStore,
	identityProvider identity.Provider,
	ledgerProducer *messaging.LedgerProducer,
	cfg *viper.Viper,
) *AdminUseCase {
	return &AdminUseCase{
		Log:               logger,
		Validate:          validate,
		ProfileRepository: profileRepository,
		RequestRepository: requestRepository,
		Identity:          identityProvider,
		LedgerProducer:    ledgerProducer,
		Config:            cfg,
	}
}

// ApproveRequest moves a pending request to approved and applies the
// balance delta in one store transaction. A second approval of the same
// request fails without touching the balance again.
func (c *AdminUseCase) ApproveRequest(ctx context.Context, request *model.ApproveRequestModel) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	approvedAt := time.Now().UTC()
	req, newBalance, err := c.RequestRepository.Approve(ctx, request.RequestID, approvedAt)
	if err != nil {
		result.Error = c.mapLedgerError(err, "ApproveRequest", request.RequestID)
		return result
	}

	c.publishLedgerEvent(req, approvedAt)
	c.Log.Info("admin-usecase", "request approved", "ApproveRequest", req.ID)

	result.Data = &model.ReviewDecisionResponse{
		RequestID:  req.ID,
		Status:     req.Status,
		Amount:     req.Amount,
		NewBalance: newBalance,
	}
	return result
}

// RejectRequest moves a pending request to rejected. The pending
// precondition is enforced symmetrically with approval.
func (c *AdminUseCase) RejectRequest(ctx context.Context, request *model.RejectRequestModel) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	rejectedAt := time.Now().UTC()
	req, err := c.RequestRepository.Reject(ctx, request.RequestID, request.Reason, rejectedAt)
	if err != nil {
		result.Error = c.mapLedgerError(err, "RejectRequest", request.RequestID)
		return result
	}

	c.publishLedgerEvent(req, rejectedAt)
	c.Log.Info("admin-usecase", "request rejected", "RejectRequest", req.ID)

	result.Data = &model.ReviewDecisionResponse{
		RequestID: req.ID,
		Status:    req.Status,
		Reason:    request.Reason,
	}
	return result
}

// ManualDeposit credits a user's balance outside the review flow. The
// adjustment is recorded as an already-approved cash purchase.
func (c *AdminUseCase) ManualDeposit(ctx context.Context, request *model.ManualAdjustmentRequest) utils.Result {
	return c.manualAdjustment(ctx, request, entity.RequestTypePurchase, "Manual deposit by admin")
}

// ManualWithdraw debits a user's balance outside the review flow.
func (c *AdminUseCase) ManualWithdraw(ctx context.Context, request *model.ManualAdjustmentRequest) utils.Result {
	return c.manualAdjustment(ctx, request, entity.RequestTypeWithdrawal, "Manual withdrawal by admin")
}

func (c *AdminUseCase) manualAdjustment(ctx context.Context, request *model.ManualAdjustmentRequest, reqType, defaultNote string) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	if _, err := c.ProfileRepository.FindByUserID(ctx, request.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errObj := httpError.NewNotFound()
			errObj.Message = "user profile not found"
			result.Error = errObj
			return result
		}
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to load profile: %v", err)
		result.Error = errObj
		c.Log.Error("admin-usecase", errObj.Message, "manualAdjustment", request.UserID)
		return result
	}

	note := request.Note
	if note == "" {
		note = defaultNote
	}

	now := time.Now().UTC()
	req := &entity.CoinRequest{
		ID:             uuid.NewString(),
		UserID:         request.UserID,
		Type:           reqType,
		Status:         entity.RequestStatusApproved,
		Amount:         request.Amount,
		PaymentMode:    entity.PaymentModeCash,
		Note:           sql.NullString{String: note, Valid: true},
		SubmissionDate: now,
		ApprovalDate:   sql.NullTime{Time: now, Valid: true},
	}

	newBalance, err := c.RequestRepository.InsertApproved(ctx, req)
	if err != nil {
		result.Error = c.mapLedgerError(err, "manualAdjustment", request.UserID)
		return result
	}

	c.publishLedgerEvent(req, now)
	c.Log.Info("admin-usecase", "manual adjustment applied", reqType, request.UserID)

	adjustmentType := "deposit"
	if reqType == entity.RequestTypeWithdrawal {
		adjustmentType = "withdrawal"
	}
	result.Data = &model.ManualAdjustmentResponse{
		UserID:     request.UserID,
		Amount:     request.Amount,
		NewBalance: newBalance,
		Type:       adjustmentType,
	}
	return result
}

// VerifyDocuments marks every uploaded KYC sub-document verified.
func (c *AdminUseCase) VerifyDocuments(ctx context.Context, request *model.DocumentDecisionRequest) utils.Result {
	return c.decideDocuments(ctx, request, entity.DocumentStatusVerified)
}

// RejectDocuments marks every uploaded KYC sub-document rejected.
func (c *AdminUseCase) RejectDocuments(ctx context.Context, request *model.DocumentDecisionRequest) utils.Result {
	return c.decideDocuments(ctx, request, entity.DocumentStatusRejected)
}

func (c *AdminUseCase) decideDocuments(ctx context.Context, request *model.DocumentDecisionRequest, status string) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	if err := c.ProfileRepository.SetDocumentStatuses(ctx, request.UserID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errObj := httpError.NewNotFound()
			errObj.Message = "profile not found"
			result.Error = errObj
			return result
		}
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to update document statuses: %v", err)
		result.Error = errObj
		c.Log.Error("admin-usecase", errObj.Message, "decideDocuments", request.UserID)
		return result
	}

	c.Log.Info("admin-usecase", "documents "+status, "decideDocuments", request.UserID)
	result.Data = &model.DocumentDecisionResponse{
		UserID: request.UserID,
		Status: status,
		Reason: request.Reason,
	}
	return result
}

// UpdateUserStatus flips the moderation status on the external user record.
func (c *AdminUseCase) UpdateUserStatus(ctx context.Context, request *model.UpdateUserStatusRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	if err := c.Identity.UpdateStatus(ctx, request.UserID, request.Status); err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			errObj := httpError.NewNotFound()
			errObj.Message = "user not found"
			result.Error = errObj
			return result
		}
		errObj := httpError.NewServiceUnavailable()
		errObj.Message = fmt.Sprintf("identity provider error: %v", err)
		result.Error = errObj
		c.Log.Error("admin-usecase", errObj.Message, "UpdateUserStatus", request.UserID)
		return result
	}

	result.Data = &model.UserStatusResponse{
		UserID: request.UserID,
		Status: request.Status,
	}
	return result
}

// ListUsers joins identity records with ledger profiles for the admin
// user screen.
func (c *AdminUseCase) ListUsers(ctx context.Context, request *model.ListUsersRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	page, limit := normalizePage(request.Page, request.Limit)
	users, total, err := c.Identity.ListUsers(ctx, identity.ListFilter{
		Search:        request.Search,
		Status:        request.Status,
		EmailVerified: true,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		errObj := httpError.NewServiceUnavailable()
		errObj.Message = fmt.Sprintf("identity provider error: %v", err)
		result.Error = errObj
		c.Log.Error("admin-usecase", errObj.Message, "ListUsers", "")
		return result
	}

	userIDs := make([]string, 0, len(users))
	for i := range users {
		userIDs = append(userIDs, users[i].ID)
	}

	profiles, err := c.ProfileRepository.ListByUserIDs(ctx, userIDs)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to load profiles: %v", err)
		result.Error = errObj
		c.Log.Error("admin-usecase", errObj.Message, "ListUsers", "")
		return result
	}

	profileMap := make(map[string]*entity.Profile, len(profiles))
	for i := range profiles {
		profileMap[profiles[i].UserID] = &profiles[i]
	}

	summaries := make([]model.UserSummary, 0, len(users))
	for i := range users {
		user := &users[i]
		summary := model.UserSummary{
			ID:                 user.ID,
			Name:               user.Name,
			CoinvestorID:       "Not assigned",
			Email:              user.Email,
			Phone:              user.PhoneNumber,
			DocumentsStatus:    "not-verified",
			RegistrationDate:   user.CreatedAt,
			Status:             user.Status,
			RecentTransactions: []model.RecentTransaction{},
		}
		if profile, ok := profileMap[user.ID]; ok {
			summary.CoinvestorID = profile.CoinvestorID
			summary.TotalCoins = profile.Balance
			summary.DocumentsStatus = converter.DocumentsStatusLabel(converter.ProfileToKycStatus(profile))

			recent, err := c.RequestRepository.ListByUser(ctx, user.ID, entity.RequestFilter{Limit: recentTransactionCount})
			if err != nil {
				c.Log.Error("admin-usecase", fmt.Sprintf("failed to load recent requests: %v", err), "ListUsers", user.ID)
			} else {
				for j := range recent {
					summary.RecentTransactions = append(summary.RecentTransactions, converter.RequestToRecentTransaction(&recent[j]))
				}
			}
		}
		summaries = append(summaries, summary)
	}

	result.Data = &model.ListUsersResponse{
		Users:      summaries,
		Pagination: buildPagination(page, limit, total),
	}
	return result
}

// ListPendingDocuments lists profiles awaiting document review.
func (c *AdminUseCase) ListPendingDocuments(ctx context.Context, request *model.ListDocumentsRequest) utils.Result {
	return c.listDocuments(ctx, request, entity.DocumentStatusPending)
}

// ListVerifiedDocuments lists fully verified profiles.
func (c *AdminUseCase) ListVerifiedDocuments(ctx context.Context, request *model.ListDocumentsRequest) utils.Result {
	return c.listDocuments(ctx, request, entity.DocumentStatusVerified)
}

func (c *AdminUseCase) listDocuments(ctx context.Context, request *model.ListDocumentsRequest, status string) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	page, limit := normalizePage(request.Page, request.Limit)
	filter := entity.DocumentFilter{
		Search:       request.Search,
		MatchUserIDs: c.searchUserIDs(ctx, request.Search),
		Page:         page,
		Limit:        limit,
	}
	profiles, total, err := c.ProfileRepository.ListByDocumentStatus(ctx, status, filter)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to list documents: %v", err)
		result.Error = errObj
		c.Log.Error("admin-usecase", errObj.Message, "listDocuments", status)
		return result
	}

	userIDs := make([]string, 0, len(profiles))
	for i := range profiles {
		userIDs = append(userIDs, profiles[i].UserID)
	}
	userMap := c.lookupUsers(ctx, userIDs)

	label := "pending"
	if status == entity.DocumentStatusVerified {
		label = "verified"
	}

	items := make([]model.DocumentReviewItem, 0, len(profiles))
	for i := range profiles {
		item := converter.ProfileToDocumentReviewItem(&profiles[i], label)
		if user, ok := userMap[profiles[i].UserID]; ok {
			item.Name = user.Name
			item.Email = user.Email
			item.Phone = user.PhoneNumber
			item.RegistrationDate = user.CreatedAt
		}
		items = append(items, item)
	}

	result.Data = &model.ListDocumentsResponse{
		Documents: items,
		Total:     total,
	}
	return result
}

// ListBuyRequests feeds the purchase review queue.
func (c *AdminUseCase) ListBuyRequests(ctx context.Context, request *model.ListReviewRequestsModel) utils.Result {
	return c.listReviewRequests(ctx, request, entity.RequestTypePurchase)
}

// ListWithdrawRequests feeds the withdrawal review queue.
func (c *AdminUseCase) ListWithdrawRequests(ctx context.Context, request *model.ListReviewRequestsModel) utils.Result {
	return c.listReviewRequests(ctx, request, entity.RequestTypeWithdrawal)
}

func (c *AdminUseCase) listReviewRequests(ctx context.Context, request *model.ListReviewRequestsModel, reqType string) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	page, limit := normalizePage(request.Page, request.Limit)
	filter := entity.ReviewFilter{
		Status:       request.Status,
		Sort:         request.Sort,
		Search:       request.Search,
		MatchUserIDs: c.searchUserIDs(ctx, request.Search),
		Page:         page,
		Limit:        limit,
	}
	if filter.Status == "" {
		filter.Status = entity.RequestStatusPending
	}
	if filter.Sort == "" {
		filter.Sort = "newest"
	}

	requests, total, err := c.RequestRepository.ListByType(ctx, reqType, filter)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to list requests: %v", err)
		result.Error = errObj
		c.Log.Error("admin-usecase", errObj.Message, "listReviewRequests", reqType)
		return result
	}

	userIDs := make([]string, 0, len(requests))
	for i := range requests {
		userIDs = append(userIDs, requests[i].UserID)
	}
	userMap := c.lookupUsers(ctx, userIDs)

	items := make([]model.ReviewRequestItem, 0, len(requests))
	for i := range requests {
		req := &requests[i]
		item := model.ReviewRequestItem{
			ID:            req.ID,
			UserID:        req.UserID,
			CoinvestorID:  req.CoinvestorID,
			Amount:        req.Amount,
			PaymentMethod: req.PaymentMode,
			Status:        req.Status,
			RequestDate:   req.SubmissionDate,
		}
		if req.ProofOfPayment.Valid {
			item.ProofDocument = &req.ProofOfPayment.String
		}
		if req.RejectionReason.Valid {
			item.Reason = &req.RejectionReason.String
		}
		if user, ok := userMap[req.UserID]; ok {
			item.UserName = user.Name
		}
		items = append(items, item)
	}

	result.Data = &model.ListReviewRequestsResponse{
		Requests: items,
		Total:    total,
	}
	return result
}

// searchUserIDs resolves the identity-owned side of a search term (name,
// email, phone) to user ids so the store can filter before paginating.
// A provider outage degrades to coinvestor-id-only matching.
func (c *AdminUseCase) searchUserIDs(ctx context.Context, search string) []string {
	if search == "" {
		return nil
	}
	users, _, err := c.Identity.ListUsers(ctx, identity.ListFilter{Search: search})
	if err != nil {
		c.Log.Error("admin-usecase", fmt.Sprintf("identity search failed: %v", err), "searchUserIDs", search)
		return nil
	}
	ids := make([]string, 0, len(users))
	for i := range users {
		ids = append(ids, users[i].ID)
	}
	return ids
}

func (c *AdminUseCase) lookupUsers(ctx context.Context, userIDs []string) map[string]identity.User {
	userMap := map[string]identity.User{}
	if len(userIDs) == 0 {
		return userMap
	}
	users, err := c.Identity.GetUsers(ctx, userIDs)
	if err != nil {
		// listings degrade to ledger-only data when the provider is down
		c.Log.Error("admin-usecase", fmt.Sprintf("identity lookup failed: %v", err), "lookupUsers", "")
		return userMap
	}
	for i := range users {
		userMap[users[i].ID] = users[i]
	}
	return userMap
}

func (c *AdminUseCase) mapLedgerError(err error, scope, meta string) httpError.CommonError {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		errObj := httpError.NewNotFound()
		errObj.Message = "request not found"
		return errObj
	case errors.Is(err, repository.ErrNotPending):
		errObj := httpError.NewConflict()
		errObj.Message = "request is not pending"
		return errObj
	case errors.Is(err, repository.ErrInsufficientBalance):
		errObj := httpError.NewUnprocessableEntity()
		errObj.Message = "insufficient balance for withdrawal"
		return errObj
	default:
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("ledger operation failed: %v", err)
		c.Log.Error("admin-usecase", errObj.Message, scope, meta)
		return errObj
	}
}

func (c *AdminUseCase) publishLedgerEvent(req *entity.CoinRequest, occurredAt time.Time) {
	event := converter.RequestToLedgerEvent(uuid.NewString(), req, occurredAt)
	if err := c.LedgerProducer.SendLedgerEvent(event); err != nil {
		// publish failures never roll back ledger state
		c.Log.Error("admin-usecase", fmt.Sprintf("failed to publish ledger event: %v", err), "publishLedgerEvent", req.ID)
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func buildPagination(page, limit, total int) model.Pagination {
	pages := (total + limit - 1) / limit
	return model.Pagination{
		Current: page,
		Total:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}
