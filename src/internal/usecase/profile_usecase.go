package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"coinvest-service/src/internal/entity"
	"coinvest-service/src/internal/gateway/storage"
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

const (
	coinvestorIDLength      = 8
	coinvestorIDMaxAttempts = 10
)

type ProfileUseCase struct {
	Log               log.Log
	Validate          *validator.Validate
	ProfileRepository repository.ProfileStore
	RequestRepository repository.RequestStore
	Uploader          storage.Uploader
	Config            *viper.Viper
}

func NewProfileUseCase(
	logger log.Log,
	validate *validator.Validate,
	profileRepository repository.ProfileStore,
	requestRepository repository.RequestStore,
	uploader storage.Uploader,
	cfg *viper.Viper,
) *ProfileUseCase {
	return &ProfileUseCase{
		Log:               logger,
		Validate:          validate,
		ProfileRepository: profileRepository,
		RequestRepository: requestRepository,
		Uploader:          uploader,
		Config:            cfg,
	}
}

// getOrCreateProfile creates the ledger profile lazily on first access. The
// coinvestor id is regenerated until it clears the unique index.
func (c *ProfileUseCase) getOrCreateProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	profile, err := c.ProfileRepository.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	for attempt := 0; attempt < coinvestorIDMaxAttempts; attempt++ {
		candidate := utils.RandomUppercaseID(coinvestorIDLength)
		if _, err := c.ProfileRepository.FindByCoinvestorID(ctx, candidate); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}

		createErr := c.ProfileRepository.Create(ctx, &entity.Profile{
			UserID:       userID,
			CoinvestorID: candidate,
			Balance:      0,
		})
		if createErr == nil {
			return c.ProfileRepository.FindByUserID(ctx, userID)
		}
		if errors.Is(createErr, repository.ErrDuplicate) {
			// either a coinvestor id collision or a concurrent create of
			// the same profile; the latter wins
			if existing, err := c.ProfileRepository.FindByUserID(ctx, userID); err == nil {
				return existing, nil
			}
			continue
		}
		return nil, createErr
	}

	return nil, fmt.Errorf("could not allocate a unique coinvestor id after %d attempts", coinvestorIDMaxAttempts)
}

func (c *ProfileUseCase) minimumAmount() float64 {
	return c.Config.GetFloat64("ledger.minimum_amount")
}

// SubmitPurchase appends a pending purchase request. Balance is untouched
// until an admin approves it.
func (c *ProfileUseCase) SubmitPurchase(ctx context.Context, request *model.SubmitPurchaseRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("profile-usecase", errObj.Message, "SubmitPurchase", utils.ConvertString(request))
		return result
	}

	if request.Amount < c.minimumAmount() {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("amount must be at least %.0f coins", c.minimumAmount())
		result.Error = errObj
		return result
	}

	// purchases via qr/upi/bank always carry a proof screenshot
	if request.ProofOfPayment == "" {
		errObj := httpError.NewBadRequest()
		errObj.Message = "proof of payment is required for purchase requests"
		result.Error = errObj
		return result
	}

	profile, err := c.getOrCreateProfile(ctx, request.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to load profile: %v", err)
		result.Error = errObj
		c.Log.Error("profile-usecase", errObj.Message, "SubmitPurchase", request.UserID)
		return result
	}

	req := &entity.CoinRequest{
		ID:             uuid.NewString(),
		UserID:         profile.UserID,
		Type:           entity.RequestTypePurchase,
		Status:         entity.RequestStatusPending,
		Amount:         request.Amount,
		PaymentMode:    request.PaymentMethod,
		ProofOfPayment: sql.NullString{String: request.ProofOfPayment, Valid: true},
		SubmissionDate: time.Now().UTC(),
	}
	if err := c.RequestRepository.Insert(ctx, req); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to submit purchase request: %v", err)
		result.Error = errObj
		c.Log.Error("profile-usecase", errObj.Message, "SubmitPurchase", request.UserID)
		return result
	}

	c.Log.Info("profile-usecase", "purchase request submitted", "SubmitPurchase", req.ID)
	result.Data = converter.RequestToResponse(req)
	return result
}

// SubmitWithdrawal appends a pending withdrawal request. The balance check
// here is advisory; the authoritative check runs again at approval time.
func (c *ProfileUseCase) SubmitWithdrawal(ctx context.Context, request *model.SubmitWithdrawalRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("profile-usecase", errObj.Message, "SubmitWithdrawal", utils.ConvertString(request))
		return result
	}

	if request.Amount < c.minimumAmount() {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("minimum withdrawal amount is %.0f", c.minimumAmount())
		result.Error = errObj
		return result
	}

	profile, err := c.getOrCreateProfile(ctx, request.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to load profile: %v", err)
		result.Error = errObj
		c.Log.Error("profile-usecase", errObj.Message, "SubmitWithdrawal", request.UserID)
		return result
	}

	if profile.Balance < request.Amount {
		errObj := httpError.NewUnprocessableEntity()
		errObj.Message = "insufficient balance for withdrawal"
		result.Error = errObj
		return result
	}

	req := &entity.CoinRequest{
		ID:             uuid.NewString(),
		UserID:         profile.UserID,
		Type:           entity.RequestTypeWithdrawal,
		Status:         entity.RequestStatusPending,
		Amount:         request.Amount,
		PaymentMode:    entity.PaymentModeBankTransfer,
		SubmissionDate: time.Now().UTC(),
	}
	if err := c.RequestRepository.Insert(ctx, req); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to submit withdrawal request: %v", err)
		result.Error = errObj
		c.Log.Error("profile-usecase", errObj.Message, "SubmitWithdrawal", request.UserID)
		return result
	}

	c.Log.Info("profile-usecase", "withdrawal request submitted", "SubmitWithdrawal", req.ID)
	result.Data = converter.RequestToResponse(req)
	return result
}

// ListRequests returns the user's own request log, newest first.
func (c *ProfileUseCase) ListRequests(ctx context.Context, request *model.ListRequestsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	profile, err := c.getOrCreateProfile(ctx, request.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to load profile: %v", err)
		result.Error = errObj
		c.Log.Error("profile-usecase", errObj.Message, "ListRequests", request.UserID)
		return result
	}

	requests, err := c.RequestRepository.ListByUser(ctx, profile.UserID, entity.RequestFilter{
		Type:   request.Type,
		Status: request.Status,
		Limit:  request.Limit,
	})
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to list requests: %v", err)
		result.Error = errObj
		c.Log.Error("profile-usecase", errObj.Message, "ListRequests", request.UserID)
		return result
	}

	result.Data = converter.RequestsToResponses(requests)
	return result
}

// GetKycStatus derives the verification view from current sub-document state.
func (c *ProfileUseCase) GetKycStatus(ctx context.Context, userID string) utils.Result {
	var result utils.Result

	profile, err := c.getOrCreateProfile(ctx, userID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to load profile: %v", err)
		result.Error = errObj
		c.Log.Error("profile-usecase", errObj.Message, "GetKycStatus", userID)
		return result
	}

	result.Data = converter.ProfileToKycStatus(profile)
	return result
}

// UploadDocument pushes a KYC document to the file-storage collaborator and
// records the returned URL with a pending status.
func (c *ProfileUseCase) UploadDocument(ctx context.Context, request *model.UploadDocumentRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	if request.FileType == "identityProof" && request.IdentityType == "" {
		errObj := httpError.NewBadRequest()
		errObj.Message = "identityType must be either \"aadhar\" or \"pan\" when uploading identity proof"
		result.Error = errObj
		return result
	}

	url, err := c.Uploader.Upload(ctx, request.LocalPath)
	if err != nil {
		errObj := httpError.NewServiceUnavailable()
		errObj.Message = fmt.Sprintf("file storage unavailable: %v", err)
		result.Error = errObj
		c.Log.Error("profile-usecase", errObj.Message, "UploadDocument", request.UserID)
		return result
	}

	profile, err := c.getOrCreateProfile(ctx, request.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to load profile: %v", err)
		result.Error = errObj
		c.Log.Error("profile-usecase", errObj.Message, "UploadDocument", request.UserID)
		return result
	}

	if request.FileType == "identityProof" {
		err = c.ProfileRepository.UpdateIdentityProof(ctx, profile.UserID, request.IdentityType, url)
	} else {
		err = c.ProfileRepository.UpdatePhoto(ctx, profile.UserID, url)
	}
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to record document: %v", err)
		result.Error = errObj
		c.Log.Error("profile-usecase", errObj.Message, "UploadDocument", request.UserID)
		return result
	}

	refreshed, err := c.ProfileRepository.FindByUserID(ctx, profile.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to reload profile: %v", err)
		result.Error = errObj
		return result
	}

	kyc := converter.ProfileToKycStatus(refreshed)
	redirect := "upload"
	if kyc.Completed {
		redirect = "dashboard"
	}

	response := &model.UploadDocumentResponse{
		URL:         url,
		FileType:    request.FileType,
		Status:      entity.DocumentStatusPending,
		RedirectURL: redirect,
		KycStatus:   kyc,
	}
	if request.IdentityType != "" {
		response.IdentityType = &request.IdentityType
	}

	c.Log.Info("profile-usecase", "document uploaded", "UploadDocument", request.FileType)
	result.Data = response
	return result
}

// GetDashboard assembles balance, KYC state and the investment maturity view.
func (c *ProfileUseCase) GetDashboard(ctx context.Context, request *model.GetDashboardRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	profile, err := c.getOrCreateProfile(ctx, request.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to load profile: %v", err)
		result.Error = errObj
		c.Log.Error("profile-usecase", errObj.Message, "GetDashboard", request.UserID)
		return result
	}

	approved, err := c.RequestRepository.ListByUser(ctx, profile.UserID, entity.RequestFilter{
		Type:   entity.RequestTypePurchase,
		Status: entity.RequestStatusApproved,
	})
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to load investments: %v", err)
		result.Error = errObj
		c.Log.Error("profile-usecase", errObj.Message, "GetDashboard", request.UserID)
		return result
	}

	investments := c.buildInvestments(approved)
	kyc := converter.ProfileToKycStatus(profile)

	emailVerified := "not-verified"
	if request.EmailVerified {
		emailVerified = "verified"
	}

	activeCount := 0
	totalActiveValue := 0.0
	var nextMaturityDays *int
	for i := range investments {
		if investments[i].Status != "active" {
			continue
		}
		activeCount++
		totalActiveValue += investments[i].Amount
		if nextMaturityDays == nil || investments[i].DaysLeft < *nextMaturityDays {
			days := investments[i].DaysLeft
			nextMaturityDays = &days
		}
	}

	result.Data = &model.DashboardResponse{
		UserProfile: model.DashboardProfile{
			Name:              request.Name,
			Email:             request.Email,
			Phone:             request.PhoneNumber,
			EmailVerified:     emailVerified,
			DocumentsVerified: converter.DocumentsStatusLabel(kyc),
			TotalCoins:        profile.Balance,
			TotalValue:        profile.Balance,
			CoinvestorID:      profile.CoinvestorID,
		},
		Investments: investments,
		Stats: model.DashboardStats{
			ActiveInvestments: activeCount,
			NextMaturityDays:  nextMaturityDays,
			TotalCurrentValue: totalActiveValue,
		},
	}
	return result
}

func (c *ProfileUseCase) buildInvestments(approvedPurchases []entity.CoinRequest) []model.InvestmentView {
	maturityDays := c.Config.GetInt("investment.maturity_days")
	now := time.Now().UTC()

	investments := make([]model.InvestmentView, 0, len(approvedPurchases))
	for i := range approvedPurchases {
		req := &approvedPurchases[i]
		if !req.ApprovalDate.Valid {
			continue
		}
		startDate := req.ApprovalDate.Time
		maturityDate := startDate.AddDate(0, 0, maturityDays)
		daysLeft := int(math.Ceil(maturityDate.Sub(now).Hours() / 24))
		if daysLeft < 0 {
			daysLeft = 0
		}
		status := "matured"
		if daysLeft > 0 {
			status = "active"
		}
		investments = append(investments, model.InvestmentView{
			ID:        req.ID,
			Amount:    req.Amount,
			StartDate: startDate,
			DaysLeft:  daysLeft,
			Status:    status,
		})
	}
	return investments
}
