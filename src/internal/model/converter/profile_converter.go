package converter

import (
	"coinvest-service/src/internal/entity"
	"coinvest-service/src/internal/model"
)

// ProfileToKycStatus derives the KYC view from the current sub-document
// state. Never persisted, so it cannot drift.
func ProfileToKycStatus(profile *entity.Profile) model.KycStatusResponse {
	status := model.KycStatusResponse{
		Completed: profile.HasIdentityProof() && profile.HasPhoto(),
		Verified: profile.IdentityStatus.String == entity.DocumentStatusVerified &&
			profile.PhotoStatus.String == entity.DocumentStatusVerified,
	}

	status.IdentityProof.Uploaded = profile.HasIdentityProof()
	if profile.IdentityType.Valid {
		status.IdentityProof.Type = &profile.IdentityType.String
	}
	if profile.IdentityStatus.Valid {
		status.IdentityProof.Status = &profile.IdentityStatus.String
	}

	status.Photo.Uploaded = profile.HasPhoto()
	if profile.PhotoStatus.Valid {
		status.Photo.Status = &profile.PhotoStatus.String
	}

	return status
}

// DocumentsStatusLabel flattens the KYC view into the label the admin
// screens show.
func DocumentsStatusLabel(kyc model.KycStatusResponse) string {
	if kyc.Verified {
		return "verified"
	}
	if kyc.Completed {
		return "pending"
	}
	return "not-verified"
}

func ProfileToDocumentReviewItem(profile *entity.Profile, documentsStatus string) model.DocumentReviewItem {
	item := model.DocumentReviewItem{
		ID:              profile.UserID,
		CoinvestorID:    profile.CoinvestorID,
		DocumentsStatus: documentsStatus,
	}
	if profile.HasIdentityProof() {
		view := &model.KycDocumentView{
			URL:    profile.IdentityURL.String,
			Status: profile.IdentityStatus.String,
		}
		if profile.IdentityType.Valid {
			view.Type = &profile.IdentityType.String
		}
		item.IdentityProof = view
	}
	if profile.HasPhoto() {
		item.Photo = &model.KycDocumentView{
			URL:    profile.PhotoURL.String,
			Status: profile.PhotoStatus.String,
		}
	}
	return item
}
