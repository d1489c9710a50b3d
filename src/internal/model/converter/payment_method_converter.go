package converter

import (
	"encoding/json"

	"coinvest-service/src/internal/entity"
	"coinvest-service/src/internal/model"
)

func PaymentMethodToResponse(method *entity.PaymentMethod) *model.PaymentMethodResponse {
	details := map[string]interface{}{}
	if len(method.Details) > 0 {
		// details payload is admin-provided JSON; a decode failure leaves it empty
		_ = json.Unmarshal(method.Details, &details)
	}

	resp := &model.PaymentMethodResponse{
		ID:        method.ID,
		Type:      method.Type,
		Title:     method.Title,
		Details:   details,
		IsActive:  method.IsActive,
		CreatedAt: method.CreatedAt,
		UpdatedAt: method.UpdatedAt,
	}
	if method.QRCodeURL.Valid {
		resp.QRCodeURL = &method.QRCodeURL.String
	}
	return resp
}

func PaymentMethodsToResponses(methods []entity.PaymentMethod) []model.PaymentMethodResponse {
	responses := make([]model.PaymentMethodResponse, 0, len(methods))
	for i := range methods {
		responses = append(responses, *PaymentMethodToResponse(&methods[i]))
	}
	return responses
}
