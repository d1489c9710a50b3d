package usecase

import (
	"context"
	"sync"
	"testing"

	"coinvest-service/src/internal/entity"
	"coinvest-service/src/internal/model"
	"coinvest-service/src/internal/repository"
	httpError "coinvest-service/src/pkg/http-error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memPaymentMethods is a map-backed PaymentMethodStore.
type memPaymentMethods struct {
	mu      sync.Mutex
	methods map[string]*entity.PaymentMethod
	lists   int
}

func newMemPaymentMethods() *memPaymentMethods {
	return &memPaymentMethods{methods: map[string]*entity.PaymentMethod{}}
}

func (m *memPaymentMethods) Insert(ctx context.Context, method *entity.PaymentMethod) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *method
	m.methods[method.ID] = &clone
	return nil
}

func (m *memPaymentMethods) Update(ctx context.Context, method *entity.PaymentMethod) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.methods[method.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *method
	m.methods[method.ID] = &clone
	return nil
}

func (m *memPaymentMethods) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.methods[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.methods, id)
	return nil
}

func (m *memPaymentMethods) FindByID(ctx context.Context, id string) (*entity.PaymentMethod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	method, ok := m.methods[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *method
	return &clone, nil
}

func (m *memPaymentMethods) List(ctx context.Context, activeOnly bool) ([]entity.PaymentMethod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	methods := []entity.PaymentMethod{}
	for _, method := range m.methods {
		if activeOnly && !method.IsActive {
			continue
		}
		methods = append(methods, *method)
	}
	return methods, nil
}

func newPaymentMethodUseCase(store *memPaymentMethods) *PaymentMethodUseCase {
	return NewPaymentMethodUseCase(testLogger(), testValidator(), store, newFakeRedis())
}

func TestCreateQRMethodRequiresURL(t *testing.T) {
	uc := newPaymentMethodUseCase(newMemPaymentMethods())

	result := uc.Create(context.Background(), &model.CreatePaymentMethodRequest{
		Type:    entity.PaymentMethodTypeQR,
		Title:   "Scan to pay",
		Details: map[string]interface{}{"provider": "gpay"},
	})

	require.NotNil(t, result.Error)
	errObj := result.Error.(httpError.CommonError)
	assert.Equal(t, 400, errObj.Code)
	assert.Contains(t, errObj.Message, "qrCodeUrl is required")
}

func TestCreateNonQRMethodRejectsURL(t *testing.T) {
	uc := newPaymentMethodUseCase(newMemPaymentMethods())

	result := uc.Create(context.Background(), &model.CreatePaymentMethodRequest{
		Type:      entity.PaymentMethodTypeUPI,
		Title:     "UPI transfer",
		Details:   map[string]interface{}{"vpa": "coins@bank"},
		QRCodeURL: "https://files.example.com/qr.png",
	})

	require.NotNil(t, result.Error)
	errObj := result.Error.(httpError.CommonError)
	assert.Equal(t, 400, errObj.Code)
	assert.Contains(t, errObj.Message, "only allowed for qr")
}

func TestCreateQRMethod(t *testing.T) {
	store := newMemPaymentMethods()
	uc := newPaymentMethodUseCase(store)

	result := uc.Create(context.Background(), &model.CreatePaymentMethodRequest{
		Type:      entity.PaymentMethodTypeQR,
		Title:     "Scan to pay",
		Details:   map[string]interface{}{"provider": "gpay"},
		QRCodeURL: "https://files.example.com/qr.png",
	})

	require.Nil(t, result.Error)
	resp := result.Data.(*model.PaymentMethodResponse)
	assert.True(t, resp.IsActive)
	require.NotNil(t, resp.QRCodeURL)
	assert.Equal(t, "https://files.example.com/qr.png", *resp.QRCodeURL)
	assert.Equal(t, "gpay", resp.Details["provider"])
}

func TestUpdateValidatesMergedState(t *testing.T) {
	store := newMemPaymentMethods()
	uc := newPaymentMethodUseCase(store)

	created := uc.Create(context.Background(), &model.CreatePaymentMethodRequest{
		Type:      entity.PaymentMethodTypeQR,
		Title:     "Scan to pay",
		Details:   map[string]interface{}{"provider": "gpay"},
		QRCodeURL: "https://files.example.com/qr.png",
	})
	require.Nil(t, created.Error)
	id := created.Data.(*model.PaymentMethodResponse).ID

	// switching the type to upi without dropping the QR url must fail
	result := uc.Update(context.Background(), &model.UpdatePaymentMethodRequest{
		ID:   id,
		Type: entity.PaymentMethodTypeUPI,
	})
	require.NotNil(t, result.Error)
	assert.Equal(t, 400, result.Error.(httpError.CommonError).Code)

	// dropping the url in the same patch is fine
	empty := ""
	result = uc.Update(context.Background(), &model.UpdatePaymentMethodRequest{
		ID:        id,
		Type:      entity.PaymentMethodTypeUPI,
		QRCodeURL: &empty,
	})
	require.Nil(t, result.Error)
	resp := result.Data.(*model.PaymentMethodResponse)
	assert.Equal(t, entity.PaymentMethodTypeUPI, resp.Type)
	assert.Nil(t, resp.QRCodeURL)
}

func TestUpdateUnknownMethod(t *testing.T) {
	uc := newPaymentMethodUseCase(newMemPaymentMethods())

	result := uc.Update(context.Background(), &model.UpdatePaymentMethodRequest{
		ID:    "0b5bdd33-66e9-4efc-9a7b-8f1d6c829f3f",
		Title: "renamed",
	})
	require.NotNil(t, result.Error)
	assert.Equal(t, 404, result.Error.(httpError.CommonError).Code)
}

func TestListActiveFiltersInactive(t *testing.T) {
	store := newMemPaymentMethods()
	uc := newPaymentMethodUseCase(store)

	active := uc.Create(context.Background(), &model.CreatePaymentMethodRequest{
		Type:    entity.PaymentMethodTypeUPI,
		Title:   "UPI transfer",
		Details: map[string]interface{}{"vpa": "coins@bank"},
	})
	require.Nil(t, active.Error)

	inactive := false
	hidden := uc.Create(context.Background(), &model.CreatePaymentMethodRequest{
		Type:     entity.PaymentMethodTypeBank,
		Title:    "Old account",
		Details:  map[string]interface{}{"account": "000"},
		IsActive: &inactive,
	})
	require.Nil(t, hidden.Error)

	result := uc.ListActive(context.Background())
	require.Nil(t, result.Error)
	responses := result.Data.([]model.PaymentMethodResponse)
	require.Len(t, responses, 1)
	assert.Equal(t, "UPI transfer", responses[0].Title)

	all := uc.ListAll(context.Background())
	require.Nil(t, all.Error)
	assert.Len(t, all.Data.([]model.PaymentMethodResponse), 2)
}

func TestListActiveServedFromCache(t *testing.T) {
	store := newMemPaymentMethods()
	uc := newPaymentMethodUseCase(store)

	created := uc.Create(context.Background(), &model.CreatePaymentMethodRequest{
		Type:    entity.PaymentMethodTypeUPI,
		Title:   "UPI transfer",
		Details: map[string]interface{}{"vpa": "coins@bank"},
	})
	require.Nil(t, created.Error)

	require.Nil(t, uc.ListActive(context.Background()).Error)
	listsAfterFirst := store.lists
	require.Nil(t, uc.ListActive(context.Background()).Error)
	assert.Equal(t, listsAfterFirst, store.lists, "second listing should hit the cache")

	// a write invalidates the cached listing
	id := created.Data.(*model.PaymentMethodResponse).ID
	require.Nil(t, uc.Delete(context.Background(), &model.DeletePaymentMethodRequest{ID: id}).Error)
	require.Nil(t, uc.ListActive(context.Background()).Error)
	assert.Equal(t, listsAfterFirst+1, store.lists)
}

func TestDeleteUnknownMethod(t *testing.T) {
	uc := newPaymentMethodUseCase(newMemPaymentMethods())

	result := uc.Delete(context.Background(), &model.DeletePaymentMethodRequest{
		ID: "0b5bdd33-66e9-4efc-9a7b-8f1d6c829f3f",
	})
	require.NotNil(t, result.Error)
	assert.Equal(t, 404, result.Error.(httpError.CommonError).Code)
}

func TestListActiveSurvivesMissingRedis(t *testing.T) {
	store := newMemPaymentMethods()
	uc := NewPaymentMethodUseCase(testLogger(), testValidator(), store, nil)

	created := uc.Create(context.Background(), &model.CreatePaymentMethodRequest{
		Type:    entity.PaymentMethodTypeUPI,
		Title:   "UPI transfer",
		Details: map[string]interface{}{"vpa": "coins@bank"},
	})
	require.Nil(t, created.Error)

	result := uc.ListActive(context.Background())
	require.Nil(t, result.Error)
	assert.Len(t, result.Data.([]model.PaymentMethodResponse), 1)
}
