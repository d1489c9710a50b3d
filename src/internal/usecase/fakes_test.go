package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"coinvest-service/src/internal/entity"
	"coinvest-service/src/internal/gateway/identity"
	"coinvest-service/src/internal/repository"
	"coinvest-service/src/pkg/log"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

func testLogger() log.Log {
	// zero-value logger is a no-op
	return log.Log{}
}

func testValidator() *validator.Validate {
	return validator.New()
}

func testConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault("ledger.minimum_amount", 100)
	v.SetDefault("investment.maturity_days", 90)
	return v
}

// memLedger backs ProfileStore and RequestStore with the same in-memory
// state so the transactional methods can mutate both sides consistently.
type memLedger struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile
	requests map[string]*entity.CoinRequest
	order    []string

	profileErr error
	requestErr error
}

func newMemLedger() *memLedger {
	return &memLedger{
		profiles: map[string]*entity.Profile{},
		requests: map[string]*entity.CoinRequest{},
	}
}

func (m *memLedger) seedProfile(userID, coinvestorID string, balance float64) *entity.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile := &entity.Profile{
		UserID:       userID,
		CoinvestorID: coinvestorID,
		Balance:      balance,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	m.profiles[userID] = profile
	return profile
}

func (m *memLedger) seedRequest(req *entity.CoinRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *req
	m.requests[req.ID] = &clone
	m.order = append(m.order, req.ID)
}

func (m *memLedger) balance(userID string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[userID]; ok {
		return p.Balance
	}
	return 0
}

func (m *memLedger) request(id string) *entity.CoinRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.requests[id]; ok {
		clone := *r
		return &clone
	}
	return nil
}

// --- ProfileStore ---

func (m *memLedger) FindByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profileErr != nil {
		return nil, m.profileErr
	}
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *profile
	return &clone, nil
}

func (m *memLedger) FindByCoinvestorID(ctx context.Context, coinvestorID string) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, profile := range m.profiles {
		if profile.CoinvestorID == coinvestorID {
			clone := *profile
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memLedger) Create(ctx context.Context, profile *entity.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.profiles[profile.UserID]; exists {
		return repository.ErrDuplicate
	}
	for _, existing := range m.profiles {
		if existing.CoinvestorID == profile.CoinvestorID {
			return repository.ErrDuplicate
		}
	}
	clone := *profile
	clone.CreatedAt = time.Now().UTC()
	clone.UpdatedAt = clone.CreatedAt
	m.profiles[profile.UserID] = &clone
	return nil
}

func (m *memLedger) ListByUserIDs(ctx context.Context, userIDs []string) ([]entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profiles := []entity.Profile{}
	for _, id := range userIDs {
		if profile, ok := m.profiles[id]; ok {
			profiles = append(profiles, *profile)
		}
	}
	return profiles, nil
}

func (m *memLedger) UpdateIdentityProof(ctx context.Context, userID, identityType, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.profiles[userID]
	if !ok {
		return repository.ErrNotFound
	}
	profile.IdentityType = sql.NullString{String: identityType, Valid: true}
	profile.IdentityURL = sql.NullString{String: url, Valid: true}
	profile.IdentityStatus = sql.NullString{String: entity.DocumentStatusPending, Valid: true}
	profile.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *memLedger) UpdatePhoto(ctx context.Context, userID, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.profiles[userID]
	if !ok {
		return repository.ErrNotFound
	}
	profile.PhotoURL = sql.NullString{String: url, Valid: true}
	profile.PhotoStatus = sql.NullString{String: entity.DocumentStatusPending, Valid: true}
	profile.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *memLedger) SetDocumentStatuses(ctx context.Context, userID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.profiles[userID]
	if !ok {
		return repository.ErrNotFound
	}
	if profile.IdentityURL.Valid {
		profile.IdentityStatus = sql.NullString{String: status, Valid: true}
	}
	if profile.PhotoURL.Valid {
		profile.PhotoStatus = sql.NullString{String: status, Valid: true}
	}
	profile.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *memLedger) ListByDocumentStatus(ctx context.Context, status string, filter entity.DocumentFilter) ([]entity.Profile, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := []entity.Profile{}
	for _, profile := range m.profiles {
		switch status {
		case entity.DocumentStatusVerified:
			if profile.IdentityStatus.String != entity.DocumentStatusVerified ||
				profile.PhotoStatus.String != entity.DocumentStatusVerified {
				continue
			}
		default:
			if profile.IdentityStatus.String != entity.DocumentStatusPending &&
				profile.PhotoStatus.String != entity.DocumentStatusPending {
				continue
			}
		}
		if !searchMatches(filter.Search, filter.MatchUserIDs, profile.CoinvestorID, profile.UserID) {
			continue
		}
		matched = append(matched, *profile)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UserID < matched[j].UserID
	})
	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// searchMatches mirrors the store-side predicate: coinvestor id substring
// match, or a user id resolved from the identity search.
func searchMatches(search string, matchUserIDs []string, coinvestorID, userID string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(coinvestorID), strings.ToLower(search)) {
		return true
	}
	for _, id := range matchUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// --- RequestStore ---

func (m *memLedger) Insert(ctx context.Context, req *entity.CoinRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.requestErr != nil {
		return m.requestErr
	}
	clone := *req
	m.requests[req.ID] = &clone
	m.order = append(m.order, req.ID)
	return nil
}

func (m *memLedger) FindByID(ctx context.Context, id string) (*entity.CoinRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *req
	return &clone, nil
}

func (m *memLedger) ListByUser(ctx context.Context, userID string, filter entity.RequestFilter) ([]entity.CoinRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	requests := []entity.CoinRequest{}
	for i := len(m.order) - 1; i >= 0; i-- {
		req := m.requests[m.order[i]]
		if req.UserID != userID {
			continue
		}
		if filter.Type != "" && req.Type != filter.Type {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		requests = append(requests, *req)
		if filter.Limit > 0 && len(requests) >= filter.Limit {
			break
		}
	}
	return requests, nil
}

func (m *memLedger) ListByType(ctx context.Context, reqType string, filter entity.ReviewFilter) ([]entity.CoinRequestWithProfile, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := []entity.CoinRequestWithProfile{}
	for i := len(m.order) - 1; i >= 0; i-- {
		req := m.requests[m.order[i]]
		if req.Type != reqType || req.Status != filter.Status {
			continue
		}
		item := entity.CoinRequestWithProfile{CoinRequest: *req}
		if profile, ok := m.profiles[req.UserID]; ok {
			item.CoinvestorID = profile.CoinvestorID
		}
		if !searchMatches(filter.Search, filter.MatchUserIDs, item.CoinvestorID, req.UserID) {
			continue
		}
		matched = append(matched, item)
	}
	if filter.Sort == "oldest" {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}
	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (m *memLedger) Approve(ctx context.Context, requestID string, approvedAt time.Time) (*entity.CoinRequest, float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[requestID]
	if !ok {
		return nil, 0, repository.ErrNotFound
	}
	if req.Status != entity.RequestStatusPending {
		return nil, 0, repository.ErrNotPending
	}
	profile, ok := m.profiles[req.UserID]
	if !ok {
		return nil, 0, repository.ErrNotFound
	}

	switch req.Type {
	case entity.RequestTypePurchase:
		profile.Balance += req.Amount
	case entity.RequestTypeWithdrawal:
		if profile.Balance < req.Amount {
			return nil, 0, repository.ErrInsufficientBalance
		}
		profile.Balance -= req.Amount
	default:
		return nil, 0, fmt.Errorf("unknown request type %q", req.Type)
	}

	req.Status = entity.RequestStatusApproved
	req.ApprovalDate = sql.NullTime{Time: approvedAt, Valid: true}
	clone := *req
	return &clone, profile.Balance, nil
}

func (m *memLedger) Reject(ctx context.Context, requestID, reason string, rejectedAt time.Time) (*entity.CoinRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[requestID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if req.Status != entity.RequestStatusPending {
		return nil, repository.ErrNotPending
	}
	req.Status = entity.RequestStatusRejected
	req.RejectionDate = sql.NullTime{Time: rejectedAt, Valid: true}
	req.RejectionReason = sql.NullString{String: reason, Valid: true}
	clone := *req
	return &clone, nil
}

func (m *memLedger) InsertApproved(ctx context.Context, req *entity.CoinRequest) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.profiles[req.UserID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	switch req.Type {
	case entity.RequestTypePurchase:
		profile.Balance += req.Amount
	case entity.RequestTypeWithdrawal:
		if profile.Balance < req.Amount {
			return 0, repository.ErrInsufficientBalance
		}
		profile.Balance -= req.Amount
	default:
		return 0, fmt.Errorf("unknown request type %q", req.Type)
	}
	clone := *req
	m.requests[req.ID] = &clone
	m.order = append(m.order, req.ID)
	return profile.Balance, nil
}

// --- collaborators ---

type fakeUploader struct {
	url string
	err error
}

func (f *fakeUploader) Upload(ctx context.Context, localPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.url != "" {
		return f.url, nil
	}
	return "https://files.example.com/" + localPath, nil
}

type fakeIdentityProvider struct {
	users     map[string]identity.User
	statuses  map[string]string
	listErr   error
	updateErr error
}

func newFakeIdentityProvider() *fakeIdentityProvider {
	return &fakeIdentityProvider{
		users:    map[string]identity.User{},
		statuses: map[string]string{},
	}
}

func (f *fakeIdentityProvider) addUser(user identity.User) {
	f.users[user.ID] = user
}

func (f *fakeIdentityProvider) ListUsers(ctx context.Context, filter identity.ListFilter) ([]identity.User, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	users := []identity.User{}
	for _, user := range f.users {
		if filter.Status != "" && user.Status != filter.Status {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(user.Name), needle) &&
				!strings.Contains(strings.ToLower(user.Email), needle) &&
				!strings.Contains(user.PhoneNumber, filter.Search) {
				continue
			}
		}
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, len(users), nil
}

func (f *fakeIdentityProvider) GetUsers(ctx context.Context, userIDs []string) ([]identity.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	users := []identity.User{}
	for _, id := range userIDs {
		if user, ok := f.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (f *fakeIdentityProvider) UpdateStatus(ctx context.Context, userID, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.users[userID]; !ok {
		return identity.ErrUserNotFound
	}
	f.statuses[userID] = status
	return nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: fmt.Sprintf("task-%d", len(f.tasks))}, nil
}

// fakeRedis covers the Get/Set/Del slice of the client the usecases touch.
type fakeRedis struct {
	redis.UniversalClient
	mu   sync.Mutex
	data map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case string:
		f.data[key] = v
	case []byte:
		f.data[key] = string(v)
	default:
		f.data[key] = fmt.Sprintf("%v", v)
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var removed int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}
