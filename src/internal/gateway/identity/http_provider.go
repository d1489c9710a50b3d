package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"coinvest-service/src/pkg/log"

	"github.com/spf13/viper"
)

// HTTPProvider talks to the auth service's internal admin API using a
// service token.
type HTTPProvider struct {
	client       *http.Client
	baseURL      string
	serviceToken string
	log          log.Log
}

func NewHTTPProvider(v *viper.Viper, logger log.Log) *HTTPProvider {
	return &HTTPProvider{
		client:       &http.Client{Timeout: 10 * time.Second},
		baseURL:      v.GetString("identity.base_url"),
		serviceToken: v.GetString("identity.service_token"),
		log:          logger,
	}
}

func (p *HTTPProvider) ListUsers(ctx context.Context, filter ListFilter) ([]User, int, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.EmailVerified {
		query.Set("emailVerified", "true")
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	var payload struct {
		Users []User `json:"users"`
		Total int    `json:"total"`
	}
	if err := p.do(ctx, http.MethodGet, "/internal/users?"+query.Encode(), nil, &payload); err != nil {
		return nil, 0, err
	}
	return payload.Users, payload.Total, nil
}

func (p *HTTPProvider) GetUsers(ctx context.Context, userIDs []string) ([]User, error) {
	if len(userIDs) == 0 {
		return []User{}, nil
	}

	body := map[string]interface{}{"ids": userIDs}
	var payload struct {
		Users []User `json:"users"`
	}
	if err := p.do(ctx, http.MethodPost, "/internal/users/lookup", body, &payload); err != nil {
		return nil, err
	}
	return payload.Users, nil
}

func (p *HTTPProvider) UpdateStatus(ctx context.Context, userID, status string) error {
	body := map[string]interface{}{"status": status}
	return p.do(ctx, http.MethodPatch, "/internal/users/"+url.PathEscape(userID)+"/status", body, nil)
}

func (p *HTTPProvider) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.serviceToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Error("gateway/identity", err.Error(), method, path)
		return fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrUserNotFound
	}
	if resp.StatusCode >= 300 {
		p.log.Error("gateway/identity", fmt.Sprintf("identity provider returned %s", resp.Status), method, path)
		return fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
