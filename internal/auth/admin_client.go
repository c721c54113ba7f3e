package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var errUserNotFound = errors.New("user not found")

// AdminClient talks to the Supabase Admin API.
// Used by the seeder to resolve fixture users to owner ids, never on the request path.
type AdminClient struct {
	supabaseURL string
	serviceKey  string
	httpClient  *http.Client
}

// NewAdminClient creates a new Supabase Admin API client.
// Requires the service role key (SUPABASE_KEY).
func NewAdminClient(supabaseURL, serviceKey string) *AdminClient {
	return &AdminClient{
		supabaseURL: supabaseURL,
		serviceKey:  serviceKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type createUserRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	EmailConfirm bool   `json:"email_confirm"`
}

type adminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type listUsersResponse struct {
	Users []adminUser `json:"users"`
}

// EnsureUser returns the id of the user with email, creating a confirmed user if none exists
func (c *AdminClient) EnsureUser(ctx context.Context, email, password string) (string, error) {
	id, err := c.findUserIDByEmail(ctx, email)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, errUserNotFound) {
		return "", err
	}
	return c.CreateUser(ctx, email, password)
}

// CreateUser creates a confirmed user and returns its id
func (c *AdminClient) CreateUser(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(createUserRequest{Email: email, Password: password, EmailConfirm: true})
	if err != nil {
		return "", fmt.Errorf("failed to marshal create request: %w", err)
	}

	var user adminUser
	if err := c.do(ctx, http.MethodPost, "/auth/v1/admin/users", body, &user); err != nil {
		return "", fmt.Errorf("create user %s: %w", email, err)
	}
	return user.ID, nil
}

func (c *AdminClient) findUserIDByEmail(ctx context.Context, email string) (string, error) {
	var list listUsersResponse
	if err := c.do(ctx, http.MethodGet, "/auth/v1/admin/users", nil, &list); err != nil {
		return "", fmt.Errorf("list users: %w", err)
	}
	for _, user := range list.Users {
		if user.Email == email {
			return user.ID, nil
		}
	}
	return "", errUserNotFound
}

func (c *AdminClient) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.supabaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(payload))
	}
	return json.Unmarshal(payload, out)
}
