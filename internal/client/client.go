// Package client is the Go API client for the NYC Bookings backend. It wraps
// the HTTP surface the web frontend consumes and keeps a bearer token for
// authenticated calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nycbookings/api/internal/domain"
)

var ErrUnauthorized = errors.New("unauthorized")

// APIError carries the status and error message of a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	tokenMu sync.RWMutex
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken replaces the bearer token used for authenticated requests.
// An empty token makes subsequent requests anonymous. Safe for concurrent
// use alongside in-flight requests.
func (c *Client) SetToken(token string) {
	c.tokenMu.Lock()
	c.token = token
	c.tokenMu.Unlock()
}

func (c *Client) Token() string {
	c.tokenMu.RLock()
	defer c.tokenMu.RUnlock()
	return c.token
}

type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type RegisterInput struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Phone     *string `json:"phone,omitempty"`
}

func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", input, &result); err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return &result, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result); err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return &result, nil
}

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var result struct {
		User *domain.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &result); err != nil {
		return nil, err
	}
	return result.User, nil
}

type UpdateProfileInput struct {
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Email           string  `json:"email"`
	Phone           *string `json:"phone,omitempty"`
	CurrentPassword string  `json:"currentPassword,omitempty"`
	NewPassword     string  `json:"newPassword,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	var result struct {
		User *domain.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", input, &result); err != nil {
		return nil, err
	}
	return result.User, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, password string) (*domain.User, error) {
	body := map[string]string{"token": token, "password": password}
	var result struct {
		User *domain.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/reset-password", body, &result); err != nil {
		return nil, err
	}
	return result.User, nil
}

// PropertySearch mirrors the public listing filters.
type PropertySearch struct {
	Location string
	MinPrice *int
	MaxPrice *int
	Bedrooms *int
	Guests   *int
	Page     int
	Limit    int
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type PropertyList struct {
	Properties []domain.Property `json:"properties"`
	Pagination Pagination        `json:"pagination"`
}

func (c *Client) SearchProperties(ctx context.Context, search PropertySearch) (*PropertyList, error) {
	query := url.Values{}
	if search.Location != "" {
		query.Set("location", search.Location)
	}
	setIntParam(query, "minPrice", search.MinPrice)
	setIntParam(query, "maxPrice", search.MaxPrice)
	setIntParam(query, "bedrooms", search.Bedrooms)
	setIntParam(query, "guests", search.Guests)
	if search.Page > 0 {
		query.Set("page", fmt.Sprint(search.Page))
	}
	if search.Limit > 0 {
		query.Set("limit", fmt.Sprint(search.Limit))
	}

	path := "/api/properties"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var result struct {
		Data PropertyList `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

func (c *Client) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	var result struct {
		Data struct {
			Property *domain.Property `json:"property"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/properties/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return result.Data.Property, nil
}

func (c *Client) Wishlist(ctx context.Context) ([]domain.WishlistItem, error) {
	var result struct {
		Wishlist []domain.WishlistItem `json:"wishlist"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/wishlist", nil, &result); err != nil {
		return nil, err
	}
	return result.Wishlist, nil
}

func (c *Client) AddToWishlist(ctx context.Context, propertyID string) (*domain.WishlistItem, error) {
	body := map[string]string{"propertyId": propertyID}
	var result struct {
		Item *domain.WishlistItem `json:"item"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/wishlist", body, &result); err != nil {
		return nil, err
	}
	return result.Item, nil
}

func (c *Client) RemoveFromWishlist(ctx context.Context, propertyID string) (int64, error) {
	var result struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	path := "/api/wishlist?propertyId=" + url.QueryEscape(propertyID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &result); err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

type ReferralInput struct {
	Name       string `json:"name"`
	AgencyName string `json:"agencyName,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email"`
	Message    string `json:"message"`
}

func (c *Client) SubmitReferral(ctx context.Context, input ReferralInput) error {
	return c.do(ctx, http.MethodPost, "/api/referral", input, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Error == "" {
			envelope.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: envelope.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func setIntParam(query url.Values, name string, value *int) {
	if value != nil {
		query.Set(name, fmt.Sprint(*value))
	}
}
