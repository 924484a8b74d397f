// Package client is the API client side of the quiz: it talks to the result
// service over HTTP and keeps the bearer credential in an injectable store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/quizbit/server/internal/dto"
	"github.com/quizbit/server/internal/quiz"
)

// Client calls the QuizBit API. It implements quiz.Submitter so a Session
// can hand results straight to it.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

func New(baseURL string, tokens TokenStore) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		tokens:  tokens,
	}
}

// Register creates an account and stores the issued token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*dto.UserInfo, error) {
	body := dto.RegisterRequest{Name: name, Email: email, Password: password}
	var resp dto.AuthResponse
	if err := c.postJSON(ctx, "/api/auth/register", body, false, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("registration failed: %s", resp.Message)
	}
	c.tokens.SetToken(resp.Token)
	return resp.User, nil
}

// Login verifies credentials and stores the issued token.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.UserInfo, error) {
	body := dto.LoginRequest{Email: email, Password: password}
	var resp dto.AuthResponse
	if err := c.postJSON(ctx, "/api/auth/login", body, false, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("login failed: %s", resp.Message)
	}
	c.tokens.SetToken(resp.Token)
	return resp.User, nil
}

// Logout clears the stored credential and notifies subscribers.
func (c *Client) Logout() {
	c.tokens.Clear()
}

// SubmitResult persists a completed quiz score. Satisfies quiz.Submitter.
func (c *Client) SubmitResult(ctx context.Context, payload quiz.ResultPayload) error {
	var resp dto.ResultResponse
	if err := c.postJSON(ctx, "/api/results", payload, true, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("result not saved: %s", resp.Message)
	}
	return nil
}

// ListResults fetches the caller's results, optionally filtered by
// technology ("" or "all" for everything).
func (c *Client) ListResults(ctx context.Context, technology string) ([]dto.ResultDTO, error) {
	path := "/api/results"
	if technology != "" {
		path += "?technology=" + url.QueryEscape(technology)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success bool            `json:"success"`
		Results []dto.ResultDTO `json:"results"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("listing results failed: %s", resp.Message)
	}
	return resp.Results, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, authed bool, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		c.authorize(req)
	}

	raw, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", req.URL.Path, err)
	}
	return raw, nil
}
