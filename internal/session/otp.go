package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AuthClient talks to the phone OTP endpoints of the auth provider.
type AuthClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewAuthClient(baseURL, apiKey string) *AuthClient {
	return &AuthClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type otpRequest struct {
	Phone string `json:"phone"`
}

type verifyRequest struct {
	Type  string `json:"type"`
	Phone string `json:"phone"`
	Token string `json:"token"`
}

type verifyResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	User        struct {
		ID    string `json:"id"`
		Phone string `json:"phone"`
	} `json:"user"`
}

// SendOTP requests a one time code be sent to the phone. The number must
// already be normalized with its country code.
func (c *AuthClient) SendOTP(ctx context.Context, phone string) error {
	body, err := json.Marshal(otpRequest{Phone: phone})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/auth/v1/otp", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send otp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("otp request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// VerifyOTP exchanges a code for a session.
func (c *AuthClient) VerifyOTP(ctx context.Context, phone, code string) (*Session, error) {
	body, err := json.Marshal(verifyRequest{Type: "sms", Phone: phone, Token: code})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/auth/v1/verify", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify otp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("otp verification failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var decoded verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &Session{
		AccessToken: decoded.AccessToken,
		UserID:      decoded.User.ID,
		Phone:       decoded.User.Phone,
		ExpiresAt:   time.Now().Add(time.Duration(decoded.ExpiresIn) * time.Second),
	}, nil
}
