package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// RecaptchaService checks reCAPTCHA tokens against Google's verify endpoint.
// With no secret configured, verification is disabled and every token passes.
type RecaptchaService struct {
	secret    string
	verifyURL string
	client    *http.Client
}

// NewRecaptchaService creates a new verifier.
func NewRecaptchaService(secret string) *RecaptchaService {
	return &RecaptchaService{
		secret:    secret,
		verifyURL: recaptchaVerifyURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify returns whether the token is valid for the requesting IP.
func (s *RecaptchaService) Verify(token, remoteIP string) (bool, error) {
	if s.secret == "" {
		return true, nil
	}
	if token == "" {
		return false, nil
	}
	resp, err := s.client.PostForm(s.verifyURL, url.Values{
		"secret":   {s.secret},
		"response": {token},
		"remoteip": {remoteIP},
	})
	if err != nil {
		return false, fmt.Errorf("recaptcha verify: %w", err)
	}
	defer resp.Body.Close()
	var result struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("recaptcha decode: %w", err)
	}
	return result.Success, nil
}
