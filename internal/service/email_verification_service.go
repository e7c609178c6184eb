package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	emailVerifyMaxRetries = 3
	emailVerifyBaseDelay  = time.Second
	emailVerifyTimeout    = 10 * time.Second

	// Addresses scoring below this on the remote check are rejected.
	emailQualityThreshold = 0.8

	emailVerifyUnavailable = "Email verification service temporarily unavailable"
)

// EmailVerificationResult is the outcome of verifying an address.
// Valid may be true with a Warning set when the remote service could
// not be reached and the address passed the local checks.
type EmailVerificationResult struct {
	Valid          bool    `json:"valid"`
	Email          string  `json:"email"`
	Error          string  `json:"error,omitempty"`
	Suggestion     string  `json:"suggestion,omitempty"`
	Message        string  `json:"message,omitempty"`
	Deliverability string  `json:"deliverability,omitempty"`
	QualityScore   float64 `json:"quality_score,omitempty"`
	Warning        string  `json:"warning,omitempty"`
}

// abstractVerdict mirrors the AbstractAPI email validation payload.
type abstractVerdict struct {
	Email          string       `json:"email"`
	Autocorrect    string       `json:"autocorrect"`
	Deliverability string       `json:"deliverability"`
	QualityScore   float64      `json:"quality_score"`
	IsValidFormat  abstractFlag `json:"is_valid_format"`
	IsDisposable   abstractFlag `json:"is_disposable_email"`
	IsMxFound      abstractFlag `json:"is_mx_found"`
	IsSmtpValid    abstractFlag `json:"is_smtp_valid"`
}

type abstractFlag struct {
	Value bool   `json:"value"`
	Text  string `json:"text"`
}

// EmailVerificationService checks addresses against a remote validation
// API, retrying transient failures with exponential backoff and failing
// open when the service stays unreachable. Legitimate users are never
// blocked by an outage.
type EmailVerificationService struct {
	http    httpDoer
	baseURL string
	apiKey  string
	sleep   func(time.Duration)
}

// NewEmailVerificationService creates a service against the given API
// base URL. An empty apiKey disables the remote check entirely.
func NewEmailVerificationService(baseURL, apiKey string) *EmailVerificationService {
	return &EmailVerificationService{
		http:    &http.Client{Timeout: emailVerifyTimeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		sleep:   time.Sleep,
	}
}

// SetHTTPClient replaces the underlying HTTP client, used by tests.
func (s *EmailVerificationService) SetHTTPClient(client httpDoer) {
	if client != nil {
		s.http = client
	}
}

// SetSleep replaces the backoff sleeper, used by tests.
func (s *EmailVerificationService) SetSleep(sleep func(time.Duration)) {
	if sleep != nil {
		s.sleep = sleep
	}
}

// Verify runs the local checks and then the remote verdict. Remote
// failures are retried with doubling delays; after the last attempt the
// address is accepted with a warning instead of being rejected.
func (s *EmailVerificationService) Verify(ctx context.Context, email string) EmailVerificationResult {
	normalized, err := ValidateAddress(email)
	if err != nil {
		return EmailVerificationResult{Valid: false, Email: email, Error: err.Error()}
	}

	if s.apiKey == "" {
		return EmailVerificationResult{Valid: true, Email: normalized}
	}

	for attempt := 0; attempt <= emailVerifyMaxRetries; attempt++ {
		verdict, err := s.fetchVerdict(ctx, normalized)
		if err == nil {
			return s.judge(normalized, verdict)
		}

		if attempt == emailVerifyMaxRetries {
			break
		}
		s.sleep(emailVerifyBaseDelay * (1 << attempt))
	}

	return EmailVerificationResult{
		Valid:   true,
		Email:   normalized,
		Warning: emailVerifyUnavailable,
	}
}

func (s *EmailVerificationService) fetchVerdict(ctx context.Context, email string) (*abstractVerdict, error) {
	endpoint := fmt.Sprintf("%s/?api_key=%s&email=%s",
		s.baseURL, url.QueryEscape(s.apiKey), url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("email verification api returned status %d", resp.StatusCode)
	}

	var verdict abstractVerdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, err
	}
	return &verdict, nil
}

// judge applies the rejection rules in a fixed order so the first
// failing check determines the user-facing error.
func (s *EmailVerificationService) judge(email string, verdict *abstractVerdict) EmailVerificationResult {
	result := EmailVerificationResult{
		Email:          email,
		Deliverability: verdict.Deliverability,
		QualityScore:   verdict.QualityScore,
	}

	switch {
	case !verdict.IsValidFormat.Value:
		result.Error = "Invalid email format"
	case verdict.IsDisposable.Value:
		result.Error = "Disposable email addresses are not allowed"
	case verdict.Deliverability == "UNDELIVERABLE":
		result.Error = "This email address does not exist or cannot receive emails"
	case !verdict.IsMxFound.Value:
		result.Error = "Email domain does not have valid mail servers"
	case !verdict.IsSmtpValid.Value:
		result.Error = "This email address does not exist"
	case verdict.QualityScore < emailQualityThreshold:
		result.Error = "This email address has a low quality score and may not be valid"
	default:
		result.Valid = true
	}

	if verdict.Autocorrect != "" && verdict.Autocorrect != email {
		result.Suggestion = verdict.Autocorrect
		result.Message = fmt.Sprintf("Did you mean %s?", verdict.Autocorrect)
	}

	return result
}
