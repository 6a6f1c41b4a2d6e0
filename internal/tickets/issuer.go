package tickets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrIssueFailed covers any per-unit issuing failure: network error,
	// non-2xx response, or a response without a ticket code.
	ErrIssueFailed = errors.New("failed to issue ticket code")
)

// Issuer requests one globally unique ticket code per call from the
// external issuing service. The service deduplicates codes; the kiosk does
// not dedupe locally.
type Issuer interface {
	IssueCode(ctx context.Context, museumCode string) (string, error)
}

// HTTPIssuer issues codes via POST totem/tickets on the upstream API.
type HTTPIssuer struct {
	baseURL string
	http    *http.Client
}

// NewHTTPIssuer creates an issuer against the upstream ticketing API.
func NewHTTPIssuer(baseURL string, timeout time.Duration) *HTTPIssuer {
	return &HTTPIssuer{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (i *HTTPIssuer) IssueCode(ctx context.Context, museumCode string) (string, error) {
	payload, err := json.Marshal(map[string]string{"museum_code": museumCode})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIssueFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.baseURL+"/totem/tickets", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIssueFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIssueFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: upstream returned %d", ErrIssueFailed, resp.StatusCode)
	}

	var issued IssueResponse
	if err := json.NewDecoder(resp.Body).Decode(&issued); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", ErrIssueFailed, err)
	}

	if issued.TicketCode == "" {
		return "", fmt.Errorf("%w: no ticket code received", ErrIssueFailed)
	}

	return issued.TicketCode, nil
}
