package ngenius

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/AskiaMohamed22/ngenius-backend/pkg/config"
	pkgerrors "github.com/AskiaMohamed22/ngenius-backend/pkg/errors"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/logger"
)

const (
	identityContentType = "application/vnd.ni-identity.v1+json"
	paymentContentType  = "application/vnd.ni-payment.v2+json"

	// upstream response bodies are truncated to this many bytes in error details
	maxErrorBodyBytes = 2048
)

var (
	errAPIURLRequired    = errors.New("ngenius api url is required")
	errOutletRefRequired = errors.New("ngenius outlet reference is required")
	errAPIKeyRequired    = errors.New("ngenius api key is required")
)

// Client talks to the N-Genius gateway: token exchange plus hosted-payment
// session creation. Calls carry no retry or timeout policy; a failed call is
// surfaced to the caller as an upstream error.
type Client struct {
	httpClient *http.Client
	baseURL    string
	outletRef  string
	apiKey     string
	logger     *logger.Logger
}

// NewClient validates the gateway credentials and builds the client.
func NewClient(ctx context.Context, cfg config.NgeniusConfig, logg *logger.Logger) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if baseURL == "" {
		return nil, errAPIURLRequired
	}
	outletRef := strings.TrimSpace(cfg.OutletRef)
	if outletRef == "" {
		return nil, errOutletRefRequired
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	c := &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		outletRef:  outletRef,
		apiKey:     apiKey,
		logger:     logg,
	}

	if logg != nil {
		logg.Info(ctx, "ngenius client initialized")
	}
	return c, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// RequestToken exchanges the service API key for a short-lived access token.
func (c *Client) RequestToken(ctx context.Context) (string, error) {
	url := c.baseURL + "/identity/auth/access-token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build token request")
	}
	req.Header.Set("Authorization", "Basic "+c.apiKey)
	req.Header.Set("Content-Type", identityContentType)
	req.Header.Set("Accept", identityContentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "token exchange failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", upstreamError(resp, "token exchange rejected")
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode token response")
	}
	if token.AccessToken == "" {
		return "", pkgerrors.New(pkgerrors.CodeUpstream, "token response missing access_token")
	}
	return token.AccessToken, nil
}

// HostedSessionInput describes the payment order submitted to the gateway.
// AmountMinor is the order total in the currency's minor units.
type HostedSessionInput struct {
	OrderID     string
	Email       string
	AmountMinor int64
	Currency    string
	RedirectURL string
}

// HostedSession is the gateway's handle for a created payment order.
type HostedSession struct {
	Reference  string
	PaymentURL string
}

type orderRequest struct {
	Action                 string             `json:"action"`
	Amount                 orderAmount        `json:"amount"`
	MerchantOrderReference string             `json:"merchantOrderReference"`
	EmailAddress           string             `json:"emailAddress,omitempty"`
	MerchantAttributes     merchantAttributes `json:"merchantAttributes"`
}

type orderAmount struct {
	CurrencyCode string `json:"currencyCode"`
	Value        int64  `json:"value"`
}

type merchantAttributes struct {
	RedirectURL          string `json:"redirectUrl,omitempty"`
	SkipConfirmationPage bool   `json:"skipConfirmationPage"`
}

type orderResponse struct {
	Reference string `json:"reference"`
	Links     struct {
		Payment struct {
			Href string `json:"href"`
		} `json:"payment"`
	} `json:"_links"`
}

// CreateHostedSession creates a SALE order at the gateway and returns the
// hosted payment page URL plus the gateway reference.
func (c *Client) CreateHostedSession(ctx context.Context, in HostedSessionInput) (*HostedSession, error) {
	if in.OrderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if in.AmountMinor <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	token, err := c.RequestToken(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(orderRequest{
		Action: "SALE",
		Amount: orderAmount{
			CurrencyCode: in.Currency,
			Value:        in.AmountMinor,
		},
		MerchantOrderReference: in.OrderID,
		EmailAddress:           in.Email,
		MerchantAttributes: merchantAttributes{
			RedirectURL:          in.RedirectURL,
			SkipConfirmationPage: true,
		},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal order request")
	}

	url := fmt.Sprintf("%s/transactions/outlets/%s/orders", c.baseURL, c.outletRef)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build order request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", paymentContentType)
	req.Header.Set("Accept", paymentContentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "create payment order failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, upstreamError(resp, "create payment order rejected")
	}

	var order orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode order response")
	}
	if order.Links.Payment.Href == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, "order response missing payment link")
	}

	if c.logger != nil {
		ctx = c.logger.WithOrderID(ctx, in.OrderID)
		c.logger.Info(ctx, "ngenius payment order created")
	}

	return &HostedSession{
		Reference:  order.Reference,
		PaymentURL: order.Links.Payment.Href,
	}, nil
}

func upstreamError(resp *http.Response, message string) *pkgerrors.Error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return pkgerrors.New(pkgerrors.CodeUpstream, message).WithDetails(map[string]any{
		"status": resp.StatusCode,
		"body":   strings.TrimSpace(string(snippet)),
	})
}
