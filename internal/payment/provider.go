// Package payment talks to the external payment provider.
package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirawit-dev/storefront-backend/internal/order"
)

var ErrPaymentNotFound = errors.New("payment reference not found")

// Provider retrieves payment results over HTTP. When no base URL is
// configured it runs in dev mode and treats every reference as settled,
// which keeps local checkout flows working without provider credentials.
type Provider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewProvider(baseURL, apiKey string) *Provider {
	return &Provider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type paymentResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	PaidAt string `json:"paidAt"`
}

func (p *Provider) Retrieve(paymentRef string) (order.PaymentInfo, error) {
	if p.baseURL == "" {
		return order.PaymentInfo{
			ID:     paymentRef,
			Status: "succeeded",
			PaidAt: time.Now().Format(time.RFC3339),
		}, nil
	}

	req, err := http.NewRequest(http.MethodGet, p.baseURL+"/v1/payments/"+paymentRef, nil)
	if err != nil {
		return order.PaymentInfo{}, err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return order.PaymentInfo{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return order.PaymentInfo{}, ErrPaymentNotFound
	default:
		return order.PaymentInfo{}, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var body paymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return order.PaymentInfo{}, err
	}
	info := order.PaymentInfo{ID: body.ID, Status: body.Status, PaidAt: body.PaidAt}
	if info.PaidAt == "" {
		info.PaidAt = time.Now().Format(time.RFC3339)
	}
	return info, nil
}
