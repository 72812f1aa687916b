package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
)

// CreatePaymentReq is the request for one card payment against a rental.
type CreatePaymentReq struct {
	ExternalID  string
	Amount      float64
	Currency    string
	Description string
	CardToken   string
}

// PaymentResp is the provider's view of a payment.
type PaymentResp struct {
	PaymentID   string
	Status      string // processing, succeeded, failed
	DeclineCode string
}

// PaymentProvider is the card-payment gateway the rental form charges
// deposits through.
type PaymentProvider interface {
	CreateCardPayment(req CreatePaymentReq) (*PaymentResp, error)
	VerifyWebhookSignature(sigHeader string, rawBody []byte) error
}

type httpPaymentProvider struct {
	apiKey        string
	webhookSecret string
	baseURL       string
	client        *http.Client
}

// NewPaymentProvider builds the gateway client from PAYMENT_API_KEY /
// PAYMENT_WEBHOOK_SECRET / PAYMENT_API_URL.
func NewPaymentProvider() PaymentProvider {
	baseURL := os.Getenv("PAYMENT_API_URL")
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &httpPaymentProvider{
		apiKey:        os.Getenv("PAYMENT_API_KEY"),
		webhookSecret: os.Getenv("PAYMENT_WEBHOOK_SECRET"),
		baseURL:       baseURL,
		client:        &http.Client{},
	}
}

func (p *httpPaymentProvider) CreateCardPayment(req CreatePaymentReq) (*PaymentResp, error) {
	body := map[string]any{
		"external_id": req.ExternalID,
		"amount":      req.Amount,
		"currency":    req.Currency,
		"description": req.Description,
		"card_token":  req.CardToken,
	}
	b, _ := json.Marshal(body)
	httpReq, err := http.NewRequest("POST", p.baseURL+"/v1/payment_intents", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(p.apiKey, "")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payment provider returned %s", resp.Status)
	}

	var out struct {
		ID          string `json:"id"`
		Status      string `json:"status"`
		DeclineCode string `json:"decline_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("payment provider: empty payment id")
	}

	return &PaymentResp{PaymentID: out.ID, Status: out.Status, DeclineCode: out.DeclineCode}, nil
}

func (p *httpPaymentProvider) VerifyWebhookSignature(sigHeader string, rawBody []byte) error {
	if p.webhookSecret == "" {
		return errors.New("webhook secret not configured")
	}
	mac := hmac.New(sha256.New, []byte(p.webhookSecret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(sigHeader)) {
		return errors.New("invalid webhook signature")
	}
	return nil
}

// declineMessages maps provider decline codes to the messages shown in the
// payment form. Unknown codes fall through to a generic message.
var declineMessages = map[string]string{
	"insufficient_funds":    "The card has insufficient funds to complete this payment.",
	"card_declined":         "The card was declined. Please try a different card.",
	"expired_card":          "The card has expired. Please use a different card.",
	"incorrect_cvc":         "The card's security code is incorrect.",
	"incorrect_number":      "The card number is incorrect.",
	"processing_error":      "An error occurred while processing the card. Please try again.",
	"authentication_failed": "Card authentication failed. Please try again or use a different card.",
	"do_not_honor":          "The card was declined by the issuing bank.",
}

// DeclineMessage returns the human-readable message for a decline code.
func DeclineMessage(code string) string {
	if msg, ok := declineMessages[code]; ok {
		return msg
	}
	return "The payment could not be completed. Please try again or use a different payment method."
}
