package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

func TestDeclineMessage(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"known code", "insufficient_funds", "The card has insufficient funds to complete this payment."},
		{"another known code", "expired_card", "The card has expired. Please use a different card."},
		{"unknown code falls back", "some_new_code", "The payment could not be completed. Please try again or use a different payment method."},
		{"empty code falls back", "", "The payment could not be completed. Please try again or use a different payment method."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeclineMessage(tt.code); got != tt.want {
				t.Errorf("DeclineMessage(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	provider := &httpPaymentProvider{webhookSecret: "whsec_test"}
	body := []byte(`{"type":"payment.succeeded","data":{"externalId":"abc"}}`)

	t.Run("valid signature", func(t *testing.T) {
		if err := provider.VerifyWebhookSignature(sign("whsec_test", body), body); err != nil {
			t.Errorf("expected valid signature to verify, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		if err := provider.VerifyWebhookSignature(sign("whsec_other", body), body); err == nil {
			t.Error("expected signature from wrong secret to be rejected")
		}
	})

	t.Run("tampered body", func(t *testing.T) {
		tampered := []byte(strings.Replace(string(body), "abc", "xyz", 1))
		if err := provider.VerifyWebhookSignature(sign("whsec_test", body), tampered); err == nil {
			t.Error("expected tampered body to be rejected")
		}
	})

	t.Run("missing secret", func(t *testing.T) {
		unconfigured := &httpPaymentProvider{}
		if err := unconfigured.VerifyWebhookSignature(sign("whsec_test", body), body); err == nil {
			t.Error("expected verification to fail without a configured secret")
		}
	})
}
