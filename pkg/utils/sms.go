package utils

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
)

var (
	smsUsername = os.Getenv("AT_USERNAME")
	smsAPIKey   = os.Getenv("AT_API_KEY")
)

func sendSMS(message string, recipients []string) error {
	if smsUsername == "" {
		return fmt.Errorf("africa's talking username not set")
	}

	if smsAPIKey == "" {
		return fmt.Errorf("africa's talking API key not set")
	}

	baseURL := "https://api.africastalking.com/version1/messaging"

	// Prepare the form data
	data := url.Values{}
	data.Set("username", smsUsername)
	data.Set("to", strings.Join(recipients, ","))
	data.Set("message", message)

	req, err := http.NewRequest("POST", baseURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create SMS request: %v", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apiKey", smsAPIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("SMS gateway returned status %d", resp.StatusCode)
	}

	log.Printf("SMS sent to %d recipient(s)", len(recipients))
	return nil
}

// SendPasswordResetSMS sends the reset code via SMS
func SendPasswordResetSMS(phone, otp string) error {
	message := fmt.Sprintf("Your FleetDesk password reset code is: %s. It expires in 15 minutes.", otp)
	return sendSMS(message, []string{phone})
}

// SendRentalConfirmationSMS notifies a customer that their booking is confirmed.
func SendRentalConfirmationSMS(phone string, rentalID uint, startDate string) error {
	message := fmt.Sprintf("Your FleetDesk rental #%d is confirmed for %s. Safe travels!", rentalID, startDate)
	return sendSMS(message, []string{phone})
}
