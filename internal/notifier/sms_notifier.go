package notifier

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Nahid000001/EshoTryLasttry/configs"
)

type SMSResponse struct {
	SMSMessageData struct {
		Message    string `json:"Message"`
		Recipients []struct {
			StatusCode int    `json:"statusCode"`
			Number     string `json:"number"`
			Cost       string `json:"cost"`
			Status     string `json:"status"`
			MessageID  string `json:"messageId"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

func SendSMS(toPhoneNumber string, orderNumber string, totalAmount decimal.Decimal) error {

	cfg := config.LoadAfricaTalkingConfig()

	message := fmt.Sprintf("Your order %s has been successfully placed! Total: USD %s. Thank you for shopping with us!", orderNumber, totalAmount.StringFixed(2))

	data := url.Values{}
	data.Set("username", cfg.Username)
	data.Set("to", toPhoneNumber)
	data.Set("message", message)
	data.Set("from", cfg.SenderID)

	client := &http.Client{}
	req, err := http.NewRequest("POST", cfg.SMSURL, strings.NewReader(data.Encode()))

	if err != nil {
		return fmt.Errorf("failed to create SMS request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", cfg.APIKey)

	resp, err := client.Do(req)

	if err != nil {
		log.Printf("SMS send failed to %s for order %s: %v\n", toPhoneNumber, orderNumber, err)
		return fmt.Errorf("SMS send failed: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var smsResp SMSResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&smsResp); decodeErr == nil {
			log.Printf("SMS API returned error for %s (order %s): Status %d, Message: %s\n", toPhoneNumber, orderNumber, resp.StatusCode, smsResp.SMSMessageData.Message)
		} else {
			log.Printf("SMS API returned non-success status %d for %s (order %s) and failed to decode response: %v\n", resp.StatusCode, toPhoneNumber, orderNumber, decodeErr)
		}
		return fmt.Errorf("SMS API returned non-success status: %d", resp.StatusCode)
	}

	var smsResp SMSResponse
	if err := json.NewDecoder(resp.Body).Decode(&smsResp); err != nil {
		log.Printf("Failed to decode SMS response for %s (order %s): %v\n", toPhoneNumber, orderNumber, err)
		return fmt.Errorf("failed to decode SMS response: %w", err)
	}

	log.Printf("SMS sent successfully to %s for order %s. Message: %s\n", toPhoneNumber, orderNumber, smsResp.SMSMessageData.Message)
	return nil
}
