package paymentControllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

const defaultRazorpayBaseURL = "https://api.razorpay.com/v1"

// RazorpayClient is a thin JSON client for the Razorpay Orders, Payments
// and Refunds APIs.
type RazorpayClient struct {
	KeyID      string
	KeySecret  string
	BaseURL    string
	HTTPClient *http.Client
}

// NewRazorpayClient builds a client from the environment. RAZORPAY_API_URL
// overrides the live endpoint for tests.
func NewRazorpayClient() *RazorpayClient {
	baseURL := os.Getenv("RAZORPAY_API_URL")
	if baseURL == "" {
		baseURL = defaultRazorpayBaseURL
	}
	return &RazorpayClient{
		KeyID:      os.Getenv("RAZORPAY_KEY_ID"),
		KeySecret:  os.Getenv("RAZORPAY_KEY_SECRET"),
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type RazorpayPayment struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
	Status  string `json:"status"`
	Method  string `json:"method"`
}

type RazorpayRefund struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
}

func (r *RazorpayClient) do(method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, r.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.SetBasicAuth(r.KeyID, r.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("razorpay returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// CreateOrder registers an order with the gateway. Amount is in paise.
func (r *RazorpayClient) CreateOrder(amountPaise int64, currency, receipt string) (RazorpayOrder, error) {
	var order RazorpayOrder
	body := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	err := r.do(http.MethodPost, "/orders", body, &order)
	return order, err
}

func (r *RazorpayClient) FetchPayment(paymentID string) (RazorpayPayment, error) {
	var payment RazorpayPayment
	err := r.do(http.MethodGet, "/payments/"+paymentID, nil, &payment)
	return payment, err
}

// CreateRefund refunds amountPaise against a captured payment. Zero
// refunds the full amount.
func (r *RazorpayClient) CreateRefund(paymentID string, amountPaise int64) (RazorpayRefund, error) {
	var refund RazorpayRefund
	body := map[string]interface{}{}
	if amountPaise > 0 {
		body["amount"] = amountPaise
	}
	err := r.do(http.MethodPost, "/payments/"+paymentID+"/refund", body, &refund)
	return refund, err
}

func (r *RazorpayClient) FetchRefund(refundID string) (RazorpayRefund, error) {
	var refund RazorpayRefund
	err := r.do(http.MethodGet, "/refunds/"+refundID, nil, &refund)
	return refund, err
}

// VerifySignature checks the checkout callback signature, an HMAC-SHA256
// of "<order_id>|<payment_id>" keyed with the API secret.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
