// Package ebarimt submits receipts to the Mongolian e-barimt tax endpoint.
// Companies without production credentials run in test mode, where the
// submission is simulated locally.
package ebarimt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// StockItem is one receipt line in the e-barimt payload. The upstream API
// expects every numeric field as a string.
type StockItem struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	MeasureUnit string `json:"measureUnit"`
	Qty         string `json:"qty"`
	UnitPrice   string `json:"unitPrice"`
	TotalAmount string `json:"totalAmount"`
	CityTax     string `json:"cityTax"`
	VAT         string `json:"vat"`
	BarCode     string `json:"barCode"`
}

// BillPayload is the request body of the merchant billing API.
type BillPayload struct {
	Amount        string      `json:"amount"`
	VAT           string      `json:"vat"`
	CashAmount    string      `json:"cashAmount"`
	NonCashAmount string      `json:"nonCashAmount"`
	CityTax       string      `json:"cityTax"`
	DistrictCode  string      `json:"districtCode"`
	PosNo         string      `json:"posNo"`
	CustomerNo    string      `json:"customerNo"`
	BillType      string      `json:"billType"`
	TaxType       string      `json:"taxType"`
	Stocks        []StockItem `json:"stocks"`
}

// BillResult is the upstream response.
type BillResult struct {
	Success bool   `json:"success"`
	BillID  string `json:"billId"`
	QRData  string `json:"qrData"`
	Lottery string `json:"lottery"`
	Message string `json:"message"`
}

// Client talks to the e-barimt merchant API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client for the configured endpoint.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SubmitBill posts the payload using the merchant API key.
func (c *Client) SubmitBill(ctx context.Context, apiKey string, payload BillPayload) (BillResult, error) {
	if c == nil || c.httpClient == nil {
		return BillResult{}, fmt.Errorf("ebarimt client not initialised")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return BillResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rest/merchant/bill", bytes.NewReader(body))
	if err != nil {
		return BillResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return BillResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return BillResult{}, fmt.Errorf("ebarimt: unexpected status %d", resp.StatusCode)
	}
	var result BillResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return BillResult{}, fmt.Errorf("ebarimt: decode response: %w", err)
	}
	return result, nil
}
