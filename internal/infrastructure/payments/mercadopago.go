package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/invoteam/invo-api/internal/application/access"
	"github.com/invoteam/invo-api/internal/domain"
)

var _ access.PaymentFetcher = (*MercadoPagoClient)(nil)

// MercadoPagoClient consulta pagos contra la API REST de Mercado Pago
// (GET /v1/payments/{id} con token Bearer).
type MercadoPagoClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewMercadoPagoClient construye el cliente. baseURL sin slash final,
// ej. https://api.mercadopago.com.
func NewMercadoPagoClient(baseURL, accessToken string) *MercadoPagoClient {
	return &MercadoPagoClient{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

type mpPaymentResponse struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	TransactionAmount float64     `json:"transaction_amount"`
	Payer             struct {
		Email string `json:"email"`
	} `json:"payer"`
}

// GetPayment obtiene el estado de un pago. Un 404 del proveedor mapea a
// ErrNotFound (el webhook puede llegar antes de que el pago sea consultable).
func (c *MercadoPagoClient) GetPayment(ctx context.Context, id string) (*access.PaymentInfo, error) {
	url := fmt.Sprintf("%s/v1/payments/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consultar pago: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mercado pago respondió %d", resp.StatusCode)
	}

	var body mpPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decodificar pago: %w", err)
	}
	return &access.PaymentInfo{
		ID:         body.ID.String(),
		Status:     body.Status,
		PayerEmail: body.Payer.Email,
		Amount:     body.TransactionAmount,
	}, nil
}
