package payments

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrProviderDeclined = errors.New("payment declined by provider")

// OrderRequest - запрос на создание платежа у провайдера
type OrderRequest struct {
	Amount      decimal.Decimal
	Currency    string
	Description string
	ReturnURL   string
	CancelURL   string
	Metadata    map[string]string
}

// Order - созданный у провайдера платеж
type Order struct {
	ProviderID  string
	ApprovalURL string
}

// Provider - порт платежного шлюза. Ядро задает суммы и момент вызова,
// протокол шлюза остается за реализацией.
type Provider interface {
	// CreateOrder регистрирует платеж и возвращает URL подтверждения
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)

	// Execute завершает платеж после подтверждения плательщика.
	// Отказ провайдера возвращается как ErrProviderDeclined.
	Execute(ctx context.Context, providerID, payerID string) error
}
