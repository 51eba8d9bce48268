package payments

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var centsFactor = decimal.NewFromInt(100)

// DeclinePayerID - payer id, на котором sandbox отклоняет платеж
// (для проверки ветки failed)
const DeclinePayerID = "sandbox-decline"

// SandboxProvider - in-memory провайдер для dev-окружения и тестов
type SandboxProvider struct {
	mu     sync.Mutex
	orders map[string]OrderRequest
}

func NewSandboxProvider() *SandboxProvider {
	return &SandboxProvider{
		orders: make(map[string]OrderRequest),
	}
}

func (p *SandboxProvider) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := "sandbox_" + uuid.NewString()
	p.orders[id] = req

	return &Order{
		ProviderID:  id,
		ApprovalURL: req.ReturnURL,
	}, nil
}

func (p *SandboxProvider) Execute(ctx context.Context, providerID, payerID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.orders[providerID]; !ok {
		return errors.New("unknown sandbox order")
	}
	if payerID == DeclinePayerID {
		return ErrProviderDeclined
	}

	delete(p.orders, providerID)
	return nil
}
