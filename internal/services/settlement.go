package services

import "github.com/shopspring/decimal"

// CommissionSnapshot - конфигурация комиссии, зафиксированная
// в момент создания платежа
type CommissionSnapshot struct {
	Enabled     bool
	SenderRate  decimal.Decimal
	CarrierRate decimal.Decimal
}

// Settlement - результат расчета по контракту
type Settlement struct {
	BasePrice         decimal.Decimal
	SenderCommission  decimal.Decimal
	CarrierCommission decimal.Decimal
	TotalAmount       decimal.Decimal
	CarrierPayout     decimal.Decimal
	CommissionEnabled bool
}

// CalculateSettlement вычисляет суммы платежа из базовой цены контракта.
// Округление: Round(2) у shopspring/decimal, half away from zero.
// При выключенной комиссии total = payout = base, комиссии нулевые.
func CalculateSettlement(base decimal.Decimal, cfg CommissionSnapshot) Settlement {
	if !cfg.Enabled {
		return Settlement{
			BasePrice:         base,
			SenderCommission:  decimal.Zero,
			CarrierCommission: decimal.Zero,
			TotalAmount:       base,
			CarrierPayout:     base,
			CommissionEnabled: false,
		}
	}

	senderFee := base.Mul(cfg.SenderRate).Round(2)
	carrierFee := base.Mul(cfg.CarrierRate).Round(2)

	return Settlement{
		BasePrice:         base,
		SenderCommission:  senderFee,
		CarrierCommission: carrierFee,
		TotalAmount:       base.Add(senderFee),
		CarrierPayout:     base.Sub(carrierFee),
		CommissionEnabled: true,
	}
}
