package models

type UserStatus string
type UserRole string
type ShippingMode string
type RequestStatus string
type OfferStatus string
type ContractStatus string
type PaymentStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleSender            UserRole = "sender"
	UserRoleCarrierIndividual UserRole = "carrier_individual"
	UserRoleCarrierPro        UserRole = "carrier_pro"
	UserRoleSenderCarrier     UserRole = "sender_carrier"
	UserRoleAdmin             UserRole = "admin"

	ShippingModeTerrestrial ShippingMode = "terrestrial"
	ShippingModeAir         ShippingMode = "air"

	RequestStatusOpen          RequestStatus = "open"
	RequestStatusInNegotiation RequestStatus = "in_negotiation"
	RequestStatusAccepted      RequestStatus = "accepted"
	RequestStatusInTransit     RequestStatus = "in_transit"
	RequestStatusDelivered     RequestStatus = "delivered"
	RequestStatusCancelled     RequestStatus = "cancelled"

	OfferStatusActive  OfferStatus = "active"
	OfferStatusPaused  OfferStatus = "paused"
	OfferStatusExpired OfferStatus = "expired"

	ContractStatusProposed  ContractStatus = "proposed"
	ContractStatusAccepted  ContractStatus = "accepted"
	ContractStatusPickedUp  ContractStatus = "picked_up"
	ContractStatusDelivered ContractStatus = "delivered"
	ContractStatusCancelled ContractStatus = "cancelled"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// CanSend сообщает, может ли роль создавать заявки на отправку
func (r UserRole) CanSend() bool {
	return r == UserRoleSender || r == UserRoleSenderCarrier
}

// CanCarry сообщает, может ли роль создавать предложения перевозки
func (r UserRole) CanCarry() bool {
	return r == UserRoleCarrierIndividual || r == UserRoleCarrierPro || r == UserRoleSenderCarrier
}

// IsCarrierOnly - чистый перевозчик (без права отправлять)
func (r UserRole) IsCarrierOnly() bool {
	return r == UserRoleCarrierIndividual || r == UserRoleCarrierPro
}
