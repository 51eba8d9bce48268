package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService     AuthService
	UserService     UserService
	RequestService  RequestService
	OfferService    OfferService
	MatchingService MatchingService
	ContractService ContractService
	PaymentService  PaymentService
	ReviewService   ReviewService
	AdminService    AdminService
}
