package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	UserHandler      *UserHandler
	RequestHandler   *RequestHandler
	OfferHandler     *OfferHandler
	ContractHandler  *ContractHandler
	PaymentHandler   *PaymentHandler
	ReviewHandler    *ReviewHandler
	AdminHandler     *AdminHandler
	AnalyticsHandler *AnalyticsHandler
}
