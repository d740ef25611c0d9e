package services

// ServiceContainer holds all service facades, wired once at startup and
// handed to the route registration layer.
type ServiceContainer struct {
	Farm       FarmSvcFacade
	Entity     EntitySvcFacade
	Financing  FinancingSvcFacade
	CostEntry  CostEntrySvcFacade
	Contract   GrainContractSvcFacade
	PriceFeed  PriceFeedSvcFacade
	Projection ProjectionSvcFacade
}
