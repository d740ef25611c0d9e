package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	FarmRepo      FarmRepositoryFacade
	EntityRepo    EntityRepositoryFacade
	FinancingRepo FinancingRepositoryFacade
	CostRepo      CostRepositoryFacade
	ContractRepo  GrainContractRepositoryFacade
	PriceRepo     PriceRepositoryFacade
}
