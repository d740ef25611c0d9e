package services

import (
	portsrepo "github.com/jdrittgers/business-app-sub002/internal/core/ports/repositories"
	portssvc "github.com/jdrittgers/business-app-sub002/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider.
// Services only ever see each other through their port interfaces.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	priceFeed := NewPriceFeedService(repos.PriceRepo)

	return &portssvc.ServiceContainer{
		Farm:      NewFarmService(repos.FarmRepo, repos.EntityRepo),
		Entity:    NewEntityService(repos.EntityRepo),
		Financing: NewFinancingService(repos.FinancingRepo, repos.FarmRepo),
		CostEntry: NewCostEntryService(repos.CostRepo, repos.FarmRepo, repos.FinancingRepo),
		Contract:  NewGrainContractService(repos.ContractRepo, repos.FarmRepo),
		PriceFeed: priceFeed,
		Projection: NewProjectionService(
			repos.FarmRepo,
			repos.CostRepo,
			repos.FinancingRepo,
			repos.ContractRepo,
			priceFeed,
		),
	}
}
