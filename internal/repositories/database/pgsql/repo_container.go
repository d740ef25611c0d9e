package pgsql

import (
	portsrepo "github.com/jdrittgers/business-app-sub002/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	farmRepo := newPgxFarmRepository(dbPool)
	entityRepo := newPgxEntityRepository(dbPool)
	financingRepo := newPgxFinancingRepository(dbPool)
	costRepo := newPgxCostRepository(dbPool)
	contractRepo := newPgxGrainContractRepository(dbPool)
	priceRepo := newPgxPriceRepository(dbPool)

	return portsrepo.RepositoryProvider{
		FarmRepo:      farmRepo,
		EntityRepo:    entityRepo,
		FinancingRepo: financingRepo,
		CostRepo:      costRepo,
		ContractRepo:  contractRepo,
		PriceRepo:     priceRepo,
	}
}
