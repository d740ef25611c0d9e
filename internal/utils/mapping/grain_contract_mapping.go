package mapping

import (
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/jdrittgers/business-app-sub002/internal/models"
)

// ToModelGrainContract converts a domain GrainContract to a model GrainContract
func ToModelGrainContract(d domain.GrainContract) models.GrainContract {
	return models.GrainContract{
		ContractID:   d.ContractID,
		BusinessID:   d.BusinessID,
		Name:         d.Name,
		Commodity:    string(d.Commodity),
		CropYear:     d.CropYear,
		TotalBushels: d.TotalBushels,
		Pricing:      string(d.Pricing),
		CashPrice:    d.CashPrice,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGrainContract converts a model GrainContract to a domain GrainContract
func ToDomainGrainContract(m models.GrainContract) domain.GrainContract {
	return domain.GrainContract{
		ContractID:   m.ContractID,
		BusinessID:   m.BusinessID,
		Name:         m.Name,
		Commodity:    domain.CommodityType(m.Commodity),
		CropYear:     m.CropYear,
		TotalBushels: m.TotalBushels,
		Pricing:      domain.ContractPricing(m.Pricing),
		CashPrice:    m.CashPrice,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainGrainContractSlice converts a slice of model GrainContracts.
func ToDomainGrainContractSlice(ms []models.GrainContract) []domain.GrainContract {
	ds := make([]domain.GrainContract, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGrainContract(m)
	}
	return ds
}

// ToModelFarmContractAllocation converts a domain allocation to a model row.
func ToModelFarmContractAllocation(d domain.FarmContractAllocation) models.FarmContractAllocation {
	return models.FarmContractAllocation{
		ContractID:       d.ContractID,
		FarmID:           d.FarmID,
		AllocatedBushels: d.AllocatedBushels,
		Share:            d.Share,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFarmContractAllocation converts a model allocation row to domain.
func ToDomainFarmContractAllocation(m models.FarmContractAllocation) domain.FarmContractAllocation {
	return domain.FarmContractAllocation{
		ContractID:       m.ContractID,
		FarmID:           m.FarmID,
		AllocatedBushels: m.AllocatedBushels,
		Share:            m.Share,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFarmContractAllocationSlice converts a slice of model allocations.
func ToDomainFarmContractAllocationSlice(ms []models.FarmContractAllocation) []domain.FarmContractAllocation {
	ds := make([]domain.FarmContractAllocation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFarmContractAllocation(m)
	}
	return ds
}

// ToModelPriceSnapshot converts a domain PriceSnapshot to a model row.
// Estimated snapshots are in-memory only and must not be persisted.
func ToModelPriceSnapshot(d domain.PriceSnapshot) models.PriceSnapshot {
	return models.PriceSnapshot{
		Commodity: string(d.Commodity),
		CropYear:  d.CropYear,
		Futures:   d.Futures,
		Basis:     d.Basis,
		AsOf:      d.AsOf,
	}
}

// ToDomainPriceSnapshot converts a model PriceSnapshot to domain. Stored rows
// are never estimates.
func ToDomainPriceSnapshot(m models.PriceSnapshot) domain.PriceSnapshot {
	return domain.PriceSnapshot{
		Commodity:  domain.CommodityType(m.Commodity),
		CropYear:   m.CropYear,
		Futures:    m.Futures,
		Basis:      m.Basis,
		IsEstimate: false,
		AsOf:       m.AsOf,
	}
}
