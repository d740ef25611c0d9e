package mapping

import (
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/jdrittgers/business-app-sub002/internal/models"
)

// ToModelFarm converts a domain Farm to a model Farm. Splits are mapped
// separately because they live in their own table.
func ToModelFarm(d domain.Farm) models.Farm {
	return models.Farm{
		FarmID:         d.FarmID,
		BusinessID:     d.BusinessID,
		EntityID:       d.EntityID,
		Name:           d.Name,
		Commodity:      string(d.Commodity),
		CropYear:       d.CropYear,
		Acres:          d.Acres,
		ProjectedYield: d.ProjectedYield,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFarm converts a model Farm plus its split rows to a domain Farm.
func ToDomainFarm(m models.Farm, splits []models.EntitySplit) domain.Farm {
	return domain.Farm{
		FarmID:         m.FarmID,
		BusinessID:     m.BusinessID,
		EntityID:       m.EntityID,
		Name:           m.Name,
		Commodity:      domain.CommodityType(m.Commodity),
		CropYear:       m.CropYear,
		Acres:          m.Acres,
		ProjectedYield: m.ProjectedYield,
		Splits:         ToDomainEntitySplitSlice(splits),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntitySplitSlice converts domain splits to model rows for one farm.
func ToModelEntitySplitSlice(farmID string, ds []domain.EntitySplit) []models.EntitySplit {
	ms := make([]models.EntitySplit, len(ds))
	for i, d := range ds {
		ms[i] = models.EntitySplit{
			FarmID:     farmID,
			EntityID:   d.EntityID,
			Percentage: d.Percentage,
		}
	}
	return ms
}

// ToDomainEntitySplitSlice converts model split rows to domain splits.
func ToDomainEntitySplitSlice(ms []models.EntitySplit) []domain.EntitySplit {
	if len(ms) == 0 {
		return nil
	}
	ds := make([]domain.EntitySplit, len(ms))
	for i, m := range ms {
		ds[i] = domain.EntitySplit{EntityID: m.EntityID, Percentage: m.Percentage}
	}
	return ds
}

// ToModelLegalEntity converts a domain LegalEntity to a model LegalEntity
func ToModelLegalEntity(d domain.LegalEntity) models.LegalEntity {
	return models.LegalEntity{
		EntityID:    d.EntityID,
		BusinessID:  d.BusinessID,
		Name:        d.Name,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLegalEntity converts a model LegalEntity to a domain LegalEntity
func ToDomainLegalEntity(m models.LegalEntity) domain.LegalEntity {
	return domain.LegalEntity{
		EntityID:    m.EntityID,
		BusinessID:  m.BusinessID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLegalEntitySlice converts a slice of model LegalEntities.
func ToDomainLegalEntitySlice(ms []models.LegalEntity) []domain.LegalEntity {
	ds := make([]domain.LegalEntity, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLegalEntity(m)
	}
	return ds
}
