package mapping

import (
	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/jdrittgers/business-app-sub002/internal/models"
)

// ToModelFinancingRecord converts a domain FinancingRecord to a model FinancingRecord
func ToModelFinancingRecord(d domain.FinancingRecord) models.FinancingRecord {
	return models.FinancingRecord{
		FinancingID:             d.FinancingID,
		BusinessID:              d.BusinessID,
		FarmID:                  d.FarmID,
		EquipmentID:             d.EquipmentID,
		Name:                    d.Name,
		Type:                    string(d.Type),
		Mode:                    string(d.Mode),
		CropYear:                d.CropYear,
		AnnualPayment:           d.AnnualPayment,
		Principal:               d.Principal,
		InterestRate:            d.InterestRate,
		TermMonths:              d.TermMonths,
		StartDate:               d.StartDate,
		RemainingBalance:        d.RemainingBalance,
		AnnualInterestOverride:  d.AnnualInterestOverride,
		AnnualPrincipalOverride: d.AnnualPrincipalOverride,
		IncludeInBreakeven:      d.IncludeInBreakeven,
		AuditFields:             ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFinancingRecord converts a model FinancingRecord to a domain FinancingRecord
func ToDomainFinancingRecord(m models.FinancingRecord) domain.FinancingRecord {
	return domain.FinancingRecord{
		FinancingID:             m.FinancingID,
		BusinessID:              m.BusinessID,
		FarmID:                  m.FarmID,
		EquipmentID:             m.EquipmentID,
		Name:                    m.Name,
		Type:                    domain.FinancingType(m.Type),
		Mode:                    domain.FinancingMode(m.Mode),
		CropYear:                m.CropYear,
		AnnualPayment:           m.AnnualPayment,
		Principal:               m.Principal,
		InterestRate:            m.InterestRate,
		TermMonths:              m.TermMonths,
		StartDate:               m.StartDate,
		RemainingBalance:        m.RemainingBalance,
		AnnualInterestOverride:  m.AnnualInterestOverride,
		AnnualPrincipalOverride: m.AnnualPrincipalOverride,
		IncludeInBreakeven:      m.IncludeInBreakeven,
		AuditFields:             ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFinancingRecordSlice converts a slice of model FinancingRecords.
func ToDomainFinancingRecordSlice(ms []models.FinancingRecord) []domain.FinancingRecord {
	ds := make([]domain.FinancingRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFinancingRecord(m)
	}
	return ds
}

// ToModelFarmDirectCost converts a domain FarmDirectCost to a model FarmDirectCost
func ToModelFarmDirectCost(d domain.FarmDirectCost) models.FarmDirectCost {
	return models.FarmDirectCost{
		FarmID:      d.FarmID,
		CropYear:    d.CropYear,
		Fertilizer:  d.Fertilizer,
		Chemical:    d.Chemical,
		Seed:        d.Seed,
		LandRent:    d.LandRent,
		Insurance:   d.Insurance,
		Other:       d.Other,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFarmDirectCost converts a model FarmDirectCost to a domain FarmDirectCost
func ToDomainFarmDirectCost(m models.FarmDirectCost) domain.FarmDirectCost {
	return domain.FarmDirectCost{
		FarmID:      m.FarmID,
		CropYear:    m.CropYear,
		Fertilizer:  m.Fertilizer,
		Chemical:    m.Chemical,
		Seed:        m.Seed,
		LandRent:    m.LandRent,
		Insurance:   m.Insurance,
		Other:       m.Other,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFarmDirectCostSlice converts a slice of model FarmDirectCosts.
func ToDomainFarmDirectCostSlice(ms []models.FarmDirectCost) []domain.FarmDirectCost {
	ds := make([]domain.FarmDirectCost, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFarmDirectCost(m)
	}
	return ds
}
