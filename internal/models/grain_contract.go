package models

import (
	"github.com/shopspring/decimal"
)

// GrainContract represents a row of the grain_contracts table.
type GrainContract struct {
	ContractID   string          `db:"contract_id"`
	BusinessID   string          `db:"business_id"`
	Name         string          `db:"name"`
	Commodity    string          `db:"commodity"`
	CropYear     int             `db:"crop_year"`
	TotalBushels int64           `db:"total_bushels"`
	Pricing      string          `db:"pricing"`
	CashPrice    decimal.Decimal `db:"cash_price"`
	AuditFields
}

// FarmContractAllocation represents a row of the farm_contract_allocations
// table. The primary key is (contract_id, farm_id).
type FarmContractAllocation struct {
	ContractID       string          `db:"contract_id"`
	FarmID           string          `db:"farm_id"`
	AllocatedBushels int64           `db:"allocated_bushels"`
	Share            decimal.Decimal `db:"share"`
	AuditFields
}
