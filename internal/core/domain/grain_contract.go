package domain

import (
	"github.com/shopspring/decimal"
)

// ContractPricing identifies the pricing terms of a grain contract. Beyond the
// realized price per bushel the terms are opaque to allocation and projection.
type ContractPricing string

const (
	CashContract  ContractPricing = "CASH"
	BasisContract ContractPricing = "BASIS"
	HTAContract   ContractPricing = "HTA"
)

// GrainContract is a grain-marketing contract whose bushels are distributed
// across the farms of one business.
type GrainContract struct {
	ContractID   string          `json:"contractID"` // Primary Key (e.g., UUID)
	BusinessID   string          `json:"businessID"`
	Name         string          `json:"name"`
	Commodity    CommodityType   `json:"commodity"`
	CropYear     int             `json:"cropYear"`
	TotalBushels int64           `json:"totalBushels"` // > 0, whole bushels
	Pricing      ContractPricing `json:"pricing"`
	// CashPrice is the average realized price per bushel under the contract
	// terms; marketed revenue is locked at this price.
	CashPrice decimal.Decimal `json:"cashPrice"`
	AuditFields
}

// FarmContractAllocation assigns a portion of a contract's bushels to a farm.
// Whenever any allocation exists for a contract, the allocated bushels across
// all of its allocations sum exactly to the contract's total bushels, except
// after a single-farm delete, which leaves the contract under-allocated until
// the caller resets or edits manually.
type FarmContractAllocation struct {
	ContractID       string          `json:"contractID"`
	FarmID           string          `json:"farmID"`
	AllocatedBushels int64           `json:"allocatedBushels"` // >= 0
	Share            decimal.Decimal `json:"share"`            // allocatedBushels / totalBushels
	AuditFields
}

// AllocationPreview is one row of a read-only proportional allocation preview.
type AllocationPreview struct {
	FarmID           string          `json:"farmID"`
	FarmName         string          `json:"farmName"`
	ExpectedBushels  decimal.Decimal `json:"expectedBushels"`
	Share            decimal.Decimal `json:"share"`
	AllocatedBushels int64           `json:"allocatedBushels"`
}
