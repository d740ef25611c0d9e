package dto

import (
	"time"

	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateContractRequest defines the data needed to create a grain contract.
type CreateContractRequest struct {
	Name         string                 `json:"name" binding:"required"`
	Commodity    domain.CommodityType   `json:"commodity" binding:"required,oneof=CORN SOYBEANS WHEAT"`
	CropYear     int                    `json:"cropYear" binding:"required,cropyear"`
	TotalBushels int64                  `json:"totalBushels" binding:"required,gt=0"`
	Pricing      domain.ContractPricing `json:"pricing" binding:"required,oneof=CASH BASIS HTA"`
	CashPrice    decimal.Decimal        `json:"cashPrice" binding:"required"`
}

// UpdateContractRequest defines the fields allowed for updating a contract.
type UpdateContractRequest struct {
	Name      *string          `json:"name"`
	CashPrice *decimal.Decimal `json:"cashPrice"`
}

// ContractResponse defines the data returned for a grain contract.
type ContractResponse struct {
	ContractID       string                 `json:"contractID"`
	Name             string                 `json:"name"`
	Commodity        domain.CommodityType   `json:"commodity"`
	CropYear         int                    `json:"cropYear"`
	TotalBushels     int64                  `json:"totalBushels"`
	Pricing          domain.ContractPricing `json:"pricing"`
	CashPrice        decimal.Decimal        `json:"cashPrice"`
	AllocatedBushels int64                  `json:"allocatedBushels"`
	CreatedAt        time.Time              `json:"createdAt"`
	LastUpdatedAt    time.Time              `json:"lastUpdatedAt"`
}

// ToContractResponse converts a domain contract plus the sum of its current
// allocations. AllocatedBushels below TotalBushels marks an under-allocated
// contract (e.g. after a farm's allocation was deleted).
func ToContractResponse(contract *domain.GrainContract, allocatedBushels int64) ContractResponse {
	return ContractResponse{
		ContractID:       contract.ContractID,
		Name:             contract.Name,
		Commodity:        contract.Commodity,
		CropYear:         contract.CropYear,
		TotalBushels:     contract.TotalBushels,
		Pricing:          contract.Pricing,
		CashPrice:        contract.CashPrice,
		AllocatedBushels: allocatedBushels,
		CreatedAt:        contract.CreatedAt,
		LastUpdatedAt:    contract.LastUpdatedAt,
	}
}

// ManualAllocationLine is one farm's explicit bushel assignment.
type ManualAllocationLine struct {
	FarmID  string `json:"farmID" binding:"required"`
	Bushels int64  `json:"bushels" binding:"gte=0"`
}

// SetManualAllocationRequest replaces a contract's allocations with an
// explicit split. The bushels must sum exactly to the contract total.
type SetManualAllocationRequest struct {
	Allocations []ManualAllocationLine `json:"allocations" binding:"required,min=1,dive"`
}

// AllocationResponse defines the data returned for one persisted allocation.
type AllocationResponse struct {
	ContractID       string          `json:"contractID"`
	FarmID           string          `json:"farmID"`
	AllocatedBushels int64           `json:"allocatedBushels"`
	Share            decimal.Decimal `json:"share"`
}

// ToAllocationResponses converts persisted allocations to DTOs.
func ToAllocationResponses(allocations []domain.FarmContractAllocation) []AllocationResponse {
	res := make([]AllocationResponse, len(allocations))
	for i, alloc := range allocations {
		res[i] = AllocationResponse{
			ContractID:       alloc.ContractID,
			FarmID:           alloc.FarmID,
			AllocatedBushels: alloc.AllocatedBushels,
			Share:            alloc.Share,
		}
	}
	return res
}

// AllocationPreviewResponse wraps a read-only proportional preview.
type AllocationPreviewResponse struct {
	ContractID string                     `json:"contractID"`
	Previews   []domain.AllocationPreview `json:"previews"`
}
