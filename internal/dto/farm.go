package dto

import (
	"time"

	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntitySplitInput is one fractional ownership line of a farm.
type EntitySplitInput struct {
	EntityID   string          `json:"entityID" binding:"required"`
	Percentage decimal.Decimal `json:"percentage" binding:"required"`
}

// CreateFarmRequest defines the data needed to create a new farm.
type CreateFarmRequest struct {
	Name           string               `json:"name" binding:"required"`
	EntityID       string               `json:"entityID" binding:"required"`
	Commodity      domain.CommodityType `json:"commodity" binding:"required,oneof=CORN SOYBEANS WHEAT"`
	CropYear       int                  `json:"cropYear" binding:"required,cropyear"`
	Acres          decimal.Decimal      `json:"acres" binding:"required"`
	ProjectedYield decimal.Decimal      `json:"projectedYield"`
	Splits         []EntitySplitInput   `json:"splits"` // Optional; percentages must sum to 100
}

// UpdateFarmRequest defines the data allowed for updating a farm.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateFarmRequest struct {
	Name           *string          `json:"name"`
	Acres          *decimal.Decimal `json:"acres"`
	ProjectedYield *decimal.Decimal `json:"projectedYield"`
}

// FarmResponse defines the data returned for a farm.
type FarmResponse struct {
	FarmID          string               `json:"farmID"`
	EntityID        string               `json:"entityID"`
	Name            string               `json:"name"`
	Commodity       domain.CommodityType `json:"commodity"`
	CropYear        int                  `json:"cropYear"`
	Acres           decimal.Decimal      `json:"acres"`
	ProjectedYield  decimal.Decimal      `json:"projectedYield"`
	ExpectedBushels decimal.Decimal      `json:"expectedBushels"`
	Splits          []domain.EntitySplit `json:"splits,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
}

// ToFarmResponse converts a domain.Farm to FarmResponse DTO.
func ToFarmResponse(farm *domain.Farm) FarmResponse {
	return FarmResponse{
		FarmID:          farm.FarmID,
		EntityID:        farm.EntityID,
		Name:            farm.Name,
		Commodity:       farm.Commodity,
		CropYear:        farm.CropYear,
		Acres:           farm.Acres,
		ProjectedYield:  farm.ProjectedYield,
		ExpectedBushels: farm.ExpectedBushels(),
		Splits:          farm.Splits,
		CreatedAt:       farm.CreatedAt,
		LastUpdatedAt:   farm.LastUpdatedAt,
	}
}

// ToListFarmResponse converts a slice of domain.Farm to FarmResponse DTOs.
func ToListFarmResponse(farms []domain.Farm) []FarmResponse {
	res := make([]FarmResponse, len(farms))
	for i := range farms {
		res[i] = ToFarmResponse(&farms[i])
	}
	return res
}

// CreateEntityRequest defines the data needed to create a legal entity.
type CreateEntityRequest struct {
	Name string `json:"name" binding:"required"`
}

// EntityResponse defines the data returned for a legal entity.
type EntityResponse struct {
	EntityID  string    `json:"entityID"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToEntityResponse converts a domain.LegalEntity to EntityResponse DTO.
func ToEntityResponse(entity *domain.LegalEntity) EntityResponse {
	return EntityResponse{
		EntityID:  entity.EntityID,
		Name:      entity.Name,
		CreatedAt: entity.CreatedAt,
	}
}
