package dto

import (
	"time"

	"github.com/jdrittgers/business-app-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertPriceRequest defines the data needed to store or refresh a price
// snapshot for one commodity and crop year.
type UpsertPriceRequest struct {
	Commodity domain.CommodityType `json:"commodity" binding:"required,oneof=CORN SOYBEANS WHEAT"`
	CropYear  int                  `json:"cropYear" binding:"required,cropyear"`
	Futures   decimal.Decimal      `json:"futures" binding:"required"`
	Basis     decimal.Decimal      `json:"basis"`
}

// PriceSnapshotResponse defines the data returned for a price snapshot, with
// the cash price pre-computed.
type PriceSnapshotResponse struct {
	Commodity  domain.CommodityType `json:"commodity"`
	CropYear   int                  `json:"cropYear"`
	Futures    decimal.Decimal      `json:"futures"`
	Basis      decimal.Decimal      `json:"basis"`
	CashPrice  decimal.Decimal      `json:"cashPrice"`
	IsEstimate bool                 `json:"isEstimate"`
	AsOf       time.Time            `json:"asOf"`
}

// ToPriceSnapshotResponse converts a domain.PriceSnapshot to its DTO.
func ToPriceSnapshotResponse(snapshot *domain.PriceSnapshot) PriceSnapshotResponse {
	return PriceSnapshotResponse{
		Commodity:  snapshot.Commodity,
		CropYear:   snapshot.CropYear,
		Futures:    snapshot.Futures,
		Basis:      snapshot.Basis,
		CashPrice:  snapshot.CashPrice(),
		IsEstimate: snapshot.IsEstimate,
		AsOf:       snapshot.AsOf,
	}
}
