package dto

import (
	"time"

	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListAssetRequest puts an asset the caller owns up for sale.
type ListAssetRequest struct {
	TokenID string          `json:"tokenID" binding:"required"`
	Price   decimal.Decimal `json:"price" binding:"required,posdecimal"`
}

// MintAssetRequest is the notification sent by the minting pipeline when a
// new asset comes into existence.
type MintAssetRequest struct {
	TokenID      string `json:"tokenID" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Rarity       string `json:"rarity" binding:"required,oneof=COMMON RARE EPIC LEGENDARY"`
	Effect       string `json:"effect"`
	OwnerAddress string `json:"ownerAddress" binding:"required"`
}

// BuyAssetRequest purchases a listed asset with the caller's wallet.
type BuyAssetRequest struct {
	TokenID string `json:"tokenID" binding:"required"`
}

// ListingResponse describes an active listing.
type ListingResponse struct {
	Price    decimal.Decimal `json:"price"`
	ListedAt time.Time       `json:"listedAt"`
}

// AssetResponse defines the data returned for an asset.
type AssetResponse struct {
	TokenID      string               `json:"tokenID"`
	Metadata     domain.AssetMetadata `json:"metadata"`
	OwnerAddress string               `json:"ownerAddress"`
	Listing      *ListingResponse     `json:"listing,omitempty"`
}

// PurchaseResponse is returned for a completed purchase.
type PurchaseResponse struct {
	EntryID string        `json:"entryID"`
	Asset   AssetResponse `json:"asset"`
}

// ListListingsParams holds pagination parameters for browsing listings.
type ListListingsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListListingsResponse is a page of listed assets plus the next-page token.
type ListListingsResponse struct {
	Listings  []AssetResponse `json:"listings"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToAssetResponse converts a domain.Asset to AssetResponse DTO.
func ToAssetResponse(a *domain.Asset) AssetResponse {
	resp := AssetResponse{
		TokenID:      a.TokenID,
		Metadata:     a.Metadata,
		OwnerAddress: a.OwnerAddress,
	}
	if a.Listing != nil {
		resp.Listing = &ListingResponse{
			Price:    a.Listing.Price,
			ListedAt: a.Listing.ListedAt,
		}
	}
	return resp
}

// ToAssetResponses converts a slice of domain assets to DTOs.
func ToAssetResponses(assets []domain.Asset) []AssetResponse {
	res := make([]AssetResponse, len(assets))
	for i := range assets {
		res[i] = ToAssetResponse(&assets[i])
	}
	return res
}
