package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetRarity classifies a collectible's rarity tier.
type AssetRarity string

const (
	RarityCommon    AssetRarity = "COMMON"
	RarityRare      AssetRarity = "RARE"
	RarityEpic      AssetRarity = "EPIC"
	RarityLegendary AssetRarity = "LEGENDARY"
)

// AssetMetadata is the immutable descriptive payload attached to an asset at
// mint time.
type AssetMetadata struct {
	Name   string      `json:"name"`
	Rarity AssetRarity `json:"rarity"`
	Effect string      `json:"effect"`
}

// Listing is a marketplace offer attaching a price to an asset. Listing an
// asset does NOT change its owner: the asset stays with the lister until a
// purchase commits.
type Listing struct {
	Price    decimal.Decimal `json:"price"`
	ListedAt time.Time       `json:"listedAt"`
}

// Asset is a uniquely-owned collectible token. Assets are created by an
// external minting process and never deleted; ownership transfers for the
// asset's entire lifetime. OwnerAddress and Listing are mutated only by the
// marketplace service, never partially.
type Asset struct {
	TokenID      string        `json:"tokenID"` // Primary key, immutable
	Metadata     AssetMetadata `json:"metadata"`
	OwnerAddress string        `json:"ownerAddress"` // Exactly one owner at all times
	Listing      *Listing      `json:"listing,omitempty"`
	// Version increments on every committed mutation, same discipline as
	// Wallet.Version. Guarantees at-most-one-winner for concurrent purchases.
	Version int64 `json:"-"`
	AuditFields
}

// IsListed reports whether the asset currently carries a listing.
func (a *Asset) IsListed() bool {
	return a.Listing != nil
}
