package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Asset is the persistence representation of a collectible token. The listing
// is flattened into two nullable columns: a NULL listed_price means unlisted.
type Asset struct {
	TokenID      string              `db:"token_id"`
	Name         string              `db:"name"`
	Rarity       string              `db:"rarity"`
	Effect       string              `db:"effect"`
	OwnerAddress string              `db:"owner_address"`
	ListedPrice  decimal.NullDecimal `db:"listed_price"`
	ListedAt     sql.NullTime        `db:"listed_at"`
	Version      int64               `db:"version"` // Optimistic concurrency counter
	AuditFields
}
