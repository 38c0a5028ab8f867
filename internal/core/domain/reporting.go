package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerSummary aggregates the ledger for admin dashboards. Derived purely
// from committed entries; never estimated.
type LedgerSummary struct {
	TotalWallets   int64           `json:"totalWallets"`
	ActiveWallets  int64           `json:"activeWallets"`
	TotalBalance   decimal.Decimal `json:"totalBalance"`
	DepositVolume  decimal.Decimal `json:"depositVolume"`
	TransferVolume decimal.Decimal `json:"transferVolume"`
	FeePoolBalance decimal.Decimal `json:"feePoolBalance"`
	EntryCount     int64           `json:"entryCount"`
}

// MarketplaceActivity aggregates completed trades.
type MarketplaceActivity struct {
	ListedAssets  int64           `json:"listedAssets"`
	TradeCount    int64           `json:"tradeCount"`
	TradeVolume   decimal.Decimal `json:"tradeVolume"`
	FeesCollected decimal.Decimal `json:"feesCollected"`
	Daily         []DailyActivity `json:"daily"`
}

// DailyActivity is one day's bucket of marketplace trades.
type DailyActivity struct {
	Day    time.Time       `json:"day"`
	Trades int64           `json:"trades"`
	Volume decimal.Decimal `json:"volume"`
}
