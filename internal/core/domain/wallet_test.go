package domain_test

import (
	"testing"
	"time"

	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   bool
	}{
		{
			name:   "whole amount",
			amount: decimal.NewFromInt(100),
			want:   true,
		},
		{
			name:   "two fractional digits",
			amount: decimal.RequireFromString("30.50"),
			want:   true,
		},
		{
			name:   "one fractional digit",
			amount: decimal.RequireFromString("1.5"),
			want:   true,
		},
		{
			name:   "sub-cent precision rejected",
			amount: decimal.RequireFromString("0.001"),
			want:   false,
		},
		{
			name:   "negative but representable",
			amount: decimal.RequireFromString("-42.25"),
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ValidAmount(tt.amount))
		})
	}
}

func TestAsset_IsListed(t *testing.T) {
	asset := domain.Asset{
		TokenID:      "tok-1",
		OwnerAddress: "addr-1",
	}
	assert.False(t, asset.IsListed())

	asset.Listing = &domain.Listing{
		Price:    decimal.RequireFromString("5.00"),
		ListedAt: time.Now().UTC(),
	}
	assert.True(t, asset.IsListed())
}
