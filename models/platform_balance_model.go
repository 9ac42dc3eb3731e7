package models

import "time"

// PlatformBalance caches the admin's withdrawable 30% commission. It is a
// read optimization over the payout/withdrawal ledger, never the source of
// truth: services.ReconcilePlatformBalance can rebuild it at any time.
type PlatformBalance struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Balance   float64 `gorm:"type:numeric(12,2);not null" json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlatformBalanceID pins the singleton row.
const PlatformBalanceID uint = 1
