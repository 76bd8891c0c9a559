package dto

import "time"

// BalanceResponse represents a points balance summary.
type BalanceResponse struct {
	Points    int64 `json:"points"`
	Withdrawn int64 `json:"withdrawn"`
}

// PointEventResponse describes one ledger entry.
type PointEventResponse struct {
	Points    int64     `json:"points"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
