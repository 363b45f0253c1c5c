package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenSessionRequest struct {
	OpeningBalance decimal.Decimal `json:"opening_balance" validate:"min=0"`
	Notes          *string         `json:"notes"`
}

type CloseSessionRequest struct {
	ClosingBalance decimal.Decimal `json:"closing_balance" validate:"min=0"`
	Notes          *string         `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SessionResponse struct {
	ID             string          `json:"id"`
	Status         string          `json:"status"`
	OpenedBy       string          `json:"opened_by"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	// ClosingBalance / ExpectedClosingBalance are only present after close.
	ClosingBalance         *decimal.Decimal `json:"closing_balance,omitempty"`
	ExpectedClosingBalance *decimal.Decimal `json:"expected_closing_balance,omitempty"`
	Difference             *decimal.Decimal `json:"difference,omitempty"`
	Notes                  *string          `json:"notes,omitempty"`
	OpenedAt               string           `json:"opened_at"`
	ClosedAt               *string          `json:"closed_at,omitempty"`
}
