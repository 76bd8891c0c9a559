package model

import "time"

// Standing describes a user's redemption eligibility state.
type Standing string

const (
	StandingNormal      Standing = "normal"
	StandingUnderReview Standing = "under_review"
	StandingBanned      Standing = "banned"
)

// ValidStanding reports whether s is a recognized standing value.
func ValidStanding(s Standing) bool {
	switch s {
	case StandingNormal, StandingUnderReview, StandingBanned:
		return true
	}
	return false
}

// User represents a registered member of the rewards program.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Verified     bool
	Standing     Standing
	Country      string
	Points       int64
	ReferrerID   *int64
	CreatedAt    time.Time
}
