package models

import "time"

// BankAccount represents a linked payment card: number, holder, expiry, and
// the id of the investor who owns it. The OTP is a transient verification
// secret, set per attempt and never persisted.
type BankAccount struct {
	Base
	CardNumber string    `gorm:"not null" json:"card_number"`
	HolderName string    `gorm:"not null" json:"holder_name"`
	ExpiryDate time.Time `gorm:"not null" json:"expiry_date"`
	OwnerID    string    `gorm:"type:uuid;index;not null" json:"owner_id"`

	// Position preserves the listing order across snapshot rewrites.
	Position int `gorm:"not null;default:0" json:"-"`

	otp string
}

// IsCardValid reports whether the card expiry is strictly after now.
// The clock is a parameter so the answer is explicit about when it was asked.
func (b *BankAccount) IsCardValid(now time.Time) bool {
	return b.ExpiryDate.After(now)
}

// SetOTP overwrites any previously set OTP.
func (b *BankAccount) SetOTP(code string) {
	b.otp = code
}

// VerifyOTP reports whether an OTP was set and exactly equals candidate.
func (b *BankAccount) VerifyOTP(candidate string) bool {
	return b.otp != "" && b.otp == candidate
}

// ExtendExpiry overwrites the expiry date. It does not check that the new
// date is later than the current one.
func (b *BankAccount) ExtendExpiry(newDate time.Time) {
	b.ExpiryDate = newDate
}
