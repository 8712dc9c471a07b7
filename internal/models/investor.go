package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/uuid"
)

// Investor is the account holder: identity, credentials, and exactly one
// portfolio with the same lifetime. The id is generated at build time and
// never changes.
type Investor struct {
	Base
	FullName     string     `gorm:"not null" json:"full_name"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Portfolio    *Portfolio `gorm:"-" json:"portfolio"`
}

// Authenticate reports whether identifier matches the stored username or
// email case-insensitively and password matches the stored credential.
func (i *Investor) Authenticate(identifier, password string) bool {
	if !strings.EqualFold(i.Username, identifier) && !strings.EqualFold(i.Email, identifier) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(i.PasswordHash), []byte(password)) == nil
}

// UpdateProfile overwrites the mutable profile fields. Validation is the
// caller's responsibility; all three fields are applied together.
func (i *Investor) UpdateProfile(username, email, passwordHash string) {
	i.Username = username
	i.Email = email
	i.PasswordHash = passwordHash
}

// InvestorBuilder accumulates investor fields and constructs an Investor
// with a fresh id and an empty portfolio.
type InvestorBuilder struct {
	fullName     string
	username     string
	email        string
	passwordHash string
}

// NewInvestorBuilder returns an empty builder.
func NewInvestorBuilder() *InvestorBuilder {
	return &InvestorBuilder{}
}

// FullName sets the investor's full name.
func (b *InvestorBuilder) FullName(name string) *InvestorBuilder {
	b.fullName = name
	return b
}

// Username sets the investor's username.
func (b *InvestorBuilder) Username(username string) *InvestorBuilder {
	b.username = username
	return b
}

// Email sets the investor's email.
func (b *InvestorBuilder) Email(email string) *InvestorBuilder {
	b.email = email
	return b
}

// PasswordHash sets the investor's hashed credential. Builders never see
// plaintext passwords.
func (b *InvestorBuilder) PasswordHash(hash string) *InvestorBuilder {
	b.passwordHash = hash
	return b
}

// Build constructs the Investor, generating its id. Every field is required.
func (b *InvestorBuilder) Build() (*Investor, error) {
	switch {
	case b.fullName == "":
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Full name is required")
	case b.username == "":
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Username is required")
	case b.email == "":
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Email is required")
	case b.passwordHash == "":
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Password is required")
	}

	return &Investor{
		Base:         Base{ID: uuid.New()},
		FullName:     b.fullName,
		Username:     b.username,
		Email:        b.email,
		PasswordHash: b.passwordHash,
		Portfolio:    NewPortfolio(),
	}, nil
}
