package services

import (
	"golang.org/x/crypto/bcrypt"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
	"tharwa/internal/store"
	"tharwa/internal/validator"
)

// investorService handles investor registration, login, and profile logic.
type investorService struct {
	store *store.InvestorStore
	audit AuditServicer
}

// NewInvestorService creates a new InvestorServicer.
func NewInvestorService(st *store.InvestorStore, audit AuditServicer) InvestorServicer {
	return &investorService{store: st, audit: audit}
}

// Register validates the signup fields, hashes the credential, and appends
// the new investor to the store.
func (s *investorService) Register(fullName, username, email, password string) (*models.Investor, error) {
	if !validator.IsValidName(fullName) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Full name may only contain letters and spaces")
	}
	if username == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Username is required")
	}
	if !validator.IsValidEmail(email) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid email address")
	}
	if !validator.IsValidPassword(password) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"Password needs at least 8 characters with an uppercase letter, a lowercase letter, and a digit")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	investor, err := models.NewInvestorBuilder().
		FullName(fullName).
		Username(username).
		Email(email).
		PasswordHash(string(hash)).
		Build()
	if err != nil {
		return nil, err
	}

	if err := s.store.Add(investor); err != nil {
		return nil, err
	}

	s.audit.Log(investor.ID, "investor.register", "investor", investor.ID, map[string]interface{}{
		"username": investor.Username,
	})
	return investor, nil
}

// Authenticate matches identifier against stored usernames and emails
// case-insensitively and checks the credential. An empty store surfaces as
// the distinct no-data condition rather than a generic refusal.
func (s *investorService) Authenticate(identifier, password string) (*models.Investor, error) {
	investors, err := s.store.LoadAll()
	if err != nil {
		return nil, err
	}

	for _, inv := range investors {
		if inv.Authenticate(identifier, password) {
			s.audit.Log(inv.ID, "investor.login", "investor", inv.ID, nil)
			return inv, nil
		}
	}
	return nil, apperrors.ErrInvalidCredentials
}

// GetByID retrieves an investor by id.
func (s *investorService) GetByID(id string) (*models.Investor, error) {
	return s.store.Get(id)
}

// UpdateProfile validates every field before applying any of them, then
// overwrites username, email, and credential together.
func (s *investorService) UpdateProfile(id, username, email, password string) (*models.Investor, error) {
	if username == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Username is required")
	}
	if !validator.IsValidEmail(email) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid email address")
	}
	if !validator.IsValidPassword(password) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"Password needs at least 8 characters with an uppercase letter, a lowercase letter, and a digit")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	investor, err := s.store.Mutate(id, func(inv *models.Investor) error {
		inv.UpdateProfile(username, email, string(hash))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(id, "investor.update_profile", "investor", id, map[string]interface{}{
		"username": username,
	})
	return investor, nil
}
