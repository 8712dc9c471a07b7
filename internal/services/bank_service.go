package services

import (
	"sync"
	"time"

	"tharwa/internal/bank"
	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
	"tharwa/internal/store"
	"tharwa/internal/uuid"
	"tharwa/internal/validator"
)

// bankService links bank accounts to portfolios behind an OTP challenge and
// fronts the cross-investor registry. Pending challenges live in memory only;
// an account is persisted solely after its OTP is confirmed.
type bankService struct {
	store    *store.InvestorStore
	registry *bank.Registry
	audit    AuditServicer

	mu      sync.Mutex
	pending map[string]*LinkChallenge
}

// NewBankService creates a new BankServicer.
func NewBankService(st *store.InvestorStore, registry *bank.Registry, audit AuditServicer) BankServicer {
	return &bankService{
		store:    st,
		registry: registry,
		audit:    audit,
		pending:  make(map[string]*LinkChallenge),
	}
}

// InitiateLink validates the card details and opens an OTP challenge.
// Nothing is persisted yet.
func (s *bankService) InitiateLink(investorID, cardNumber, holderName, expiryDate string) (*LinkChallenge, error) {
	if !validator.IsValidCardNumber(cardNumber) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Card number must be exactly 16 digits")
	}
	if !validator.IsValidName(holderName) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Holder name may only contain letters and spaces")
	}
	expiry, err := parseDate(expiryDate)
	if err != nil {
		return nil, err
	}

	account := models.BankAccount{
		CardNumber: cardNumber,
		HolderName: holderName,
		ExpiryDate: expiry,
		OwnerID:    investorID,
	}
	if !account.IsCardValid(time.Now()) {
		return nil, apperrors.ErrCardExpired
	}

	otp, err := bank.GenerateOTP()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	account.SetOTP(otp)

	challenge := &LinkChallenge{
		ID:         uuid.New(),
		OTP:        otp,
		investorID: investorID,
		account:    account,
	}

	s.mu.Lock()
	s.pending[challenge.ID] = challenge
	s.mu.Unlock()

	return challenge, nil
}

// ConfirmLink checks the OTP for a pending challenge. On a match the account
// is persisted into the investor's portfolio and registered with the bank;
// on a mismatch the challenge stays open and nothing changes.
func (s *bankService) ConfirmLink(investorID, challengeID, otp string) (*models.BankAccount, error) {
	s.mu.Lock()
	challenge, ok := s.pending[challengeID]
	s.mu.Unlock()
	if !ok || challenge.investorID != investorID {
		return nil, apperrors.ErrChallengeNotFound
	}

	if !challenge.account.VerifyOTP(otp) {
		return nil, apperrors.ErrOTPMismatch
	}

	var linked *models.BankAccount
	_, err := s.store.Mutate(investorID, func(inv *models.Investor) error {
		inv.Portfolio.AddBankAccount(&challenge.account)
		linked = &inv.Portfolio.BankAccounts[len(inv.Portfolio.BankAccounts)-1]
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.registry.Add(*linked)

	s.mu.Lock()
	delete(s.pending, challengeID)
	s.mu.Unlock()

	s.audit.Log(investorID, "bank_account.link", "bank_account", linked.ID, map[string]interface{}{
		"holder_name": linked.HolderName,
	})
	return linked, nil
}

// FindByOwnerID looks up the first registered account for the given owner.
func (s *bankService) FindByOwnerID(ownerID string) (*models.BankAccount, error) {
	acct, ok := s.registry.FindByOwnerID(ownerID)
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return acct, nil
}

// ExtendExpiry overwrites the expiry date on the owner's account, both in the
// saved portfolio and in the registry's copy.
func (s *bankService) ExtendExpiry(ownerID, newExpiryDate string) (*models.BankAccount, error) {
	newExpiry, err := parseDate(newExpiryDate)
	if err != nil {
		return nil, err
	}

	var extended *models.BankAccount
	_, err = s.store.Mutate(ownerID, func(inv *models.Investor) error {
		if len(inv.Portfolio.BankAccounts) == 0 {
			return apperrors.ErrAccountNotFound
		}
		acct := &inv.Portfolio.BankAccounts[0]
		acct.ExtendExpiry(newExpiry)
		extended = acct
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.registry.ExtendExpiry(ownerID, newExpiry)

	s.audit.Log(ownerID, "bank_account.extend", "bank_account", extended.ID, map[string]interface{}{
		"expiry_date": newExpiry.Format(dateLayout),
	})
	return extended, nil
}
