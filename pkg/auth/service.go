package auth

import (
	"context"
	"fmt"
)

// AccountStore is the account directory consumed by the authentication flow.
// Lookups return (nil, nil) when no account matches; storage enforces username
// uniqueness with a unique index and reports violations as ErrDuplicateUser.
type AccountStore interface {
	// GetAccountByUsername does a case-sensitive exact-match lookup.
	GetAccountByUsername(ctx context.Context, username string) (*Account, error)

	// ListAccounts returns all accounts in a deterministic (id) order.
	ListAccounts(ctx context.Context) ([]Account, error)

	// CreateAccount persists an account whose PasswordHash is already set.
	CreateAccount(ctx context.Context, account *Account) (*Account, error)
}

// Service combines the password hasher, token service and account directory
// into the registration and login flow. It holds no state of its own; all
// methods are safe for concurrent use.
type Service struct {
	accounts AccountStore
	hasher   *PasswordHasher
	tokens   *TokenService
}

// NewService creates the authentication service.
func NewService(accounts AccountStore, hasher *PasswordHasher, tokens *TokenService) *Service {
	return &Service{accounts: accounts, hasher: hasher, tokens: tokens}
}

// Register creates a new account from a signup draft. The username pre-check
// and the insert are two separate storage operations; a concurrent duplicate
// signup slipping between them is caught by the storage unique index, which
// surfaces as the same ErrDuplicateUser.
func (s *Service) Register(ctx context.Context, draft AccountDraft) (*Account, error) {
	existing, err := s.accounts.GetAccountByUsername(ctx, draft.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateUser
	}

	digest, err := s.hasher.Hash(draft.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := s.accounts.CreateAccount(ctx, &Account{
		Username:     draft.Username,
		FirstName:    draft.FirstName,
		LastName:     draft.LastName,
		PasswordHash: digest,
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Login validates credentials and issues a token. An unknown username and a
// wrong password return the identical ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (token string, tokenType string, err error) {
	account, err := s.accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		return "", "", fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil || !s.hasher.Check(password, account.PasswordHash) {
		return "", "", ErrInvalidCredentials
	}

	token, err = s.tokens.Issue(account.Username)
	if err != nil {
		return "", "", err
	}
	return token, TokenTypeBearer, nil
}

// VerifyToken checks a presented token and returns its subject.
func (s *Service) VerifyToken(token string) (string, error) {
	return s.tokens.Verify(token)
}

// ResolveAccount maps a verified token subject back to an account record.
// A subject whose account has disappeared yields ErrUnknownSubject.
func (s *Service) ResolveAccount(ctx context.Context, subject string) (*Account, error) {
	account, err := s.accounts.GetAccountByUsername(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}
	if account == nil {
		return nil, ErrUnknownSubject
	}
	return account, nil
}

// ListAccounts returns every registered account.
func (s *Service) ListAccounts(ctx context.Context) ([]Account, error) {
	return s.accounts.ListAccounts(ctx)
}
