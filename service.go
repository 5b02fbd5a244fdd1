package signup

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Service interface {
	RegisterAccount(ctx context.Context, req registerAccountRequest) (*RegisteredAccount, error)
}

// Events is notified after an account is committed. Implementations must
// return quickly; registration blocks on the call itself.
type Events interface {
	AccountCreated(id string, name string, email string)
}

// TokenSource issues the signed credential returned to a newly registered
// account. Satisfied by *TokenIssuer.
type TokenSource interface {
	Issue(id ID) (string, error)
}

type registerAccountRequest struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

// RegisteredAccount is the outcome of a successful registration.
type RegisteredAccount struct {
	ID    ID
	Token string
}

type service struct {
	accounts Repository
	hasher   Hasher
	avatars  *AvatarResolver
	tokens   TokenSource
	events   Events
}

func NewService(accounts Repository, hasher Hasher, avatars *AvatarResolver, tokens TokenSource, events Events) Service {
	return &service{accounts: accounts, hasher: hasher, avatars: avatars, tokens: tokens, events: events}
}

// RegisterAccount runs the whole registration: validate, check the email
// is free, hash the password, persist, issue a token.
//
// The FindByEmail probe is only a fast path; the store's Create owns the
// uniqueness race, and a conflict there surfaces as the same ErrEmailTaken
// a probe hit would. If token issuance fails the account stays committed
// and the caller gets a server fault; registration is not rolled back.
func (svc *service) RegisterAccount(ctx context.Context, req registerAccountRequest) (*RegisteredAccount, error) {
	if verr := validateRequest(req); verr != nil {
		return nil, verr
	}

	if _, err := svc.accounts.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	digest, err := svc.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	// the plaintext is dead past this point: it must not end up in the
	// account, a log line, or any error

	acc := &Account{
		Name:           req.Name,
		Email:          req.Email,
		Avatar:         svc.avatars.Resolve(req.Email),
		PasswordDigest: digest,
		CreatedAt:      time.Now().UTC(),
	}
	if err := svc.accounts.Create(ctx, acc); err != nil {
		return nil, err
	}

	if svc.events != nil {
		svc.events.AccountCreated(string(acc.ID), acc.Name, acc.Email)
	}

	token, err := svc.tokens.Issue(acc.ID)
	if err != nil {
		return nil, fmt.Errorf("account %s committed but token issuance failed: %w", acc.ID, err)
	}

	return &RegisteredAccount{ID: acc.ID, Token: token}, nil
}
