package signup

import (
	"context"
	"sync"
)

type accountRepository struct {
	mu       sync.RWMutex
	accounts map[ID]*Account
}

func NewAccountRepository() Repository {
	return &accountRepository{accounts: map[ID]*Account{}}
}

// Create assigns an id and inserts the account. The email check and the
// insert happen under one lock, so concurrent registrations of the same
// email commit exactly once.
func (repo *accountRepository) Create(ctx context.Context, acc *Account) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, v := range repo.accounts {
		if v.Email == acc.Email {
			return ErrEmailTaken
		}
	}

	acc.ID = NewID()
	stored := *acc
	repo.accounts[acc.ID] = &stored
	return nil
}

func (repo *accountRepository) FindByID(ctx context.Context, id ID) (*Account, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if acc, ok := repo.accounts[id]; ok {
		found := *acc
		return &found, nil
	}
	return nil, ErrNotFound
}

func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, v := range repo.accounts {
		if v.Email == email {
			found := *v
			return &found, nil
		}
	}
	return nil, ErrNotFound
}
