package signup

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemCreate_AssignsID(t *testing.T) {
	repo := NewAccountRepository()

	acc := &Account{Name: "Ann", Email: "ann@example.com"}
	err := repo.Create(context.Background(), acc)

	assert.NoError(t, err)
	assert.True(t, IsValidID(string(acc.ID)))
}

func TestInMemCreate_RejectsDuplicateEmail(t *testing.T) {
	repo := NewAccountRepository()
	assert.NoError(t, repo.Create(context.Background(), &Account{Name: "Ann", Email: "ann@example.com"}))

	err := repo.Create(context.Background(), &Account{Name: "Ben", Email: "ann@example.com"})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestInMemFind(t *testing.T) {
	repo := NewAccountRepository()
	acc := &Account{Name: "Ann", Email: "ann@example.com"}
	assert.NoError(t, repo.Create(context.Background(), acc))

	byEmail, err := repo.FindByEmail(context.Background(), "ann@example.com")
	assert.NoError(t, err)
	assert.Equal(t, acc.ID, byEmail.ID)

	byID, err := repo.FindByID(context.Background(), acc.ID)
	assert.NoError(t, err)
	assert.Equal(t, "ann@example.com", byID.Email)

	_, err = repo.FindByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByID(context.Background(), NewID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemCreate_AtomicUnderConcurrency(t *testing.T) {
	repo := NewAccountRepository()

	const n = 32
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(context.Background(), &Account{Name: "Ann", Email: "ann@example.com"})
		}()
	}
	wg.Wait()
	close(errs)

	var created, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrEmailTaken):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, conflicts)
}
