package signup

import (
	"context"
	"time"

	"github.com/rs/xid"
)

// Repository provides durable account persistence. Create assigns the
// account's ID and is the single authority for email uniqueness: two
// concurrent creations with the same email must not both succeed.
type Repository interface {
	FindByID(ctx context.Context, id ID) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	Create(ctx context.Context, acc *Account) error
}

type ID string

type Account struct {
	ID             ID
	Name           string
	Email          string
	Avatar         string
	PasswordDigest string
	CreatedAt      time.Time
}

func NewID() ID {
	return ID(xid.New().String())
}

// IsValidID reports whether id parses as an xid. This must change if we
// ever change our id generation library.
func IsValidID(id string) bool {
	_, err := xid.FromString(id)
	return err == nil
}
