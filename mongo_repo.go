package signup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoAccountRepository struct {
	collection *mongo.Collection
}

type dbAccount struct {
	ID             ID        `bson:"_id"`
	Name           string    `bson:"name"`
	Email          string    `bson:"email"`
	Avatar         string    `bson:"avatar"`
	PasswordDigest string    `bson:"password"`
	CreatedAt      time.Time `bson:"created_at"`
}

// NewMongoAccountRepository ensures the unique index on email before
// returning the repository. The index, not the service's probe, is what
// decides concurrent registrations of one email.
func NewMongoAccountRepository(ctx context.Context, c *mongo.Collection) (Repository, error) {
	_, err := c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("creating email index: %w", err)
	}
	return &mongoAccountRepository{collection: c}, nil
}

func (m *mongoAccountRepository) Create(ctx context.Context, acc *Account) error {
	acc.ID = NewID()
	dba := dbAccountFromAccount(acc)
	if _, err := m.collection.InsertOne(ctx, &dba); err != nil {
		return wrapMongoErr(err)
	}
	return nil
}

func (m *mongoAccountRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return m.findAccountBy(ctx, "email", email)
}

func (m *mongoAccountRepository) FindByID(ctx context.Context, id ID) (*Account, error) {
	return m.findAccountBy(ctx, "_id", string(id))
}

func (m *mongoAccountRepository) findAccountBy(ctx context.Context, key string, val string) (*Account, error) {
	return decodeAccount(m.collection.FindOne(ctx, bson.M{key: val}))
}

func decodeAccount(sr *mongo.SingleResult) (*Account, error) {
	if err := sr.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, wrapMongoErr(err)
	}

	var dba dbAccount
	if err := sr.Decode(&dba); err != nil {
		return nil, wrapMongoErr(err)
	}

	acc := accountFromDBAccount(dba)
	return &acc, nil
}

// wrapMongoErr translates driver errors into the repository's vocabulary:
// a duplicate key on the email index is a conflict, network trouble and
// timeouts are store unavailability, everything else passes through for
// the caller to treat as a fault.
func wrapMongoErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}

func dbAccountFromAccount(acc *Account) dbAccount {
	return dbAccount{acc.ID, acc.Name, acc.Email, acc.Avatar, acc.PasswordDigest, acc.CreatedAt}
}

func accountFromDBAccount(dba dbAccount) Account {
	return Account{dba.ID, dba.Name, dba.Email, dba.Avatar, dba.PasswordDigest, dba.CreatedAt}
}
