package server

import (
	"context"
	"errors"

	"github.com/hansolyoo/cardtalk/internal/cardtalk"
)

var ErrNotFound = errors.New("not found")

// Store is the persistence surface of the API. Its quota methods are the
// narrow port consumed by quota.Tracker; no other component reads or
// writes quota state.
type Store interface {
	CreateUser(ctx context.Context, name, provider string) (user cardtalk.User, token string, err error)
	UserFromToken(ctx context.Context, token string) (cardtalk.User, error)

	LoadQuota(ctx context.Context, userID string) (cardtalk.QuotaRecord, error)
	SaveQuota(ctx context.Context, userID string, rec cardtalk.QuotaRecord) error
	IsPremium(ctx context.Context, userID string) (bool, error)
	SetPremium(ctx context.Context, userID string, premium bool) error

	ListCategories(ctx context.Context) ([]cardtalk.Category, error)
	CategoryExists(ctx context.Context, id string) (bool, error)
	ListQuestions(ctx context.Context, categoryID string) ([]cardtalk.Question, error)
}
