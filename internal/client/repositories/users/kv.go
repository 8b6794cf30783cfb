package users

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/client/repositories/kvstore"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

// KVRepository keeps the whole directory as one JSON array under key.
type KVRepository struct {
	store kvstore.Store
	key   string
}

func NewKVRepository(store kvstore.Store, key string) *KVRepository {
	return &KVRepository{store: store, key: key}
}

func (r *KVRepository) List(ctx context.Context) ([]models.UserWithSecret, error) {
	b, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, err
	}
	return r.decode(b)
}

func (r *KVRepository) Get(ctx context.Context, email string) (*models.UserWithSecret, error) {
	recs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(recs, email); i >= 0 {
		rec := recs[i]
		return &rec, nil
	}
	return nil, common.ErrorNotFound
}

// Insert appends rec. When the store implements kvstore.Updater the
// duplicate check and the write happen atomically; otherwise a concurrent
// writer may slip in between the read and the write.
func (r *KVRepository) Insert(ctx context.Context, rec models.UserWithSecret) error {
	apply := func(cur []byte) ([]byte, error) {
		recs, err := r.decode(cur)
		if err != nil {
			return nil, err
		}
		if indexOf(recs, rec.Email) >= 0 {
			return nil, common.ErrorAlreadyExists
		}
		b, err := json.Marshal(append(recs, rec))
		if err != nil {
			return nil, fmt.Errorf("failed to encode directory: %w", err)
		}
		return b, nil
	}

	if u, ok := r.store.(kvstore.Updater); ok {
		return u.Update(ctx, r.key, apply)
	}

	cur, err := r.store.Get(ctx, r.key)
	if err != nil {
		return err
	}
	next, err := apply(cur)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, r.key, next)
}

func (r *KVRepository) decode(b []byte) ([]models.UserWithSecret, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	var recs []models.UserWithSecret
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode directory[%s]: %w", r.key, err)
	}
	return recs, nil
}

func indexOf(recs []models.UserWithSecret, email string) int {
	want := models.NormalizeEmail(email)
	for i := range recs {
		if models.NormalizeEmail(recs[i].Email) == want {
			return i
		}
	}
	return -1
}
