package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tpforum/internal/client/models"
	"github.com/dmitrijs2005/tpforum/internal/client/repositories/kv"
	"github.com/dmitrijs2005/tpforum/internal/common"
	"github.com/dmitrijs2005/tpforum/internal/dbx"
)

// SQLiteStore keeps the session under the session_token and user keys of
// the kv table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Save(ctx context.Context, sess models.Session) error {
	raw, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.SessionTokenKey, []byte(sess.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.UserKey, raw)
	})
}

func (s *SQLiteStore) Load(ctx context.Context) (*models.Session, error) {
	repo := kv.NewSQLiteRepository(s.db)

	raw, err := repo.Get(ctx, common.UserKey)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}

	token, err := repo.Get(ctx, common.SessionTokenKey)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	return &models.Session{User: user, Token: string(token)}, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return kv.NewSQLiteRepository(s.db).Delete(ctx, common.SessionTokenKey, common.UserKey)
}
