package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hansolyoo/cardtalk/internal/cardtalk"
)

// SQLiteStore implements Store on a single sqlite database. The quota
// record is stored as a JSON document column so its shape stays identical
// to the value the web client kept under its "dailyQuestions" key.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) CreateUser(ctx context.Context, name, provider string) (cardtalk.User, string, error) {
	var user cardtalk.User
	user.Name = name
	user.Provider = provider

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, name, provider)
		VALUES (lower(hex(randomblob(16))), ?, ?)
		RETURNING id
	`, name, provider).Scan(&user.ID)
	if err != nil {
		return cardtalk.User{}, "", fmt.Errorf("creating user: %w", err)
	}

	var token string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO sessions (id, user_id)
		VALUES (lower(hex(randomblob(16))), ?)
		RETURNING id
	`, user.ID).Scan(&token)
	if err != nil {
		return cardtalk.User{}, "", fmt.Errorf("creating session: %w", err)
	}

	return user, token, nil
}

func (s *SQLiteStore) UserFromToken(ctx context.Context, token string) (cardtalk.User, error) {
	var u cardtalk.User
	var premium int
	err := s.db.QueryRowContext(ctx, `
		SELECT u.id, u.name, u.provider, u.is_premium
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = ?
	`, token).Scan(&u.ID, &u.Name, &u.Provider, &premium)
	if errors.Is(err, sql.ErrNoRows) {
		return cardtalk.User{}, ErrNotFound
	}
	if err != nil {
		return cardtalk.User{}, err
	}
	u.IsPremium = premium != 0
	return u, nil
}

// LoadQuota returns the stored record for the user. A missing row or a
// malformed document reads as a zero record: quota consumers must never
// see a persistence problem.
func (s *SQLiteStore) LoadQuota(ctx context.Context, userID string) (cardtalk.QuotaRecord, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM quotas WHERE user_id = ?
	`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return cardtalk.QuotaRecord{}, nil
	}
	if err != nil {
		return cardtalk.QuotaRecord{}, err
	}

	var rec cardtalk.QuotaRecord
	if err := json.Unmarshal(raw, &rec); err != nil || rec.Count < 0 {
		return cardtalk.QuotaRecord{}, nil
	}
	return rec, nil
}

func (s *SQLiteStore) SaveQuota(ctx context.Context, userID string, rec cardtalk.QuotaRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quotas (user_id, data) VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET data = excluded.data
	`, userID, data)
	return err
}

func (s *SQLiteStore) IsPremium(ctx context.Context, userID string) (bool, error) {
	var premium int
	err := s.db.QueryRowContext(ctx, `
		SELECT is_premium FROM users WHERE id = ?
	`, userID).Scan(&premium)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return premium != 0, err
}

func (s *SQLiteStore) SetPremium(ctx context.Context, userID string, premium bool) error {
	premiumInt := 0
	if premium {
		premiumInt = 1
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET is_premium = ? WHERE id = ?
	`, premiumInt, userID)
	return err
}

func (s *SQLiteStore) ListCategories(ctx context.Context) ([]cardtalk.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, icon, color
		FROM categories ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []cardtalk.Category
	for rows.Next() {
		var c cardtalk.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.Color); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (s *SQLiteStore) CategoryExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM categories WHERE id = ?
	`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *SQLiteStore) ListQuestions(ctx context.Context, categoryID string) ([]cardtalk.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category_id, text
		FROM questions WHERE category_id = ? ORDER BY position
	`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []cardtalk.Question
	for rows.Next() {
		var q cardtalk.Question
		if err := rows.Scan(&q.ID, &q.CategoryID, &q.Text); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *SQLiteStore) countCategories(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) insertCategory(ctx context.Context, c cardtalk.Category, position int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, description, icon, color, position)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Description, c.Icon, c.Color, position)
	return err
}

func (s *SQLiteStore) insertQuestion(ctx context.Context, q cardtalk.Question, position int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO questions (id, category_id, text, position)
		VALUES (?, ?, ?, ?)
	`, q.ID, q.CategoryID, q.Text, position)
	return err
}
