package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wordwell/wordwell-api/internal/domain"
	"github.com/wordwell/wordwell-api/internal/store"
)

// cardColumns is the select list shared by every card query.
const cardColumns = `id, user_id, deck_id, front, back, kind, tags,
	ease_factor, interval_days, repetitions, next_review_at, created_at, updated_at`

// PostgresCardStore implements the store.CardStore interface using a
// PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. It accepts a database connection or transaction that
// is initialized and managed by the caller.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore
var _ store.CardStore = (*PostgresCardStore)(nil)

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{db: tx, logger: s.logger}
}

// Create implements store.CardStore.Create
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	tags, err := json.Marshal(card.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	query := `
		INSERT INTO cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = s.db.ExecContext(ctx, query,
		card.ID, card.UserID, card.DeckID, card.Front, card.Back, card.Kind, tags,
		card.EaseFactor, card.Interval, card.Repetitions, card.NextReviewAt,
		card.CreatedAt, card.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrDeckNotFound
		}
		return fmt.Errorf("failed to insert card: %w", err)
	}

	return nil
}

// CreateMultiple implements store.CardStore.CreateMultiple
func (s *PostgresCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	for _, card := range cards {
		if err := s.Create(ctx, card); err != nil {
			return err
		}
	}
	return nil
}

// GetForUser implements store.CardStore.GetForUser
func (s *PostgresCardStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1 AND user_id = $2`
	return s.scanCard(s.db.QueryRowContext(ctx, query, id, userID))
}

// ListForUser implements store.CardStore.ListForUser
func (s *PostgresCardStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE user_id = $1 ORDER BY created_at DESC`
	return s.queryCards(ctx, query, userID)
}

// ListForDeck implements store.CardStore.ListForDeck
func (s *PostgresCardStore) ListForDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE deck_id = $1 ORDER BY created_at DESC`
	return s.queryCards(ctx, query, deckID)
}

// NextDue implements store.CardStore.NextDue
//
// Due-ness is a plain timestamp comparison; ordering is next_review_at
// ascending with creation order as the stable tiebreak.
func (s *PostgresCardStore) NextDue(ctx context.Context, scope store.ReviewScope, now time.Time) (*domain.Card, error) {
	query, args := dueQuery(`SELECT `+cardColumns+` FROM cards`, scope, now)
	query += ` ORDER BY next_review_at ASC, created_at ASC LIMIT 1`

	return s.scanCard(s.db.QueryRowContext(ctx, query, args...))
}

// CountDue implements store.CardStore.CountDue
func (s *PostgresCardStore) CountDue(ctx context.Context, scope store.ReviewScope, now time.Time) (int, error) {
	query, args := dueQuery(`SELECT COUNT(*) FROM cards`, scope, now)

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count due cards: %w", err)
	}
	return count, nil
}

// CountForDeck implements store.CardStore.CountForDeck
func (s *PostgresCardStore) CountForDeck(ctx context.Context, deckID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cards WHERE deck_id = $1`, deckID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count deck cards: %w", err)
	}
	return count, nil
}

// UpdateContent implements store.CardStore.UpdateContent
func (s *PostgresCardStore) UpdateContent(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	tags, err := json.Marshal(card.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	query := `
		UPDATE cards
		SET front = $1, back = $2, deck_id = $3, tags = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7`

	result, err := s.db.ExecContext(ctx, query,
		card.Front, card.Back, card.DeckID, tags, card.UpdatedAt, card.ID, card.UserID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrDeckNotFound
		}
		return fmt.Errorf("failed to update card: %w", err)
	}

	return requireRowAffected(result, store.ErrCardNotFound)
}

// UpdateSchedule implements store.CardStore.UpdateSchedule
//
// The four scheduling fields are written in a single statement so they are
// never observable in a partially updated state.
func (s *PostgresCardStore) UpdateSchedule(
	ctx context.Context,
	id uuid.UUID,
	schedule domain.CardSchedule,
	updatedAt time.Time,
) error {
	if err := schedule.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE cards
		SET ease_factor = $1, interval_days = $2, repetitions = $3, next_review_at = $4, updated_at = $5
		WHERE id = $6`

	result, err := s.db.ExecContext(ctx, query,
		schedule.EaseFactor, schedule.Interval, schedule.Repetitions,
		schedule.NextReviewAt, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update card schedule: %w", err)
	}

	return requireRowAffected(result, store.ErrCardNotFound)
}

// Delete implements store.CardStore.Delete
func (s *PostgresCardStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM cards WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	return requireRowAffected(result, store.ErrCardNotFound)
}

// dueQuery builds the WHERE clause shared by NextDue and CountDue.
func dueQuery(prefix string, scope store.ReviewScope, now time.Time) (string, []any) {
	clauses := []string{"user_id = $1", "next_review_at <= $2"}
	args := []any{scope.UserID, now}

	if scope.DeckID != nil {
		clauses = append(clauses, "deck_id = $3")
		args = append(args, *scope.DeckID)
	}

	return prefix + " WHERE " + strings.Join(clauses, " AND "), args
}

func (s *PostgresCardStore) queryCards(ctx context.Context, query string, args ...any) ([]*domain.Card, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	var cards []*domain.Card
	for rows.Next() {
		card, err := s.scanCardRow(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}

	return cards, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresCardStore) scanCard(row *sql.Row) (*domain.Card, error) {
	card, err := scanCardFrom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrCardNotFound
	}
	return card, err
}

func (s *PostgresCardStore) scanCardRow(rows *sql.Rows) (*domain.Card, error) {
	return scanCardFrom(rows)
}

func scanCardFrom(row rowScanner) (*domain.Card, error) {
	var (
		card    domain.Card
		rawTags []byte
	)

	err := row.Scan(
		&card.ID, &card.UserID, &card.DeckID, &card.Front, &card.Back, &card.Kind, &rawTags,
		&card.EaseFactor, &card.Interval, &card.Repetitions, &card.NextReviewAt,
		&card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan card: %w", err)
	}

	if len(rawTags) > 0 {
		if err := json.Unmarshal(rawTags, &card.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags: %w", err)
		}
	}

	return &card, nil
}

// requireRowAffected maps a zero-row update or delete to the given error.
func requireRowAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
