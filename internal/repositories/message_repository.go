package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/BramFam96/messagely-v1/internal/apperrors"
	"github.com/BramFam96/messagely-v1/internal/models"
)

// MessageRepository abstracts message persistence.
type MessageRepository interface {
	Create(ctx context.Context, fromUser, toUser, body string) (models.Message, error)
	Get(ctx context.Context, id int) (models.MessageDetail, error)
	ListSentBy(ctx context.Context, username string) ([]models.SentMessage, error)
	ListReceivedBy(ctx context.Context, username string) ([]models.ReceivedMessage, error)
	MarkRead(ctx context.Context, id int) (models.Message, error)
}

// MessageRepo is a sqlx implementation of MessageRepository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs a MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Create stores a new message. The recipient foreign key is checked by the
// insert itself, so a missing recipient cannot race past a pre-check.
func (r *MessageRepo) Create(ctx context.Context, fromUser, toUser, body string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx, `INSERT INTO messages (from_user, to_user, body) VALUES ($1, $2, $3)
        RETURNING id, from_user, to_user, body, sent_at, read_at`,
		fromUser, toUser, body).
		StructScan(&msg)
	if isPQError(err, pqForeignKeyViolation) {
		return models.Message{}, &apperrors.NotFoundError{Kind: "user", Key: toUser}
	}
	return msg, err
}

type messageDetailRow struct {
	ID            int          `db:"id"`
	Body          string       `db:"body"`
	SentAt        time.Time    `db:"sent_at"`
	ReadAt        sql.NullTime `db:"read_at"`
	FromUsername  string       `db:"from_username"`
	FromFirstName string       `db:"from_first_name"`
	FromLastName  string       `db:"from_last_name"`
	FromPhone     string       `db:"from_phone"`
	ToUsername    string       `db:"to_username"`
	ToFirstName   string       `db:"to_first_name"`
	ToLastName    string       `db:"to_last_name"`
	ToPhone       string       `db:"to_phone"`
}

// Get retrieves a message with both participant profiles joined in.
func (r *MessageRepo) Get(ctx context.Context, id int) (models.MessageDetail, error) {
	query := `SELECT m.id, m.body, m.sent_at, m.read_at,
            f.username AS from_username, f.first_name AS from_first_name, f.last_name AS from_last_name, f.phone AS from_phone,
            t.username AS to_username, t.first_name AS to_first_name, t.last_name AS to_last_name, t.phone AS to_phone
        FROM messages m
        JOIN users f ON m.from_user = f.username
        JOIN users t ON m.to_user = t.username
        WHERE m.id=$1`
	var row messageDetailRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MessageDetail{}, &apperrors.NotFoundError{Kind: "message", Key: strconv.Itoa(id)}
	}
	if err != nil {
		return models.MessageDetail{}, err
	}

	detail := models.MessageDetail{
		ID:     row.ID,
		Body:   row.Body,
		SentAt: row.SentAt,
		FromUser: models.Profile{
			Username:  row.FromUsername,
			FirstName: row.FromFirstName,
			LastName:  row.FromLastName,
			Phone:     row.FromPhone,
		},
		ToUser: models.Profile{
			Username:  row.ToUsername,
			FirstName: row.ToFirstName,
			LastName:  row.ToLastName,
			Phone:     row.ToPhone,
		},
	}
	if row.ReadAt.Valid {
		readAt := row.ReadAt.Time
		detail.ReadAt = &readAt
	}
	return detail, nil
}

// ListSentBy returns messages sent by the user, recipient profile
// expanded, oldest first. No messages is a valid empty result.
func (r *MessageRepo) ListSentBy(ctx context.Context, username string) ([]models.SentMessage, error) {
	query := `SELECT m.id, m.body, m.sent_at, m.read_at,
            t.username AS to_username, t.first_name AS to_first_name, t.last_name AS to_last_name, t.phone AS to_phone
        FROM messages m
        JOIN users t ON m.to_user = t.username
        WHERE m.from_user=$1
        ORDER BY m.sent_at ASC`
	rows, err := r.db.QueryxContext(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.SentMessage{}
	for rows.Next() {
		var row messageDetailRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		msg := models.SentMessage{
			ID:     row.ID,
			Body:   row.Body,
			SentAt: row.SentAt,
			ToUser: models.Profile{
				Username:  row.ToUsername,
				FirstName: row.ToFirstName,
				LastName:  row.ToLastName,
				Phone:     row.ToPhone,
			},
		}
		if row.ReadAt.Valid {
			readAt := row.ReadAt.Time
			msg.ReadAt = &readAt
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

// ListReceivedBy returns messages received by the user, sender profile
// expanded, oldest first. No messages is a valid empty result.
func (r *MessageRepo) ListReceivedBy(ctx context.Context, username string) ([]models.ReceivedMessage, error) {
	query := `SELECT m.id, m.body, m.sent_at, m.read_at,
            f.username AS from_username, f.first_name AS from_first_name, f.last_name AS from_last_name, f.phone AS from_phone
        FROM messages m
        JOIN users f ON m.from_user = f.username
        WHERE m.to_user=$1
        ORDER BY m.sent_at ASC`
	rows, err := r.db.QueryxContext(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.ReceivedMessage{}
	for rows.Next() {
		var row messageDetailRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		msg := models.ReceivedMessage{
			ID:     row.ID,
			Body:   row.Body,
			SentAt: row.SentAt,
			FromUser: models.Profile{
				Username:  row.FromUsername,
				FirstName: row.FromFirstName,
				LastName:  row.FromLastName,
				Phone:     row.FromPhone,
			},
		}
		if row.ReadAt.Valid {
			readAt := row.ReadAt.Time
			msg.ReadAt = &readAt
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

// MarkRead sets read_at exactly once. The conditional update is the atomic
// null-to-timestamp transition; a racing or repeated call falls through to
// the re-read and observes the already-set value unchanged.
func (r *MessageRepo) MarkRead(ctx context.Context, id int) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx, `UPDATE messages SET read_at = NOW() WHERE id=$1 AND read_at IS NULL
        RETURNING id, from_user, to_user, body, sent_at, read_at`, id).
		StructScan(&msg)
	if err == nil {
		return msg, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, err
	}

	// Either the message does not exist or it is already read.
	err = r.db.GetContext(ctx, &msg, `SELECT id, from_user, to_user, body, sent_at, read_at FROM messages WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, &apperrors.NotFoundError{Kind: "message", Key: strconv.Itoa(id)}
	}
	return msg, err
}
