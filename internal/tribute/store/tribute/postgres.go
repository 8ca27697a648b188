package tribute

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"pomen/internal/tribute/models"
	id "pomen/pkg/domain"
	"pomen/pkg/platform/sentinel"
)

// PostgresStore persists tributes in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed tribute store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts the tribute.
func (s *PostgresStore) Create(ctx context.Context, t *models.Tribute) error {
	query := `
		INSERT INTO tributes (
			id, deceased_person_id, first_name, last_name, date_of_death,
			content, moderation_status, payment_status,
			submitter_ip, submitter_user_agent, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(t.ID),
		uuid.UUID(t.PersonID),
		t.FirstName,
		t.LastName,
		t.DateOfDeath,
		t.Content,
		string(t.Moderation),
		string(t.Payment),
		nullString(t.SubmitterIP),
		nullString(t.SubmitterUserAgent),
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tribute: %w", err)
	}
	return nil
}

// FindByID returns the tribute or sentinel.ErrNotFound.
func (s *PostgresStore) FindByID(ctx context.Context, tributeID id.TributeID) (*models.Tribute, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM tributes WHERE id = $1`, uuid.UUID(tributeID))
	return scanTribute(row)
}

// Update persists moderation and payment status changes.
func (s *PostgresStore) Update(ctx context.Context, t *models.Tribute) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tributes
		 SET moderation_status = $2, payment_status = $3, updated_at = $4
		 WHERE id = $1`,
		uuid.UUID(t.ID), string(t.Moderation), string(t.Payment), t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tribute: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tribute rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// ListForPerson returns the person's tributes in submission order,
// optionally restricted to publicly visible ones.
func (s *PostgresStore) ListForPerson(ctx context.Context, personID id.PersonID, visibleOnly bool) ([]*models.Tribute, error) {
	query := selectColumns + ` FROM tributes WHERE deceased_person_id = $1`
	if visibleOnly {
		query += ` AND moderation_status = 'approved' AND payment_status = 'paid'`
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(personID))
	if err != nil {
		return nil, fmt.Errorf("list tributes: %w", err)
	}
	defer rows.Close()

	var out []*models.Tribute
	for rows.Next() {
		t, err := scanTribute(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tributes: %w", err)
	}
	return out, nil
}

// CountForPerson returns the true tribute row count for a person. Drift
// inspection only; never fed back into the registry counter.
func (s *PostgresStore) CountForPerson(ctx context.Context, personID id.PersonID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tributes WHERE deceased_person_id = $1`,
		uuid.UUID(personID),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count tributes: %w", err)
	}
	return count, nil
}

const selectColumns = `
	SELECT id, deceased_person_id, first_name, last_name, date_of_death,
	       content, moderation_status, payment_status,
	       submitter_ip, submitter_user_agent, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTribute(row rowScanner) (*models.Tribute, error) {
	var (
		t           models.Tribute
		tributeUUID uuid.UUID
		personUUID  uuid.UUID
		moderation  string
		payment     string
		ip          sql.NullString
		ua          sql.NullString
	)
	err := row.Scan(
		&tributeUUID, &personUUID, &t.FirstName, &t.LastName, &t.DateOfDeath,
		&t.Content, &moderation, &payment, &ip, &ua, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan tribute: %w", err)
	}
	t.ID = id.TributeID(tributeUUID)
	t.PersonID = id.PersonID(personUUID)
	t.Moderation = models.ModerationStatus(moderation)
	t.Payment = models.PaymentStatus(payment)
	t.SubmitterIP = ip.String
	t.SubmitterUserAgent = ua.String
	return &t, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
