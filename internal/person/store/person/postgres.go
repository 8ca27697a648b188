package person

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pomen/internal/person/models"
	id "pomen/pkg/domain"
	"pomen/pkg/platform/names"
	"pomen/pkg/platform/sentinel"
)

// PostgresStore persists deceased person records in PostgreSQL.
//
// The two mutation hot spots are single statements rather than
// read-modify-write pairs:
//   - IncrementTributeCount runs `tribute_count = tribute_count + 1`, so
//     concurrent submitters cannot lose updates;
//   - BackfillPhoto guards the write with `photo_url IS NULL` in the same
//     statement, so whichever concurrent backfill lands second observes a
//     non-empty photo and no-ops.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed person store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts the record with tribute_count 0. Normalized name columns are
// maintained here so the matcher scan can stay on indexed equality.
func (s *PostgresStore) Create(ctx context.Context, p *models.DeceasedPerson) error {
	query := `
		INSERT INTO deceased_persons (
			id, first_name, last_name, first_name_normalized, last_name_normalized,
			date_of_death, date_of_birth, place_of_death, photo_url,
			linked_memorial_id, tribute_count, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(p.ID),
		p.FirstName,
		p.LastName,
		names.Normalize(p.FirstName),
		names.Normalize(p.LastName),
		p.DateOfDeath,
		nullTime(p.DateOfBirth),
		nullString(p.PlaceOfDeath),
		nullString(p.PhotoURL),
		nullMemorialID(p.LinkedMemorialID),
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

// FindByID returns the record or sentinel.ErrNotFound.
func (s *PostgresStore) FindByID(ctx context.Context, personID id.PersonID) (*models.DeceasedPerson, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM deceased_persons WHERE id = $1`, uuid.UUID(personID))
	return scanPerson(row)
}

// ListWithTributes returns persons with tribute_count > 0, most recent date
// of death first.
func (s *PostgresStore) ListWithTributes(ctx context.Context, limit int) ([]*models.DeceasedPerson, error) {
	query := selectColumns + `
		FROM deceased_persons
		WHERE tribute_count > 0
		ORDER BY date_of_death DESC, seq ASC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list persons with tributes: %w", err)
	}
	defer rows.Close()
	return scanPersons(rows)
}

// IncrementTributeCount adds one to the counter in a single UPDATE.
func (s *PostgresStore) IncrementTributeCount(ctx context.Context, personID id.PersonID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE deceased_persons SET tribute_count = tribute_count + 1 WHERE id = $1`,
		uuid.UUID(personID),
	)
	if err != nil {
		return fmt.Errorf("increment tribute count: %w", err)
	}
	return requireRow(res)
}

// BackfillPhoto sets the photo only when no photo has been accepted yet.
// Zero rows affected means either the person does not exist or the photo was
// already set; the follow-up existence check tells those apart.
func (s *PostgresStore) BackfillPhoto(ctx context.Context, personID id.PersonID, photoURL string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE deceased_persons
		 SET photo_url = $2
		 WHERE id = $1 AND (photo_url IS NULL OR photo_url = '')`,
		uuid.UUID(personID), photoURL,
	)
	if err != nil {
		return fmt.Errorf("backfill photo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("backfill photo rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	err = s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM deceased_persons WHERE id = $1)`,
		uuid.UUID(personID),
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("backfill photo existence check: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	// Photo already set; first accepted photo wins.
	return nil
}

// All returns every record in insertion order for the matcher scan.
func (s *PostgresStore) All(ctx context.Context) ([]*models.DeceasedPerson, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` FROM deceased_persons ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("scan persons: %w", err)
	}
	defer rows.Close()
	return scanPersons(rows)
}

const selectColumns = `
	SELECT id, first_name, last_name, date_of_death, date_of_birth,
	       place_of_death, photo_url, linked_memorial_id, tribute_count, created_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*models.DeceasedPerson, error) {
	var (
		p          models.DeceasedPerson
		personUUID uuid.UUID
		birth      sql.NullTime
		place      sql.NullString
		photo      sql.NullString
		memorial   uuid.NullUUID
	)
	err := row.Scan(
		&personUUID, &p.FirstName, &p.LastName, &p.DateOfDeath, &birth,
		&place, &photo, &memorial, &p.TributeCount, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan person: %w", err)
	}
	p.ID = id.PersonID(personUUID)
	p.DateOfDeath = models.TruncateToDay(p.DateOfDeath)
	if birth.Valid {
		dob := models.TruncateToDay(birth.Time)
		p.DateOfBirth = &dob
	}
	p.PlaceOfDeath = place.String
	p.PhotoURL = photo.String
	if memorial.Valid {
		mid := id.MemorialID(memorial.UUID)
		p.LinkedMemorialID = &mid
	}
	return &p, nil
}

func scanPersons(rows *sql.Rows) ([]*models.DeceasedPerson, error) {
	var out []*models.DeceasedPerson
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate persons: %w", err)
	}
	return out, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullMemorialID(mid *id.MemorialID) uuid.NullUUID {
	if mid == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*mid), Valid: true}
}
