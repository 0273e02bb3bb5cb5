package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/ccx/internal/models"
	"github.com/desertthunder/ccx/internal/shared"
)

// VerdictRepository implements models.Repository[*models.PersistedVerdict]
// for the local verdict log.
//
// Every completed check appends its verdicts here so past results can be
// listed and exported without re-querying the service.
type VerdictRepository struct {
	db *sql.DB
}

// NewVerdictRepository creates a new VerdictRepository with the given database connection
func NewVerdictRepository(db *sql.DB) *VerdictRepository {
	return &VerdictRepository{db: db}
}

// Create inserts a new verdict into the database with generated ID and sequence.
//
// A track checked twice keeps one row: the existing record is overwritten
// with the fresh verdict.
func (r *VerdictRepository) Create(verdict *models.PersistedVerdict) error {
	sequence, err := NextSequence(r.db, "verdicts")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	verdict.SetID(id)

	if err := verdict.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO verdicts (id, sequence, track_id, name, artist, is_free, confidence, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (track_id) DO UPDATE SET
			name = excluded.name,
			artist = excluded.artist,
			is_free = excluded.is_free,
			confidence = excluded.confidence,
			source = excluded.source,
			updated_at = excluded.updated_at,
			deleted_at = NULL
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		verdict.TrackID(),
		verdict.Name(),
		verdict.Artist(),
		verdict.IsFree(),
		verdict.Confidence(),
		verdict.Source(),
		verdict.CreatedAt(),
		verdict.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert verdict: %w", err)
	}

	return nil
}

// Get retrieves a verdict by ID, excluding soft-deleted verdicts
func (r *VerdictRepository) Get(id string) (*models.PersistedVerdict, error) {
	query := `
		SELECT id, sequence, track_id, name, artist, is_free, confidence, source, created_at, updated_at, deleted_at
		FROM verdicts
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByTrackID retrieves the stored verdict for a track
func (r *VerdictRepository) GetByTrackID(trackID string) (*models.PersistedVerdict, error) {
	query := `
		SELECT id, sequence, track_id, name, artist, is_free, confidence, source, created_at, updated_at, deleted_at
		FROM verdicts
		WHERE track_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, trackID))
}

// Update modifies an existing verdict in the database
func (r *VerdictRepository) Update(verdict *models.PersistedVerdict) error {
	if err := verdict.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	verdict.Touch()

	query := `
		UPDATE verdicts
		SET name = ?, artist = ?, is_free = ?, confidence = ?, source = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		verdict.Name(),
		verdict.Artist(),
		verdict.IsFree(),
		verdict.Confidence(),
		verdict.Source(),
		verdict.UpdatedAt(),
		verdict.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update verdict: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("verdict not found or already deleted: %s", verdict.ID())
	}

	return nil
}

// Delete soft-deletes a verdict by ID
func (r *VerdictRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE verdicts
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete verdict: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("verdict not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all verdicts matching the given criteria, excluding soft-deleted verdicts.
//
// Supported criteria: "source" (string), "is_free" (bool).
func (r *VerdictRepository) List(criteria map[string]any) ([]*models.PersistedVerdict, error) {
	query := `
		SELECT id, sequence, track_id, name, artist, is_free, confidence, source, created_at, updated_at, deleted_at
		FROM verdicts
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if source, ok := criteria["source"].(string); ok && source != "" {
		query += " AND source = ?"
		args = append(args, source)
	}

	if isFree, ok := criteria["is_free"].(bool); ok {
		query += " AND is_free = ?"
		args = append(args, isFree)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query verdicts: %w", err)
	}
	defer rows.Close()

	var verdicts []*models.PersistedVerdict
	for rows.Next() {
		verdict, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		verdicts = append(verdicts, verdict)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return verdicts, nil
}

// Clear soft-deletes every stored verdict and returns the number affected
func (r *VerdictRepository) Clear() (int, error) {
	now := time.Now()

	result, err := r.db.Exec("UPDATE verdicts SET deleted_at = ? WHERE deleted_at IS NULL", now)
	if err != nil {
		return 0, fmt.Errorf("failed to clear verdicts: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return int(rows), nil
}

// scanOne scans a single row into a [models.PersistedVerdict]
func (r *VerdictRepository) scanOne(row *sql.Row) (*models.PersistedVerdict, error) {
	var (
		id         string
		sequence   int
		trackID    string
		name       string
		artist     string
		isFree     bool
		confidence float64
		source     string
		createdAt  time.Time
		updatedAt  time.Time
		deletedAt  sql.NullTime
	)

	err := row.Scan(&id, &sequence, &trackID, &name, &artist, &isFree, &confidence, &source, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("verdict not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan verdict: %w", err)
	}

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}

	return models.RestoreVerdict(id, sequence, trackID, name, artist, isFree, confidence, source, createdAt, updatedAt, deleted), nil
}

// scanRow scans a row from [sql.Rows] into a [models.PersistedVerdict]
func scanRow(rows *sql.Rows) (*models.PersistedVerdict, error) {
	var (
		id         string
		sequence   int
		trackID    string
		name       string
		artist     string
		isFree     bool
		confidence float64
		source     string
		createdAt  time.Time
		updatedAt  time.Time
		deletedAt  sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &trackID, &name, &artist, &isFree, &confidence, &source, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan verdict: %w", err)
	}

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}

	return models.RestoreVerdict(id, sequence, trackID, name, artist, isFree, confidence, source, createdAt, updatedAt, deleted), nil
}
