package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"facilities/internal/facility/models"
	id "facilities/pkg/domain"
	"facilities/pkg/platform/sentinel"
	txcontext "facilities/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresFacilityStore persists active facility records in PostgreSQL.
type PostgresFacilityStore struct {
	db *sql.DB
}

// NewPostgresFacilityStore constructs a PostgreSQL-backed facility store.
func NewPostgresFacilityStore(db *sql.DB) *PostgresFacilityStore {
	return &PostgresFacilityStore{db: db}
}

func (s *PostgresFacilityStore) FindByID(ctx context.Context, facilityID id.FacilityID) (*models.FacilityRecord, error) {
	query := `
		SELECT latitude, longitude, state, zip, services, payload, cms_overlay,
			missing_since, last_updated, version
		FROM facility
		WHERE type = $1 AND station_number = $2
	`
	rec := &models.FacilityRecord{ID: facilityID}
	var (
		lat, long                 sql.NullFloat64
		state, zip                sql.NullString
		services                  []string
		missingSince, lastUpdated sql.NullTime
	)
	err := txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query, string(facilityID.Type), facilityID.StationNumber).Scan(
		&lat, &long, &state, &zip, pq.Array(&services), &rec.Payload, &rec.CMSOverlay,
		&missingSince, &lastUpdated, &rec.Version,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("facility %s: %w", facilityID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find facility: %w", err)
	}
	rec.Latitude = floatPtr(lat)
	rec.Longitude = floatPtr(long)
	rec.State = stringPtr(state)
	rec.Zip = stringPtr(zip)
	rec.ServiceTypes = services
	if rec.ServiceTypes == nil {
		rec.ServiceTypes = []string{}
	}
	rec.MissingSince = timePtr(missingSince)
	rec.LastUpdated = timePtr(lastUpdated)
	return rec, nil
}

func (s *PostgresFacilityStore) ListIDs(ctx context.Context) ([]id.FacilityID, error) {
	return listIDs(ctx, txcontext.QuerierFrom(ctx, s.db), `SELECT type, station_number FROM facility`)
}

// Save inserts when rec.Version is zero, otherwise updates guarded by the
// version column. Zero affected rows on update means the caller's copy is stale.
func (s *PostgresFacilityStore) Save(ctx context.Context, rec *models.FacilityRecord) (*models.FacilityRecord, error) {
	if rec == nil {
		return nil, fmt.Errorf("facility record is required")
	}
	q := txcontext.QuerierFrom(ctx, s.db)
	args := []any{
		string(rec.ID.Type), rec.ID.StationNumber,
		nullFloat(rec.Latitude), nullFloat(rec.Longitude),
		nullString(rec.State), nullString(rec.Zip),
		pq.Array(nonNil(rec.ServiceTypes)), rec.Payload, rec.CMSOverlay,
		nullTime(rec.MissingSince), nullTime(rec.LastUpdated),
	}

	if rec.Version == 0 {
		query := `
			INSERT INTO facility (type, station_number, latitude, longitude, state, zip, services,
				payload, cms_overlay, missing_since, last_updated, version)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1)
		`
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return nil, fmt.Errorf("insert facility %s: %w", rec.ID, sentinel.ErrConflict)
			}
			return nil, fmt.Errorf("insert facility: %w", err)
		}
	} else {
		query := `
			UPDATE facility SET
				latitude = $3, longitude = $4, state = $5, zip = $6, services = $7,
				payload = $8, cms_overlay = $9, missing_since = $10, last_updated = $11,
				version = version + 1
			WHERE type = $1 AND station_number = $2 AND version = $12
		`
		res, err := q.ExecContext(ctx, query, append(args, rec.Version)...)
		if err != nil {
			return nil, fmt.Errorf("update facility: %w", err)
		}
		if err := expectOneRow(res, rec.ID, rec.Version); err != nil {
			return nil, err
		}
	}

	saved := rec.Clone()
	saved.Version = rec.Version + 1
	return saved, nil
}

func (s *PostgresFacilityStore) Delete(ctx context.Context, facilityID id.FacilityID) error {
	return deleteByID(ctx, txcontext.QuerierFrom(ctx, s.db),
		`DELETE FROM facility WHERE type = $1 AND station_number = $2`, facilityID)
}

// PostgresGraveyardStore persists retired facilities in PostgreSQL.
type PostgresGraveyardStore struct {
	db *sql.DB
}

// NewPostgresGraveyardStore constructs a PostgreSQL-backed graveyard store.
func NewPostgresGraveyardStore(db *sql.DB) *PostgresGraveyardStore {
	return &PostgresGraveyardStore{db: db}
}

func (s *PostgresGraveyardStore) FindByID(ctx context.Context, facilityID id.FacilityID) (*models.GraveyardRecord, error) {
	query := `
		SELECT payload, cms_overlay, missing_since, last_updated, version
		FROM facility_graveyard
		WHERE type = $1 AND station_number = $2
	`
	rec := &models.GraveyardRecord{ID: facilityID}
	var missingSince, lastUpdated sql.NullTime
	err := txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query, string(facilityID.Type), facilityID.StationNumber).Scan(
		&rec.Payload, &rec.CMSOverlay, &missingSince, &lastUpdated, &rec.Version,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("graveyard facility %s: %w", facilityID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find graveyard facility: %w", err)
	}
	rec.MissingSince = timePtr(missingSince)
	rec.LastUpdated = timePtr(lastUpdated)
	return rec, nil
}

func (s *PostgresGraveyardStore) ListIDs(ctx context.Context) ([]id.FacilityID, error) {
	return listIDs(ctx, txcontext.QuerierFrom(ctx, s.db), `SELECT type, station_number FROM facility_graveyard`)
}

func (s *PostgresGraveyardStore) Save(ctx context.Context, rec *models.GraveyardRecord) (*models.GraveyardRecord, error) {
	if rec == nil {
		return nil, fmt.Errorf("graveyard record is required")
	}
	q := txcontext.QuerierFrom(ctx, s.db)
	args := []any{
		string(rec.ID.Type), rec.ID.StationNumber, rec.Payload, rec.CMSOverlay,
		nullTime(rec.MissingSince), nullTime(rec.LastUpdated),
	}

	if rec.Version == 0 {
		query := `
			INSERT INTO facility_graveyard (type, station_number, payload, cms_overlay,
				missing_since, last_updated, version)
			VALUES ($1, $2, $3, $4, $5, $6, 1)
		`
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return nil, fmt.Errorf("insert graveyard facility %s: %w", rec.ID, sentinel.ErrConflict)
			}
			return nil, fmt.Errorf("insert graveyard facility: %w", err)
		}
	} else {
		query := `
			UPDATE facility_graveyard SET
				payload = $3, cms_overlay = $4, missing_since = $5, last_updated = $6,
				version = version + 1
			WHERE type = $1 AND station_number = $2 AND version = $7
		`
		res, err := q.ExecContext(ctx, query, append(args, rec.Version)...)
		if err != nil {
			return nil, fmt.Errorf("update graveyard facility: %w", err)
		}
		if err := expectOneRow(res, rec.ID, rec.Version); err != nil {
			return nil, err
		}
	}

	saved := rec.Clone()
	saved.Version = rec.Version + 1
	return saved, nil
}

func (s *PostgresGraveyardStore) Delete(ctx context.Context, facilityID id.FacilityID) error {
	return deleteByID(ctx, txcontext.QuerierFrom(ctx, s.db),
		`DELETE FROM facility_graveyard WHERE type = $1 AND station_number = $2`, facilityID)
}

// PostgresTx runs fn inside a database transaction carried in the context, so
// both stores join it through txcontext.QuerierFrom. Nested calls reuse the outer transaction.
type PostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

const defaultTxTimeout = 5 * time.Second

func NewPostgresTx(db *sql.DB) *PostgresTx {
	return &PostgresTx{db: db, timeout: defaultTxTimeout}
}

func (t *PostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txcontext.From(ctx); ok {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func listIDs(ctx context.Context, q txcontext.Querier, query string) ([]id.FacilityID, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list facility ids: %w", err)
	}
	defer rows.Close()

	var ids []id.FacilityID
	for rows.Next() {
		var facilityType, station string
		if err := rows.Scan(&facilityType, &station); err != nil {
			return nil, fmt.Errorf("scan facility id: %w", err)
		}
		ids = append(ids, id.FacilityID{Type: id.FacilityType(facilityType), StationNumber: station})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list facility ids: %w", err)
	}
	return ids, nil
}

func deleteByID(ctx context.Context, q txcontext.Querier, query string, facilityID id.FacilityID) error {
	res, err := q.ExecContext(ctx, query, string(facilityID.Type), facilityID.StationNumber)
	if err != nil {
		return fmt.Errorf("delete facility: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete facility: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete facility %s: %w", facilityID, sentinel.ErrNotFound)
	}
	return nil
}

func expectOneRow(res sql.Result, facilityID id.FacilityID, version int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update facility: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update %s: stale version %d: %w", facilityID, version, sentinel.ErrConflict)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
