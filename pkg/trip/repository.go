package trip

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrTripNotFound = errors.New("trip does not exist")

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	StoreTrip(ctx context.Context, userId int, trip Trip) (int, error)
	GetTripByUid(ctx context.Context, userId int, uid string) (*Trip, error)
	GetTripByName(ctx context.Context, userId int, name string) (*Trip, error)
	GetTripsForUser(ctx context.Context, userId int) ([]Trip, error)
	UpdateTrip(ctx context.Context, userId int, trip Trip) error
	DeleteTrip(ctx context.Context, userId int, uid string) error
}

type RepositoryImpl struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db, tx: nil}
}

// getQueryer returns the appropriate database interface for queries (either tx or db)
func (r *RepositoryImpl) getQueryer() interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *RepositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	txRepo := &RepositoryImpl{db: r.db, tx: tx}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// tripColumns is the JSON-valued payload of a trip row.
type tripColumns struct {
	allEvents      string
	calendarEvents string
	sidebarEvents  string
	categories     string
	dateRange      string
}

func marshalTripColumns(t Trip) (tripColumns, error) {
	allEvents, err := json.Marshal(t.AllEvents)
	if err != nil {
		return tripColumns{}, fmt.Errorf("could not marshal all events: %w", err)
	}
	calendarEvents, err := json.Marshal(t.CalendarEvents)
	if err != nil {
		return tripColumns{}, fmt.Errorf("could not marshal calendar events: %w", err)
	}
	sidebarEvents, err := json.Marshal(t.SidebarEvents)
	if err != nil {
		return tripColumns{}, fmt.Errorf("could not marshal sidebar events: %w", err)
	}
	categories, err := json.Marshal(t.Categories)
	if err != nil {
		return tripColumns{}, fmt.Errorf("could not marshal categories: %w", err)
	}
	dateRange, err := json.Marshal(t.DateRange)
	if err != nil {
		return tripColumns{}, fmt.Errorf("could not marshal date range: %w", err)
	}
	return tripColumns{
		allEvents:      string(allEvents),
		calendarEvents: string(calendarEvents),
		sidebarEvents:  string(sidebarEvents),
		categories:     string(categories),
		dateRange:      string(dateRange),
	}, nil
}

func unmarshalTripColumns(t *Trip, c tripColumns) error {
	if err := json.Unmarshal([]byte(c.allEvents), &t.AllEvents); err != nil {
		return fmt.Errorf("could not unmarshal all events: %w", err)
	}
	if err := json.Unmarshal([]byte(c.calendarEvents), &t.CalendarEvents); err != nil {
		return fmt.Errorf("could not unmarshal calendar events: %w", err)
	}
	if err := json.Unmarshal([]byte(c.sidebarEvents), &t.SidebarEvents); err != nil {
		return fmt.Errorf("could not unmarshal sidebar events: %w", err)
	}
	if err := json.Unmarshal([]byte(c.categories), &t.Categories); err != nil {
		return fmt.Errorf("could not unmarshal categories: %w", err)
	}
	if err := json.Unmarshal([]byte(c.dateRange), &t.DateRange); err != nil {
		return fmt.Errorf("could not unmarshal date range: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) StoreTrip(ctx context.Context, userId int, trip Trip) (int, error) {
	columns, err := marshalTripColumns(trip)
	if err != nil {
		log.Error(err)
		return 0, err
	}

	query := `INSERT INTO trips (
                            uid,
                            user_id,
                            name,
                            destination,
                            all_events,
                            calendar_events,
                            sidebar_events,
                            categories,
                            date_range,
                            created_at
						) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`

	var id int
	err = r.getQueryer().QueryRowContext(ctx, query,
		trip.Uid,
		userId,
		trip.Name,
		trip.Destination,
		columns.allEvents,
		columns.calendarEvents,
		columns.sidebarEvents,
		columns.categories,
		columns.dateRange,
		trip.CreatedAt.UnixMilli(),
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store trip: %w", err)
		log.Error(err)
		return 0, err
	}

	return id, nil
}

const tripSelectColumns = `id, uid, user_id, name, destination, all_events, calendar_events, sidebar_events, categories, date_range, created_at`

func (r *RepositoryImpl) scanTrip(row interface{ Scan(dest ...any) error }) (*Trip, error) {
	var trip Trip
	var columns tripColumns
	var createdAtMillis int64
	err := row.Scan(
		&trip.ID,
		&trip.Uid,
		&trip.UserID,
		&trip.Name,
		&trip.Destination,
		&columns.allEvents,
		&columns.calendarEvents,
		&columns.sidebarEvents,
		&columns.categories,
		&columns.dateRange,
		&createdAtMillis,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalTripColumns(&trip, columns); err != nil {
		return nil, err
	}
	trip.CreatedAt = time.UnixMilli(createdAtMillis)
	return &trip, nil
}

func (r *RepositoryImpl) GetTripByUid(ctx context.Context, userId int, uid string) (*Trip, error) {
	query := `SELECT ` + tripSelectColumns + ` FROM trips WHERE user_id = $1 AND uid = $2`

	trip, err := r.scanTrip(r.getQueryer().QueryRowContext(ctx, query, userId, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTripNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get trip by uid: %w", err)
		log.Error(err)
		return nil, err
	}
	return trip, nil
}

func (r *RepositoryImpl) GetTripByName(ctx context.Context, userId int, name string) (*Trip, error) {
	query := `SELECT ` + tripSelectColumns + ` FROM trips WHERE user_id = $1 AND name = $2`

	trip, err := r.scanTrip(r.getQueryer().QueryRowContext(ctx, query, userId, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTripNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get trip by name: %w", err)
		log.Error(err)
		return nil, err
	}
	return trip, nil
}

func (r *RepositoryImpl) GetTripsForUser(ctx context.Context, userId int) ([]Trip, error) {
	query := `SELECT ` + tripSelectColumns + ` FROM trips WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.getQueryer().QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query trips: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	trips := make([]Trip, 0, 10)
	for rows.Next() {
		trip, err := r.scanTrip(rows)
		if err != nil {
			err := fmt.Errorf("could not scan trip row: %w", err)
			log.Error(err)
			return nil, err
		}
		trips = append(trips, *trip)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over trip rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return trips, nil
}

func (r *RepositoryImpl) UpdateTrip(ctx context.Context, userId int, trip Trip) error {
	columns, err := marshalTripColumns(trip)
	if err != nil {
		log.Error(err)
		return err
	}

	query := `UPDATE trips SET name = $1, destination = $2, all_events = $3, calendar_events = $4,
				sidebar_events = $5, categories = $6, date_range = $7 WHERE uid = $8 AND user_id = $9`
	stmt, err := r.getQueryer().PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		trip.Name,
		trip.Destination,
		columns.allEvents,
		columns.calendarEvents,
		columns.sidebarEvents,
		columns.categories,
		columns.dateRange,
		trip.Uid,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTripNotFound
	}
	return nil
}

func (r *RepositoryImpl) DeleteTrip(ctx context.Context, userId int, uid string) error {
	query := `DELETE FROM trips WHERE uid = $1 AND user_id = $2`
	stmt, err := r.getQueryer().PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()
	result, err := stmt.ExecContext(ctx, uid, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTripNotFound
	}
	return nil
}
