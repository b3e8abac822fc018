package repository

import (
	"context"
	"errors"

	"go-event-hub/internal/model"
	apperrors "go-event-hub/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRepository 活動 catalog
// List 依插入順序回傳；Update 為整筆取代，不動 id、registered 與主辦方欄位
type EventRepository interface {
	Create(ctx context.Context, fields model.EventFields, ownerID string, ownerName string) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	FindByID(ctx context.Context, id string) (*model.Event, error)
	Update(ctx context.Context, id string, fields model.EventFields) (*model.Event, error)
	// IncrementRegistered registered +1，不檢查 capacity（由呼叫端負責）
	IncrementRegistered(ctx context.Context, id string) (*model.Event, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `event_id, title, description, date, time, location, capacity, registered,
		price, category, image, organizer_id, organizer_name, status`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Time,
		&event.Location,
		&event.Capacity,
		&event.Registered,
		&event.Price,
		&event.Category,
		&event.Image,
		&event.OrganizerID,
		&event.OrganizerName,
		&event.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, fields model.EventFields, ownerID string, ownerName string) (*model.Event, error) {
	query := `
		INSERT INTO events (event_id, title, description, date, time, location, capacity, registered,
			price, category, image, organizer_id, organizer_name, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9, $10, $11, $12, $13)
		RETURNING ` + eventColumns

	return scanEvent(r.pool.QueryRow(ctx, query,
		uuid.NewString(),
		fields.Title,
		fields.Description,
		fields.Date,
		fields.Time,
		fields.Location,
		fields.Capacity,
		fields.Price,
		fields.Category,
		fields.Image,
		ownerID,
		ownerName,
		fields.Status,
	))
}

func (r *EventRepositoryImpl) List(ctx context.Context) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY seq ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id string) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE event_id = $1
	`
	return scanEvent(r.pool.QueryRow(ctx, query, id))
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id string, fields model.EventFields) (*model.Event, error) {
	query := `
		UPDATE events
		SET title = $1, description = $2, date = $3, time = $4, location = $5,
			capacity = $6, price = $7, category = $8, image = $9, status = $10
		WHERE event_id = $11
		RETURNING ` + eventColumns

	return scanEvent(r.pool.QueryRow(ctx, query,
		fields.Title,
		fields.Description,
		fields.Date,
		fields.Time,
		fields.Location,
		fields.Capacity,
		fields.Price,
		fields.Category,
		fields.Image,
		fields.Status,
		id,
	))
}

func (r *EventRepositoryImpl) IncrementRegistered(ctx context.Context, id string) (*model.Event, error) {
	query := `
		UPDATE events
		SET registered = registered + 1
		WHERE event_id = $1
		RETURNING ` + eventColumns

	return scanEvent(r.pool.QueryRow(ctx, query, id))
}
