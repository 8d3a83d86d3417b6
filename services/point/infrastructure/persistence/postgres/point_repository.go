package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/ecoleta/pkg/database"
	"github.com/ghuser/ecoleta/pkg/events"
	pointdomain "github.com/ghuser/ecoleta/services/point/domain"
	domainevents "github.com/ghuser/ecoleta/services/point/domain/events"
	"github.com/ghuser/ecoleta/services/point/domain/models"
	"github.com/ghuser/ecoleta/services/point/domain/repositories"
	"github.com/ghuser/ecoleta/services/point/infrastructure/persistence/postgres/db"
)

// TxPublisher publishes messages inside an open transaction.
// *events.EventBus implements it.
type TxPublisher interface {
	PublishInTx(ctx context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error
}

// PointRepository implements repositories.PointRepository against PostgreSQL.
type PointRepository struct {
	db  *database.Database
	bus TxPublisher
}

// NewPointRepository returns a PointRepository backed by the given connection
// pool. bus may be nil, in which case no point.created event is emitted.
func NewPointRepository(database *database.Database, bus TxPublisher) *PointRepository {
	return &PointRepository{db: database, bus: bus}
}

// Save inserts the point, one point_items row per item id and the
// point.created outbox message in a single transaction. p.ID is set only
// after the transaction commits.
func (r *PointRepository) Save(ctx context.Context, p *models.Point) error {
	var id int64
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		var err error
		id, err = q.InsertPoint(ctx, db.InsertPointParams{
			Image:     p.Image,
			Name:      p.Name,
			Email:     p.Email,
			Whatsapp:  p.Whatsapp,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			City:      p.City,
			Uf:        p.UF,
		})
		if err != nil {
			return fmt.Errorf("insert point: %w", describePgError(err))
		}

		for _, itemID := range p.ItemIDs {
			if err := q.InsertPointItem(ctx, db.InsertPointItemParams{PointID: id, ItemID: itemID}); err != nil {
				return fmt.Errorf("insert point item %d: %w", itemID, describePgError(err))
			}
		}

		if r.bus != nil {
			if err := r.publishCreated(ctx, tx, id, p); err != nil {
				return fmt.Errorf("publish point created: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// GetDetail returns the point and the items it accepts.
func (r *PointRepository) GetDetail(ctx context.Context, id int64) (*models.PointDetail, error) {
	q := db.New(r.db.DB())
	row, err := q.GetPoint(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pointdomain.ErrPointNotFound
		}
		return nil, fmt.Errorf("query point: %w", err)
	}

	itemRows, err := q.ListItemsByPointID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("query point items: %w", err)
	}

	point := rowToPoint(row)
	items := make([]models.AcceptedItem, len(itemRows))
	point.ItemIDs = make([]int64, len(itemRows))
	for i, it := range itemRows {
		items[i] = models.AcceptedItem{ID: it.ID, Title: it.Title, Image: it.Image}
		point.ItemIDs[i] = it.ID
	}
	return &models.PointDetail{Point: point, Items: items}, nil
}

// List returns the points matching filter ordered by id.
func (r *PointRepository) List(ctx context.Context, filter repositories.PointFilter) ([]*models.Point, error) {
	itemIDs := filter.ItemIDs
	if itemIDs == nil {
		// A nil slice encodes as SQL NULL and would match nothing.
		itemIDs = []int64{}
	}
	rows, err := db.New(r.db.DB()).ListPoints(ctx, db.ListPointsParams{
		City:    filter.City,
		Uf:      filter.UF,
		ItemIds: itemIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("query points: %w", err)
	}
	points := make([]*models.Point, len(rows))
	for i, row := range rows {
		points[i] = rowToPoint(row)
	}
	return points, nil
}

func (r *PointRepository) publishCreated(ctx context.Context, tx *sql.Tx, id int64, p *models.Point) error {
	event := domainevents.PointCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		PointID:    id,
		Name:       p.Name,
		City:       p.City,
		UF:         p.UF,
		ItemIDs:    p.ItemIDs,
		OccurredAt: time.Now().UTC(),
	}
	msg, err := events.NewJSONMessage(event)
	if err != nil {
		return err
	}
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	return r.bus.PublishInTx(ctx, tx, domainevents.TopicPointCreated, msg)
}

// describePgError adds the violated constraint to PostgreSQL errors so logs
// name the failing foreign key or primary key.
func describePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		return fmt.Errorf("%s (constraint %s): %w", pgErr.Code, pgErr.ConstraintName, err)
	}
	return err
}

// rowToPoint maps a db.Point to a domain models.Point.
func rowToPoint(row db.Point) *models.Point {
	return &models.Point{
		ID:        row.ID,
		Image:     row.Image,
		Name:      row.Name,
		Email:     row.Email,
		Whatsapp:  row.Whatsapp,
		Latitude:  row.Latitude,
		Longitude: row.Longitude,
		City:      row.City,
		UF:        row.Uf,
	}
}
