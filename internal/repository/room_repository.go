package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-api/internal/models"
)

const roomColumns = `id, name, capacity, building, floor, has_projector, has_computers, created_at`

// RoomRepository handles persistence for rooms.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository creates a new repository instance.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// List returns every room in creation order.
func (r *RoomRepository) List(ctx context.Context) ([]models.Room, error) {
	const query = `SELECT ` + roomColumns + ` FROM rooms ORDER BY created_at ASC, id ASC`
	var rows []roomRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	rooms := make([]models.Room, 0, len(rows))
	for _, row := range rows {
		rooms = append(rooms, row.toModel())
	}
	return rooms, nil
}

// FindByID returns a room by id.
func (r *RoomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	const query = `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	var row roomRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	room := row.toModel()
	return &room, nil
}

// Create persists a new room.
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.insert(ctx, r.db, room)
}

// CreateBatch inserts all rooms in one transaction.
func (r *RoomRepository) CreateBatch(ctx context.Context, rooms []models.Room) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create rooms: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Microsecond steps keep file order stable under created_at ordering.
	now := time.Now().UTC()
	for i := range rooms {
		if rooms[i].CreatedAt.IsZero() {
			rooms[i].CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		}
		if err = r.insert(ctx, tx, &rooms[i]); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create rooms: %w", err)
	}
	return nil
}

func (r *RoomRepository) insert(ctx context.Context, exec sqlx.ExtContext, room *models.Room) error {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	if room.CreatedAt.IsZero() {
		room.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO rooms (` + roomColumns + `) VALUES (:id, :name, :capacity, :building, :floor, :has_projector, :has_computers, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, exec, query, roomRowFrom(*room)); err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

// Delete removes a room. Timetable entries using it go with it.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return requireAffected(res)
}
