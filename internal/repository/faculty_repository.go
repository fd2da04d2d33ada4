package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-api/internal/models"
)

const facultyColumns = `id, name, email, department, specializations, created_at`

// FacultyRepository handles persistence for faculty members.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository creates a new repository instance.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// List returns every faculty member in creation order.
func (r *FacultyRepository) List(ctx context.Context) ([]models.Faculty, error) {
	const query = `SELECT ` + facultyColumns + ` FROM faculty ORDER BY created_at ASC, id ASC`
	var rows []facultyRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	faculty := make([]models.Faculty, 0, len(rows))
	for _, row := range rows {
		faculty = append(faculty, row.toModel())
	}
	return faculty, nil
}

// FindByID returns a faculty member by id.
func (r *FacultyRepository) FindByID(ctx context.Context, id string) (*models.Faculty, error) {
	const query = `SELECT ` + facultyColumns + ` FROM faculty WHERE id = $1`
	var row facultyRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	member := row.toModel()
	return &member, nil
}

// Create persists a new faculty member.
func (r *FacultyRepository) Create(ctx context.Context, member *models.Faculty) error {
	return r.insert(ctx, r.db, member)
}

// CreateBatch inserts all faculty members in one transaction.
func (r *FacultyRepository) CreateBatch(ctx context.Context, faculty []models.Faculty) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create faculty: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Microsecond steps keep file order stable under created_at ordering.
	now := time.Now().UTC()
	for i := range faculty {
		if faculty[i].CreatedAt.IsZero() {
			faculty[i].CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		}
		if err = r.insert(ctx, tx, &faculty[i]); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create faculty: %w", err)
	}
	return nil
}

func (r *FacultyRepository) insert(ctx context.Context, exec sqlx.ExtContext, member *models.Faculty) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO faculty (` + facultyColumns + `) VALUES (:id, :name, :email, :department, :specializations, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, exec, query, facultyRowFrom(*member)); err != nil {
		return fmt.Errorf("create faculty: %w", err)
	}
	return nil
}

// Delete removes a faculty member. Their timetable entries go with them.
func (r *FacultyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM faculty WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete faculty: %w", err)
	}
	return requireAffected(res)
}
