package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/timetable-api/internal/models"
)

const courseColumns = `id, name, code, enrollment, duration_hours, description, created_at`

// CourseRepository handles persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new repository instance.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns every course in creation order.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at ASC, id ASC`
	var rows []courseRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	courses := make([]models.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.toModel())
	}
	return courses, nil
}

// FindByID returns a course by id.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	var row courseRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	course := row.toModel()
	return &course, nil
}

// Create persists a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.insert(ctx, r.db, course)
}

// CreateBatch inserts all courses in one transaction.
func (r *CourseRepository) CreateBatch(ctx context.Context, courses []models.Course) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create courses: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Microsecond steps keep file order stable under created_at ordering.
	now := time.Now().UTC()
	for i := range courses {
		if courses[i].CreatedAt.IsZero() {
			courses[i].CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		}
		if err = r.insert(ctx, tx, &courses[i]); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create courses: %w", err)
	}
	return nil
}

func (r *CourseRepository) insert(ctx context.Context, exec sqlx.ExtContext, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO courses (` + courseColumns + `) VALUES (:id, :name, :code, :enrollment, :duration_hours, :description, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, exec, query, courseRowFrom(*course)); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Delete removes a course. Its timetable entries go with it.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
