// Command timetable-cli generates a timetable offline from catalogue CSV files.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/csvio"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/scheduler"
	"github.com/noah-isme/timetable-api/internal/service"
	"github.com/noah-isme/timetable-api/pkg/config"
	"github.com/noah-isme/timetable-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.Log.Format = "console"

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(context.Background(), os.Args[1:], os.Stdout, logr); err != nil {
		logr.Fatal("generation failed", zap.Error(err))
	}
}

type options struct {
	courses string
	faculty string
	rooms   string
	out     string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("timetable-cli", pflag.ContinueOnError)
	fs.StringVar(&opts.courses, "courses", "", "courses CSV file")
	fs.StringVar(&opts.faculty, "faculty", "", "faculty CSV file")
	fs.StringVar(&opts.rooms, "rooms", "", "rooms CSV file")
	fs.StringVar(&opts.out, "out", "", "entries CSV output, stdout when empty")
	if err := fs.Parse(longFlags(args)); err != nil {
		return opts, err
	}
	if opts.courses == "" || opts.faculty == "" || opts.rooms == "" {
		return opts, fmt.Errorf("--courses, --faculty and --rooms are required")
	}
	return opts, nil
}

// longFlags accepts the single-dash spelling (-courses) for long flags.
func longFlags(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if len(arg) > 2 && arg[0] == '-' && arg[1] != '-' {
			arg = "-" + arg
		}
		out[i] = arg
	}
	return out
}

func run(ctx context.Context, args []string, stdout io.Writer, logr *zap.Logger) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cat := &catalogue{}
	importer := service.NewImportService(cat.courseWriter(), cat.facultyWriter(), cat.roomWriter(), nil, logr, 0)
	imports := []struct {
		path string
		fn   func(context.Context, io.Reader) error
	}{
		{opts.courses, discardResult(importer.ImportCourses)},
		{opts.faculty, discardResult(importer.ImportFaculty)},
		{opts.rooms, discardResult(importer.ImportRooms)},
	}
	for _, imp := range imports {
		if err := importFile(ctx, imp.path, imp.fn); err != nil {
			return err
		}
	}

	result, err := scheduler.New().Generate(cat.courses, cat.faculty, cat.rooms)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		logr.Warn("course skipped",
			zap.String("course_id", w.CourseID),
			zap.String("course_name", w.CourseName),
			zap.String("reason", string(w.Reason)),
		)
	}
	for _, a := range result.Assignments {
		if a.FacultyFallback {
			logr.Info("faculty fallback", zap.String("course_id", a.CourseID), zap.String("faculty_id", a.FacultyID))
		}
	}

	out := stdout
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.out, err)
		}
		defer f.Close()
		out = f
	}
	if err := csvio.WriteEntries(out, result.Entries); err != nil {
		return err
	}

	logr.Info("timetable generated",
		zap.Int("courses", len(cat.courses)),
		zap.Int("entries", len(result.Entries)),
		zap.Int("skipped", len(result.Warnings)),
	)
	return nil
}

func importFile(ctx context.Context, path string, fn func(context.Context, io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := fn(ctx, f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func discardResult[T any](fn func(context.Context, io.Reader) (T, error)) func(context.Context, io.Reader) error {
	return func(ctx context.Context, r io.Reader) error {
		_, err := fn(ctx, r)
		return err
	}
}

// catalogue holds imported rows in memory, in file order.
type catalogue struct {
	courses []models.Course
	faculty []models.Faculty
	rooms   []models.Room
}

type courseWriterFunc func(ctx context.Context, courses []models.Course) error

func (f courseWriterFunc) CreateBatch(ctx context.Context, courses []models.Course) error {
	return f(ctx, courses)
}

type facultyWriterFunc func(ctx context.Context, faculty []models.Faculty) error

func (f facultyWriterFunc) CreateBatch(ctx context.Context, faculty []models.Faculty) error {
	return f(ctx, faculty)
}

type roomWriterFunc func(ctx context.Context, rooms []models.Room) error

func (f roomWriterFunc) CreateBatch(ctx context.Context, rooms []models.Room) error {
	return f(ctx, rooms)
}

func (c *catalogue) courseWriter() courseWriterFunc {
	return func(ctx context.Context, courses []models.Course) error {
		for i := range courses {
			courses[i].ID = ensureID(courses[i].ID)
		}
		c.courses = append(c.courses, courses...)
		return nil
	}
}

func (c *catalogue) facultyWriter() facultyWriterFunc {
	return func(ctx context.Context, faculty []models.Faculty) error {
		for i := range faculty {
			faculty[i].ID = ensureID(faculty[i].ID)
		}
		c.faculty = append(c.faculty, faculty...)
		return nil
	}
}

func (c *catalogue) roomWriter() roomWriterFunc {
	return func(ctx context.Context, rooms []models.Room) error {
		for i := range rooms {
			rooms[i].ID = ensureID(rooms[i].ID)
		}
		c.rooms = append(c.rooms, rooms...)
		return nil
	}
}

func ensureID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}
