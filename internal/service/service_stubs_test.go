package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type stubCacheRepo struct {
	mu      sync.Mutex
	items   map[string][]byte
	getErr  error
	deleted []string
}

func newStubCacheRepo() *stubCacheRepo {
	return &stubCacheRepo{items: make(map[string][]byte)}
}

func (s *stubCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return s.getErr
	}
	raw, ok := s.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *stubCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *stubCacheRepo) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.items, key)
		s.deleted = append(s.deleted, key)
	}
	return nil
}

func (s *stubCacheRepo) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[key]
	return ok
}

func sampleCourses() []models.Course {
	return []models.Course{
		{ID: "c1", Name: "Intro to Programming", Code: "CS101", Enrollment: 30, DurationHours: 1},
		{ID: "c2", Name: "Calculus", Code: "MA101", Enrollment: 40, DurationHours: 1},
	}
}

func sampleFaculty() []models.Faculty {
	return []models.Faculty{
		{ID: "f1", Name: "Grace", Email: "grace@uni.test", Department: "Mathematics", Specializations: []string{}},
		{ID: "f2", Name: "Ada", Email: "ada@uni.test", Department: "Computer Science", Specializations: []string{"AI"}},
	}
}

func sampleRooms() []models.Room {
	return []models.Room{
		{ID: "r1", Name: "Room 101", Capacity: 50, Floor: 1},
	}
}
