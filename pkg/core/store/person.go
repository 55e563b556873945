package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/pkg/core/assemble"
	"github.com/rosterly/shiftroster/pkg/core/model"
	"github.com/rosterly/shiftroster/pkg/db"
)

// NewPerson carries the caller-supplied fields for a person record
type NewPerson struct {
	Name        string
	Phone       string
	Designation string
	RoleIDs     []string
}

// PersonStore owns the people collection
type PersonStore struct {
	mu      sync.RWMutex
	gate    fetchGate
	people  []model.Person
	lastErr string

	db     db.Database
	logger *zap.Logger
	subs   notifier
}

func NewPersonStore(database db.Database, logger *zap.Logger) *PersonStore {
	return &PersonStore{db: database, logger: logger}
}

// Subscribe registers fn to run after every snapshot replacement
func (s *PersonStore) Subscribe(fn func()) func() {
	return s.subs.subscribe(fn)
}

// Fetch reloads the whole people collection from the database
func (s *PersonStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	token := s.gate.begin()
	s.mu.Unlock()

	rows, err := s.db.GetPeople(ctx)
	if err != nil {
		s.recordError(err)
		return err
	}
	people := assemble.People(rows)

	s.mu.Lock()
	if s.gate.stale(token) {
		s.mu.Unlock()
		return nil
	}
	s.people = people
	s.lastErr = ""
	s.mu.Unlock()

	s.subs.notify()
	return nil
}

func (s *PersonStore) recordError(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	s.logger.Error("failed to fetch people", zap.Error(err))
}

// People returns the current snapshot
func (s *PersonStore) People() []model.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.people
}

// LastError returns the message of the most recent failed fetch, or ""
func (s *PersonStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Get finds a person by id; the boolean is false when absent
func (s *PersonStore) Get(id string) (model.Person, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.people {
		if p.ID == id {
			return p, true
		}
	}
	return model.Person{}, false
}

// Search filters people by name, phone or designation substring
func (s *PersonStore) Search(query string) []model.Person {
	lower := strings.ToLower(query)
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []model.Person
	for _, p := range s.people {
		if strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(p.Phone, query) ||
			strings.Contains(strings.ToLower(p.Designation), lower) {
			matches = append(matches, p)
		}
	}
	return matches
}

// Add inserts a new person and re-fetches the collection
func (s *PersonStore) Add(ctx context.Context, person NewPerson) error {
	roleIDs := person.RoleIDs
	if roleIDs == nil {
		roleIDs = []string{}
	}
	row := db.PersonRow{
		ID:          uuid.NewString(),
		Name:        person.Name,
		Phone:       person.Phone,
		Designation: person.Designation,
		RoleIDs:     roleIDs,
	}
	if err := s.db.InsertPerson(ctx, &row); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

// Update patches a person and re-fetches the collection
func (s *PersonStore) Update(ctx context.Context, id string, patch db.PersonPatch) error {
	if err := s.db.UpdatePerson(ctx, id, patch); err != nil {
		return err
	}
	return s.Fetch(ctx)
}

// Delete removes a person and re-fetches the collection
func (s *PersonStore) Delete(ctx context.Context, id string) error {
	if err := s.db.DeletePerson(ctx, id); err != nil {
		return err
	}
	return s.Fetch(ctx)
}
