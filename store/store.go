// Package store keeps generations and call-sheet entries in memory. It
// stands in for the persistence collaborator: callers treat Save as
// fire-and-forget, so a store failure never fails generation.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"cineforge/generator"
)

// ErrNotFound is returned when an id or project has no records.
var ErrNotFound = errors.New("not found")

// Generation is one persisted production package.
type Generation struct {
	ID          string                  `json:"id"`
	ProjectID   string                  `json:"project_id"`
	StoryInput  string                  `json:"story_input"`
	Screenplay  string                  `json:"screenplay"`
	ShotDesign  []generator.SceneShots  `json:"shot_design"`
	SoundDesign []generator.SceneSound  `json:"sound_design"`
	Provider    string                  `json:"provider"`
	CreatedAt   time.Time               `json:"created_at"`
}

// CallSheetEntry is one actor/crew availability record for a project.
type CallSheetEntry struct {
	ID             string   `json:"id"`
	ProjectID      string   `json:"project_id"`
	Name           string   `json:"name"`
	Role           string   `json:"role"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	Notes          string   `json:"notes"`
	AvailableDates []string `json:"available_dates"`
}

// CallSheetPatch carries partial updates; nil fields are left untouched.
type CallSheetPatch struct {
	Name           *string
	Role           *string
	Phone          *string
	Email          *string
	Notes          *string
	AvailableDates *[]string
}

// Store is a process-wide registry guarded by one mutex.
type Store struct {
	mu          sync.Mutex
	generations []Generation
	callsheet   []CallSheetEntry
}

func New() *Store {
	return &Store{}
}

// SaveGeneration assigns an id and timestamp and records the generation.
func (s *Store) SaveGeneration(g Generation) (Generation, error) {
	g.ID = uuid.NewString()
	g.CreatedAt = time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations = append(s.generations, g)
	return g, nil
}

// LatestGeneration returns the most recent generation for a project.
func (s *Store) LatestGeneration(projectID string) (Generation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.generations) - 1; i >= 0; i-- {
		if s.generations[i].ProjectID == projectID {
			return s.generations[i], nil
		}
	}
	return Generation{}, ErrNotFound
}

// ProjectGenerations returns all generations for a project, newest first.
func (s *Store) ProjectGenerations(projectID string) []Generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Generation, 0)
	for i := len(s.generations) - 1; i >= 0; i-- {
		if s.generations[i].ProjectID == projectID {
			out = append(out, s.generations[i])
		}
	}
	return out
}

// Generation returns one generation by id.
func (s *Store) Generation(id string) (Generation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.generations {
		if g.ID == id {
			return g, nil
		}
	}
	return Generation{}, ErrNotFound
}

// UpdateScreenplay overwrites the screenplay text of an existing generation.
func (s *Store) UpdateScreenplay(id, screenplay string) (Generation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.generations {
		if s.generations[i].ID == id {
			s.generations[i].Screenplay = screenplay
			return s.generations[i], nil
		}
	}
	return Generation{}, ErrNotFound
}

// CallSheet returns the entries for a project in insertion order.
func (s *Store) CallSheet(projectID string) []CallSheetEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CallSheetEntry, 0)
	for _, e := range s.callsheet {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out
}

// AddCallSheetEntry records a new entry for a project.
func (s *Store) AddCallSheetEntry(projectID string, e CallSheetEntry) CallSheetEntry {
	e.ID = uuid.NewString()
	e.ProjectID = projectID
	if e.AvailableDates == nil {
		e.AvailableDates = []string{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callsheet = append(s.callsheet, e)
	return e
}

// UpdateCallSheetEntry applies a partial update to one entry.
func (s *Store) UpdateCallSheetEntry(id string, patch CallSheetPatch) (CallSheetEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.callsheet {
		if s.callsheet[i].ID != id {
			continue
		}
		e := &s.callsheet[i]
		if patch.Name != nil {
			e.Name = *patch.Name
		}
		if patch.Role != nil {
			e.Role = *patch.Role
		}
		if patch.Phone != nil {
			e.Phone = *patch.Phone
		}
		if patch.Email != nil {
			e.Email = *patch.Email
		}
		if patch.Notes != nil {
			e.Notes = *patch.Notes
		}
		if patch.AvailableDates != nil {
			e.AvailableDates = *patch.AvailableDates
		}
		return *e, nil
	}
	return CallSheetEntry{}, ErrNotFound
}

// DeleteCallSheetEntry removes one entry by id.
func (s *Store) DeleteCallSheetEntry(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.callsheet {
		if s.callsheet[i].ID == id {
			s.callsheet = append(s.callsheet[:i], s.callsheet[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
