// Package session owns the in-memory exploration collection and the
// active-selection pointer. It is the only writer of both; every mutation
// writes through to the persistence gateway before returning.
package session

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"fairshare/internal/climate"
	"fairshare/internal/errors"
	"fairshare/internal/exploration"
	"fairshare/internal/store"
)

// Session is the exploration lifecycle controller.
//
// The underlying model is single-user and event-driven, but the web and MCP
// surfaces can overlap requests, so the collection is guarded by a mutex.
type Session struct {
	mu       sync.Mutex
	gw       store.Gateway
	exps     []exploration.Exploration
	activeID string
}

// New loads the stored collection. If the store yields nothing, a default
// exploration is synthesized so the collection is never empty in memory.
// The first member becomes active.
func New(ctx context.Context, gw store.Gateway) *Session {
	s := &Session{gw: gw}
	s.exps = gw.Load(ctx)
	if len(s.exps) == 0 {
		s.exps = []exploration.Exploration{exploration.NewDefault()}
		gw.Save(ctx, s.exps)
	}
	s.activeID = s.exps[0].ID
	return s
}

// persist writes the collection through to the gateway. Callers hold the
// lock.
func (s *Session) persist(ctx context.Context) {
	s.gw.Save(ctx, s.exps)
}

// Explorations returns a copy of the collection in persisted order.
func (s *Session) Explorations() []exploration.Exploration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return exploration.CloneAll(s.exps)
}

// List returns a copy of the collection sorted newest first, the display
// ordering.
func (s *Session) List() []exploration.Exploration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := exploration.CloneAll(s.exps)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// ActiveID returns the current active exploration id.
func (s *Session) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Active returns the active exploration. If the active id does not resolve
// (transiently possible around deletions), it falls back to the first
// member.
func (s *Session) Active() exploration.Exploration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(s.activeID); i >= 0 {
		return s.exps[i].Clone()
	}
	return s.exps[0].Clone()
}

// SetActive switches the active pointer. The id is not required to resolve;
// Active falls back gracefully if it doesn't.
func (s *Session) SetActive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = id
}

// Create appends a new exploration with default fields and a sequential
// display name, makes it active, and returns it.
func (s *Session) Create(ctx context.Context) exploration.Exploration {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := exploration.NewDefault()
	e.Name = fmt.Sprintf("Exploration %d", len(s.exps)+1)
	s.exps = append(s.exps, e)
	s.activeID = e.ID
	s.persist(ctx)
	return e.Clone()
}

// Delete removes an exploration. If it was active, the first remaining
// member is selected. Removing the last member synthesizes a fresh default
// exploration in its place and activates it.
func (s *Session) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.NewNotFound(id)
	}
	s.exps = append(s.exps[:i], s.exps[i+1:]...)

	if len(s.exps) == 0 {
		fresh := exploration.NewDefault()
		s.exps = []exploration.Exploration{fresh}
		s.activeID = fresh.ID
	} else if s.activeID == id {
		s.activeID = s.exps[0].ID
	}

	s.persist(ctx)
	return nil
}

// Rename changes an exploration's display name by id, independent of which
// one is active. Empty or whitespace-only names are rejected and nothing is
// saved.
func (s *Session) Rename(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.NewInvalidRequest("name must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.NewNotFound(id)
	}
	s.exps[i].Name = name
	s.persist(ctx)
	return nil
}

// Patch is a partial field set merged into the active exploration. Nil
// fields are left untouched.
type Patch struct {
	// CountryCode selects a baseline; the empty string clears the selection
	CountryCode       *string
	Grid              *bool
	Transport         *bool
	Food              *bool
	ParticipationRate *int
}

// UpdateActive merges a patch into the currently active exploration.
func (s *Session) UpdateActive(ctx context.Context, p Patch) error {
	if p.CountryCode != nil && *p.CountryCode != "" {
		if _, ok := climate.CountryByCode(*p.CountryCode); !ok {
			return errors.NewInvalidRequest(fmt.Sprintf("unknown country code %q", *p.CountryCode))
		}
	}
	if p.ParticipationRate != nil {
		if *p.ParticipationRate < 1 || *p.ParticipationRate > 100 {
			return errors.NewInvalidRequest("participation rate must be between 1 and 100")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(s.activeID)
	if i < 0 {
		i = 0
	}
	e := &s.exps[i]

	if p.CountryCode != nil {
		if *p.CountryCode == "" {
			e.CountryCode = nil
		} else {
			code := *p.CountryCode
			e.CountryCode = &code
		}
	}
	if p.Grid != nil {
		e.StructuralChanges.Grid = *p.Grid
	}
	if p.Transport != nil {
		e.StructuralChanges.Transport = *p.Transport
	}
	if p.Food != nil {
		e.StructuralChanges.Food = *p.Food
	}
	if p.ParticipationRate != nil {
		e.ParticipationRate = *p.ParticipationRate
	}

	s.persist(ctx)
	return nil
}

// AddStory appends a story to the target exploration, preserving insertion
// order.
func (s *Session) AddStory(ctx context.Context, id string, story exploration.GeneratedStory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.NewNotFound(id)
	}
	s.exps[i].Stories = append(s.exps[i].Stories, story)
	s.persist(ctx)
	return nil
}

// DeleteStory removes a story by id from the target exploration.
func (s *Session) DeleteStory(ctx context.Context, id, storyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.NewNotFound(id)
	}

	stories := s.exps[i].Stories
	kept := stories[:0]
	found := false
	for _, st := range stories {
		if st.ID == storyID {
			found = true
			continue
		}
		kept = append(kept, st)
	}
	if !found {
		return errors.NewNotFound(storyID)
	}
	s.exps[i].Stories = kept
	s.persist(ctx)
	return nil
}

// Import replaces the entire collection with the contents of the file at
// path and activates its first element. A failed import leaves the current
// state untouched. An imported empty collection synthesizes a default
// exploration, keeping the non-empty invariant.
func (s *Session) Import(ctx context.Context, path string) (int, error) {
	imported, err := store.ImportFromFile(path)
	if err != nil {
		return 0, err
	}
	return s.replace(ctx, imported), nil
}

// ImportBytes is Import over already-read file contents.
func (s *Session) ImportBytes(ctx context.Context, data []byte) (int, error) {
	imported, err := store.ImportFromBytes(data)
	if err != nil {
		return 0, err
	}
	return s.replace(ctx, imported), nil
}

func (s *Session) replace(ctx context.Context, imported []exploration.Exploration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(imported)
	if count == 0 {
		imported = []exploration.Exploration{exploration.NewDefault()}
	}
	s.exps = imported
	s.activeID = s.exps[0].ID
	s.persist(ctx)
	return count
}

// Export writes the current collection to path as a versioned JSON
// document and returns the path.
func (s *Session) Export(path string) (string, error) {
	s.mu.Lock()
	exps := exploration.CloneAll(s.exps)
	s.mu.Unlock()

	if err := store.ExportToFile(exps, path); err != nil {
		return "", err
	}
	return path, nil
}

// Get returns an exploration by id.
func (s *Session) Get(id string) (exploration.Exploration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.exps[i].Clone(), nil
	}
	return exploration.Exploration{}, errors.NewNotFound(id)
}

// indexOf returns the collection index for id, or -1. Callers hold the
// lock.
func (s *Session) indexOf(id string) int {
	for i := range s.exps {
		if s.exps[i].ID == id {
			return i
		}
	}
	return -1
}
