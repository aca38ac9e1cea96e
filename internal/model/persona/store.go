package persona

// Store exposes persona retrieval for HTTP handlers.
type Store interface {
	List() []Persona
	FindByID(id string) (Persona, bool)
}

// MemoryStore implements Store over a fixed catalogue loaded at startup.
type MemoryStore struct {
	items []Persona
	byID  map[string]int
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied personas.
func NewMemoryStore(items []Persona) *MemoryStore {
	s := &MemoryStore{
		items: append([]Persona(nil), items...),
		byID:  make(map[string]int, len(items)),
	}
	for i, item := range s.items {
		if _, ok := s.byID[item.ID]; !ok {
			s.byID[item.ID] = i
		}
	}
	return s
}

// List returns the catalogue in declaration order.
func (s *MemoryStore) List() []Persona {
	return append([]Persona(nil), s.items...)
}

// FindByID looks up a persona by identifier.
func (s *MemoryStore) FindByID(id string) (Persona, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Persona{}, false
	}
	return s.items[i], true
}

// Resolve returns the persona with id, or the first entry when id is empty.
func (s *MemoryStore) Resolve(id string) (Persona, bool) {
	if id == "" {
		if len(s.items) == 0 {
			return Persona{}, false
		}
		return s.items[0], true
	}
	return s.FindByID(id)
}
