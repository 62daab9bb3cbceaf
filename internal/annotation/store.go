package annotation

// Store keeps annotations in insertion order, which is also paint order,
// plus the id of the selected annotation. The zero value is ready to use.
type Store struct {
	items  []Annotation
	active string
}

// NewStore returns a store seeded with list.
func NewStore(list ...Annotation) *Store {
	s := &Store{}
	s.items = append(s.items, list...)
	return s
}

// Add appends a.
func (s *Store) Add(a Annotation) {
	s.items = append(s.items, a)
}

// Delete removes the annotation with id. Unknown ids are ignored.
// Deleting the selected annotation clears the selection.
func (s *Store) Delete(id string) bool {
	for i, a := range s.items {
		if a.ID != id {
			continue
		}
		s.items = append(s.items[:i:i], s.items[i+1:]...)
		if s.active == id {
			s.active = ""
		}
		return true
	}
	return false
}

// SetActive selects id. The empty string clears the selection.
func (s *Store) SetActive(id string) { s.active = id }

// ActiveID returns the selected id, or "".
func (s *Store) ActiveID() string { return s.active }

// Active returns the selected annotation if it still exists.
func (s *Store) Active() (Annotation, bool) {
	if s.active == "" {
		return Annotation{}, false
	}
	return s.Get(s.active)
}

// Get finds an annotation by id.
func (s *Store) Get(id string) (Annotation, bool) {
	for _, a := range s.items {
		if a.ID == id {
			return a, true
		}
	}
	return Annotation{}, false
}

// All returns a copy of the annotations in paint order.
func (s *Store) All() []Annotation {
	out := make([]Annotation, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of annotations.
func (s *Store) Len() int { return len(s.items) }
