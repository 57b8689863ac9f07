package catalog

// Registry is the read-only field catalog shared by all queries.
// It is built once and never mutated, so concurrent readers need no locking.
// Fields handed out by All, ByID and Find are deep copies.
type Registry struct {
	fields []Field
	index  map[string]int
}

// NewRegistry takes a private deep copy of fields and indexes the first
// occurrence of each identifier.
func NewRegistry(fields []Field) *Registry {
	r := &Registry{
		fields: cloneFields(fields),
		index:  make(map[string]int, len(fields)),
	}

	for i, f := range r.fields {
		if _, ok := r.index[f.ID]; !ok {
			r.index[f.ID] = i
		}
	}

	return r
}

// All returns the catalog in insertion order.
func (r *Registry) All() []Field {
	return cloneFields(r.fields)
}

// ByID returns the first field with exactly the given identifier.
func (r *Registry) ByID(id string) (Field, bool) {
	i, ok := r.index[id]
	if !ok {
		return Field{}, false
	}

	return r.fields[i].clone(), true
}

// Size returns the size attribute of the field with the given identifier.
func (r *Registry) Size(id string) (float64, bool) {
	f, ok := r.ByID(id)
	if !ok {
		return 0, false
	}

	return f.Size, true
}

// Find returns the first field, in insertion order, accepted by match.
// match sees the shared catalog entry and must not modify its slices.
func (r *Registry) Find(match func(Field) bool) (Field, bool) {
	for _, f := range r.fields {
		if match(f) {
			return f.clone(), true
		}
	}

	return Field{}, false
}

// Len returns the number of fields.
func (r *Registry) Len() int {
	return len(r.fields)
}

// WithoutCenter counts fields that have no centroid.
func (r *Registry) WithoutCenter() int {
	n := 0
	for _, f := range r.fields {
		if f.Locations.Center == nil {
			n++
		}
	}

	return n
}
