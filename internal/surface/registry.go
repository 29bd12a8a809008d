package surface

// Registry maps surface ids to surfaces. Hosts register the surface they
// own; the engine looks it up by id when binding.
type Registry struct {
	surfaces map[string]Surface
}

func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[string]Surface)}
}

func (r *Registry) Register(id string, s Surface) {
	r.surfaces[id] = s
}

func (r *Registry) Remove(id string) {
	delete(r.surfaces, id)
}

func (r *Registry) Lookup(id string) (Surface, bool) {
	s, ok := r.surfaces[id]
	return s, ok && s != nil
}
