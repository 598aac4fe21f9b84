package types

// State is a top-level region. Its cities are a derived view.
type State struct {
	BaseModel `mapstructure:",squash"`
	Name      string `mapstructure:"name"`
}

// Kind returns KindState.
func (s *State) Kind() Kind { return KindState }

// ToMap returns the serializable form of the state.
func (s *State) ToMap(bool) map[string]any {
	m := s.baseMap(KindState)
	m["name"] = s.Name
	return m
}
