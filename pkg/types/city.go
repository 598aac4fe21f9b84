package types

// City belongs to a State through StateID.
type City struct {
	BaseModel `mapstructure:",squash"`
	StateID   string `mapstructure:"state_id"`
	Name      string `mapstructure:"name"`
}

// Kind returns KindCity.
func (c *City) Kind() Kind { return KindCity }

// ToMap returns the serializable form of the city.
func (c *City) ToMap(bool) map[string]any {
	m := c.baseMap(KindCity)
	m["state_id"] = c.StateID
	m["name"] = c.Name
	return m
}
