package booking

import "github.com/shekhakhaled/adventureland-tickets/internal/model"

// Catalog is the ordered list of ticket definitions on sale. Add performs no
// uniqueness check; when two definitions share a type name FindByType
// resolves to the one added first.
type Catalog struct {
	tickets []model.TicketDefinition
}

// NewCatalog returns a catalog holding defs in the given order.
func NewCatalog(defs ...model.TicketDefinition) *Catalog {
	c := &Catalog{}
	for _, d := range defs {
		c.Add(d)
	}
	return c
}

// Add appends def to the catalog.
func (c *Catalog) Add(def model.TicketDefinition) {
	c.tickets = append(c.tickets, def)
}

// FindByType returns the first definition whose type name equals typeName.
func (c *Catalog) FindByType(typeName string) (model.TicketDefinition, bool) {
	for _, t := range c.tickets {
		if t.TypeName == typeName {
			return t, true
		}
	}
	return model.TicketDefinition{}, false
}

// Types lists type names in insertion order, duplicates included.
func (c *Catalog) Types() []string {
	out := make([]string, 0, len(c.tickets))
	for _, t := range c.tickets {
		out = append(out, t.TypeName)
	}
	return out
}

// All returns a copy of every definition in insertion order.
func (c *Catalog) All() []model.TicketDefinition {
	out := make([]model.TicketDefinition, len(c.tickets))
	copy(out, c.tickets)
	return out
}

// Len reports the number of definitions.
func (c *Catalog) Len() int { return len(c.tickets) }

func (c *Catalog) truncate(n int) {
	if n < len(c.tickets) {
		c.tickets = c.tickets[:n]
	}
}
