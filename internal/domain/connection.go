package domain

import "fmt"

// Connection links two distinct cards on the same board. The pair is
// unordered: at most one connection may exist between two cards.
type Connection struct {
	ID         string
	BoardID    string
	FromCardID string
	ToCardID   string
	Color      string
}

// Touches reports whether cardID is one of the connection's endpoints.
func (c Connection) Touches(cardID string) bool {
	return c.FromCardID == cardID || c.ToCardID == cardID
}

// Links reports whether the connection joins a and b, in either direction.
func (c Connection) Links(a, b string) bool {
	return (c.FromCardID == a && c.ToCardID == b) || (c.FromCardID == b && c.ToCardID == a)
}

// Other returns the endpoint opposite cardID.
func (c Connection) Other(cardID string) string {
	if c.FromCardID == cardID {
		return c.ToCardID
	}
	return c.FromCardID
}

// ApplyDefaults fills an empty color.
func (c *Connection) ApplyDefaults() {
	if c.Color == "" {
		c.Color = DefaultConnectionColor
	}
}

func (c *Connection) Validate() error {
	if c.BoardID == "" {
		return fmt.Errorf("connection must belong to a board")
	}
	if c.FromCardID == "" || c.ToCardID == "" {
		return fmt.Errorf("connection needs two cards")
	}
	if c.FromCardID == c.ToCardID {
		return fmt.Errorf("cannot connect a card to itself")
	}
	if !ValidColor(c.Color) {
		return fmt.Errorf("invalid connection color %q", c.Color)
	}
	return nil
}

// HasLink reports whether any connection already joins a and b.
func HasLink(conns []Connection, a, b string) bool {
	for i := range conns {
		if conns[i].Links(a, b) {
			return true
		}
	}
	return false
}
