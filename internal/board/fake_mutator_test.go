package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/pinboard/internal/domain"
)

var errStoreDown = errors.New("store unavailable")

// fakeMutator records every call and keeps an in-memory copy of the store.
type fakeMutator struct {
	cards map[string]domain.Card
	conns map[string]domain.Connection
	calls []string

	// reassign makes creates ignore the requested id.
	reassign bool
	fail     bool
	seq      int
}

func newFakeMutator(cards []domain.Card, conns []domain.Connection) *fakeMutator {
	m := &fakeMutator{cards: map[string]domain.Card{}, conns: map[string]domain.Connection{}}
	for _, c := range cards {
		m.cards[c.ID] = c
	}
	for _, c := range conns {
		m.conns[c.ID] = c
	}
	return m
}

func (m *fakeMutator) id(requested string) string {
	if requested != "" && !m.reassign {
		return requested
	}
	m.seq++
	return fmt.Sprintf("store-%d", m.seq)
}

func (m *fakeMutator) CreateCard(_ context.Context, d CardDraft) (domain.Card, error) {
	m.calls = append(m.calls, "create_card")
	if m.fail {
		return domain.Card{}, errStoreDown
	}
	c := d.Card()
	c.ID = m.id(d.ID)
	m.cards[c.ID] = c
	return c, nil
}

func (m *fakeMutator) UpdateCard(_ context.Context, p CardPatch) (domain.Card, error) {
	m.calls = append(m.calls, "update_card")
	if m.fail {
		return domain.Card{}, errStoreDown
	}
	c, ok := m.cards[p.ID]
	if !ok {
		return domain.Card{}, fmt.Errorf("card %s: not found", p.ID)
	}
	p.Apply(&c)
	m.cards[p.ID] = c
	return c, nil
}

func (m *fakeMutator) DeleteCard(_ context.Context, id string) error {
	m.calls = append(m.calls, "delete_card")
	if m.fail {
		return errStoreDown
	}
	delete(m.cards, id)
	for k, c := range m.conns {
		if c.Touches(id) {
			delete(m.conns, k)
		}
	}
	return nil
}

func (m *fakeMutator) CreateConnection(_ context.Context, d ConnectionDraft) (domain.Connection, error) {
	m.calls = append(m.calls, "create_connection")
	if m.fail {
		return domain.Connection{}, errStoreDown
	}
	c := domain.Connection{ID: m.id(d.ID), BoardID: d.BoardID, FromCardID: d.FromCardID, ToCardID: d.ToCardID, Color: d.Color}
	c.ApplyDefaults()
	m.conns[c.ID] = c
	return c, nil
}

func (m *fakeMutator) UpdateConnection(_ context.Context, id, color string) (domain.Connection, error) {
	m.calls = append(m.calls, "update_connection")
	if m.fail {
		return domain.Connection{}, errStoreDown
	}
	c := m.conns[id]
	c.Color = color
	m.conns[id] = c
	return c, nil
}

func (m *fakeMutator) DeleteConnection(_ context.Context, id string) error {
	m.calls = append(m.calls, "delete_connection")
	if m.fail {
		return errStoreDown
	}
	delete(m.conns, id)
	return nil
}

// recordingObserver collects events for assertions.
type recordingObserver struct {
	events []Event
}

func (o *recordingObserver) ObserveBoard(_ context.Context, e Event) {
	o.events = append(o.events, e)
}

func (o *recordingObserver) kinds() []EventKind {
	out := make([]EventKind, len(o.events))
	for i, e := range o.events {
		out[i] = e.Kind
	}
	return out
}
