// Package cart holds the shopping cart for one session. A Store is created
// explicitly at session start and handed to whatever needs it.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Store is an ordered collection of lines, at most one per LineKey.
// Insertion order is display order. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	lines []Line

	persister Persister
}

type Option func(*Store)

// WithPersister enables Save, Restore and Discard.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		s.persister = p
	}
}

// WithLines seeds the store. Invalid lines are skipped and duplicates merged.
func WithLines(lines ...Line) Option {
	return func(s *Store) {
		for _, l := range lines {
			_ = s.add(l)
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{lines: []Line{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItem appends line, or adds its quantity to the existing line with the
// same key. The price snapshot of an existing line is kept.
func (s *Store) AddItem(line Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(line)
}

func (s *Store) add(line Line) error {
	if !line.valid() {
		return ErrInvalidLine
	}

	if i := s.indexOf(line.Key()); i >= 0 {
		s.lines[i].Quantity += line.Quantity
		return nil
	}
	s.lines = append(s.lines, line)
	return nil
}

// RemoveItem deletes the line with key. Absent keys are ignored.
func (s *Store) RemoveItem(key LineKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(key)
}

func (s *Store) remove(key LineKey) {
	i := s.indexOf(key)
	if i < 0 {
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
}

// UpdateQuantity sets the quantity of the line with key. A quantity of zero
// or less removes the line. Absent keys are ignored.
func (s *Store) UpdateQuantity(key LineKey, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(key)
		return
	}
	if i := s.indexOf(key); i >= 0 {
		s.lines[i].Quantity = quantity
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = []Line{}
}

// Total is the sum of price times quantity over all lines, rounded to cents.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sum(s.lines, nil)
}

// SelectedTotal is Total restricted to the given keys.
func (s *Store) SelectedTotal(keys []LineKey) decimal.Decimal {
	selected := make(map[LineKey]struct{}, len(keys))
	for _, k := range keys {
		selected[k] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return sum(s.lines, func(l Line) bool {
		_, ok := selected[l.Key()]
		return ok
	})
}

func sum(lines []Line, keep func(Line) bool) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if keep != nil && !keep(l) {
			continue
		}
		total = total.Add(l.Subtotal())
	}
	return total.Round(2)
}

// Count is the number of distinct lines. The cart badge and the cart page
// header both show this number.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// TotalQuantity is the number of units across all lines.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// Lines returns a copy of the lines in display order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) Line(key LineKey) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(key); i >= 0 {
		return s.lines[i], true
	}
	return Line{}, false
}

func (s *Store) IsEmpty() bool {
	return s.Count() == 0
}

func (s *Store) indexOf(key LineKey) int {
	for i, l := range s.lines {
		if l.Key() == key {
			return i
		}
	}
	return -1
}
