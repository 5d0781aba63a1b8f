package catalog

import (
	"fmt"
	"sync"
)

// Item is a sellable menu entry with its remaining stock and the fixed
// preparation estimate quoted to customers.
type Item struct {
	Name     string
	Stock    int
	Estimate string
}

// DefaultItems returns the seed catalog. Stock lives in memory only and
// resets on process restart.
func DefaultItems() []Item {
	return []Item{
		{Name: "Pizza Margherita", Stock: 2, Estimate: "45 menit"},
		{Name: "Burger", Stock: 5, Estimate: "35-50 menit"},
		{Name: "Nasi Goreng", Stock: 3, Estimate: "35-50 menit"},
	}
}

// SlotFullError reports a reservation that would exceed the per-window
// booking capacity.
type SlotFullError struct {
	Slot      string
	Booked    int
	Requested int
	Capacity  int
}

func (e *SlotFullError) Error() string {
	return fmt.Sprintf("slot %s full: booked %d + requested %d exceeds capacity %d",
		e.Slot, e.Booked, e.Requested, e.Capacity)
}

// OutOfStockError reports insufficient stock, carrying the items that could
// still cover the requested quantity.
type OutOfStockError struct {
	Item        string
	Available   int
	Requested   int
	Substitutes []string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("item %s out of stock: available %d, requested %d",
		e.Item, e.Available, e.Requested)
}

// State owns the inventory and slot-booking maps. One mutex spans every
// check-then-mutate sequence so concurrent reservations can neither oversell
// an item nor overbook a window.
type State struct {
	mu           sync.Mutex
	order        []string
	items        map[string]*Item
	bookings     map[string]int
	slotCapacity int
}

// NewState builds the booking state from the given items and per-window
// capacity. Item order is preserved for menu snapshots.
func NewState(items []Item, slotCapacity int) *State {
	s := &State{
		order:        make([]string, 0, len(items)),
		items:        make(map[string]*Item, len(items)),
		bookings:     make(map[string]int),
		slotCapacity: slotCapacity,
	}
	for _, it := range items {
		it := it
		s.order = append(s.order, it.Name)
		s.items[it.Name] = &it
	}
	return s
}

// Menu returns a point-in-time snapshot of the catalog in seed order.
func (s *State) Menu() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]Item, 0, len(s.order))
	for _, name := range s.order {
		snapshot = append(snapshot, *s.items[name])
	}
	return snapshot
}

// Reserve books quantity units of item into slot. The slot capacity check
// runs first, then the stock check; on failure nothing changes and the error
// names the violated constraint. Substitution candidates for an out-of-stock
// item are computed under the same lock so they reflect the state the
// decision was made against.
func (s *State) Reserve(item string, quantity int, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booked := s.bookings[slot]
	if booked+quantity > s.slotCapacity {
		return &SlotFullError{Slot: slot, Booked: booked, Requested: quantity, Capacity: s.slotCapacity}
	}

	available := 0
	if it, ok := s.items[item]; ok {
		available = it.Stock
	}
	if available < quantity {
		return &OutOfStockError{
			Item:        item,
			Available:   available,
			Requested:   quantity,
			Substitutes: s.substitutesLocked(item, quantity),
		}
	}

	s.items[item].Stock -= quantity
	s.bookings[slot] = booked + quantity
	return nil
}

// substitutesLocked lists the other items whose stock covers quantity.
// Callers must hold mu.
func (s *State) substitutesLocked(item string, quantity int) []string {
	candidates := make([]string, 0, len(s.order))
	for _, name := range s.order {
		if name == item {
			continue
		}
		if s.items[name].Stock >= quantity {
			candidates = append(candidates, name)
		}
	}
	return candidates
}

// Estimate returns the preparation estimate quoted for item.
func (s *State) Estimate(item string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it, ok := s.items[item]; ok {
		return it.Estimate
	}
	return ""
}

// Stock reports the remaining stock of item.
func (s *State) Stock(item string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it, ok := s.items[item]; ok {
		return it.Stock
	}
	return 0
}

// Booked reports the quantity already booked into slot.
func (s *State) Booked(slot string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookings[slot]
}
