package criteria

import (
	"sync"
	"testing"

	"groupscout/pkg/scrape"
)

func TestMemoryStore_GetCreatesDefaults(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()

	got := s.Get(7)
	if got.MaxContacts != scrape.DefaultMaxContacts {
		t.Errorf("MaxContacts = %d, want %d", got.MaxContacts, scrape.DefaultMaxContacts)
	}
	if got.Priority != scrape.PriorityAny {
		t.Errorf("Priority = %q, want %q", got.Priority, scrape.PriorityAny)
	}
}

func TestMemoryStore_UpdatePersists(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()

	updated := s.Update(7, func(c *scrape.Criteria) { c.ToggleBots() })
	if !updated.ExcludeBots {
		t.Error("Update should return the mutated criteria")
	}
	if !s.Get(7).ExcludeBots {
		t.Error("mutation should persist across Get calls")
	}
	if s.Get(8).ExcludeBots {
		t.Error("mutation should not leak to other requesters")
	}
}

func TestMemoryStore_CycleSequence(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()

	want := []int{150, 200, 50, 100}
	for i, w := range want {
		got := s.Update(1, func(c *scrape.Criteria) { c.CycleMaxContacts() })
		if got.MaxContacts != w {
			t.Fatalf("press %d: MaxContacts = %d, want %d", i+1, got.MaxContacts, w)
		}
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.Update(id%4, func(c *scrape.Criteria) { c.CycleMaxContacts() })
			s.Get(id % 4)
		}(int64(i))
	}
	wg.Wait()

	for id := int64(0); id < 4; id++ {
		c := s.Get(id)
		if c.MaxContacts < scrape.MaxContactsFloor || c.MaxContacts > scrape.MaxContactsCeiling {
			t.Errorf("requester %d: MaxContacts %d out of range", id, c.MaxContacts)
		}
	}
}
