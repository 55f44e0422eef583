package scrape

import "testing"

func TestDefaultCriteria(t *testing.T) {
	t.Parallel()
	c := DefaultCriteria()
	if c.MaxContacts != DefaultMaxContacts {
		t.Errorf("MaxContacts = %d, want %d", c.MaxContacts, DefaultMaxContacts)
	}
	if c.Priority != PriorityAny {
		t.Errorf("Priority = %q, want %q", c.Priority, PriorityAny)
	}
	if c.ExcludeBots {
		t.Error("ExcludeBots should default to false")
	}
}

func TestCycleMaxContacts_WrapsAtCeiling(t *testing.T) {
	t.Parallel()
	c := DefaultCriteria()

	want := []int{150, 200, 50, 100, 150}
	for i, w := range want {
		c.CycleMaxContacts()
		if c.MaxContacts != w {
			t.Fatalf("press %d: MaxContacts = %d, want %d", i+1, c.MaxContacts, w)
		}
	}
}

func TestCycleMaxContacts_AboveCeilingResets(t *testing.T) {
	t.Parallel()
	c := Criteria{MaxContacts: 500}
	c.CycleMaxContacts()
	if c.MaxContacts != MaxContactsFloor {
		t.Errorf("MaxContacts = %d, want floor %d", c.MaxContacts, MaxContactsFloor)
	}
}

func TestTogglePriority(t *testing.T) {
	t.Parallel()
	c := DefaultCriteria()
	c.TogglePriority()
	if c.Priority != PriorityUsername {
		t.Errorf("Priority = %q, want %q", c.Priority, PriorityUsername)
	}
	c.TogglePriority()
	if c.Priority != PriorityAny {
		t.Errorf("Priority = %q, want %q", c.Priority, PriorityAny)
	}
}
