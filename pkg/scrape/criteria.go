package scrape

// Priority selects which members are worth keeping during collection.
type Priority string

const (
	// PriorityAny keeps every member that passes the other filters.
	PriorityAny Priority = "any"
	// PriorityUsername keeps only members with a public handle.
	PriorityUsername Priority = "username"
)

// Max-contacts adjustment bounds. The setting cycles upward by the step and
// wraps back to the floor once the ceiling has been reached.
const (
	MaxContactsFloor   = 50
	MaxContactsStep    = 50
	MaxContactsCeiling = 200

	DefaultMaxContacts = 100
)

// Criteria is the per-requester collection configuration. Created lazily on
// first interaction and mutated through the bot's keyboard controls.
type Criteria struct {
	// MaxContacts bounds how many contacts one group may contribute.
	MaxContacts int `json:"max_contacts"`

	// Priority filters members by handle presence.
	Priority Priority `json:"priority"`

	// ExcludeBots drops bot accounts from the collection.
	ExcludeBots bool `json:"exclude_bots"`
}

// DefaultCriteria returns the settings a requester starts with.
func DefaultCriteria() Criteria {
	return Criteria{
		MaxContacts: DefaultMaxContacts,
		Priority:    PriorityAny,
	}
}

// CycleMaxContacts advances the max-contacts setting one step. At the ceiling
// the next press wraps to the floor rather than clamping.
func (c *Criteria) CycleMaxContacts() {
	if c.MaxContacts >= MaxContactsCeiling {
		c.MaxContacts = MaxContactsFloor
		return
	}
	c.MaxContacts += MaxContactsStep
}

// TogglePriority switches between keeping everyone and keeping only members
// with a public handle.
func (c *Criteria) TogglePriority() {
	if c.Priority == PriorityUsername {
		c.Priority = PriorityAny
		return
	}
	c.Priority = PriorityUsername
}

// ToggleBots flips bot exclusion.
func (c *Criteria) ToggleBots() {
	c.ExcludeBots = !c.ExcludeBots
}
