package domain

import "fmt"

// SchemaVersion is the current version of the persisted state blob
const SchemaVersion = 4

// ActiveRef points at the single open time entry, if any
type ActiveRef struct {
	EntryID string `json:"entryId"`
}

// AppState is the whole application state, persisted as one blob and
// replaced wholesale on every mutation. There is exactly one logical
// writer, so no record-level locking exists.
type AppState struct {
	SchemaVersion int            `json:"schemaVersion"`
	Clients       []Client       `json:"clients"`
	Entries       []TimeEntry    `json:"entries"`
	ScheduledJobs []ScheduledJob `json:"scheduledJobs"`
	Jobs          []Job          `json:"jobs"`
	Charges       []Charge       `json:"charges"`
	Invoices      []Invoice      `json:"invoices"`
	Active        *ActiveRef     `json:"active"`
}

// DefaultState returns an empty state at the current schema version
func DefaultState() *AppState {
	return &AppState{
		SchemaVersion: SchemaVersion,
		Clients:       []Client{},
		Entries:       []TimeEntry{},
		ScheduledJobs: []ScheduledJob{},
		Jobs:          []Job{},
		Charges:       []Charge{},
		Invoices:      []Invoice{},
	}
}

// Clone returns a deep copy of the state, so callers can hold a snapshot
// while the store replaces the live value.
func (s *AppState) Clone() *AppState {
	out := &AppState{
		SchemaVersion: s.SchemaVersion,
		Clients:       make([]Client, len(s.Clients)),
		Entries:       make([]TimeEntry, len(s.Entries)),
		ScheduledJobs: make([]ScheduledJob, len(s.ScheduledJobs)),
		Jobs:          make([]Job, len(s.Jobs)),
		Charges:       make([]Charge, len(s.Charges)),
		Invoices:      make([]Invoice, len(s.Invoices)),
	}
	copy(out.Clients, s.Clients)
	copy(out.ScheduledJobs, s.ScheduledJobs)
	copy(out.Charges, s.Charges)
	for i, e := range s.Entries {
		out.Entries[i] = e.Clone()
	}
	for i, j := range s.Jobs {
		out.Jobs[i] = j.Clone()
	}
	for i, inv := range s.Invoices {
		out.Invoices[i] = inv.Clone()
	}
	if s.Active != nil {
		ref := *s.Active
		out.Active = &ref
	}
	return out
}

// ActiveEntry returns the open entry referenced by the active pointer
func (s *AppState) ActiveEntry() *TimeEntry {
	if s.Active == nil {
		return nil
	}
	return s.Entry(s.Active.EntryID)
}

// Client returns the client with the given id, or nil
func (s *AppState) Client(id string) *Client {
	for i := range s.Clients {
		if s.Clients[i].ID == id {
			return &s.Clients[i]
		}
	}
	return nil
}

// Entry returns the entry with the given id, or nil
func (s *AppState) Entry(id string) *TimeEntry {
	for i := range s.Entries {
		if s.Entries[i].ID == id {
			return &s.Entries[i]
		}
	}
	return nil
}

// Job returns the job with the given id, or nil
func (s *AppState) Job(id string) *Job {
	for i := range s.Jobs {
		if s.Jobs[i].ID == id {
			return &s.Jobs[i]
		}
	}
	return nil
}

// Charge returns the charge with the given id, or nil
func (s *AppState) Charge(id string) *Charge {
	for i := range s.Charges {
		if s.Charges[i].ID == id {
			return &s.Charges[i]
		}
	}
	return nil
}

// Scheduled returns the scheduled job with the given id, or nil
func (s *AppState) Scheduled(id string) *ScheduledJob {
	for i := range s.ScheduledJobs {
		if s.ScheduledJobs[i].ID == id {
			return &s.ScheduledJobs[i]
		}
	}
	return nil
}

// OpenJobs returns the jobs eligible for pick-lists and name reuse.
// Closed jobs stay reportable but are excluded here.
func (s *AppState) OpenJobs() []Job {
	open := make([]Job, 0, len(s.Jobs))
	for _, j := range s.Jobs {
		if !j.Closed {
			open = append(open, j)
		}
	}
	return open
}

// Index is a keyed view over the ordered state lists, rebuilt from a
// snapshot so that cross-reference lookups are O(1) and dangling ids are
// explicit failures instead of silent misses.
type Index struct {
	Clients map[string]*Client
	Entries map[string]*TimeEntry
	Jobs    map[string]*Job
	Charges map[string]*Charge
}

// NewIndex builds an index over the given state
func NewIndex(s *AppState) *Index {
	idx := &Index{
		Clients: make(map[string]*Client, len(s.Clients)),
		Entries: make(map[string]*TimeEntry, len(s.Entries)),
		Jobs:    make(map[string]*Job, len(s.Jobs)),
		Charges: make(map[string]*Charge, len(s.Charges)),
	}
	for i := range s.Clients {
		idx.Clients[s.Clients[i].ID] = &s.Clients[i]
	}
	for i := range s.Entries {
		idx.Entries[s.Entries[i].ID] = &s.Entries[i]
	}
	for i := range s.Jobs {
		idx.Jobs[s.Jobs[i].ID] = &s.Jobs[i]
	}
	for i := range s.Charges {
		idx.Charges[s.Charges[i].ID] = &s.Charges[i]
	}
	return idx
}

// CheckRefs verifies the cross-references the billing rules depend on:
// entries pointing at real clients and the active pointer at a real open
// entry. A dangling jobId on an entry is tolerated here because the
// startup backfill repairs it.
func (s *AppState) CheckRefs() error {
	idx := NewIndex(s)
	for i := range s.Entries {
		e := &s.Entries[i]
		if _, ok := idx.Clients[e.ClientID]; !ok {
			return fmt.Errorf("entry %s references missing client %s", e.ID, e.ClientID)
		}
	}
	for i := range s.Charges {
		c := &s.Charges[i]
		if _, ok := idx.Jobs[c.JobID]; !ok {
			return fmt.Errorf("charge %s references missing job %s", c.ID, c.JobID)
		}
	}
	if s.Active != nil {
		e, ok := idx.Entries[s.Active.EntryID]
		if !ok {
			return fmt.Errorf("active pointer references missing entry %s", s.Active.EntryID)
		}
		if e.Completed() {
			return fmt.Errorf("active pointer references completed entry %s", e.ID)
		}
	}
	return nil
}
