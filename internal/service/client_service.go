package service

import (
	"context"
	"errors"
	"strings"

	"github.com/cole/shophours/internal/domain"
	"github.com/cole/shophours/internal/store"
)

var ErrClientNotFound = errors.New("client not found")

// ClientService manages the client list
type ClientService interface {
	Add(ctx context.Context, name, contact string, rate float64) (*domain.Client, error)
	Update(ctx context.Context, client domain.Client) error
	// Delete hard-deletes the client and cascades to its entries,
	// scheduled jobs and the active pointer. Finalized invoices keep
	// their denormalized client name and survive untouched.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Client, error)
	// Get resolves a client by id or by exact name (case-insensitive)
	Get(ctx context.Context, idOrName string) (*domain.Client, error)
}

type clientService struct {
	store *store.Store
}

// NewClientService creates a new client service
func NewClientService(st *store.Store) ClientService {
	return &clientService{store: st}
}

func (s *clientService) Add(ctx context.Context, name, contact string, rate float64) (*domain.Client, error) {
	client := domain.NewClient(name, contact, rate)
	if err := client.Validate(); err != nil {
		return nil, err
	}
	err := s.store.Update(func(st *domain.AppState) error {
		st.Clients = append(st.Clients, *client)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Update(ctx context.Context, client domain.Client) error {
	if err := client.Validate(); err != nil {
		return err
	}
	return s.store.Update(func(st *domain.AppState) error {
		existing := st.Client(client.ID)
		if existing == nil {
			return ErrClientNotFound
		}
		*existing = client
		return nil
	})
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	return s.store.Update(func(st *domain.AppState) error {
		if st.Client(id) == nil {
			return ErrClientNotFound
		}

		clients := st.Clients[:0]
		for _, c := range st.Clients {
			if c.ID != id {
				clients = append(clients, c)
			}
		}
		st.Clients = clients

		entries := make([]domain.TimeEntry, 0, len(st.Entries))
		removed := make(map[string]bool)
		for _, e := range st.Entries {
			if e.ClientID == id {
				removed[e.ID] = true
				continue
			}
			entries = append(entries, e)
		}
		st.Entries = entries

		scheduled := make([]domain.ScheduledJob, 0, len(st.ScheduledJobs))
		for _, sj := range st.ScheduledJobs {
			if sj.ClientID != id {
				scheduled = append(scheduled, sj)
			}
		}
		st.ScheduledJobs = scheduled

		if st.Active != nil && removed[st.Active.EntryID] {
			st.Active = nil
		}
		return nil
	})
}

func (s *clientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.store.State().Clients, nil
}

func (s *clientService) Get(ctx context.Context, idOrName string) (*domain.Client, error) {
	state := s.store.State()
	if c := state.Client(idOrName); c != nil {
		return c, nil
	}
	for i := range state.Clients {
		if strings.EqualFold(state.Clients[i].Name, idOrName) {
			return &state.Clients[i], nil
		}
	}
	return nil, ErrClientNotFound
}
