package testutil

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/festhub/eventhub/internal/domain/event"
	"github.com/festhub/eventhub/internal/domain/recommendation"
	"github.com/festhub/eventhub/internal/domain/ticket"
	"github.com/festhub/eventhub/internal/domain/user"
	"github.com/festhub/eventhub/internal/pkg/errors"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	Users       map[int64]*user.User
	EmailIndex  map[string]*user.User
	NextID      int64
	CreateError error
	GetError    error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[int64]*user.User),
		EmailIndex: make(map[string]*user.User),
		NextID:     1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, exists := m.EmailIndex[u.Email]; exists {
		return errors.Conflict("Email already registered")
	}
	u.ID = m.NextID
	m.NextID++
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.EmailIndex[email]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

// MockEventRepository is a mock implementation of event.Repository
type MockEventRepository struct {
	mu          sync.Mutex
	Events      map[int64]*event.Event
	NextID      int64
	CreateError error
	ListError   error
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{
		Events: make(map[int64]*event.Event),
		NextID: 1,
	}
}

func (m *MockEventRepository) Create(ctx context.Context, e *event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	e.ID = m.NextID
	m.NextID++
	if e.Comments == nil {
		e.Comments = []string{}
	}
	m.Events[e.ID] = e
	return nil
}

func (m *MockEventRepository) GetByID(ctx context.Context, id int64) (*event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.Events[id]
	if !ok {
		return nil, errors.NotFound("Event")
	}
	cp := *e
	return &cp, nil
}

func (m *MockEventRepository) List(ctx context.Context, filter event.Filter) ([]*event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	events := []*event.Event{}
	for _, e := range m.Events {
		if filter.OwnerID != nil && e.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		cp := *e
		events = append(events, &cp)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (m *MockEventRepository) Update(ctx context.Context, e *event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Events[e.ID]; !ok {
		return errors.NotFound("Event")
	}
	m.Events[e.ID] = e
	return nil
}

func (m *MockEventRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Events[id]; !ok {
		return errors.NotFound("Event")
	}
	delete(m.Events, id)
	return nil
}

func (m *MockEventRepository) IncrementLikes(ctx context.Context, id int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.Events[id]
	if !ok {
		return 0, errors.NotFound("Event")
	}
	e.Likes++
	return e.Likes, nil
}

func (m *MockEventRepository) AppendComment(ctx context.Context, id int64, comment string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.Events[id]
	if !ok {
		return errors.NotFound("Event")
	}
	e.Comments = append(e.Comments, comment)
	return nil
}

// MockTicketRepository is a mock implementation of ticket.Repository
type MockTicketRepository struct {
	Tickets     map[int64]*ticket.Ticket
	NextID      int64
	CreateError error
}

func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{
		Tickets: make(map[int64]*ticket.Ticket),
		NextID:  1,
	}
}

func (m *MockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	t.ID = m.NextID
	m.NextID++
	m.Tickets[t.ID] = t
	return nil
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id int64) (*ticket.Ticket, error) {
	t, ok := m.Tickets[id]
	if !ok {
		return nil, errors.NotFound("Ticket")
	}
	return t, nil
}

func (m *MockTicketRepository) List(ctx context.Context) ([]*ticket.Ticket, error) {
	return m.filter(func(*ticket.Ticket) bool { return true }), nil
}

func (m *MockTicketRepository) ListByUser(ctx context.Context, userID int64) ([]*ticket.Ticket, error) {
	return m.filter(func(t *ticket.Ticket) bool { return t.UserID == userID }), nil
}

func (m *MockTicketRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.Tickets[id]; !ok {
		return errors.NotFound("Ticket")
	}
	delete(m.Tickets, id)
	return nil
}

func (m *MockTicketRepository) filter(keep func(*ticket.Ticket) bool) []*ticket.Ticket {
	tickets := []*ticket.Ticket{}
	for _, t := range m.Tickets {
		if keep(t) {
			tickets = append(tickets, t)
		}
	}
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].ID < tickets[j].ID })
	return tickets
}

// MockImageStore records uploads in memory
type MockImageStore struct {
	Saved     map[string][]byte
	SaveError error
}

func NewMockImageStore() *MockImageStore {
	return &MockImageStore{Saved: make(map[string][]byte)}
}

func (m *MockImageStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if m.SaveError != nil {
		return "", m.SaveError
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.Saved[filename] = data
	return "uploads/" + filename, nil
}

// MockRunner is a mock implementation of recommendation.Runner
type MockRunner struct {
	mu       sync.Mutex
	Output   []byte
	Err      error
	Requests []*recommendation.Request
}

func (m *MockRunner) Invoke(ctx context.Context, req *recommendation.Request) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	return m.Output, m.Err
}
