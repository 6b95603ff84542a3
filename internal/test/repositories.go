package test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{Users: make(map[string]*model.User)}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if _, exists := s.Users[user.Mail]; exists {
		return domainErrors.ErrAlreadyExists
	}
	stored := *user
	s.Users[user.Mail] = &stored
	return nil
}

// GetByMail fetches user by mail or returns not found.
func (s *UserRepositoryStub) GetByMail(ctx context.Context, mail string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[mail]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub keeps orders in memory. UpdateIf holds the mutex for the
// whole check-and-mutate so concurrent callers observe a single winner.
type OrderRepositoryStub struct {
	CreateErr error
	FindErr   error
	UpdateErr error

	// Menus resolves line items when expansion is requested.
	Menus map[uuid.UUID]model.MenuItem

	mu      sync.Mutex
	orders  map[uuid.UUID]*model.Order
	ids     []uuid.UUID
	calls   int
	filters []repository.OrderFilter
}

// NewOrderRepositoryStub returns an empty repository.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{
		Menus:  make(map[uuid.UUID]model.MenuItem),
		orders: make(map[uuid.UUID]*model.Order),
	}
}

// Put stores orders as-is, bypassing every check.
func (s *OrderRepositoryStub) Put(orders ...*model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range orders {
		s.store(o.Clone())
	}
}

// Snapshot returns a copy of the stored order.
func (s *OrderRepositoryStub) Snapshot(id uuid.UUID) (*model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, false
	}
	return o.Clone(), true
}

// Len returns the number of stored orders.
func (s *OrderRepositoryStub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// Calls counts every repository method invocation.
func (s *OrderRepositoryStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Filters returns the filters FindMany was called with.
func (s *OrderRepositoryStub) Filters() []repository.OrderFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]repository.OrderFilter(nil), s.filters...)
}

// Create stores a new order.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.CreateErr != nil {
		return s.CreateErr
	}
	if _, exists := s.orders[order.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	s.store(order.Clone())
	return nil
}

// FindByID returns a copy of the order, expanded on request.
func (s *OrderRepositoryStub) FindByID(ctx context.Context, id uuid.UUID, expand bool) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	o, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := o.Clone()
	if expand {
		s.expand(cp)
	}
	return cp, nil
}

// FindMany filters stored orders in insertion order.
func (s *OrderRepositoryStub) FindMany(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.filters = append(s.filters, filter)
	if s.FindErr != nil {
		return nil, s.FindErr
	}

	result := make([]model.Order, 0)
	for _, id := range s.ids {
		o := s.orders[id]
		if !matches(o, filter) {
			continue
		}
		cp := o.Clone()
		if filter.Expand {
			s.expand(cp)
		}
		result = append(result, *cp)
	}
	return result, nil
}

// UpdateIf applies mutate to a copy and stores it only on success.
func (s *OrderRepositoryStub) UpdateIf(ctx context.Context, id uuid.UUID, state model.OrderState, mutate repository.OrderMutation) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.UpdateErr != nil {
		return nil, s.UpdateErr
	}
	o, ok := s.orders[id]
	if !ok || o.State() != state {
		return nil, domainErrors.ErrNotFound
	}
	cp := o.Clone()
	if err := mutate(cp); err != nil {
		return nil, err
	}
	s.orders[id] = cp
	return cp.Clone(), nil
}

func (s *OrderRepositoryStub) store(o *model.Order) {
	if _, exists := s.orders[o.ID]; !exists {
		s.ids = append(s.ids, o.ID)
	}
	s.orders[o.ID] = o
}

func (s *OrderRepositoryStub) expand(o *model.Order) {
	for i := range o.LineItems {
		if menu, ok := s.Menus[o.LineItems[i].MenuItemID]; ok {
			m := menu
			o.LineItems[i].MenuItem = &m
		}
	}
}

func matches(o *model.Order, filter repository.OrderFilter) bool {
	if len(filter.States) > 0 {
		found := false
		for _, st := range filter.States {
			if o.State() == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !filter.From.IsZero() && o.Date.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && o.Date.After(filter.To) {
		return false
	}
	return true
}

// IdempotencyStoreStub remembers reserved keys in memory.
type IdempotencyStoreStub struct {
	ReserveErr error
	ReleaseErr error

	mu       sync.Mutex
	keys     map[string]struct{}
	Released []string
}

// Reserve returns false for keys seen before.
func (s *IdempotencyStoreStub) Reserve(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReserveErr != nil {
		return false, s.ReserveErr
	}
	if s.keys == nil {
		s.keys = make(map[string]struct{})
	}
	if _, ok := s.keys[key]; ok {
		return false, nil
	}
	s.keys[key] = struct{}{}
	return true, nil
}

// Release forgets the key.
func (s *IdempotencyStoreStub) Release(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Released = append(s.Released, key)
	if s.ReleaseErr != nil {
		return s.ReleaseErr
	}
	delete(s.keys, key)
	return nil
}

// MenuRepositoryStub stores menu items in memory.
type MenuRepositoryStub struct {
	Items map[uuid.UUID]model.MenuItem
	Err   error
}

func (s *MenuRepositoryStub) Create(ctx context.Context, item *model.MenuItem) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Items == nil {
		s.Items = make(map[uuid.UUID]model.MenuItem)
	}
	for _, existing := range s.Items {
		if existing.Name == item.Name {
			return domainErrors.ErrAlreadyExists
		}
	}
	s.Items[item.ID] = *item
	return nil
}

func (s *MenuRepositoryStub) List(ctx context.Context) ([]model.MenuItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	items := make([]model.MenuItem, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, item)
	}
	return items, nil
}

func (s *MenuRepositoryStub) Update(ctx context.Context, item *model.MenuItem) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Items[item.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	s.Items[item.ID] = *item
	return nil
}

func (s *MenuRepositoryStub) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*model.MenuItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	item, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	item.IsAvailable = available
	s.Items[id] = item
	return &item, nil
}

func (s *MenuRepositoryStub) Delete(ctx context.Context, id uuid.UUID) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Items[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Items, id)
	return nil
}

// CategoryRepositoryStub stores categories in memory.
type CategoryRepositoryStub struct {
	Items []model.Category
	Err   error
}

func (s *CategoryRepositoryStub) Create(ctx context.Context, category *model.Category) error {
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.Items {
		if existing.Name == category.Name {
			return domainErrors.ErrAlreadyExists
		}
	}
	s.Items = append(s.Items, *category)
	return nil
}

func (s *CategoryRepositoryStub) List(ctx context.Context) ([]model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Items, nil
}

// EventSinkStub records enqueued events.
type EventSinkStub struct {
	Reject bool

	mu     sync.Mutex
	events []model.OrderEvent
}

// Enqueue stores the event unless Reject is set.
func (s *EventSinkStub) Enqueue(event model.OrderEvent) bool {
	if s.Reject {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return true
}

// Events returns a copy of the recorded events.
func (s *EventSinkStub) Events() []model.OrderEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.OrderEvent(nil), s.events...)
}

var (
	_ repository.UserRepository     = (*UserRepositoryStub)(nil)
	_ repository.OrderRepository    = (*OrderRepositoryStub)(nil)
	_ repository.MenuRepository     = (*MenuRepositoryStub)(nil)
	_ repository.CategoryRepository = (*CategoryRepositoryStub)(nil)
	_ repository.IdempotencyStore   = (*IdempotencyStoreStub)(nil)
)
