package test

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/solarteam/purchaseline/internal/domain/errors"
	"github.com/solarteam/purchaseline/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByEmail map[string]*model.User
	ByID    map[int64]*model.User
	Next    int64
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		Next:    1,
	}
}

// Add seeds a user with an assigned ID and returns it.
func (s *UserRepositoryStub) Add(user model.User) *model.User {
	stored, _ := s.Create(context.Background(), user)
	return stored
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user.ID = s.Next
	s.Next++
	stored := user
	s.ByEmail[stored.Email] = &stored
	s.ByID[stored.ID] = &stored
	return &stored, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListBySubteam returns users sharing the subteam.
func (s *UserRepositoryStub) ListBySubteam(ctx context.Context, subteam string) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var users []model.User
	for id := int64(1); id < s.Next; id++ {
		if user, ok := s.ByID[id]; ok && user.Subteam == subteam {
			users = append(users, *user)
		}
	}
	return users, nil
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn          func(context.Context, model.Order, []model.Item) (*model.Order, []model.Item, error)
	GetByIDFn         func(context.Context, int64) (*model.Order, error)
	ListFn            func(context.Context) ([]model.Order, error)
	ListByUserFn      func(context.Context, int64) ([]model.Order, error)
	ApplyTransitionFn func(context.Context, int64, model.OrderUpdate) (*model.Order, []model.Item, error)
	DeleteFn          func(context.Context, int64) error
	SubteamSpendFn    func(context.Context) (map[string]decimal.Decimal, error)

	Orders      []model.Order
	Transitions []OrderTransitionCall
}

// OrderTransitionCall stores information about ApplyTransition invocations.
type OrderTransitionCall struct {
	OrderID int64
	Update  model.OrderUpdate
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order, items []model.Item) (*model.Order, []model.Item, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order, items)
	}
	order.ID = 1
	return &order, items, nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Orders, nil
}

func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *OrderRepositoryStub) ApplyTransition(ctx context.Context, orderID int64, update model.OrderUpdate) (*model.Order, []model.Item, error) {
	s.Transitions = append(s.Transitions, OrderTransitionCall{OrderID: orderID, Update: update})
	if s.ApplyTransitionFn != nil {
		return s.ApplyTransitionFn(ctx, orderID, update)
	}
	return &model.Order{ID: orderID, Status: update.Status}, nil, nil
}

func (s *OrderRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

func (s *OrderRepositoryStub) SubteamSpend(ctx context.Context) (map[string]decimal.Decimal, error) {
	if s.SubteamSpendFn != nil {
		return s.SubteamSpendFn(ctx)
	}
	return map[string]decimal.Decimal{}, nil
}

// ItemRepositoryStub allows tests to customize item behaviour.
type ItemRepositoryStub struct {
	CreateFn        func(context.Context, model.Item) (*model.Item, error)
	GetByIDFn       func(context.Context, int64) (*model.Item, error)
	ListByOrderFn   func(context.Context, int64) ([]model.Item, error)
	ListInventoryFn func(context.Context) ([]model.Item, error)
	UpdateFn        func(context.Context, int64, model.ItemUpdate) (*model.Item, error)
	ApplyStatusFn   func(context.Context, int64, model.ItemStatus) (*model.Item, *model.Order, bool, error)
	DeleteFn        func(context.Context, int64) error

	Items []model.Item
}

func (s *ItemRepositoryStub) Create(ctx context.Context, item model.Item) (*model.Item, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, item)
	}
	item.ID = 1
	return &item, nil
}

func (s *ItemRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, it := range s.Items {
		if it.ID == id {
			item := it
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ItemRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.Item, error) {
	if s.ListByOrderFn != nil {
		return s.ListByOrderFn(ctx, orderID)
	}
	var out []model.Item
	for _, it := range s.Items {
		if it.OrderID != nil && *it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *ItemRepositoryStub) ListInventory(ctx context.Context) ([]model.Item, error) {
	if s.ListInventoryFn != nil {
		return s.ListInventoryFn(ctx)
	}
	var out []model.Item
	for _, it := range s.Items {
		if it.OrderID == nil {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *ItemRepositoryStub) Update(ctx context.Context, id int64, update model.ItemUpdate) (*model.Item, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, update)
	}
	return s.GetByID(ctx, id)
}

func (s *ItemRepositoryStub) ApplyStatus(ctx context.Context, id int64, status model.ItemStatus) (*model.Item, *model.Order, bool, error) {
	if s.ApplyStatusFn != nil {
		return s.ApplyStatusFn(ctx, id, status)
	}
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, false, err
	}
	item.Status = status
	return item, nil, false, nil
}

func (s *ItemRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// PushTokenRepositoryStub stores push registrations in-memory.
type PushTokenRepositoryStub struct {
	Tokens       []model.PushToken
	RegisterFn   func(context.Context, model.PushToken) (*model.PushToken, error)
	UnregisterFn func(context.Context, string) error
	ListFn       func(context.Context, []int64) ([]model.PushToken, error)
	Unregistered []string
}

func (s *PushTokenRepositoryStub) Register(ctx context.Context, token model.PushToken) (*model.PushToken, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, token)
	}
	token.ID = int64(len(s.Tokens) + 1)
	s.Tokens = append(s.Tokens, token)
	return &token, nil
}

func (s *PushTokenRepositoryStub) Unregister(ctx context.Context, token string) error {
	if s.UnregisterFn != nil {
		return s.UnregisterFn(ctx, token)
	}
	s.Unregistered = append(s.Unregistered, token)
	return nil
}

func (s *PushTokenRepositoryStub) ListByUsers(ctx context.Context, userIDs []int64) ([]model.PushToken, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userIDs)
	}
	wanted := make(map[int64]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}
	var out []model.PushToken
	for _, tok := range s.Tokens {
		if wanted[tok.UserID] {
			out = append(out, tok)
		}
	}
	return out, nil
}

// DocumentRepositoryStub stores document metadata in-memory.
type DocumentRepositoryStub struct {
	Docs     []model.Document
	AttachFn func(context.Context, model.Document) (*model.Document, error)
}

func (s *DocumentRepositoryStub) Attach(ctx context.Context, doc model.Document) (*model.Document, error) {
	if s.AttachFn != nil {
		return s.AttachFn(ctx, doc)
	}
	doc.ID = int64(len(s.Docs) + 1)
	s.Docs = append(s.Docs, doc)
	return &doc, nil
}

func (s *DocumentRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.Document, error) {
	var out []model.Document
	for _, d := range s.Docs {
		if d.OrderID == orderID {
			out = append(out, d)
		}
	}
	return out, nil
}
