package test

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/orderstate/internal/domain/errors"
	"github.com/polkiloo/orderstate/internal/domain/model"
)

// OrderRepositoryStub stores orders in-memory for tests.
type OrderRepositoryStub struct {
	Orders    map[int64]*model.Order
	Items     map[int64][]model.OrderItem
	Next      int64
	Err       error
	UpdateErr error
	Updates   []model.OrderStatus
}

// NewOrderRepositoryStub constructs stub repository with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{
		Orders: make(map[int64]*model.Order),
		Items:  make(map[int64][]model.OrderItem),
		Next:   1,
	}
}

// Add seeds an order directly, allocating an id when absent.
func (s *OrderRepositoryStub) Add(order *model.Order) *model.Order {
	if order.ID == 0 {
		order.ID = s.Next
		s.Next++
	} else if order.ID >= s.Next {
		s.Next = order.ID + 1
	}
	s.Orders[order.ID] = order
	return order
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order, items []model.OrderItem) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	created := *order
	created.ID = s.Next
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.Next++
	s.Orders[created.ID] = &created
	for i := range items {
		items[i].OrderID = created.ID
		items[i].ID = int64(i + 1)
	}
	s.Items[created.ID] = items
	return &created, nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if order, ok := s.Orders[orderID]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) ListItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Items[orderID], nil
}

func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, expected, next model.OrderStatus) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	order, ok := s.Orders[orderID]
	if !ok || order.Status != expected {
		return domainErrors.ErrStatusConflict
	}
	order.Status = next
	order.UpdatedAt = time.Now()
	s.Updates = append(s.Updates, next)
	return nil
}

// PaymentRepositoryStub stores payments in-memory for tests.
type PaymentRepositoryStub struct {
	Payments map[int64]*model.Payment
	Next     int64
	Err      error
	CountErr error
}

// NewPaymentRepositoryStub constructs stub repository with initialized maps.
func NewPaymentRepositoryStub() *PaymentRepositoryStub {
	return &PaymentRepositoryStub{Payments: make(map[int64]*model.Payment), Next: 1}
}

// Add seeds a payment directly, allocating an id when absent.
func (s *PaymentRepositoryStub) Add(payment *model.Payment) *model.Payment {
	if payment.ID == 0 {
		payment.ID = s.Next
		s.Next++
	} else if payment.ID >= s.Next {
		s.Next = payment.ID + 1
	}
	s.Payments[payment.ID] = payment
	return payment
}

func (s *PaymentRepositoryStub) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	created := *payment
	created.ID = s.Next
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.Next++
	s.Payments[created.ID] = &created
	return &created, nil
}

func (s *PaymentRepositoryStub) GetByID(ctx context.Context, paymentID int64) (*model.Payment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if payment, ok := s.Payments[paymentID]; ok {
		copied := *payment
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *PaymentRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.Payment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Payment
	for id := int64(1); id < s.Next; id++ {
		if payment, ok := s.Payments[id]; ok && payment.OrderID == orderID {
			result = append(result, *payment)
		}
	}
	return result, nil
}

func (s *PaymentRepositoryStub) CountByTransactionID(ctx context.Context, transactionID string, excludeID int64) (int64, error) {
	if s.CountErr != nil {
		return 0, s.CountErr
	}
	var count int64
	for _, payment := range s.Payments {
		if payment.ID != excludeID && payment.TransactionID == transactionID {
			count++
		}
	}
	return count, nil
}

func (s *PaymentRepositoryStub) SelectRecentCompleted(ctx context.Context, since time.Time, limit int) ([]model.Payment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Payment
	for id := int64(1); id < s.Next && len(result) < limit; id++ {
		if payment, ok := s.Payments[id]; ok && payment.Status == model.PaymentStatusCompleted && !payment.UpdatedAt.Before(since) {
			result = append(result, *payment)
		}
	}
	return result, nil
}

// HistoryRepositoryStub stores audit entries in-memory for tests.
type HistoryRepositoryStub struct {
	Entries   []model.StatusHistoryEntry
	AppendErr error
	ListErr   error
}

func (s *HistoryRepositoryStub) Append(ctx context.Context, entry *model.StatusHistoryEntry) error {
	if s.AppendErr != nil {
		return s.AppendErr
	}
	stored := *entry
	stored.ID = int64(len(s.Entries) + 1)
	stored.CreatedAt = time.Now()
	s.Entries = append(s.Entries, stored)
	return nil
}

func (s *HistoryRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.StatusHistoryEntry, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	var result []model.StatusHistoryEntry
	for i := len(s.Entries) - 1; i >= 0; i-- {
		if s.Entries[i].OrderID == orderID {
			result = append(result, s.Entries[i])
		}
	}
	return result, nil
}

// AdminRepositoryStub stores admins in-memory for tests.
type AdminRepositoryStub struct {
	Admins map[string]*model.Admin
	ByID   map[int64]*model.Admin
	Next   int64
	Err    error
}

// NewAdminRepositoryStub constructs stub repository with initialized maps.
func NewAdminRepositoryStub() *AdminRepositoryStub {
	return &AdminRepositoryStub{
		Admins: make(map[string]*model.Admin),
		ByID:   make(map[int64]*model.Admin),
		Next:   1,
	}
}

func (s *AdminRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.Admin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Admins[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	admin := &model.Admin{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Admins[login] = admin
	s.ByID[admin.ID] = admin
	return admin, nil
}

func (s *AdminRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.Admin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if admin, ok := s.Admins[login]; ok {
		return admin, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *AdminRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if admin, ok := s.ByID[id]; ok {
		return admin, nil
	}
	return nil, domainErrors.ErrNotFound
}
