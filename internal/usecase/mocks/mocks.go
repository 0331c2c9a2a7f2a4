package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ysonawan/duebook/internal/domain"
	"github.com/ysonawan/duebook/internal/usecase"
)

// FakeEntryRepository is an in-memory fake of EntryRepository. Any Func field
// set on it overrides the in-memory behavior for that method.
type FakeEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry
	order   []string

	CreateFunc      func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	GetByIDFunc     func(ctx context.Context, id string) (*domain.Entry, error)
	HasReversalFunc func(ctx context.Context, tx usecase.Transaction, id string) (bool, error)
	ListFunc        func(ctx context.Context, filter usecase.EntryFilter, page, size int) ([]*domain.Entry, int64, error)
	ListAllFunc     func(ctx context.Context, filter usecase.EntryFilter) ([]*domain.Entry, error)
}

func NewFakeEntryRepository() *FakeEntryRepository {
	return &FakeEntryRepository{
		entries: make(map[string]*domain.Entry),
	}
}

func (m *FakeEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	m.order = append(m.order, entry.ID)
	return nil
}

func (m *FakeEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *FakeEntryRepository) HasReversal(ctx context.Context, tx usecase.Transaction, id string) (bool, error) {
	if m.HasReversalFunc != nil {
		return m.HasReversalFunc(ctx, tx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.Type == domain.EntryTypeReversal && e.ReferenceEntryID != nil && *e.ReferenceEntryID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *FakeEntryRepository) List(ctx context.Context, filter usecase.EntryFilter, page, size int) ([]*domain.Entry, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, page, size)
	}
	all, err := m.ListAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(all))
	start := page * size
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *FakeEntryRepository) ListAll(ctx context.Context, filter usecase.EntryFilter) ([]*domain.Entry, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Entry
	for _, id := range m.order {
		e := m.entries[id]
		if !filter.AllShops() && e.ShopID != filter.ShopID {
			continue
		}
		if filter.CustomerID != "" && e.CustomerID != filter.CustomerID {
			continue
		}
		if filter.EntryType != "" && e.Type != filter.EntryType {
			continue
		}
		if filter.StartDate != nil && e.EntryDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && e.EntryDate.After(*filter.EndDate) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// FakeCustomerRepository is an in-memory fake of CustomerRepository.
type FakeCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer

	CreateFunc           func(ctx context.Context, customer *domain.Customer) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Customer, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Customer, error)
	UpdateBalanceFunc    func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	ListByShopFunc       func(ctx context.Context, shopID string, limit, offset int) ([]*domain.Customer, error)
	SetActiveFunc        func(ctx context.Context, id string, active bool, updatedAt time.Time) error
	CountByShopFunc      func(ctx context.Context, shopID string) (int64, int64, error)
	OutstandingFunc      func(ctx context.Context, shopID string) (int64, decimal.Decimal, error)
}

func NewFakeCustomerRepository() *FakeCustomerRepository {
	return &FakeCustomerRepository{
		customers: make(map[string]*domain.Customer),
	}
}

func (m *FakeCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, customer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[customer.ID] = customer
	return nil
}

func (m *FakeCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.customers[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCustomerNotFound
}

func (m *FakeCustomerRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Customer, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *FakeCustomerRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.customers[id]; ok {
		c.CurrentBalance = balance
		c.UpdatedAt = updatedAt
	}
	return nil
}

func (m *FakeCustomerRepository) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*domain.Customer, error) {
	if m.ListByShopFunc != nil {
		return m.ListByShopFunc(ctx, shopID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Customer
	for _, c := range m.customers {
		if shopID == "" || c.ShopID == shopID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *FakeCustomerRepository) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.customers[id]; ok {
		c.IsActive = active
		c.UpdatedAt = updatedAt
	}
	return nil
}

func (m *FakeCustomerRepository) CountByShop(ctx context.Context, shopID string) (int64, int64, error) {
	if m.CountByShopFunc != nil {
		return m.CountByShopFunc(ctx, shopID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total, active int64
	for _, c := range m.customers {
		if shopID != "" && c.ShopID != shopID {
			continue
		}
		total++
		if c.IsActive {
			active++
		}
	}
	return total, active, nil
}

func (m *FakeCustomerRepository) Outstanding(ctx context.Context, shopID string) (int64, decimal.Decimal, error) {
	if m.OutstandingFunc != nil {
		return m.OutstandingFunc(ctx, shopID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	sum := decimal.Zero
	for _, c := range m.customers {
		if shopID != "" && c.ShopID != shopID {
			continue
		}
		if c.CurrentBalance.IsPositive() {
			count++
			sum = sum.Add(c.CurrentBalance)
		}
	}
	return count, sum, nil
}

// FakeShopRepository is an in-memory fake of ShopRepository.
type FakeShopRepository struct {
	mu    sync.RWMutex
	shops map[string]*domain.Shop

	CreateFunc  func(ctx context.Context, shop *domain.Shop) error
	ExistsFunc  func(ctx context.Context, id string) (bool, error)
	GetByIDFunc func(ctx context.Context, id string) (*domain.Shop, error)
}

func NewFakeShopRepository() *FakeShopRepository {
	return &FakeShopRepository{
		shops: make(map[string]*domain.Shop),
	}
}

func (m *FakeShopRepository) Add(shop *domain.Shop) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shops[shop.ID] = shop
}

func (m *FakeShopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, shop)
	}
	m.Add(shop)
	return nil
}

func (m *FakeShopRepository) Exists(ctx context.Context, id string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.shops[id]
	return ok, nil
}

func (m *FakeShopRepository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.shops[id]; ok {
		return s, nil
	}
	return nil, domain.ErrShopNotFound
}

// FakeAuditRepository records audit logs in memory.
type FakeAuditRepository struct {
	mu   sync.RWMutex
	Logs []*domain.AuditLog

	CreateFunc   func(ctx context.Context, log *domain.AuditLog) error
	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
}

func NewFakeAuditRepository() *FakeAuditRepository {
	return &FakeAuditRepository{}
}

func (m *FakeAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, log)
	return nil
}

func (m *FakeAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	return m.Create(ctx, log)
}

// List returns matching logs newest first, or in write order when the filter
// asks for ascending, mirroring the SQL ordering.
func (m *FakeAuditRepository) List(ctx context.Context, filter *domain.AuditFilter) ([]*domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	indexes := make([]int, 0, len(m.Logs))
	if filter.Ascending {
		for i := range m.Logs {
			indexes = append(indexes, i)
		}
	} else {
		for i := len(m.Logs) - 1; i >= 0; i-- {
			indexes = append(indexes, i)
		}
	}

	var out []*domain.AuditLog
	for _, i := range indexes {
		l := m.Logs[i]
		if filter.UserID != "" && l.UserID != filter.UserID {
			continue
		}
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.EntityType != "" && l.EntityType != filter.EntityType {
			continue
		}
		if filter.EntityID != "" && l.EntityID != filter.EntityID {
			continue
		}
		if filter.StartDate != nil && l.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && l.CreatedAt.After(*filter.EndDate) {
			continue
		}
		out = append(out, l)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (m *FakeAuditRepository) GetByEntity(ctx context.Context, entityType, entityID string) ([]*domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.AuditLog
	for _, l := range m.Logs {
		if l.EntityType == entityType && l.EntityID == entityID {
			out = append(out, l)
		}
	}
	return out, nil
}

// FakeTransactionManager is a fake of TransactionManager.
type FakeTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewFakeTransactionManager() *FakeTransactionManager {
	return &FakeTransactionManager{}
}

func (m *FakeTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &FakeTransaction{}, nil
}

// FakeTransaction is a fake of Transaction.
type FakeTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *FakeTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *FakeTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// FakeIDGenerator issues sequential IDs.
type FakeIDGenerator struct {
	GenerateFunc func() string
	mu           sync.Mutex
	counter      int
}

func NewFakeIDGenerator() *FakeIDGenerator {
	return &FakeIDGenerator{}
}

func (m *FakeIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("fake-id-%d", m.counter)
}

// FakeCache is an in-memory fake of Cache. TTLs are recorded, not enforced.
type FakeCache struct {
	mu   sync.RWMutex
	data map[string]string

	GetFunc          func(ctx context.Context, key string) (string, error)
	SetFunc          func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc       func(ctx context.Context, key string) error
	DeletePrefixFunc func(ctx context.Context, prefix string) error
}

func NewFakeCache() *FakeCache {
	return &FakeCache{
		data: make(map[string]string),
	}
}

func (m *FakeCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *FakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *FakeCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *FakeCache) DeletePrefix(ctx context.Context, prefix string) error {
	if m.DeletePrefixFunc != nil {
		return m.DeletePrefixFunc(ctx, prefix)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

// FakeRetrier runs the operation once, or as configured.
type FakeRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
	Calls     int
}

func NewFakeRetrier() *FakeRetrier {
	return &FakeRetrier{}
}

func (m *FakeRetrier) Retry(ctx context.Context, operation func() error) error {
	m.Calls++
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
