package service

import (
	"context"
	"sync"
	"time"

	"kartpay/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error) {
	args := m.Called(ctx, phoneNumber)
	return args.Bool(0), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetActiveByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetAllActive(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateStock(ctx context.Context, tx pgx.Tx, productID int64, stock int, updatedAt time.Time) error {
	args := m.Called(ctx, tx, productID, stock, updatedAt)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	// Return a MockTx interface value, not a pointer
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetActiveCartByCustomer(ctx context.Context, customerID int64) (*model.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) CreateCart(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateForCheckout(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, orderID int64, status model.OrderStatus, updatedAt time.Time) error {
	args := m.Called(ctx, tx, orderID, status, updatedAt)
	return args.Error(0)
}

func (m *MockOrderRepository) InsertItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateTotal(ctx context.Context, tx pgx.Tx, orderID int64, total decimal.Decimal, updatedAt time.Time) error {
	args := m.Called(ctx, tx, orderID, total, updatedAt)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, tx pgx.Tx, payment *model.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, tx pgx.Tx, payment *model.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByOrderID(ctx context.Context, orderID int64) (*model.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

// MockCardTokenRepository is a mock implementation of CardTokenRepository.
type MockCardTokenRepository struct {
	mock.Mock
}

func (m *MockCardTokenRepository) Create(ctx context.Context, token *model.CardToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockCardTokenRepository) ExistsByToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Insert(ctx context.Context, entry *model.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.AuditLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuditLog), args.Error(1)
}

func (m *MockAuditRepository) ListByEntityID(ctx context.Context, entityID string) ([]model.AuditLog, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLog), args.Error(1)
}

func (m *MockAuditRepository) ListByEventType(ctx context.Context, eventType model.EventType, limit, offset int) ([]model.AuditLog, error) {
	args := m.Called(ctx, eventType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLog), args.Error(1)
}

func (m *MockAuditRepository) ListByEntityType(ctx context.Context, entityType string, limit, offset int) ([]model.AuditLog, error) {
	args := m.Called(ctx, entityType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLog), args.Error(1)
}

func (m *MockAuditRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]model.AuditLog, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLog), args.Error(1)
}

func (m *MockAuditRepository) ListByStatus(ctx context.Context, status model.EventStatus, limit, offset int) ([]model.AuditLog, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLog), args.Error(1)
}

func (m *MockAuditRepository) ListByDateRange(ctx context.Context, start, end time.Time, limit, offset int) ([]model.AuditLog, error) {
	args := m.Called(ctx, start, end, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLog), args.Error(1)
}

func (m *MockAuditRepository) ListByEventTypeAndStatus(ctx context.Context, eventType model.EventType, status model.EventStatus, limit, offset int) ([]model.AuditLog, error) {
	args := m.Called(ctx, eventType, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLog), args.Error(1)
}

// recordingAudit is an AuditService stub that records the event types and
// statuses it sees, in call order.
type recordingAudit struct {
	mu     sync.Mutex
	events []string
}

func (a *recordingAudit) LogEvent(ctx context.Context, eventTypeName, entityType, entityID, userID, description string, details any, status model.EventStatus, errorMessage string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, eventTypeName+":"+string(status))
}

func (a *recordingAudit) LogSuccess(ctx context.Context, eventTypeName, entityType, entityID, userID, description string, details any) {
	a.LogEvent(ctx, eventTypeName, entityType, entityID, userID, description, details, model.EventStatusSuccess, "")
}

func (a *recordingAudit) LogFailure(ctx context.Context, eventTypeName, entityType, entityID, userID, description, errorMessage string, details any) {
	a.LogEvent(ctx, eventTypeName, entityType, entityID, userID, description, details, model.EventStatusFailure, errorMessage)
}

func (a *recordingAudit) LogRetry(ctx context.Context, eventTypeName, entityType, entityID, userID, description string, details any) {
	a.LogEvent(ctx, eventTypeName, entityType, entityID, userID, description, details, model.EventStatusRetry, "")
}

func (a *recordingAudit) GetByID(ctx context.Context, id uuid.UUID) (*model.AuditLogResponse, error) {
	return nil, nil
}

func (a *recordingAudit) ListByEntityID(ctx context.Context, entityID string) ([]model.AuditLogResponse, error) {
	return nil, nil
}

func (a *recordingAudit) ListByEventType(ctx context.Context, eventType model.EventType, limit, offset int) ([]model.AuditLogResponse, error) {
	return nil, nil
}

func (a *recordingAudit) ListByEntityType(ctx context.Context, entityType string, limit, offset int) ([]model.AuditLogResponse, error) {
	return nil, nil
}

func (a *recordingAudit) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]model.AuditLogResponse, error) {
	return nil, nil
}

func (a *recordingAudit) ListByStatus(ctx context.Context, status model.EventStatus, limit, offset int) ([]model.AuditLogResponse, error) {
	return nil, nil
}

func (a *recordingAudit) ListByDateRange(ctx context.Context, start, end time.Time, limit, offset int) ([]model.AuditLogResponse, error) {
	return nil, nil
}

func (a *recordingAudit) ListByEventTypeAndStatus(ctx context.Context, eventType model.EventType, status model.EventStatus, limit, offset int) ([]model.AuditLogResponse, error) {
	return nil, nil
}

// recordingEmail is an EmailSender stub that counts sends.
type recordingEmail struct {
	mu       sync.Mutex
	approved []string
	failed   []string
}

func (e *recordingEmail) SendPaymentApproved(ctx context.Context, customerEmail, customerName, orderID, amount string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.approved = append(e.approved, orderID)
}

func (e *recordingEmail) SendPaymentFailed(ctx context.Context, customerEmail, customerName, orderID, failureReason string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failed = append(e.failed, orderID)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }
