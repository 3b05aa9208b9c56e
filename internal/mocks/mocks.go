// Package mocks holds testify mocks for the service-layer interfaces.
package mocks

import (
	"context"
	"testing"

	"sabor-express/internal/domain"
	"sabor-express/internal/service"

	"github.com/stretchr/testify/mock"
)

type ProductRepository struct{ mock.Mock }

func NewProductRepository(t *testing.T) *ProductRepository {
	m := &ProductRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ProductRepository) List(ctx context.Context, includeUnavailable bool) ([]domain.Product, error) {
	args := m.Called(ctx, includeUnavailable)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.Error(1)
}

func (m *ProductRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func (m *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ service.ProductRepository = (*ProductRepository)(nil)

type OrderRepository struct{ mock.Mock }

func NewOrderRepository(t *testing.T) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

func (m *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func (m *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	args := m.Called(ctx, id, status)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

func (m *OrderRepository) SaveQRCode(ctx context.Context, orderID string, qr []byte) error {
	return m.Called(ctx, orderID, qr).Error(0)
}

func (m *OrderRepository) GetQRCode(ctx context.Context, orderID string) ([]byte, error) {
	args := m.Called(ctx, orderID)
	qr, _ := args.Get(0).([]byte)
	return qr, args.Error(1)
}

var _ service.OrderRepository = (*OrderRepository)(nil)

type ChangePublisher struct{ mock.Mock }

func NewChangePublisher(t *testing.T) *ChangePublisher {
	m := &ChangePublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ChangePublisher) PublishChange(ctx context.Context, table, op string) error {
	return m.Called(ctx, table, op).Error(0)
}

var _ service.ChangePublisher = (*ChangePublisher)(nil)

type QRGenerator struct{ mock.Mock }

func NewQRGenerator(t *testing.T) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *QRGenerator) Generate(orderID string) ([]byte, error) {
	args := m.Called(orderID)
	qr, _ := args.Get(0).([]byte)
	return qr, args.Error(1)
}

var _ service.QRGenerator = (*QRGenerator)(nil)

type CatalogServiceInterface struct{ mock.Mock }

func NewCatalogServiceInterface(t *testing.T) *CatalogServiceInterface {
	m := &CatalogServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CatalogServiceInterface) List(ctx context.Context, includeUnavailable bool) ([]domain.Product, error) {
	args := m.Called(ctx, includeUnavailable)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.Error(1)
}

func (m *CatalogServiceInterface) Get(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func (m *CatalogServiceInterface) Create(ctx context.Context, product *domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *CatalogServiceInterface) Update(ctx context.Context, id string, product *domain.Product) error {
	return m.Called(ctx, id, product).Error(0)
}

func (m *CatalogServiceInterface) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ service.CatalogServiceInterface = (*CatalogServiceInterface)(nil)

type CheckoutServiceInterface struct{ mock.Mock }

func NewCheckoutServiceInterface(t *testing.T) *CheckoutServiceInterface {
	m := &CheckoutServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CheckoutServiceInterface) Submit(ctx context.Context, sessionID string, req service.CheckoutRequest) (*domain.Order, error) {
	args := m.Called(ctx, sessionID, req)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

var _ service.CheckoutServiceInterface = (*CheckoutServiceInterface)(nil)

type OrderServiceInterface struct{ mock.Mock }

func NewOrderServiceInterface(t *testing.T) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderServiceInterface) List(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func (m *OrderServiceInterface) Get(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

func (m *OrderServiceInterface) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	args := m.Called(ctx, id, status)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

func (m *OrderServiceInterface) GetQRCode(ctx context.Context, orderID string) ([]byte, error) {
	args := m.Called(ctx, orderID)
	qr, _ := args.Get(0).([]byte)
	return qr, args.Error(1)
}

var _ service.OrderServiceInterface = (*OrderServiceInterface)(nil)

type DashboardServiceInterface struct{ mock.Mock }

func NewDashboardServiceInterface(t *testing.T) *DashboardServiceInterface {
	m := &DashboardServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *DashboardServiceInterface) Overview(ctx context.Context) (*service.DashboardOverview, error) {
	args := m.Called(ctx)
	overview, _ := args.Get(0).(*service.DashboardOverview)
	return overview, args.Error(1)
}

var _ service.DashboardServiceInterface = (*DashboardServiceInterface)(nil)

type SettingsServiceInterface struct{ mock.Mock }

func NewSettingsServiceInterface(t *testing.T) *SettingsServiceInterface {
	m := &SettingsServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SettingsServiceInterface) Get(ctx context.Context, clientID string) (domain.NotificationSettings, error) {
	args := m.Called(ctx, clientID)
	settings, _ := args.Get(0).(domain.NotificationSettings)
	return settings, args.Error(1)
}

func (m *SettingsServiceInterface) Update(ctx context.Context, clientID string, settings domain.NotificationSettings) (domain.NotificationSettings, error) {
	args := m.Called(ctx, clientID, settings)
	saved, _ := args.Get(0).(domain.NotificationSettings)
	return saved, args.Error(1)
}

var _ service.SettingsServiceInterface = (*SettingsServiceInterface)(nil)
