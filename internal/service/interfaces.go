package service

import (
	"context"

	"sabor-express/internal/domain"
)

type ProductRepository interface {
	List(ctx context.Context, includeUnavailable bool) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	SaveQRCode(ctx context.Context, orderID string, qr []byte) error
	GetQRCode(ctx context.Context, orderID string) ([]byte, error)
}

type SettingsRepository interface {
	Load(ctx context.Context, clientID string) (map[string]string, error)
	Save(ctx context.Context, clientID string, fields map[string]interface{}) error
}

type ChangePublisher interface {
	PublishChange(ctx context.Context, table, op string) error
}

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

type CatalogServiceInterface interface {
	List(ctx context.Context, includeUnavailable bool) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, id string, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type CheckoutServiceInterface interface {
	Submit(ctx context.Context, sessionID string, req CheckoutRequest) (*domain.Order, error)
}

type OrderServiceInterface interface {
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	GetQRCode(ctx context.Context, orderID string) ([]byte, error)
}

type DashboardServiceInterface interface {
	Overview(ctx context.Context) (*DashboardOverview, error)
}

type SettingsServiceInterface interface {
	Get(ctx context.Context, clientID string) (domain.NotificationSettings, error)
	Update(ctx context.Context, clientID string, settings domain.NotificationSettings) (domain.NotificationSettings, error)
}
