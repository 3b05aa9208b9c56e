package service_test

import (
	"context"
	"errors"
	"testing"

	"sabor-express/internal/domain"
	"sabor-express/internal/mocks"
	"sabor-express/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type checkoutFixture struct {
	svc       *service.CheckoutService
	carts     *service.CartManager
	products  *mocks.ProductRepository
	orders    *mocks.OrderRepository
	publisher *mocks.ChangePublisher
	qr        *mocks.QRGenerator
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	f := &checkoutFixture{
		carts:     service.NewCartManager(),
		products:  mocks.NewProductRepository(t),
		orders:    mocks.NewOrderRepository(t),
		publisher: mocks.NewChangePublisher(t),
		qr:        mocks.NewQRGenerator(t),
	}
	f.svc = service.NewCheckoutService(f.carts, f.products, f.orders, f.publisher, f.qr, zap.NewNop().Sugar())
	return f
}

func (f *checkoutFixture) expectSuccessfulCreate() {
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Order).ID = "order-1"
		}).
		Return(nil)
	f.qr.On("Generate", "order-1").Return([]byte("png"), nil)
	f.orders.On("SaveQRCode", mock.Anything, "order-1", []byte("png")).Return(nil)
	f.publisher.On("PublishChange", mock.Anything, domain.TableOrders, domain.OpInsert).Return(nil)
}

func TestCheckout_ValidationFailuresSkipRepository(t *testing.T) {
	tests := []struct {
		name          string
		req           service.CheckoutRequest
		expectedError error
	}{
		{
			name:          "empty name",
			req:           service.CheckoutRequest{CustomerName: "", DeliveryAddress: "Rua A, 1"},
			expectedError: service.ErrEmptyCustomerName,
		},
		{
			name:          "whitespace name",
			req:           service.CheckoutRequest{CustomerName: "   ", DeliveryAddress: "Rua A, 1"},
			expectedError: service.ErrEmptyCustomerName,
		},
		{
			name:          "empty address",
			req:           service.CheckoutRequest{CustomerName: "Ana", DeliveryAddress: ""},
			expectedError: service.ErrEmptyDeliveryAddress,
		},
		{
			name:          "whitespace address",
			req:           service.CheckoutRequest{CustomerName: "Ana", DeliveryAddress: "  \t "},
			expectedError: service.ErrEmptyDeliveryAddress,
		},
		{
			name:          "unknown payment method",
			req:           service.CheckoutRequest{CustomerName: "Ana", DeliveryAddress: "Rua A, 1", PaymentMethod: "pix"},
			expectedError: service.ErrInvalidPaymentMethod,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newCheckoutFixture(t)
			f.carts.AddLine("s1", domain.Product{ID: "a", Price: 15.00}, nil)

			_, err := f.svc.Submit(context.Background(), "s1", testCase.req)

			assert.ErrorIs(t, err, testCase.expectedError)
			f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.products.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
			assert.Len(t, f.carts.Snapshot("s1").Lines, 1, "cart is preserved")
		})
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.Submit(context.Background(), "s1", service.CheckoutRequest{
		CustomerName:    "Ana",
		DeliveryAddress: "Rua A, 1",
	})

	assert.ErrorIs(t, err, service.ErrEmptyCart)
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckout_TotalIncludesDeliveryFee(t *testing.T) {
	f := newCheckoutFixture(t)
	burger := domain.Product{ID: "a", Name: "Picanha Burger", Price: 15.00, Available: true}
	drink := domain.Product{ID: "b", Name: "Guarana", Price: 3.99, Available: true}
	f.products.On("Get", mock.Anything, "a").Return(&burger, nil)
	f.products.On("Get", mock.Anything, "b").Return(&drink, nil)
	f.expectSuccessfulCreate()

	f.carts.AddLine("s1", burger, nil)
	f.carts.SetQuantity("s1", service.LineKey("a", nil), 2)
	f.carts.AddLine("s1", drink, nil)

	order, err := f.svc.Submit(context.Background(), "s1", service.CheckoutRequest{
		CustomerName:    "Ana",
		CustomerPhone:   "11 99999-0000",
		DeliveryAddress: "Rua A, 1",
		PaymentMethod:   "card",
	})

	assert.NoError(t, err)
	assert.InDelta(t, 38.99, order.Total, 1e-9) // 15.00*2 + 3.99 + 5.00
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, domain.PaymentCard, order.PaymentMethod)
	assert.Len(t, order.Items, 2)
	assert.Empty(t, f.carts.Snapshot("s1").Lines, "cart is cleared after success")
}

func TestCheckout_SnapshotsCurrentCatalogPrice(t *testing.T) {
	f := newCheckoutFixture(t)
	// The cart holds the product as it looked when added; the catalog has
	// since been edited. The order must carry the current name and price.
	f.carts.AddLine("s1", domain.Product{ID: "a", Name: "Old Name", Price: 9.99}, nil)
	f.products.On("Get", mock.Anything, "a").
		Return(&domain.Product{ID: "a", Name: "Picanha Burger", Price: 15.00, Available: true}, nil)
	f.expectSuccessfulCreate()

	order, err := f.svc.Submit(context.Background(), "s1", service.CheckoutRequest{
		CustomerName:    "Ana",
		DeliveryAddress: "Rua A, 1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Picanha Burger", order.Items[0].ProductName)
	assert.InDelta(t, 15.00, order.Items[0].Price, 1e-9)
	assert.InDelta(t, 15.00+domain.DeliveryFee, order.Total, 1e-9)
}

func TestCheckout_RepositoryFailurePreservesCart(t *testing.T) {
	f := newCheckoutFixture(t)
	f.carts.AddLine("s1", domain.Product{ID: "a", Price: 15.00}, nil)
	f.products.On("Get", mock.Anything, "a").
		Return(&domain.Product{ID: "a", Name: "Picanha Burger", Price: 15.00, Available: true}, nil)
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).
		Return(errors.New("connection refused"))

	_, err := f.svc.Submit(context.Background(), "s1", service.CheckoutRequest{
		CustomerName:    "Ana",
		DeliveryAddress: "Rua A, 1",
	})

	assert.Error(t, err)
	assert.Len(t, f.carts.Snapshot("s1").Lines, 1, "cart is unchanged after a failed submission")
	f.publisher.AssertNotCalled(t, "PublishChange", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_RemovedIngredientsReachOrderItems(t *testing.T) {
	f := newCheckoutFixture(t)
	burger := domain.Product{ID: "a", Name: "Picanha Burger", Price: 15.00, Available: true}
	f.carts.AddLine("s1", burger, []string{"onion", "pickles"})
	f.products.On("Get", mock.Anything, "a").Return(&burger, nil)
	f.expectSuccessfulCreate()

	order, err := f.svc.Submit(context.Background(), "s1", service.CheckoutRequest{
		CustomerName:    "Ana",
		DeliveryAddress: "Rua A, 1",
	})

	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"onion", "pickles"}, order.Items[0].RemovedIngredients)
}

func TestCheckout_DefaultsPaymentToCash(t *testing.T) {
	f := newCheckoutFixture(t)
	drink := domain.Product{ID: "b", Name: "Guarana", Price: 3.99, Available: true}
	f.carts.AddLine("s1", drink, nil)
	f.products.On("Get", mock.Anything, "b").Return(&drink, nil)
	f.expectSuccessfulCreate()

	order, err := f.svc.Submit(context.Background(), "s1", service.CheckoutRequest{
		CustomerName:    "Ana",
		DeliveryAddress: "Rua A, 1",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentCash, order.PaymentMethod)
}

func TestCheckout_QRFailureDoesNotFailOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	drink := domain.Product{ID: "b", Name: "Guarana", Price: 3.99, Available: true}
	f.carts.AddLine("s1", drink, nil)
	f.products.On("Get", mock.Anything, "b").Return(&drink, nil)
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Order).ID = "order-1"
		}).
		Return(nil)
	f.qr.On("Generate", "order-1").Return(nil, errors.New("encode failed"))
	f.publisher.On("PublishChange", mock.Anything, domain.TableOrders, domain.OpInsert).Return(nil)

	order, err := f.svc.Submit(context.Background(), "s1", service.CheckoutRequest{
		CustomerName:    "Ana",
		DeliveryAddress: "Rua A, 1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Empty(t, f.carts.Snapshot("s1").Lines)
}
