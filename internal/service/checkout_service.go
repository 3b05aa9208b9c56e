package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sabor-express/internal/domain"

	"go.uber.org/zap"
)

var (
	ErrEmptyCustomerName    = errors.New("customer name is required")
	ErrEmptyDeliveryAddress = errors.New("delivery address is required")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

type CheckoutRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	DeliveryAddress string `json:"delivery_address"`
	PaymentMethod   string `json:"payment_method"`
}

type CheckoutService struct {
	carts     *CartManager
	products  ProductRepository
	orders    OrderRepository
	publisher ChangePublisher
	qr        QRGenerator
	logger    *zap.SugaredLogger
}

func NewCheckoutService(
	carts *CartManager,
	products ProductRepository,
	orders OrderRepository,
	publisher ChangePublisher,
	qr QRGenerator,
	logger *zap.SugaredLogger,
) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		products:  products,
		orders:    orders,
		publisher: publisher,
		qr:        qr,
		logger:    logger,
	}
}

// Submit converts the session's cart into a persisted order. Validation
// failures are reported before any repository call. On success the cart is
// cleared; on a repository failure the cart is left exactly as it was so the
// customer can retry.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string, req CheckoutRequest) (*domain.Order, error) {
	customerName := strings.TrimSpace(req.CustomerName)
	if customerName == "" {
		return nil, ErrEmptyCustomerName
	}
	deliveryAddress := strings.TrimSpace(req.DeliveryAddress)
	if deliveryAddress == "" {
		return nil, ErrEmptyDeliveryAddress
	}

	paymentMethod := domain.PaymentMethod(req.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = domain.PaymentCash
	}
	if !paymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	cart := s.carts.Snapshot(sessionID)
	if len(cart.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Snapshot the catalog's current name and price into each item. The price
	// is fixed at submission time and immune to later catalog edits.
	items := make([]domain.OrderItem, 0, len(cart.Lines))
	var subtotal float64
	for _, line := range cart.Lines {
		product, err := s.products.Get(ctx, line.Product.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load product %s: %w", line.Product.ID, err)
		}
		items = append(items, domain.OrderItem{
			ProductID:          product.ID,
			ProductName:        product.Name,
			Quantity:           line.Quantity,
			Price:              product.Price,
			RemovedIngredients: line.RemovedIngredients,
		})
		subtotal += product.Price * float64(line.Quantity)
	}

	order := &domain.Order{
		CustomerName:    customerName,
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		DeliveryAddress: deliveryAddress,
		PaymentMethod:   paymentMethod,
		Items:           items,
		Total:           subtotal + domain.DeliveryFee,
		Status:          domain.StatusPending,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if s.qr != nil {
		if qr, err := s.qr.Generate(order.ID); err == nil {
			if err := s.orders.SaveQRCode(ctx, order.ID, qr); err != nil {
				s.logger.Warnw("failed to store order QR code", "order_id", order.ID, "error", err)
			}
		} else {
			s.logger.Warnw("failed to generate order QR code", "order_id", order.ID, "error", err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishChange(ctx, domain.TableOrders, domain.OpInsert); err != nil {
			s.logger.Errorw("failed to publish order change", "order_id", order.ID, "error", err)
		}
	}

	s.carts.Clear(sessionID)
	s.logger.Infow("order created", "order_id", order.ID, "customer", order.CustomerName, "total", order.Total)

	return order, nil
}

var _ CheckoutServiceInterface = (*CheckoutService)(nil)
