package service

import (
	"context"
	"errors"
	"fmt"

	"sabor-express/internal/domain"

	"go.uber.org/zap"
)

var ErrUnknownStatus = errors.New("unknown order status")

type OrderService struct {
	orders    OrderRepository
	publisher ChangePublisher
	qr        QRGenerator
	logger    *zap.SugaredLogger
}

func NewOrderService(orders OrderRepository, publisher ChangePublisher, qr QRGenerator, logger *zap.SugaredLogger) *OrderService {
	return &OrderService{
		orders:    orders,
		publisher: publisher,
		qr:        qr,
		logger:    logger,
	}
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.Get(ctx, id)
}

// UpdateStatus is the single entry point for status changes. The machine is
// deliberately permissive: any known status may follow any other, so admins
// can correct mistakes (delivered back to pending included). Only unknown
// status values are rejected. If the repository write fails the change is not
// applied and the caller must retry explicitly.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, ErrUnknownStatus
	}

	order, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishChange(ctx, domain.TableOrders, domain.OpUpdate); err != nil {
			s.logger.Errorw("failed to publish order change", "order_id", id, "error", err)
		}
	}

	s.logger.Infow("order status updated", "order_id", id, "status", status)
	return order, nil
}

func (s *OrderService) GetQRCode(ctx context.Context, orderID string) ([]byte, error) {
	qr, err := s.orders.GetQRCode(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qr != nil {
		regenerated, err := s.qr.Generate(orderID)
		if err != nil {
			return nil, err
		}
		if err := s.orders.SaveQRCode(ctx, orderID, regenerated); err != nil {
			s.logger.Warnw("failed to cache regenerated QR code", "order_id", orderID, "error", err)
		}
		return regenerated, nil
	}
	return qr, nil
}

var _ OrderServiceInterface = (*OrderService)(nil)
