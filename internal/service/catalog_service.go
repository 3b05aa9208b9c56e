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
	ErrEmptyProductName = errors.New("product name is required")
	ErrNegativePrice    = errors.New("product price must not be negative")
	ErrInvalidCategory  = errors.New("invalid product category")
)

// CatalogService owns product and ingredient management. Reads serve both the
// storefront (available products only) and the admin back office (everything).
type CatalogService struct {
	products  ProductRepository
	publisher ChangePublisher
	logger    *zap.SugaredLogger
}

func NewCatalogService(products ProductRepository, publisher ChangePublisher, logger *zap.SugaredLogger) *CatalogService {
	return &CatalogService{
		products:  products,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *CatalogService) List(ctx context.Context, includeUnavailable bool) ([]domain.Product, error) {
	return s.products.List(ctx, includeUnavailable)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	s.publish(ctx, domain.OpInsert, product.ID)
	return nil
}

// Update rewrites the product and replaces its ingredient list wholesale.
func (s *CatalogService) Update(ctx context.Context, id string, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	product.ID = id

	if err := s.products.Update(ctx, product); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	s.publish(ctx, domain.OpUpdate, id)
	return nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.publish(ctx, domain.OpDelete, id)
	return nil
}

func (s *CatalogService) publish(ctx context.Context, op, productID string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishChange(ctx, domain.TableProducts, op); err != nil {
		s.logger.Errorw("failed to publish product change", "product_id", productID, "op", op, "error", err)
	}
}

func validateProduct(product *domain.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return ErrEmptyProductName
	}
	if product.Price < 0 {
		return ErrNegativePrice
	}
	if !product.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
