package storage

import (
	"context"
	"database/sql"
	"fmt"

	"sabor-express/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EnsureSchema creates the tables the service needs. Statements are idempotent
// so the service can run against a fresh or an existing database.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
			image TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ingredients (
			id UUID PRIMARY KEY,
			product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_name TEXT NOT NULL,
			customer_phone TEXT NOT NULL DEFAULT '',
			delivery_address TEXT NOT NULL DEFAULT '',
			payment_method TEXT NOT NULL DEFAULT 'cash',
			total NUMERIC(10,2) NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			qr_code BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id UUID NOT NULL,
			product_name TEXT NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			price NUMERIC(10,2) NOT NULL,
			removed_ingredients TEXT[] NOT NULL DEFAULT '{}'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ingredients_product_id ON ingredients(product_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}

type ProductRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) List(ctx context.Context, includeUnavailable bool) ([]domain.Product, error) {
	query := `
		SELECT id, name, description, price, image, category, available, created_at
		FROM products
		ORDER BY created_at DESC`
	if !includeUnavailable {
		query = `
		SELECT id, name, description, price, image, category, available, created_at
		FROM products
		WHERE available = TRUE
		ORDER BY created_at DESC`
	}

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.Category, &p.Available, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range products {
		ingredients, err := r.listIngredients(ctx, products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].Ingredients = ingredients
	}

	return products, nil
}

func (r *ProductRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, description, price, image, category, available, created_at
		FROM products WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.Category, &p.Available, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	ingredients, err := r.listIngredients(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Ingredients = ingredients
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO products (id, name, description, price, image, category, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, product.ID, product.Name, product.Description, product.Price, product.Image, product.Category, product.Available).
		Scan(&product.CreatedAt)
	if err != nil {
		return err
	}

	if err := insertIngredients(ctx, tx, product); err != nil {
		return err
	}

	return tx.Commit()
}

// Update replaces the product row and its whole ingredient list: prior rows
// are deleted before the new ones are inserted, never diffed.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, image = $4, category = $5, available = $6
		WHERE id = $7
	`, product.Name, product.Description, product.Price, product.Image, product.Category, product.Available, product.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM ingredients WHERE product_id = $1`, product.ID); err != nil {
		return err
	}
	if err := insertIngredients(ctx, tx, product); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ingredients WHERE product_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

func (r *ProductRepository) listIngredients(ctx context.Context, productID string) ([]domain.Ingredient, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, product_id, name FROM ingredients WHERE product_id = $1 ORDER BY name
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := []domain.Ingredient{}
	for rows.Next() {
		var ing domain.Ingredient
		if err := rows.Scan(&ing.ID, &ing.ProductID, &ing.Name); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

func insertIngredients(ctx context.Context, tx *sql.Tx, product *domain.Product) error {
	for i := range product.Ingredients {
		ing := &product.Ingredients[i]
		if ing.ID == "" {
			ing.ID = uuid.NewString()
		}
		ing.ProductID = product.ID
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO ingredients (id, product_id, name) VALUES ($1, $2, $3)
		`, ing.ID, ing.ProductID, ing.Name); err != nil {
			return err
		}
	}
	return nil
}

type OrderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// Create persists the order and its items in one transaction. The status is
// forced to pending regardless of what the caller set.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	order.Status = domain.StatusPending

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, customer_name, customer_phone, delivery_address, payment_method, total, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, order.ID, order.CustomerName, order.CustomerPhone, order.DeliveryAddress, order.PaymentMethod, order.Total, order.Status).
		Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price, removed_ingredients)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, item.ID, order.ID, item.ProductID, item.ProductName, item.Quantity, item.Price, pq.Array(item.RemovedIngredients)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, customer_name, customer_phone, delivery_address, payment_method, total, status, created_at, updated_at
		FROM orders WHERE id = $1
	`, id).Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.DeliveryAddress, &o.PaymentMethod, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, customer_name, customer_phone, delivery_address, payment_method, total, status, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.DeliveryAddress, &o.PaymentMethod, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.listItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// UpdateStatus records the requested status and bumps updated_at. It performs
// no transition checks; last write wins across concurrent admins.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *OrderRepository) SaveQRCode(ctx context.Context, orderID string, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE orders SET qr_code = $1 WHERE id = $2`, qr, orderID)
	return err
}

func (r *OrderRepository) GetQRCode(ctx context.Context, orderID string) ([]byte, error) {
	var qr []byte
	err := r.DB.QueryRowContext(ctx, `SELECT qr_code FROM orders WHERE id = $1`, orderID).Scan(&qr)
	if err != nil {
		return nil, err
	}
	return qr, nil
}

func (r *OrderRepository) listItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, product_id, product_name, quantity, price, removed_ingredients
		FROM order_items WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Quantity, &item.Price, pq.Array(&item.RemovedIngredients)); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
