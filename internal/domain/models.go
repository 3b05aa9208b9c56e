package domain

import "time"

// DeliveryFee is the fixed charge added once to every order total.
const DeliveryFee = 5.00

type ProductCategory string

const (
	CategoryBurger    ProductCategory = "burger"
	CategoryPizza     ProductCategory = "pizza"
	CategoryChurrasco ProductCategory = "churrasco"
	CategorySteak     ProductCategory = "steak"
	CategoryDrink     ProductCategory = "drink"
	CategoryDessert   ProductCategory = "dessert"
	CategorySnack     ProductCategory = "snack"
	CategoryCombo     ProductCategory = "combo"
)

var productCategories = map[ProductCategory]bool{
	CategoryBurger:    true,
	CategoryPizza:     true,
	CategoryChurrasco: true,
	CategorySteak:     true,
	CategoryDrink:     true,
	CategoryDessert:   true,
	CategorySnack:     true,
	CategoryCombo:     true,
}

func (c ProductCategory) Valid() bool {
	return productCategories[c]
}

type Ingredient struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	Image       string          `json:"image"`
	Category    ProductCategory `json:"category"`
	Available   bool            `json:"available"`
	Ingredients []Ingredient    `json:"ingredients"`
	CreatedAt   time.Time       `json:"created_at"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every status in display order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusPreparing,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCard
}

type OrderItem struct {
	ID                 string   `json:"id"`
	ProductID          string   `json:"product_id"`
	ProductName        string   `json:"product_name"`
	Quantity           int      `json:"quantity"`
	Price              float64  `json:"price"`
	RemovedIngredients []string `json:"removed_ingredients,omitempty"`
}

// Order is the persisted record of a checkout. Items carry the product name
// and price as they were at submission time; later catalog edits never touch
// past orders, and the total is fixed at creation.
type Order struct {
	ID              string        `json:"id"`
	CustomerName    string        `json:"customer_name"`
	CustomerPhone   string        `json:"customer_phone,omitempty"`
	DeliveryAddress string        `json:"delivery_address,omitempty"`
	PaymentMethod   PaymentMethod `json:"payment_method,omitempty"`
	Items           []OrderItem   `json:"items"`
	Total           float64       `json:"total"`
	Status          OrderStatus   `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
