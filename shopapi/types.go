package shopapi

import (
	"time"

	"github.com/andyle182810/storefront/money"
)

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName"  validate:"required,max=100"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"                  validate:"required"`
	Description string `json:"description,omitempty"`
}

type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"                  validate:"required"`
	Description   string          `json:"description,omitempty"`
	Price         money.Amount    `json:"price"                 validate:"gte=0"`
	StockQuantity int             `json:"stockQuantity"         validate:"gte=0"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	CategoryID    int64           `json:"categoryId"`
}

type OrderItemRequest struct {
	ProductID int64 `json:"productId" validate:"required"`
	Quantity  int   `json:"quantity"  validate:"gt=0"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"           validate:"required,min=1,dive"`
	ShippingAddress string             `json:"shippingAddress" validate:"required"`
}

type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "PENDING"
	OrderStatusPaid          OrderStatus = "PAID"
	OrderStatusPaymentFailed OrderStatus = "PAYMENT_FAILED"
)

type OrderItem struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   money.Amount    `json:"unitPrice"`
	Subtotal    money.Amount    `json:"subtotal"`
}

type Order struct {
	ID              int64           `json:"id"`
	OrderCode       string          `json:"orderCode"       validate:"required"`
	Status          OrderStatus     `json:"status"          validate:"required"`
	TotalAmount     money.Amount    `json:"totalAmount"`
	ShippingAddress string          `json:"shippingAddress"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type PaymentIntentRequest struct {
	OrderID  int64           `json:"orderId"            validate:"required"`
	Amount   money.Amount    `json:"amount"             validate:"gt=0"`
	Currency string          `json:"currency,omitempty" validate:"omitempty,len=3"`
}

type PaymentIntent struct {
	PaymentIntentID string          `json:"paymentIntentId" validate:"required"`
	ClientSecret    string          `json:"clientSecret"`
	Amount          money.Amount    `json:"amount"`
	Currency        string          `json:"currency"`
	OrderID         int64           `json:"orderId"`
}

type PaymentConfirmation struct {
	PaymentIntentID string      `json:"paymentIntentId,omitempty"`
	OrderCode       string      `json:"orderCode,omitempty"`
	Status          OrderStatus `json:"status,omitempty"`
}
