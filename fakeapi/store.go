package fakeapi

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/andyle182810/storefront/money"
	"github.com/andyle182810/storefront/shopapi"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	orderCodePrefix     = "ORD-"
	orderCodeLength     = 8
	intentIDPrefix      = "pi_"
	defaultCurrency     = "usd"
	clientSecretInfix   = "_secret_"
	defaultPasswordCost = bcrypt.DefaultCost
)

var (
	ErrEmailTaken          = errors.New("fakeapi: email already registered")
	ErrInvalidCredentials  = errors.New("fakeapi: invalid email or password")
	ErrProductNotFound     = errors.New("fakeapi: product not found")
	ErrCategoryNotFound    = errors.New("fakeapi: category not found")
	ErrInsufficientStock   = errors.New("fakeapi: insufficient stock")
	ErrOrderNotFound       = errors.New("fakeapi: order not found")
	ErrOrderNotPending     = errors.New("fakeapi: order is not awaiting payment")
	ErrAmountMismatch      = errors.New("fakeapi: amount does not match order total")
	ErrPaymentIntentAbsent = errors.New("fakeapi: payment intent not found")
)

type user struct {
	email        string
	name         string
	passwordHash []byte
}

type order struct {
	shopapi.Order

	owner string
}

type paymentIntent struct {
	shopapi.PaymentIntent

	owner string
}

// Store is the in-memory state behind the fake backend. It is safe for
// concurrent use.
type Store struct {
	mu           sync.RWMutex
	passwordCost int
	now          func() time.Time

	users      map[string]*user
	categories map[int64]shopapi.Category
	products   map[int64]shopapi.Product
	orders     map[int64]*order
	intents    map[string]*paymentIntent
	nextOrder  int64
}

type StoreOption func(*Store)

// WithPasswordCost sets the bcrypt cost; tests use bcrypt.MinCost.
func WithPasswordCost(cost int) StoreOption {
	return func(s *Store) {
		s.passwordCost = cost
	}
}

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithCatalog replaces the seeded catalog.
func WithCatalog(categories []shopapi.Category, products []shopapi.Product) StoreOption {
	return func(s *Store) {
		s.categories = make(map[int64]shopapi.Category, len(categories))
		for _, category := range categories {
			s.categories[category.ID] = category
		}

		s.products = make(map[int64]shopapi.Product, len(products))
		for _, product := range products {
			s.products[product.ID] = product
		}
	}
}

func NewStore(opts ...StoreOption) *Store {
	store := &Store{
		mu:           sync.RWMutex{},
		passwordCost: defaultPasswordCost,
		now:          time.Now,
		users:        make(map[string]*user),
		categories:   nil,
		products:     nil,
		orders:       make(map[int64]*order),
		intents:      make(map[string]*paymentIntent),
		nextOrder:    0,
	}

	WithCatalog(SeedCategories(), SeedProducts())(store)

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterUser stores a new account and returns the display name used in
// issued tokens.
func (s *Store) RegisterUser(req shopapi.RegisterRequest) (string, error) {
	email := normalizeEmail(req.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.passwordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		return "", ErrEmailTaken
	}

	name := strings.TrimSpace(req.FirstName + " " + req.LastName)
	s.users[email] = &user{email: email, name: name, passwordHash: hash}

	return name, nil
}

// Authenticate returns the user's normalized email and display name.
func (s *Store) Authenticate(req shopapi.LoginRequest) (string, string, error) {
	email := normalizeEmail(req.Email)

	s.mu.RLock()
	account, ok := s.users[email]
	s.mu.RUnlock()

	if !ok {
		return "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(req.Password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	return account.email, account.name, nil
}

func sortedValues[K comparable, V any](m map[K]V, id func(V) int64) []V {
	values := make([]V, 0, len(m))
	for _, v := range m {
		values = append(values, v)
	}

	slices.SortFunc(values, func(a, b V) int { return cmp.Compare(id(a), id(b)) })

	return values
}

func (s *Store) Categories() []shopapi.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedValues(s.categories, func(c shopapi.Category) int64 { return c.ID })
}

func (s *Store) Products() []shopapi.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedValues(s.products, func(p shopapi.Product) int64 { return p.ID })
}

func (s *Store) Product(id int64) (shopapi.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return shopapi.Product{}, ErrProductNotFound
	}

	return product, nil
}

func (s *Store) ProductsByCategory(categoryID int64) ([]shopapi.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.categories[categoryID]; !ok {
		return nil, ErrCategoryNotFound
	}

	products := make([]shopapi.Product, 0)

	for _, product := range sortedValues(s.products, func(p shopapi.Product) int64 { return p.ID }) {
		if product.CategoryID == categoryID {
			products = append(products, product)
		}
	}

	return products, nil
}

// CreateOrder reserves stock for every line and records a pending order.
// Nothing is reserved when any line fails.
func (s *Store) CreateOrder(owner string, req shopapi.CreateOrderRequest) (shopapi.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requested := make(map[int64]int, len(req.Items))
	for _, item := range req.Items {
		requested[item.ProductID] += item.Quantity
	}

	for productID, quantity := range requested {
		product, ok := s.products[productID]
		if !ok {
			return shopapi.Order{}, fmt.Errorf("%w: %d", ErrProductNotFound, productID)
		}

		if product.StockQuantity < quantity {
			return shopapi.Order{}, fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
		}
	}

	items := make([]shopapi.OrderItem, 0, len(req.Items))
	total := money.Zero

	for _, line := range req.Items {
		product := s.products[line.ProductID]
		product.StockQuantity -= line.Quantity
		s.products[line.ProductID] = product

		subtotal := product.Price.MulInt(int64(line.Quantity))
		total = total.Add(subtotal)

		items = append(items, shopapi.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			Subtotal:    subtotal,
		})
	}

	s.nextOrder++

	created := &order{
		Order: shopapi.Order{
			ID:              s.nextOrder,
			OrderCode:       newOrderCode(),
			Status:          shopapi.OrderStatusPending,
			TotalAmount:     total,
			ShippingAddress: req.ShippingAddress,
			Items:           items,
			CreatedAt:       s.now().UTC(),
		},
		owner: owner,
	}
	s.orders[created.ID] = created

	return created.Order, nil
}

func newOrderCode() string {
	return orderCodePrefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:orderCodeLength])
}

func (s *Store) Orders(owner string) []shopapi.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]shopapi.Order, 0)

	for _, o := range sortedValues(s.orders, func(o *order) int64 { return o.ID }) {
		if o.owner == owner {
			orders = append(orders, o.Order)
		}
	}

	return orders
}

// Order hides orders owned by someone else behind ErrOrderNotFound.
func (s *Store) Order(owner string, id int64) (shopapi.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok || o.owner != owner {
		return shopapi.Order{}, ErrOrderNotFound
	}

	return o.Order, nil
}

func (s *Store) OrderByCode(owner, code string) (shopapi.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.OrderCode == code && o.owner == owner {
			return o.Order, nil
		}
	}

	return shopapi.Order{}, ErrOrderNotFound
}

func (s *Store) CreatePaymentIntent(owner string, req shopapi.PaymentIntentRequest) (shopapi.PaymentIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[req.OrderID]
	if !ok || o.owner != owner {
		return shopapi.PaymentIntent{}, ErrOrderNotFound
	}

	if o.Status != shopapi.OrderStatusPending {
		return shopapi.PaymentIntent{}, ErrOrderNotPending
	}

	if !req.Amount.Equal(o.TotalAmount) {
		return shopapi.PaymentIntent{}, ErrAmountMismatch
	}

	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	id := intentIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")

	intent := &paymentIntent{
		PaymentIntent: shopapi.PaymentIntent{
			PaymentIntentID: id,
			ClientSecret:    id + clientSecretInfix + uuid.NewString()[:orderCodeLength],
			Amount:          o.TotalAmount,
			Currency:        currency,
			OrderID:         o.ID,
		},
		owner: owner,
	}
	s.intents[id] = intent

	return intent.PaymentIntent, nil
}

// ConfirmPayment settles the intent's order. A failed payment releases the
// reserved stock.
func (s *Store) ConfirmPayment(owner, intentID string, succeeded bool) (shopapi.PaymentConfirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent, ok := s.intents[intentID]
	if !ok || intent.owner != owner {
		return shopapi.PaymentConfirmation{}, ErrPaymentIntentAbsent
	}

	o := s.orders[intent.OrderID]
	if o.Status != shopapi.OrderStatusPending {
		return shopapi.PaymentConfirmation{}, ErrOrderNotPending
	}

	if succeeded {
		o.Status = shopapi.OrderStatusPaid
	} else {
		o.Status = shopapi.OrderStatusPaymentFailed

		for _, item := range o.Items {
			product := s.products[item.ProductID]
			product.StockQuantity += item.Quantity
			s.products[item.ProductID] = product
		}
	}

	return shopapi.PaymentConfirmation{
		PaymentIntentID: intentID,
		OrderCode:       o.OrderCode,
		Status:          o.Status,
	}, nil
}
