package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"sabor-express/internal/domain"
	"sabor-express/internal/notify"
	"sabor-express/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Catalog   service.CatalogServiceInterface
	Carts     *service.CartManager
	Checkout  service.CheckoutServiceInterface
	Orders    service.OrderServiceInterface
	Dashboard service.DashboardServiceInterface
	Settings  service.SettingsServiceInterface
	Feed      *notify.Feed
	Logger    *zap.SugaredLogger
}

func NewHandler(
	catalog service.CatalogServiceInterface,
	carts *service.CartManager,
	checkout service.CheckoutServiceInterface,
	orders service.OrderServiceInterface,
	dashboard service.DashboardServiceInterface,
	settings service.SettingsServiceInterface,
	feed *notify.Feed,
	logger *zap.SugaredLogger,
) *Handler {
	return &Handler{
		Catalog:   catalog,
		Carts:     carts,
		Checkout:  checkout,
		Orders:    orders,
		Dashboard: dashboard,
		Settings:  settings,
		Feed:      feed,
		Logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	// storefront
	r.HandleFunc("/api/products", h.listProducts).Methods("GET")
	r.HandleFunc("/api/products/{id}", h.getProduct).Methods("GET")
	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/items/{key}", h.updateCartItem).Methods("PATCH")
	r.HandleFunc("/api/cart/items/{key}", h.removeCartItem).Methods("DELETE")
	r.HandleFunc("/api/checkout", h.checkout).Methods("POST")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	// back office
	r.HandleFunc("/api/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/admin/products", h.listAllProducts).Methods("GET")
	r.HandleFunc("/api/admin/products", h.createProduct).Methods("POST")
	r.HandleFunc("/api/admin/products/{id}", h.updateProduct).Methods("PUT")
	r.HandleFunc("/api/admin/products/{id}", h.deleteProduct).Methods("DELETE")
	r.HandleFunc("/api/admin/orders/{id}/status", h.updateOrderStatus).Methods("PATCH")
	r.HandleFunc("/api/dashboard", h.dashboard).Methods("GET")
	r.HandleFunc("/api/settings", h.getSettings).Methods("GET")
	r.HandleFunc("/api/settings", h.updateSettings).Methods("PUT")

	// change feed
	r.HandleFunc("/api/events", h.events).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "sabor-express",
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.List(r.Context(), false)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handler) listAllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.List(r.Context(), true)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.Catalog.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Catalog.Create(r.Context(), &product); err != nil {
		h.catalogError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.Catalog.Update(r.Context(), mux.Vars(r)["id"], &product)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.catalogError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	err := h.Catalog.Delete(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) catalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyProductName),
		errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrInvalidCategory):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		h.serverError(w, r, err)
	}
}

type addCartItemRequest struct {
	ProductID          string   `json:"product_id"`
	RemovedIngredients []string `json:"removed_ingredients"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	cart := h.Carts.Snapshot(sessionID)
	respondJSON(w, http.StatusOK, cartResponse(cart))
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	product, err := h.Catalog.Get(r.Context(), req.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if !product.Available {
		http.Error(w, "Product is not available", http.StatusUnprocessableEntity)
		return
	}

	// Removed ingredients must name ingredients the product actually has.
	known := make(map[string]bool, len(product.Ingredients))
	for _, ing := range product.Ingredients {
		known[ing.Name] = true
	}
	for _, name := range req.RemovedIngredients {
		if !known[name] {
			http.Error(w, fmt.Sprintf("Unknown ingredient: %s", name), http.StatusUnprocessableEntity)
			return
		}
	}

	line := h.Carts.AddLine(sessionID, *product, req.RemovedIngredients)
	respondJSON(w, http.StatusCreated, line)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req updateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.Carts.SetQuantity(sessionID, mux.Vars(r)["key"], req.Quantity) {
		http.Error(w, "Cart line not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, cartResponse(h.Carts.Snapshot(sessionID)))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if !h.Carts.RemoveLine(sessionID, mux.Vars(r)["key"]) {
		http.Error(w, "Cart line not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, cartResponse(h.Carts.Snapshot(sessionID)))
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req service.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Checkout.Submit(r.Context(), sessionID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCustomerName),
			errors.Is(err, service.ErrEmptyDeliveryAddress),
			errors.Is(err, service.ErrEmptyCart),
			errors.Is(err, service.ErrInvalidPaymentMethod):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			h.serverError(w, r, err)
		}
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qr, err := h.Orders.GetQRCode(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if errors.Is(err, service.ErrUnknownStatus) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Dashboard.Overview(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	settings, err := h.Settings.Get(r.Context(), clientID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	var settings domain.NotificationSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.Settings.Update(r.Context(), clientID, settings)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

// events streams "changed" pings for one table over SSE. The ping carries no
// row data; the client re-fetches through the regular endpoints.
func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	table := r.URL.Query().Get("table")
	if table != domain.TableOrders && table != domain.TableProducts {
		http.Error(w, "table must be orders or products", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sub := h.Feed.Subscribe(table)
	defer h.Feed.Unsubscribe(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-sub.C:
			fmt.Fprintf(w, "event: changed\ndata: %s\n\n", table)
			flusher.Flush()
		}
	}
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		http.Error(w, "X-Session-ID header is required", http.StatusBadRequest)
		return "", false
	}
	return sessionID, true
}

func (h *Handler) clientID(w http.ResponseWriter, r *http.Request) (string, bool) {
	clientID := r.Header.Get("X-Client-ID")
	if clientID == "" {
		http.Error(w, "X-Client-ID header is required", http.StatusBadRequest)
		return "", false
	}
	return clientID, true
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.Logger.Errorw("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func cartResponse(cart service.CartView) service.CartView {
	if cart.Lines == nil {
		cart.Lines = []service.CartLine{}
	}
	return cart
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
