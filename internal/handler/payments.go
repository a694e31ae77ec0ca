package handler

import (
	"net/http"

	"github.com/saofrance/shop-api/internal/payment"
)

// CheckoutResponse carries the hosted checkout URL
type CheckoutResponse struct {
	URL string `json:"url"`
}

// ConfirmPaymentRequest is the body of POST /payments/confirm/{productId}.
// Status is the token embedded in the checkout success URL.
type ConfirmPaymentRequest struct {
	Status    string `json:"status" validate:"required,max=128"`
	SessionID string `json:"session_id" validate:"required,max=255"`
}

// HandleListPaymentProducts lists products known to the payment processor
// @Summary Processor products
// @Tags payments
// @Produce json
// @Success 200 {array} payment.Product
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/payments/products [get]
func HandleListPaymentProducts(svc payment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.ListProducts(r.Context())
		if err != nil {
			respondServiceError(w, r, "list processor products", err)
			return
		}
		if products == nil {
			products = []payment.Product{}
		}
		respondJSON(w, http.StatusOK, products)
	}
}

// HandleListActivePrices lists active processor prices
// @Summary Active prices
// @Tags payments
// @Produce json
// @Success 200 {array} payment.Price
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/payments/prices/active [get]
func HandleListActivePrices(svc payment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prices, err := svc.ListActivePrices(r.Context())
		if err != nil {
			respondServiceError(w, r, "list active prices", err)
			return
		}
		if prices == nil {
			prices = []payment.Price{}
		}
		respondJSON(w, http.StatusOK, prices)
	}
}

// HandleGetPrice returns one processor price
// @Summary Get a price
// @Tags payments
// @Produce json
// @Param id path string true "Price ID"
// @Success 200 {object} payment.Price
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/payments/prices/{id} [get]
func HandleGetPrice(svc payment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := getPathParam(w, r, "id")
		if !ok {
			return
		}
		price, err := svc.GetPrice(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "get price", err)
			return
		}
		respondJSON(w, http.StatusOK, price)
	}
}

// HandleCheckout opens a hosted checkout session for a real-money item
// @Summary Start a checkout
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Catalog item ID"
// @Success 200 {object} CheckoutResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/payments/checkout/{productId} [get]
func HandleCheckout(svc payment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, ok := currentAccount(w, r)
		if !ok {
			return
		}
		itemID, ok := getPathParam(w, r, "productId")
		if !ok {
			return
		}
		url, err := svc.CheckoutURL(r.Context(), acc, itemID)
		if err != nil {
			respondServiceError(w, r, "checkout", err)
			return
		}
		respondJSON(w, http.StatusOK, CheckoutResponse{URL: url})
	}
}

// HandleConfirmPayment records a completed checkout session as a purchase
// @Summary Confirm a payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Catalog item ID"
// @Param request body ConfirmPaymentRequest true "Checkout result"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/payments/confirm/{productId} [post]
func HandleConfirmPayment(svc payment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, ok := currentAccount(w, r)
		if !ok {
			return
		}
		itemID, ok := getPathParam(w, r, "productId")
		if !ok {
			return
		}
		var req ConfirmPaymentRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Confirm payment"); err != nil {
			return
		}

		entry, err := svc.ConfirmPayment(r.Context(), acc, itemID, req.Status, req.SessionID)
		if err != nil {
			respondServiceError(w, r, "confirm payment", err)
			return
		}
		respondJSON(w, http.StatusCreated, entry)
	}
}
