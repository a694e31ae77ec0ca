package handler

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/saofrance/shop-api/internal/auth"
	"github.com/saofrance/shop-api/internal/catalog"
	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/ledger"
	"github.com/saofrance/shop-api/internal/shop"
)

// Query parameters understood by the shop endpoints
const (
	QueryIncludeInactive = "include_inactive"
	QueryClaimTarget     = "target"
)

// CreateProductRequest is the body of POST /shop/products
type CreateProductRequest struct {
	Name               string          `json:"name" validate:"required,max=128"`
	Description        string          `json:"description" validate:"max=512"`
	DescriptionDetails string          `json:"description_details" validate:"max=4096"`
	ImageURL           string          `json:"image_url" validate:"omitempty,url,max=512"`
	Price              decimal.Decimal `json:"price"`
	Currency           string          `json:"currency" validate:"required,currency"`
	Category           string          `json:"category" validate:"required,category"`
	ProcessorProductID string          `json:"processor_product_id" validate:"max=128"`
	Reward             domain.Reward   `json:"reward"`
	Active             *bool           `json:"active"`
}

// EditProductRequest is the body of PUT /shop/products/{id}; absent fields are unchanged
type EditProductRequest struct {
	Name               *string          `json:"name" validate:"omitempty,min=1,max=128"`
	Description        *string          `json:"description" validate:"omitempty,max=512"`
	DescriptionDetails *string          `json:"description_details" validate:"omitempty,max=4096"`
	ImageURL           *string          `json:"image_url" validate:"omitempty,url,max=512"`
	Price              *decimal.Decimal `json:"price"`
	Currency           *string          `json:"currency" validate:"omitempty,currency"`
	Category           *string          `json:"category" validate:"omitempty,category"`
	ProcessorProductID *string          `json:"processor_product_id" validate:"omitempty,max=128"`
	Reward             *domain.Reward   `json:"reward"`
	Active             *bool            `json:"active"`
}

// HandleListProducts lists the catalog. Catalog managers may pass
// include_inactive=true to see hidden items.
// @Summary List products
// @Tags shop
// @Produce json
// @Param include_inactive query bool false "Include inactive items (catalog managers only)"
// @Success 200 {array} domain.CatalogItem
// @Router /api/v1/shop/products [get]
func HandleListProducts(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		includeInactive, _ := strconv.ParseBool(r.URL.Query().Get(QueryIncludeInactive))
		if includeInactive {
			acc, ok := auth.AccountFromContext(r.Context())
			includeInactive = ok && acc.HasAnyRole(domain.CatalogManagers...)
		}

		items, err := svc.List(r.Context(), includeInactive)
		if err != nil {
			respondServiceError(w, r, "list products", err)
			return
		}
		if items == nil {
			items = []domain.CatalogItem{}
		}
		respondJSON(w, http.StatusOK, items)
	}
}

// HandleGetProduct returns one catalog item
// @Summary Get a product
// @Tags shop
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.CatalogItem
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/shop/products/{id} [get]
func HandleGetProduct(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := getPathParam(w, r, "id")
		if !ok {
			return
		}
		item, err := svc.Get(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "get product", err)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

// HandleCreateProduct adds a catalog item
// @Summary Create a product
// @Tags shop
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProductRequest true "Product"
// @Success 201 {object} domain.CatalogItem
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/shop/products [post]
func HandleCreateProduct(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateProductRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create product"); err != nil {
			return
		}

		item, err := svc.Create(r.Context(), catalog.CreateInput{
			Name:               req.Name,
			Description:        req.Description,
			DescriptionDetails: req.DescriptionDetails,
			ImageURL:           req.ImageURL,
			Price:              req.Price,
			Currency:           domain.CurrencyKind(req.Currency),
			Category:           domain.Category(req.Category),
			ProcessorProductID: req.ProcessorProductID,
			Reward:             req.Reward,
			Active:             req.Active,
		})
		if err != nil {
			respondServiceError(w, r, "create product", err)
			return
		}
		respondJSON(w, http.StatusCreated, item)
	}
}

// HandleEditProduct applies a partial update to a catalog item
// @Summary Edit a product
// @Tags shop
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body EditProductRequest true "Fields to change"
// @Success 200 {object} domain.CatalogItem
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/shop/products/{id} [put]
func HandleEditProduct(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := getPathParam(w, r, "id")
		if !ok {
			return
		}
		var req EditProductRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Edit product"); err != nil {
			return
		}

		in := catalog.EditInput{
			Name:               req.Name,
			Description:        req.Description,
			DescriptionDetails: req.DescriptionDetails,
			ImageURL:           req.ImageURL,
			Price:              req.Price,
			ProcessorProductID: req.ProcessorProductID,
			Reward:             req.Reward,
			Active:             req.Active,
		}
		if req.Currency != nil {
			c := domain.CurrencyKind(*req.Currency)
			in.Currency = &c
		}
		if req.Category != nil {
			c := domain.Category(*req.Category)
			in.Category = &c
		}

		item, err := svc.Edit(r.Context(), id, in)
		if err != nil {
			respondServiceError(w, r, "edit product", err)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

// HandleRemoveProduct deletes a catalog item. Past transactions keep their snapshot.
// @Summary Remove a product
// @Tags shop
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/shop/products/{id} [delete]
func HandleRemoveProduct(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := getPathParam(w, r, "id")
		if !ok {
			return
		}
		if err := svc.Remove(r.Context(), id); err != nil {
			respondServiceError(w, r, "remove product", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgProductRemoved})
	}
}

// HandlePurchaseWithPoints buys a points-priced item for the caller
// @Summary Buy with points
// @Tags shop
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/shop/products/{id}/pay [post]
func HandlePurchaseWithPoints(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, ok := currentAccount(w, r)
		if !ok {
			return
		}
		id, ok := getPathParam(w, r, "id")
		if !ok {
			return
		}
		entry, err := svc.PurchaseWithPoints(r.Context(), acc.ID, id)
		if err != nil {
			respondServiceError(w, r, "purchase with points", err)
			return
		}
		respondJSON(w, http.StatusCreated, entry)
	}
}

// HandleListClaims lists confirmed purchases waiting for in-game delivery
// @Summary Pending claims
// @Tags game
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} domain.ClaimableTransaction
// @Router /api/v1/shop/claims [get]
func HandleListClaims(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := svc.ListClaimable(r.Context())
		if err != nil {
			respondServiceError(w, r, "list claims", err)
			return
		}
		if claims == nil {
			claims = []domain.ClaimableTransaction{}
		}
		respondJSON(w, http.StatusOK, claims)
	}
}

// HandleClaim marks a purchase as delivered on a game server
// @Summary Claim a purchase
// @Tags game
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Transaction ID"
// @Param target query string false "primary or secondary" default(primary)
// @Success 200 {object} domain.Transaction
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/shop/claims/{id} [post]
func HandleClaim(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := getPathParam(w, r, "id")
		if !ok {
			return
		}
		target := domain.ClaimTarget(GetOptionalQueryParam(r, QueryClaimTarget, string(domain.ClaimPrimary)))
		entry, err := svc.Claim(r.Context(), id, target)
		if err != nil {
			respondServiceError(w, r, "claim", err)
			return
		}
		respondJSON(w, http.StatusOK, entry)
	}
}
