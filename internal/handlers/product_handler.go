package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/avendel/catalog-api/internal/models"
	"github.com/avendel/catalog-api/internal/repository"
	"github.com/avendel/catalog-api/internal/service"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service  *service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.service.ListProducts(ctx)
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products, h.logger)
}

// GetProduct handles GET /api/products/{productId}
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Product not found
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := chi.URLParam(r, "productId")

	product, err := h.service.GetProduct(ctx, productID)
	if err != nil {
		h.writeProductError(w, err, productID, "get")
		return
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}

// CreateProduct handles POST /api/products
// - 201: product created
// - 400: malformed body or validation failure
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("malformed create product body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.logger.Warn("create product validation failed", "error", err)
		writeError(w, http.StatusBadRequest, "Name, category and a positive price are required", h.logger)
		return
	}

	product, err := h.service.CreateProduct(ctx, req)
	if err != nil {
		h.logger.Error("failed to create product", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	h.logger.Info("product created", "productId", product.ID.Hex(), "name", product.Name)
	writeJSON(w, http.StatusCreated, product, h.logger)
}

// UpdateProduct handles PUT /api/products/{productId}
// Accepts a partial update; omitted fields are left unchanged.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := chi.URLParam(r, "productId")

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("malformed update product body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.logger.Warn("update product validation failed", "error", err)
		writeError(w, http.StatusBadRequest, "Updated fields must be non-empty with a positive price", h.logger)
		return
	}

	product, err := h.service.UpdateProduct(ctx, productID, req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyUpdate) {
			writeError(w, http.StatusBadRequest, "Update contains no fields", h.logger)
			return
		}
		h.writeProductError(w, err, productID, "update")
		return
	}

	h.logger.Info("product updated", "productId", productID)
	writeJSON(w, http.StatusOK, product, h.logger)
}

// DeleteProduct handles DELETE /api/products/{productId}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := chi.URLParam(r, "productId")

	if err := h.service.DeleteProduct(ctx, productID); err != nil {
		h.writeProductError(w, err, productID, "delete")
		return
	}

	h.logger.Info("product deleted", "productId", productID)
	writeJSON(w, http.StatusOK, map[string]string{"deleted": productID}, h.logger)
}

// writeProductError maps service and repository errors to HTTP responses
func (h *ProductHandler) writeProductError(w http.ResponseWriter, err error, productID, op string) {
	switch {
	case errors.Is(err, service.ErrInvalidProductID):
		h.logger.Warn("invalid product ID", "productId", productID, "op", op)
		writeError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
	case errors.Is(err, repository.ErrProductNotFound):
		h.logger.Info("product not found", "productId", productID, "op", op)
		writeError(w, http.StatusNotFound, "Product not found", h.logger)
	default:
		h.logger.Error("product operation failed", "productId", productID, "op", op, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}
