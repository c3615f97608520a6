package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/avendel/catalog-api/internal/models"
	"github.com/avendel/catalog-api/internal/repository"
	"github.com/avendel/catalog-api/internal/service"
	"github.com/avendel/catalog-api/pkg/logger"
)

func newTestRouter(t *testing.T, seed []models.Product) (*chi.Mux, *repository.InMemoryProductRepository) {
	t.Helper()

	repo := repository.NewInMemoryProductRepository()
	for i := range seed {
		if err := repo.Create(context.Background(), &seed[i]); err != nil {
			t.Fatalf("failed to seed product: %v", err)
		}
	}

	svc := service.NewProductService(repo)
	handler := NewProductHandler(svc, logger.New("error"))

	r := chi.NewRouter()
	r.Get("/api/products", handler.ListProducts)
	r.Get("/api/products/{productId}", handler.GetProduct)
	r.Post("/api/products", handler.CreateProduct)
	r.Put("/api/products/{productId}", handler.UpdateProduct)
	r.Delete("/api/products/{productId}", handler.DeleteProduct)

	return r, repo
}

func TestListProducts(t *testing.T) {
	seed := []models.Product{
		{Name: "Chicken Waffle", Category: "Waffle", Price: 12.99},
		{Name: "Caesar Salad", Category: "Salad", Price: 8.99},
	}
	r, _ := newTestRouter(t, seed)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var products []models.Product
	if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(products) != 2 {
		t.Errorf("expected 2 products, got %d", len(products))
	}
}

func TestGetProduct_Success(t *testing.T) {
	seed := []models.Product{
		{Name: "Chicken Waffle", Category: "Waffle", Price: 12.99},
	}
	r, repo := newTestRouter(t, seed)

	all, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("failed to read seed data: %v", err)
	}
	id := all[0].ID.Hex()

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var product models.Product
	if err := json.NewDecoder(w.Body).Decode(&product); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if product.ID.Hex() != id {
		t.Errorf("expected product ID %s, got %s", id, product.ID.Hex())
	}
	if product.Name != "Chicken Waffle" {
		t.Errorf("expected product name 'Chicken Waffle', got %s", product.Name)
	}
	if product.Price != 12.99 {
		t.Errorf("expected product price 12.99, got %f", product.Price)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products/6574e2a1b3c4d5e6f7a8b9c0", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if response["error"] != "Product not found" {
		t.Errorf("expected error message 'Product not found', got %s", response["error"])
	}
}

func TestGetProduct_InvalidID(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	testCases := []struct {
		name string
		id   string
	}{
		{"letters", "invalid"},
		{"special chars", "abc@123"},
		{"numeric", "12345"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/products/"+tc.id, nil)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400 for ID %s, got %d", tc.id, w.Code)
			}

			var response map[string]string
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}

			if response["error"] != "Invalid ID supplied" {
				t.Errorf("expected error message 'Invalid ID supplied', got %s", response["error"])
			}
		})
	}
}

func TestCreateProduct(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	body := `{"name":"Margherita Pizza","category":"Pizza","price":14.99}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	var product models.Product
	if err := json.NewDecoder(w.Body).Decode(&product); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if product.ID.IsZero() {
		t.Error("expected an ID to be assigned")
	}
	if product.Name != "Margherita Pizza" {
		t.Errorf("expected name 'Margherita Pizza', got %s", product.Name)
	}
	if product.CreatedAt.IsZero() {
		t.Error("expected createdAt to be set")
	}
}

func TestCreateProduct_ValidationFailures(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	testCases := []struct {
		name string
		body string
	}{
		{"missing name", `{"category":"Pizza","price":14.99}`},
		{"missing category", `{"name":"Margherita Pizza","price":14.99}`},
		{"zero price", `{"name":"Margherita Pizza","category":"Pizza","price":0}`},
		{"negative price", `{"name":"Margherita Pizza","category":"Pizza","price":-1}`},
		{"malformed json", `{"name":`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	seed := []models.Product{
		{Name: "Greek Salad", Category: "Salad", Price: 9.49},
	}
	r, repo := newTestRouter(t, seed)

	all, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("failed to read seed data: %v", err)
	}
	id := all[0].ID.Hex()

	body := `{"price":10.49}`
	req := httptest.NewRequest(http.MethodPut, "/api/products/"+id, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var product models.Product
	if err := json.NewDecoder(w.Body).Decode(&product); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if product.Price != 10.49 {
		t.Errorf("expected price 10.49, got %f", product.Price)
	}
	if product.Name != "Greek Salad" {
		t.Errorf("expected name to be unchanged, got %s", product.Name)
	}
}

func TestUpdateProduct_EmptyBody(t *testing.T) {
	seed := []models.Product{
		{Name: "Greek Salad", Category: "Salad", Price: 9.49},
	}
	r, repo := newTestRouter(t, seed)

	all, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("failed to read seed data: %v", err)
	}
	id := all[0].ID.Hex()

	req := httptest.NewRequest(http.MethodPut, "/api/products/"+id, bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for empty update, got %d", w.Code)
	}
}

func TestDeleteProduct(t *testing.T) {
	seed := []models.Product{
		{Name: "Classic Burger", Category: "Burger", Price: 13.99},
	}
	r, repo := newTestRouter(t, seed)

	all, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("failed to read seed data: %v", err)
	}
	id := all[0].ID.Hex()

	req := httptest.NewRequest(http.MethodDelete, "/api/products/"+id, nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	// Deleting again reports not found
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/products/"+id, nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 on second delete, got %d", w.Code)
	}
}
