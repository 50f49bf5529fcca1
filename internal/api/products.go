package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/aldeenj/veilflow/internal/model"
	"github.com/aldeenj/veilflow/internal/sku"
	"github.com/aldeenj/veilflow/internal/store"
)

// ProductsHandler handles product CRUD endpoints.
type ProductsHandler struct {
	DB *sql.DB
}

type productRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Fabric   string          `json:"fabric"`
}

// List handles GET /api/products. Supports ?q= substring search over name
// and SKU, and ?month=current for this month's products.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	var products []model.Product
	var err error

	switch {
	case r.URL.Query().Get("q") != "":
		products, err = store.SearchProducts(r.Context(), h.DB, r.URL.Query().Get("q"))
	case r.URL.Query().Get("month") == "current":
		products, err = store.ProductsThisMonth(r.Context(), h.DB)
	default:
		products, err = store.ListProducts(r.Context(), h.DB)
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	jsonResponse(w, http.StatusOK, products)
}

// Create handles POST /api/products. The SKU is generated here, never
// supplied by the client.
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p := &model.Product{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Fabric:   req.Fabric,
	}
	if err := model.ValidateProduct(p); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	code, err := sku.Generate(r.Context(), h.DB, p.Category, p.Fabric)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate sku")
		return
	}
	p.SKU = code

	created, err := store.AddProduct(r.Context(), h.DB, p)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/products/{id}.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := store.GetProduct(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get product")
		return
	}
	if product == nil {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}
	jsonResponse(w, http.StatusOK, product)
}

// Update handles PUT /api/products/{id}. The SKU is immutable; only the
// descriptive fields change.
func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := store.GetProduct(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get product")
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p := &model.Product{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Fabric:   req.Fabric,
	}
	var validationErr *model.ValidationError
	if err := model.ValidateProduct(p); err != nil {
		if errors.As(err, &validationErr) {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		jsonError(w, http.StatusBadRequest, "invalid product")
		return
	}

	updated, err := store.UpdateProduct(r.Context(), h.DB, id, p.Name, p.Price, p.Category, p.Fabric)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/products/{id}. The product's sequence counter
// is deliberately left alone, so its SKU is never reissued.
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := store.DeleteProduct(r.Context(), h.DB, r.PathValue("id")); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
