package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hilgaap/inventori-api/internal/middleware"
	"github.com/hilgaap/inventori-api/internal/model"
	"github.com/hilgaap/inventori-api/internal/repository"
)

// ProductHandler implements the product CRUD endpoints. Reads and partial
// updates are open to any authenticated user; create and delete are
// admin-only (enforced in the router).
type ProductHandler struct {
	Products ProductStore
}

func NewProductHandler(p ProductStore) *ProductHandler {
	return &ProductHandler{Products: p}
}

type productCreateReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Stock       *int     `json:"stock"`
	Price       *float64 `json:"price"`
}
type productUpdateReq struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Stock       *int     `json:"stock"`
	Price       *float64 `json:"price"`
}

// productPart is the client-facing view of a product.
type productPart struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Stock       int       `json:"stock"`
	Price       float64   `json:"price"`
	CreatedByID *uint64   `json:"createdById"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toProductPart(p model.Product) productPart {
	return productPart{
		ID: p.ID, Name: p.Name, Description: p.Description,
		Stock: p.Stock, Price: p.Price, CreatedByID: p.CreatedByID, CreatedAt: p.CreatedAt,
	}
}

// currentUserID reads the authenticated user's id stored by JWTAuth. It
// returns nil when the claim is absent, which keeps created_by_id a weak
// nullable reference.
func currentUserID(c echo.Context) *uint64 {
	if v, ok := c.Get(middleware.CtxUserID).(uint64); ok && v != 0 {
		return &v
	}
	return nil
}

// validateCreate checks one create element against the field rules:
// non-empty name, present and non-negative price, non-negative stock.
func validateCreate(req productCreateReq) string {
	if req.Name == "" || req.Price == nil {
		return "Every product requires a name and a price"
	}
	if *req.Price < 0 {
		return "Price cannot be negative"
	}
	if req.Stock != nil && *req.Stock < 0 {
		return "Stock cannot be negative"
	}
	return ""
}

func toProductModel(req productCreateReq, createdBy *uint64) model.Product {
	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}
	return model.Product{
		Name:        req.Name,
		Description: req.Description,
		Stock:       stock,
		Price:       *req.Price,
		CreatedByID: createdBy,
	}
}

// List returns a page of products, newest first.
func (h *ProductHandler) List(c echo.Context) error {
	page, limit, offset := pageParams(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Products.List(ctx, offset, limit)
	if err != nil {
		log.Printf("[ERROR] [products-list] query: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}
	total, err := h.Products.Count(ctx)
	if err != nil {
		log.Printf("[ERROR] [products-list] count: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}

	out := make([]productPart, 0, len(items))
	for _, p := range items {
		out = append(out, toProductPart(p))
	}
	return respondPage(c, "Products fetched", out, Pagination{
		Page: page, Limit: limit, Total: total, TotalPages: totalPages(total, limit),
	})
}

// Get returns one product by path id.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "Invalid id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return respondErr(c, http.StatusNotFound, "Product not found")
		}
		log.Printf("[ERROR] [product-detail] query: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}
	return respondOK(c, http.StatusOK, "Product detail fetched", toProductPart(p))
}

// Create accepts either a single product object or an array for bulk
// insert. For the bulk form every element is validated before any row is
// written, and the insert itself is one multi-row statement, so an
// invalid element means zero inserts.
func (h *ProductHandler) Create(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "Invalid request body")
	}
	createdBy := currentUserID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// A leading '[' selects the bulk form.
	if trimmed := bytes.TrimLeft(body, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '[' {
		var reqs []productCreateReq
		if err := json.Unmarshal(body, &reqs); err != nil {
			return respondErr(c, http.StatusBadRequest, "Invalid request body")
		}
		if len(reqs) == 0 {
			return respondErr(c, http.StatusBadRequest, "Every product requires a name and a price")
		}
		for _, req := range reqs {
			if msg := validateCreate(req); msg != "" {
				return respondErr(c, http.StatusBadRequest, msg)
			}
		}
		items := make([]model.Product, 0, len(reqs))
		for _, req := range reqs {
			items = append(items, toProductModel(req, createdBy))
		}
		count, err := h.Products.CreateBulk(ctx, items)
		if err != nil {
			log.Printf("[ERROR] [products-create] bulk insert: %v", err)
			return respondErr(c, http.StatusInternalServerError, "Internal server error")
		}
		return respondOK(c, http.StatusCreated, "Bulk product insert successful", echo.Map{
			"insertedCount": count,
		})
	}

	var req productCreateReq
	if err := json.Unmarshal(body, &req); err != nil {
		return respondErr(c, http.StatusBadRequest, "Invalid request body")
	}
	if msg := validateCreate(req); msg != "" {
		return respondErr(c, http.StatusBadRequest, msg)
	}

	id, err := h.Products.Create(ctx, toProductModel(req, createdBy))
	if err != nil {
		log.Printf("[ERROR] [products-create] insert: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}
	p, err := h.Products.GetByID(ctx, id)
	if err != nil {
		log.Printf("[ERROR] [products-create] load: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}
	return respondOK(c, http.StatusCreated, "Product created", toProductPart(p))
}

// Update applies a partial update by path id. A missing row after the
// update attempt is reported as 400, matching the external contract for
// this endpoint (the row may have been deleted between requests).
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "Invalid id")
	}
	var req productUpdateReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Price != nil && *req.Price < 0 {
		return respondErr(c, http.StatusBadRequest, "Price cannot be negative")
	}
	if req.Stock != nil && *req.Stock < 0 {
		return respondErr(c, http.StatusBadRequest, "Stock cannot be negative")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Products.Update(ctx, id, req.Name, req.Description, req.Stock, req.Price); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return respondErr(c, http.StatusBadRequest, "Product not found or invalid data")
		}
		log.Printf("[ERROR] [product-update] update: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}

	p, err := h.Products.GetByID(ctx, id)
	if err != nil {
		log.Printf("[ERROR] [product-update] load: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}
	return respondOK(c, http.StatusOK, "Product updated", toProductPart(p))
}

// Delete removes a product by path id and returns the removed row.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "Invalid id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return respondErr(c, http.StatusNotFound, "Product not found")
		}
		log.Printf("[ERROR] [product-delete] load: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}
	if err := h.Products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return respondErr(c, http.StatusNotFound, "Product not found")
		}
		log.Printf("[ERROR] [product-delete] delete: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal server error")
	}
	return respondOK(c, http.StatusOK, "Product deleted", toProductPart(p))
}
