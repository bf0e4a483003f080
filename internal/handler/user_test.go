package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/hilgaap/inventori-api/internal/handler"
	"github.com/hilgaap/inventori-api/internal/model"
)

func TestUserListExcludesPassword(t *testing.T) {
	store := newFakeUserStore()
	store.add("Alice", "alice@example.com", "pw1", model.RoleUser)
	store.add("Bob", "bob@example.com", "pw2", model.RoleAdmin)
	h := handler.NewUserHandler(testConfig(), store)

	c, rec := jsonCtx(http.MethodGet, "/users", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("list response leaks the password field")
	}

	env := decodeEnvelope(t, rec)
	var items []struct {
		ID    uint64 `json:"id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	// Users are ordered by id ascending.
	if items[0].Email != "alice@example.com" || items[1].Email != "bob@example.com" {
		t.Errorf("unexpected order: %+v", items)
	}
	if env.Pagination == nil || env.Pagination.Total != 2 || env.Pagination.TotalPages != 1 {
		t.Errorf("pagination = %+v", env.Pagination)
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	store.add("Alice", "alice@example.com", "pw", model.RoleUser)
	h := handler.NewUserHandler(testConfig(), store)

	c, rec := jsonCtx(http.MethodPost, "/users",
		`{"name":"Clone","email":"alice@example.com","password":"pw"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUserUpdate(t *testing.T) {
	store := newFakeUserStore()
	u := store.add("Alice", "alice@example.com", "pw", model.RoleUser)
	h := handler.NewUserHandler(testConfig(), store)

	c, rec := jsonCtx(http.MethodPut, "/users",
		`{"id":1,"name":"Alicia","role":"root"}`)
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body=%s)", rec.Code, rec.Body.String())
	}

	got, _ := store.GetByID(context.Background(), u.ID)
	if got.Name != "Alicia" {
		t.Errorf("name = %q, want Alicia", got.Name)
	}
	// "root" is not a valid role and coerces to USER.
	if got.Role != model.RoleUser {
		t.Errorf("role = %q, want USER", got.Role)
	}
	// Email untouched by the partial update.
	if got.Email != "alice@example.com" {
		t.Errorf("email = %q", got.Email)
	}
}

func TestUserUpdateRequiresID(t *testing.T) {
	h := handler.NewUserHandler(testConfig(), newFakeUserStore())

	c, rec := jsonCtx(http.MethodPut, "/users", `{"name":"NoID"}`)
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUserUpdateUnknownID(t *testing.T) {
	h := handler.NewUserHandler(testConfig(), newFakeUserStore())

	c, rec := jsonCtx(http.MethodPut, "/users", `{"id":99,"name":"Ghost"}`)
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestUserDelete(t *testing.T) {
	store := newFakeUserStore()
	store.add("Alice", "alice@example.com", "pw", model.RoleUser)
	h := handler.NewUserHandler(testConfig(), store)

	c, rec := jsonCtx(http.MethodDelete, "/users", `{"id":1}`)
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if n, _ := store.Count(context.Background()); n != 0 {
		t.Errorf("store count = %d, want 0", n)
	}

	c, rec = jsonCtx(http.MethodDelete, "/users", `{"id":1}`)
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}
