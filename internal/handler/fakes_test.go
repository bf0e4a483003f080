package handler_test

// In-memory fakes for the store interfaces so handler tests run without a
// database, mirroring how the real repositories behave (sentinel errors,
// ordering, bcrypt hashes).

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/hilgaap/inventori-api/internal/model"
	"github.com/hilgaap/inventori-api/internal/repository"
	"github.com/hilgaap/inventori-api/internal/utils"
)

const testBcryptCost = 4

type fakeUserStore struct {
	nextID uint64
	users  map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint64]model.User)}
}

func (f *fakeUserStore) add(name, email, password, role string) model.User {
	hash, _ := utils.HashPassword(password, testBcryptCost)
	f.nextID++
	u := model.User{
		ID: f.nextID, Name: name, Email: strings.ToLower(email),
		PasswordHash: hash, Role: role, CreatedAt: time.Now().UTC(),
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserStore) Create(_ context.Context, name, email, password, role string, _ int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range f.users {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	return f.add(name, email, password, role).ID, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) List(_ context.Context, offset, limit int) ([]model.User, error) {
	all := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, offset, limit), nil
}

func (f *fakeUserStore) Count(_ context.Context) (int, error) { return len(f.users), nil }

func (f *fakeUserStore) Update(_ context.Context, id uint64, name, email, role *string) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if name != nil {
		u.Name = *name
	}
	if email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*email))
	}
	if role != nil {
		u.Role = *role
	}
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeProductStore struct {
	nextID uint64
	// newest first, matching the repository's created_at DESC ordering
	items []model.Product
}

func newFakeProductStore() *fakeProductStore { return &fakeProductStore{} }

func (f *fakeProductStore) add(p model.Product) model.Product {
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now().UTC()
	f.items = append([]model.Product{p}, f.items...)
	return p
}

func (f *fakeProductStore) Create(_ context.Context, p model.Product) (uint64, error) {
	return f.add(p).ID, nil
}

func (f *fakeProductStore) CreateBulk(_ context.Context, items []model.Product) (int64, error) {
	for _, p := range items {
		f.add(p)
	}
	return int64(len(items)), nil
}

func (f *fakeProductStore) GetByID(_ context.Context, id uint64) (model.Product, error) {
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, repository.ErrNotFound
}

func (f *fakeProductStore) List(_ context.Context, offset, limit int) ([]model.Product, error) {
	return page(f.items, offset, limit), nil
}

func (f *fakeProductStore) Count(_ context.Context) (int, error) { return len(f.items), nil }

func (f *fakeProductStore) Update(_ context.Context, id uint64, name, description *string, stock *int, price *float64) error {
	for i, p := range f.items {
		if p.ID != id {
			continue
		}
		if name != nil {
			p.Name = *name
		}
		if description != nil {
			p.Description = *description
		}
		if stock != nil {
			p.Stock = *stock
		}
		if price != nil {
			p.Price = *price
		}
		f.items[i] = p
		return nil
	}
	return repository.ErrNotFound
}

func (f *fakeProductStore) Delete(_ context.Context, id uint64) error {
	for i, p := range f.items {
		if p.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func page[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
