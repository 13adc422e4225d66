package inventory_test

import (
	"context"
	"sync"

	"github.com/jhoicas/gametech-stock/internal/application/dto"
	appinv "github.com/jhoicas/gametech-stock/internal/application/inventory"
	"github.com/jhoicas/gametech-stock/internal/domain"
	"github.com/jhoicas/gametech-stock/internal/domain/entity"
	"github.com/jhoicas/gametech-stock/internal/domain/inventory"
	"github.com/jhoicas/gametech-stock/internal/domain/repository"
)

// fakeStore guarda en memoria lo que persistiría postgres.
type fakeStore struct {
	mu         sync.Mutex
	products   []*inventory.Product
	stock      map[string]int
	rows       []inventory.MovementRow
	users      []*entity.User
	warehouses []entity.Warehouse
	takenCodes map[string]bool // códigos que "otro proceso" ya insertó
	failTx     error
	// beforeCreate corre al entrar a Create, sin el mutex del store.
	beforeCreate func(code string)
}

func newFakeStore() *fakeStore {
	return &fakeStore{stock: map[string]int{}, takenCodes: map[string]bool{}}
}

func (f *fakeStore) repos() appinv.Repositories {
	return appinv.Repositories{
		Products:   fakeProducts{f},
		Movements:  fakeMovements{f},
		Users:      fakeUsers{f},
		Warehouses: fakeWarehouses{f},
		Tx:         fakeTx{f},
	}
}

type fakeProducts struct{ f *fakeStore }

func (r fakeProducts) Create(_ context.Context, p *inventory.Product) error {
	if r.f.beforeCreate != nil {
		r.f.beforeCreate(p.Code())
	}
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if r.f.takenCodes[p.Code()] {
		return domain.ErrDuplicate
	}
	r.f.takenCodes[p.Code()] = true
	r.f.products = append(r.f.products, p)
	r.f.stock[p.Code()] = p.CurrentStock()
	return nil
}

func (r fakeProducts) UpdateStock(_ context.Context, code string, stock int) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	r.f.stock[code] = stock
	return nil
}

func (r fakeProducts) GetByCode(_ context.Context, code string) (*inventory.Product, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, p := range r.f.products {
		if p.Code() == code {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r fakeProducts) List(context.Context) ([]*inventory.Product, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return append([]*inventory.Product(nil), r.f.products...), nil
}

type fakeMovements struct{ f *fakeStore }

func (r fakeMovements) Create(_ context.Context, row inventory.MovementRow) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	r.f.rows = append(r.f.rows, row)
	return nil
}

func (r fakeMovements) List(context.Context) ([]inventory.MovementRow, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return append([]inventory.MovementRow(nil), r.f.rows...), nil
}

type fakeUsers struct{ f *fakeStore }

func (r fakeUsers) GetByID(_ context.Context, id int) (*entity.User, error) {
	for _, u := range r.f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r fakeUsers) GetByLogin(_ context.Context, login string) (*entity.User, error) {
	for _, u := range r.f.users {
		if u.Login == login {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r fakeUsers) List(context.Context) ([]*entity.User, error) { return r.f.users, nil }

type fakeWarehouses struct{ f *fakeStore }

func (r fakeWarehouses) GetByID(_ context.Context, id int) (*entity.Warehouse, error) {
	for _, w := range r.f.warehouses {
		if w.ID == id {
			w := w
			return &w, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r fakeWarehouses) List(context.Context) ([]entity.Warehouse, error) { return r.f.warehouses, nil }

// fakeTx ejecuta fn directo sobre el store; failTx simula una tx que no llega a commitear.
type fakeTx struct{ f *fakeStore }

func (t fakeTx) Run(ctx context.Context, fn func(repository.MovementRepository, repository.ProductRepository) error) error {
	if t.f.failTx != nil {
		return t.f.failTx
	}
	return fn(fakeMovements{t.f}, fakeProducts{t.f})
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []dto.MovementResponse
}

func (p *fakePublisher) PublishMovement(_ context.Context, mov dto.MovementResponse) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, mov)
	return nil
}
