package commands_test

import (
	"context"
	"errors"
	"maps"
	"sort"
	"sync"
	"testing"
	"time"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/product"
	"shop/internal/core/ports"
	"shop/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

var errNoTransaction = errors.New("no active transaction")

type productRow struct {
	name      string
	price     int64
	stock     int
	version   int64
	createdAt time.Time
}

type orderRow struct {
	buyerID   kernel.UUID
	items     []*order.LineItem
	total     int64
	status    order.Status
	createdAt time.Time
	updatedAt time.Time
}

// memStore is an in-memory stand-in for the database. A transaction holds
// the store lock from Begin until Commit or Rollback, which serializes
// transactions the way row locks serialize them on a single hot product.
type memStore struct {
	tx       sync.Mutex
	products map[kernel.UUID]productRow
	orders   map[kernel.UUID]orderRow

	commitErr error
	commits   int

	// locked lists product ids in the order GetForUpdate saw them.
	locked []kernel.UUID
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[kernel.UUID]productRow),
		orders:   make(map[kernel.UUID]orderRow),
	}
}

func (s *memStore) seedProduct(t *testing.T, price int64, stock int) kernel.UUID {
	t.Helper()
	id := kernel.NewUUID()
	s.products[id] = productRow{name: "product " + id.String()[:8], price: price, stock: stock, createdAt: time.Now().UTC()}
	return id
}

func (s *memStore) seedOrder(t *testing.T, status order.Status, createdAt time.Time, productID kernel.UUID, quantity int) kernel.UUID {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), productID, quantity, 100)
	require.NoError(t, err)
	id := kernel.NewUUID()
	s.orders[id] = orderRow{
		buyerID:   kernel.NewUUID(),
		items:     []*order.LineItem{item},
		total:     item.Subtotal(),
		status:    status,
		createdAt: createdAt,
		updatedAt: createdAt,
	}
	return id
}

func (s *memStore) stock(id kernel.UUID) int {
	return s.products[id].stock
}

func (s *memStore) status(id kernel.UUID) order.Status {
	return s.orders[id].status
}

type memUoW struct {
	store *memStore
	open  bool

	products map[kernel.UUID]productRow
	orders   map[kernel.UUID]orderRow
}

func (u *memUoW) Begin(_ context.Context) error {
	u.store.tx.Lock()
	u.open = true
	u.products = maps.Clone(u.store.products)
	u.orders = maps.Clone(u.store.orders)
	return nil
}

func (u *memUoW) Commit(_ context.Context) error {
	if !u.open {
		return errNoTransaction
	}
	if err := u.store.commitErr; err != nil {
		u.restore()
		return err
	}
	u.store.commits++
	u.open = false
	u.store.tx.Unlock()
	return nil
}

func (u *memUoW) Rollback(_ context.Context) error {
	if !u.open {
		return errNoTransaction
	}
	u.restore()
	return nil
}

func (u *memUoW) restore() {
	u.store.products = u.products
	u.store.orders = u.orders
	u.open = false
	u.store.tx.Unlock()
}

func (u *memUoW) ProductRepository() ports.ProductRepository {
	return &memProductRepo{store: u.store}
}

func (u *memUoW) OrderRepository() ports.OrderRepository {
	return &memOrderRepo{store: u.store}
}

type memUoWFactory struct{ store *memStore }

func (f memUoWFactory) Create() commands.UoW {
	return &memUoW{store: f.store}
}

type memProductUoWFactory struct{ store *memStore }

func (f memProductUoWFactory) Create() commands.ProductUoW {
	return &memUoW{store: f.store}
}

type memProductRepo struct{ store *memStore }

func (r *memProductRepo) Add(_ context.Context, p *product.Product) error {
	if _, ok := r.store.products[p.ID()]; ok {
		return errs.NewValueIsInvalidError("product already exists")
	}
	r.store.products[p.ID()] = productRow{name: p.Name(), price: p.Price(), stock: p.Stock(), createdAt: p.CreatedAt()}
	return nil
}

func (r *memProductRepo) Get(_ context.Context, id kernel.UUID) (*product.Product, error) {
	row, ok := r.store.products[id]
	if !ok {
		return nil, product.NewNotFoundError(id)
	}
	return product.RestoreProduct(id, row.name, row.price, row.stock, row.version, row.createdAt, row.createdAt)
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	r.store.locked = append(r.store.locked, id)
	return r.Get(ctx, id)
}

func (r *memProductRepo) Update(_ context.Context, p *product.Product) error {
	row, ok := r.store.products[p.ID()]
	if !ok {
		return product.NewNotFoundError(p.ID())
	}
	if row.version != p.Version() {
		return errs.NewVersionIsInvalidErrorWithCause("product")
	}
	row.price = p.Price()
	row.stock = p.Stock()
	row.version++
	r.store.products[p.ID()] = row
	return nil
}

type memOrderRepo struct{ store *memStore }

func (r *memOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.store.orders[o.ID()] = orderRow{
		buyerID:   o.BuyerID(),
		items:     o.Items(),
		total:     o.TotalAmount(),
		status:    o.Status(),
		createdAt: o.CreatedAt(),
		updatedAt: o.UpdatedAt(),
	}
	return nil
}

func (r *memOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	row, ok := r.store.orders[id]
	if !ok {
		return nil, order.NewNotFoundError(id)
	}
	return order.RestoreOrder(id, row.buyerID, row.items, row.total, row.status, row.createdAt, row.updatedAt)
}

func (r *memOrderRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, o *order.Order) error {
	row, ok := r.store.orders[o.ID()]
	if !ok {
		return order.NewNotFoundError(o.ID())
	}
	row.status = o.Status()
	row.updatedAt = o.UpdatedAt()
	r.store.orders[o.ID()] = row
	return nil
}

func (r *memOrderRepo) ListPendingCreatedBefore(_ context.Context, before time.Time, limit int) ([]kernel.UUID, error) {
	type candidate struct {
		id        kernel.UUID
		createdAt time.Time
	}
	var found []candidate
	for id, row := range r.store.orders {
		if row.status == order.Pending && row.createdAt.Before(before) {
			found = append(found, candidate{id: id, createdAt: row.createdAt})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].createdAt.Before(found[j].createdAt) })

	ids := make([]kernel.UUID, 0, limit)
	for i := 0; i < len(found) && i < limit; i++ {
		ids = append(ids, found[i].id)
	}
	return ids, nil
}
