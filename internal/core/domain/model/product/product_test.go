package product_test

import (
	"math"
	"testing"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/product"
	"shop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("should create product with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()

		p, err := product.NewProduct(id, "Keyboard", 500, 10)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(id))
		assert.Equal(t, "Keyboard", p.Name())
		assert.Equal(t, int64(500), p.Price())
		assert.Equal(t, 10, p.Stock())
		assert.Equal(t, int64(0), p.Version())
		assert.False(t, p.CreatedAt().IsZero())
	})

	t.Run("should accept zero stock and zero price", func(t *testing.T) {
		p, err := product.NewProduct(kernel.NewUUID(), "Sample", 0, 0)

		require.NoError(t, err)
		assert.Equal(t, 0, p.Stock())
	})

	t.Run("should collect every validation error", func(t *testing.T) {
		p, err := product.NewProduct(kernel.UUID{}, "  ", -1, -5)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "value is required: name")
		assert.Contains(t, err.Error(), "-1 is negative")
		assert.Contains(t, err.Error(), "-5 is negative")
	})
}

func TestRestoreProduct(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("should keep persisted version and timestamps", func(t *testing.T) {
		p, err := product.RestoreProduct(kernel.NewUUID(), "Mouse", 250, 3, 7, created, created)

		require.NoError(t, err)
		assert.Equal(t, int64(7), p.Version())
		assert.Equal(t, created, p.CreatedAt())
	})

	t.Run("should refuse negative stock from storage", func(t *testing.T) {
		_, err := product.RestoreProduct(kernel.NewUUID(), "Mouse", 250, -1, 1, created, created)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestProduct_Validate(t *testing.T) {
	var zero product.Product
	var nilProduct *product.Product

	assert.Equal(t, product.ErrProductIsNotConstructed, zero.Validate())
	assert.Equal(t, product.ErrProductIsNotConstructed, nilProduct.Validate())
}

func TestProduct_Reserve(t *testing.T) {
	t.Run("should decrement stock", func(t *testing.T) {
		p, _ := product.NewProduct(kernel.NewUUID(), "Keyboard", 500, 10)

		require.NoError(t, p.Reserve(3))

		assert.Equal(t, 7, p.Stock())
	})

	t.Run("should allow reserving the whole stock", func(t *testing.T) {
		p, _ := product.NewProduct(kernel.NewUUID(), "Keyboard", 500, 4)

		require.NoError(t, p.Reserve(4))

		assert.Equal(t, 0, p.Stock())
	})

	t.Run("should fail out of stock without touching stock", func(t *testing.T) {
		p, _ := product.NewProduct(kernel.NewUUID(), "Keyboard", 500, 2)

		err := p.Reserve(5)

		require.ErrorIs(t, err, product.ErrOutOfStock)
		var oos *product.OutOfStockError
		require.ErrorAs(t, err, &oos)
		assert.Equal(t, 5, oos.Requested)
		assert.Equal(t, 2, oos.Available)
		assert.True(t, oos.ProductID.IsEqual(p.ID()))
		assert.Equal(t, 2, p.Stock())
	})

	t.Run("should reject non positive quantity", func(t *testing.T) {
		p, _ := product.NewProduct(kernel.NewUUID(), "Keyboard", 500, 2)

		require.ErrorIs(t, p.Reserve(0), errs.ErrValueIsInvalid)
		require.ErrorIs(t, p.Reserve(-1), errs.ErrValueIsInvalid)
		assert.Equal(t, 2, p.Stock())
	})
}

func TestProduct_Release(t *testing.T) {
	p, _ := product.NewProduct(kernel.NewUUID(), "Keyboard", 500, 10)
	require.NoError(t, p.Reserve(6))

	require.NoError(t, p.Release(6))
	assert.Equal(t, 10, p.Stock())

	require.ErrorIs(t, p.Release(0), errs.ErrValueIsInvalid)
}

func TestProduct_Release_RefusesStockOverflow(t *testing.T) {
	p, _ := product.NewProduct(kernel.NewUUID(), "Keyboard", 500, math.MaxInt-1)

	err := p.Release(2)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Equal(t, math.MaxInt-1, p.Stock())
}

func TestProduct_ChangePrice(t *testing.T) {
	p, _ := product.NewProduct(kernel.NewUUID(), "Keyboard", 500, 10)

	require.NoError(t, p.ChangePrice(900))
	assert.Equal(t, int64(900), p.Price())
	assert.Equal(t, 10, p.Stock())

	require.Error(t, p.ChangePrice(-1))
	assert.Equal(t, int64(900), p.Price())
}

func TestNotFoundError(t *testing.T) {
	id := kernel.NewUUID()

	err := product.NewNotFoundError(id)

	require.ErrorIs(t, err, product.ErrProductNotFound)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, "product not found: "+id.String(), err.Error())
}
