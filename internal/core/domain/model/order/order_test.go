package order_test

import (
	"math"
	"testing"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(t *testing.T, quantity int, price int64) *order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), quantity, price)
	require.NoError(t, err)
	return item
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []*order.LineItem{newItem(t, 3, 500)}, 1500)
	require.NoError(t, err)
	return o
}

func restoreOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	now := time.Now().UTC()
	o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), []*order.LineItem{newItem(t, 1, 100)}, 100, status, now, now)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	buyerID := kernel.NewUUID()

	t.Run("should create pending order and record created event", func(t *testing.T) {
		items := []*order.LineItem{newItem(t, 3, 500), newItem(t, 1, 250)}

		o, err := order.NewOrder(validID, buyerID, items, 1750)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.True(t, o.BuyerID().IsEqual(buyerID))
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, int64(1750), o.TotalAmount())
		assert.Len(t, o.Items(), 2)

		events := o.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.EventCreated, events[0].Type)
		assert.Equal(t, order.Pending, events[0].Status)
		assert.Equal(t, int64(1750), events[0].TotalAmount)
		assert.True(t, events[0].OrderID.IsEqual(validID))
	})

	t.Run("should fail when total does not match items", func(t *testing.T) {
		o, err := order.NewOrder(validID, buyerID, []*order.LineItem{newItem(t, 3, 500)}, 1000)

		require.ErrorIs(t, err, order.ErrTotalMismatch)
		assert.Nil(t, o)
	})

	t.Run("should fail without items", func(t *testing.T) {
		o, err := order.NewOrder(validID, buyerID, nil, 0)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o)
	})

	t.Run("should collect id and buyer errors", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, []*order.LineItem{newItem(t, 1, 1)}, 1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "buyer ID is invalid")
	})

	t.Run("should refuse items whose total does not fit in int64", func(t *testing.T) {
		half := int64(math.MaxInt64/2 + 1)
		items := []*order.LineItem{newItem(t, 1, half), newItem(t, 1, half)}

		o, err := order.NewOrder(validID, buyerID, items, math.MinInt64)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.NotErrorIs(t, err, order.ErrTotalMismatch)
		assert.Nil(t, o)
	})

	t.Run("should reject an item that was not constructed", func(t *testing.T) {
		_, err := order.NewOrder(validID, buyerID, []*order.LineItem{{}}, 0)

		require.ErrorIs(t, err, order.ErrLineItemIsNotConstructed)
	})
}

func TestNewLineItem(t *testing.T) {
	t.Run("should compute subtotal", func(t *testing.T) {
		item := newItem(t, 4, 125)

		assert.Equal(t, int64(500), item.Subtotal())
	})

	t.Run("should reject non positive quantity and negative price", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), 0, -1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity is invalid")
		assert.Contains(t, err.Error(), "unit price is invalid")
	})

	t.Run("should refuse a subtotal that does not fit in int64", func(t *testing.T) {
		item, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), 2, math.MaxInt64/2+1)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Nil(t, item)
	})

	t.Run("should accept the largest subtotal that fits", func(t *testing.T) {
		item, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), 1, math.MaxInt64)

		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), item.Subtotal())
	})
}

func TestAddToTotal(t *testing.T) {
	sum, err := order.AddToTotal(1500, 250)
	require.NoError(t, err)
	assert.Equal(t, int64(1750), sum)

	sum, err = order.AddToTotal(math.MaxInt64-1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), sum)

	_, err = order.AddToTotal(math.MaxInt64/2+1, math.MaxInt64/2+1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should not record events", func(t *testing.T) {
		o := restoreOrder(t, order.Shipped)

		assert.Equal(t, order.Shipped, o.Status())
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		now := time.Now()
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), []*order.LineItem{newItem(t, 1, 1)}, 1, order.Unknown, now, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	var zero order.Order
	var nilOrder *order.Order

	assert.Equal(t, order.ErrOrderIsNotConstructed, zero.Validate())
	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should cancel pending and processing orders", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.Processing} {
			o := restoreOrder(t, status)

			require.NoError(t, o.Cancel(order.CancelRequested))

			assert.Equal(t, order.Cancelled, o.Status())
			events := o.DomainEvents()
			require.Len(t, events, 1)
			assert.Equal(t, order.EventCancelled, events[0].Type)
			assert.Equal(t, status, events[0].PreviousStatus)
			assert.Equal(t, order.CancelRequested, events[0].Reason)
		}
	})

	t.Run("should refuse already cancelled order", func(t *testing.T) {
		o := restoreOrder(t, order.Cancelled)

		err := o.Cancel(order.CancelRequested)

		var target *order.AlreadyCancelledError
		require.ErrorAs(t, err, &target)
		require.ErrorIs(t, err, order.ErrAlreadyCancelled)
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should refuse shipped and delivered orders without change", func(t *testing.T) {
		for _, status := range []order.Status{order.Shipped, order.Delivered} {
			o := restoreOrder(t, status)

			err := o.Cancel(order.CancelExpired)

			var target *order.NotCancellableError
			require.ErrorAs(t, err, &target)
			assert.Equal(t, status, target.Status)
			assert.Equal(t, status, o.Status())
			assert.Empty(t, o.DomainEvents())
		}
	})

	t.Run("should reject unknown reason", func(t *testing.T) {
		o := restoreOrder(t, order.Pending)

		require.ErrorIs(t, o.Cancel("lost"), errs.ErrValueIsInvalid)
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_AdvanceTo(t *testing.T) {
	t.Run("should walk the whole forward path", func(t *testing.T) {
		o := newPendingOrder(t)
		o.ClearDomainEvents()

		for _, next := range []order.Status{order.Processing, order.Shipped, order.Delivered} {
			require.NoError(t, o.AdvanceTo(next))
			assert.Equal(t, next, o.Status())
		}

		events := o.DomainEvents()
		require.Len(t, events, 3)
		assert.Equal(t, order.EventStatusChanged, events[2].Type)
		assert.Equal(t, order.Shipped, events[2].PreviousStatus)
		assert.Equal(t, order.Delivered, events[2].Status)
	})

	t.Run("should refuse skipping a step", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.AdvanceTo(order.Shipped)

		var target *order.InvalidTransitionError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, order.Pending, target.From)
		assert.Equal(t, order.Shipped, target.To)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should refuse cancelled as a target", func(t *testing.T) {
		o := newPendingOrder(t)

		require.ErrorIs(t, o.AdvanceTo(order.Cancelled), order.ErrInvalidTransition)
	})

	t.Run("should refuse every move out of terminal statuses", func(t *testing.T) {
		for _, from := range []order.Status{order.Cancelled, order.Delivered} {
			for _, to := range []order.Status{order.Pending, order.Processing, order.Shipped, order.Delivered, order.Cancelled} {
				o := restoreOrder(t, from)

				require.ErrorIs(t, o.AdvanceTo(to), order.ErrInvalidTransition)
				assert.Equal(t, from, o.Status())
				assert.Empty(t, o.DomainEvents())
			}
		}
	})

	t.Run("should reject unknown target", func(t *testing.T) {
		o := newPendingOrder(t)

		require.ErrorIs(t, o.AdvanceTo(order.Unknown), errs.ErrValueIsInvalid)
	})
}

func TestOrder_ItemsIsACopy(t *testing.T) {
	o := newPendingOrder(t)

	items := o.Items()
	items[0] = nil

	assert.NotNil(t, o.Items()[0])
}

func TestNotFoundError(t *testing.T) {
	id := kernel.NewUUID()

	err := order.NewNotFoundError(id)

	require.ErrorIs(t, err, order.ErrOrderNotFound)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, "order not found: "+id.String(), err.Error())
}
