package commands_test

import (
	"testing"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	buyerID := kernel.NewUUID()
	items := []commands.OrderItem{{ProductID: kernel.NewUUID(), Quantity: 2}}

	cmd, err := commands.NewCreateOrderCommand(orderID, buyerID, items)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, buyerID, cmd.BuyerID())
	assert.Equal(t, items, cmd.Items())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	items := []commands.OrderItem{{ProductID: kernel.NewUUID(), Quantity: 1}}

	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, kernel.NewUUID(), items)

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_NoItems(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), nil)

	require.ErrorIs(t, err, commands.ErrItemsAreRequired)
}

func TestNewCreateOrderCommand_InvalidQuantity(t *testing.T) {
	items := []commands.OrderItem{
		{ProductID: kernel.NewUUID(), Quantity: 1},
		{ProductID: kernel.NewUUID(), Quantity: 0},
	}

	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), items)

	require.ErrorIs(t, err, commands.ErrQuantityIsInvalid)
	assert.Contains(t, err.Error(), "item 1")
}

func TestNewCreateOrderCommand_InvalidProductID(t *testing.T) {
	items := []commands.OrderItem{{Quantity: 1}}

	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), items)

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestCreateOrderCommand_ItemsIsACopy(t *testing.T) {
	items := []commands.OrderItem{{ProductID: kernel.NewUUID(), Quantity: 1}}
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), items)

	items[0].Quantity = 99
	got := cmd.Items()
	got[0].Quantity = 42

	assert.Equal(t, 1, cmd.Items()[0].Quantity)
}

func TestCreateOrderCommand_ZeroValueIsNotValid(t *testing.T) {
	var cmd commands.CreateOrderCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
