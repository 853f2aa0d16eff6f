package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/inventory"
)

func TestBalance_SinMovimientos_TodoCero(t *testing.T) {
	var b inventory.Balance
	assert.Zero(t, b.OnHand())
	assert.Zero(t, b.Reserved)
	assert.Zero(t, b.FreeToUse())
}

func TestBalance_OnHand_EsEntradasMenosSalidas(t *testing.T) {
	b := inventory.Balance{Incoming: 100, Outgoing: 30}
	assert.Equal(t, int64(70), b.OnHand())
}

func TestBalance_FreeToUse_DescuentaReservas(t *testing.T) {
	b := inventory.Balance{Incoming: 100, Outgoing: 30, Reserved: 25}
	assert.Equal(t, int64(70), b.OnHand())
	assert.Equal(t, int64(45), b.FreeToUse())
}

func TestBalance_ReservasSinStock_FreeToUseNegativo(t *testing.T) {
	// Sobre-reserva: el disponible queda negativo y es visible, no se oculta.
	b := inventory.Balance{Incoming: 10, Outgoing: 0, Reserved: 15}
	assert.Equal(t, int64(-5), b.FreeToUse())
}
