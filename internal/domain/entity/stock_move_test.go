package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func TestCanTransition_DesdeDraft(t *testing.T) {
	assert.True(t, entity.CanTransition(entity.MoveStatusDraft, entity.MoveStatusWaiting))
	assert.True(t, entity.CanTransition(entity.MoveStatusDraft, entity.MoveStatusDone))
	assert.True(t, entity.CanTransition(entity.MoveStatusDraft, entity.MoveStatusCancelled))
}

func TestCanTransition_DesdeWaiting(t *testing.T) {
	assert.True(t, entity.CanTransition(entity.MoveStatusWaiting, entity.MoveStatusDone))
	assert.True(t, entity.CanTransition(entity.MoveStatusWaiting, entity.MoveStatusCancelled))
	assert.False(t, entity.CanTransition(entity.MoveStatusWaiting, entity.MoveStatusDraft),
		"waiting no puede volver a draft")
}

func TestCanTransition_DoneEsTerminal(t *testing.T) {
	for _, to := range []string{
		entity.MoveStatusDraft, entity.MoveStatusWaiting,
		entity.MoveStatusDone, entity.MoveStatusCancelled,
	} {
		assert.False(t, entity.CanTransition(entity.MoveStatusDone, to),
			"done es terminal; no se permite done → %s", to)
	}
}

func TestCanTransition_CancelledEsTerminal(t *testing.T) {
	for _, to := range []string{
		entity.MoveStatusDraft, entity.MoveStatusWaiting,
		entity.MoveStatusDone, entity.MoveStatusCancelled,
	} {
		assert.False(t, entity.CanTransition(entity.MoveStatusCancelled, to),
			"cancelled es terminal; no se permite cancelled → %s", to)
	}
}

func TestCanTransition_EstadoDesconocido_Rechazado(t *testing.T) {
	assert.False(t, entity.CanTransition("archived", entity.MoveStatusDone))
	assert.False(t, entity.CanTransition(entity.MoveStatusDraft, "archived"))
}

func TestValidMoveStatus(t *testing.T) {
	assert.True(t, entity.ValidMoveStatus(entity.MoveStatusDraft))
	assert.True(t, entity.ValidMoveStatus(entity.MoveStatusWaiting))
	assert.True(t, entity.ValidMoveStatus(entity.MoveStatusDone))
	assert.True(t, entity.ValidMoveStatus(entity.MoveStatusCancelled))
	assert.False(t, entity.ValidMoveStatus("archived"))
	assert.False(t, entity.ValidMoveStatus(""))
}
