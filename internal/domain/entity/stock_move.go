package entity

import "time"

// Estados del ciclo de vida de un movimiento de stock.
const (
	MoveStatusDraft     = "draft"     // en planeación
	MoveStatusWaiting   = "waiting"   // reservado, pendiente de disponibilidad
	MoveStatusDone      = "done"      // validado: el stock ya se movió
	MoveStatusCancelled = "cancelled"
)

// moveTransitions tabla de transiciones permitidas. done y cancelled son terminales.
var moveTransitions = map[string]map[string]bool{
	MoveStatusDraft: {
		MoveStatusWaiting:   true,
		MoveStatusDone:      true,
		MoveStatusCancelled: true,
	},
	MoveStatusWaiting: {
		MoveStatusDone:      true,
		MoveStatusCancelled: true,
	},
	MoveStatusDone:      {},
	MoveStatusCancelled: {},
}

// ValidMoveStatus indica si s es un estado conocido.
func ValidMoveStatus(s string) bool {
	_, ok := moveTransitions[s]
	return ok
}

// CanTransition indica si el cambio de estado from → to está permitido.
func CanTransition(from, to string) bool {
	return moveTransitions[from][to]
}

// StockMove es el libro mayor: cada movimiento físico de stock queda aquí.
//   - Recepción: vendor → internal
//   - Entrega: internal → customer
//   - Transferencia interna: internal → internal
//   - Ajuste: internal → inventory_loss
//
// Después de la creación solo cambian Status y UpdatedAt; Reference es inmutable.
type StockMove struct {
	ID                    string
	ProductID             string
	Quantity              int64 // siempre positiva; el sentido lo dan las ubicaciones
	SourceLocationID      string
	DestinationLocationID string
	Status                string
	Reference             string // ej. WH1/IN/0001, única
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
