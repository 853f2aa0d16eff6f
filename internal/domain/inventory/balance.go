package inventory

// Balance agrega las sumas del libro mayor para un producto. Las tres sumas
// salen de la misma consulta y siempre valen cero si no hay movimientos.
type Balance struct {
	Incoming int64 // movimientos done hacia ubicaciones internas
	Outgoing int64 // movimientos done desde ubicaciones internas
	Reserved int64 // movimientos waiting desde ubicaciones internas
}

// OnHand stock físico dentro de ubicaciones internas.
func (b Balance) OnHand() int64 {
	return b.Incoming - b.Outgoing
}

// FreeToUse stock disponible para nuevos compromisos (físico menos reservado).
func (b Balance) FreeToUse() int64 {
	return b.OnHand() - b.Reserved
}
