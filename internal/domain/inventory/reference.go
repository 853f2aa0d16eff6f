package inventory

import (
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Códigos de operación para referencias de movimiento.
const (
	OpReceipt  = "IN"  // recepción: proveedor → bodega
	OpDelivery = "OUT" // entrega: bodega → cliente
	OpInternal = "INT" // transferencia interna / ajuste
)

// FallbackWarehouseCode código de bodega cuando la operación no tiene una
// bodega atribuible (transferencias internas, ubicaciones sin bodega).
const FallbackWarehouseCode = "GEN"

// ClassifyOperation determina el tipo de operación a partir de los tipos de
// las ubicaciones origen y destino. El origen vendor manda sobre el destino.
func ClassifyOperation(sourceType, destType string) string {
	switch {
	case sourceType == entity.LocationTypeVendor:
		return OpReceipt
	case destType == entity.LocationTypeCustomer:
		return OpDelivery
	default:
		return OpInternal
	}
}

// WarehouseCode elige el código de bodega para la referencia: en recepciones
// la bodega del destino, en entregas la del origen, GEN en el resto.
// sourceWhCode y destWhCode pueden ser "" si la ubicación no tiene bodega.
func WarehouseCode(opCode, sourceWhCode, destWhCode string) string {
	switch opCode {
	case OpReceipt:
		if destWhCode != "" {
			return destWhCode
		}
	case OpDelivery:
		if sourceWhCode != "" {
			return sourceWhCode
		}
	}
	return FallbackWarehouseCode
}

// FormatReference arma la referencia legible {bodega}/{operación}/{secuencia},
// con la secuencia a cuatro dígitos (sin relleno pasado 9999).
func FormatReference(warehouseCode, opCode string, sequence int64) string {
	return fmt.Sprintf("%s/%s/%04d", warehouseCode, opCode, sequence)
}
