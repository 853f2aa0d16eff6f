package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockMoveRepository = (*StockMoveRepo)(nil)

// StockMoveRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMoveRepo struct {
	q Querier
}

// NewStockMoveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMoveRepository(q Querier) *StockMoveRepo {
	return &StockMoveRepo{q: q}
}

// Create persiste un movimiento. El índice único sobre reference devuelve
// ErrDuplicate si otra tx concurrente ya tomó la misma secuencia.
func (r *StockMoveRepo) Create(move *entity.StockMove) error {
	query := `
		INSERT INTO stock_moves (id, product_id, quantity, source_location_id,
			destination_location_id, status, reference, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		move.ID, move.ProductID, move.Quantity, move.SourceLocationID,
		move.DestinationLocationID, move.Status, move.Reference,
		move.CreatedAt, move.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock move: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMoveRepo) GetByID(id string) (*entity.StockMove, error) {
	query := `
		SELECT id, product_id, quantity, source_location_id, destination_location_id,
			status, reference, created_at, updated_at
		FROM stock_moves WHERE id = $1`
	var m entity.StockMove
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.Quantity, &m.SourceLocationID, &m.DestinationLocationID,
		&m.Status, &m.Reference, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock move: %w", err)
	}
	return &m, nil
}

// UpdateStatus cambia solo status y updated_at.
func (r *StockMoveRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	query := `UPDATE stock_moves SET status = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update stock move status: %w", err)
	}
	return nil
}

// CountByOperation cuenta movimientos cuya referencia contiene "{opCode}/",
// para derivar la siguiente secuencia de la operación.
func (r *StockMoveRepo) CountByOperation(opCode string) (int64, error) {
	query := `SELECT COUNT(*) FROM stock_moves WHERE reference LIKE '%' || $1 || '/%'`
	var count int64
	if err := r.q.QueryRow(context.Background(), query, opCode).Scan(&count); err != nil {
		return 0, fmt.Errorf("count moves by operation: %w", err)
	}
	return count, nil
}

// CountByProduct cuenta movimientos que referencian al producto.
func (r *StockMoveRepo) CountByProduct(productID string) (int64, error) {
	query := `SELECT COUNT(*) FROM stock_moves WHERE product_id = $1`
	var count int64
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count moves by product: %w", err)
	}
	return count, nil
}

// Balances deriva las sumas del libro para un producto en una sola consulta:
// entradas (done hacia internal), salidas (done desde internal) y reservas
// (waiting desde internal). COALESCE garantiza ceros sin filas.
func (r *StockMoveRepo) Balances(productID string) (inventory.Balance, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN m.status = 'done' AND ld.type = 'internal' THEN m.quantity ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN m.status = 'done' AND ls.type = 'internal' THEN m.quantity ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN m.status = 'waiting' AND ls.type = 'internal' THEN m.quantity ELSE 0 END), 0)
		FROM stock_moves m
		JOIN locations ls ON ls.id = m.source_location_id
		JOIN locations ld ON ld.id = m.destination_location_id
		WHERE m.product_id = $1`
	var b inventory.Balance
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&b.Incoming, &b.Outgoing, &b.Reserved,
	)
	if err != nil {
		return inventory.Balance{}, fmt.Errorf("balances: %w", err)
	}
	return b, nil
}

// List historial completo, más reciente primero.
func (r *StockMoveRepo) List(search string, limit, offset int) ([]*repository.MoveWithDetails, error) {
	return r.listDetails("", search, limit, offset)
}

// ListBySourceType movimientos cuyo origen es del tipo dado.
func (r *StockMoveRepo) ListBySourceType(locationType, search string, limit, offset int) ([]*repository.MoveWithDetails, error) {
	return r.listDetails("ls.type = $%d", search, limit, offset, locationType)
}

// ListByDestinationType movimientos cuyo destino es del tipo dado.
func (r *StockMoveRepo) ListByDestinationType(locationType, search string, limit, offset int) ([]*repository.MoveWithDetails, error) {
	return r.listDetails("ld.type = $%d", search, limit, offset, locationType)
}

// listDetails arma el listado con joins a producto y ubicaciones. extraWhere
// es un fragmento con %d para la posición del argumento extra, o "".
func (r *StockMoveRepo) listDetails(extraWhere, search string, limit, offset int, extraArgs ...any) ([]*repository.MoveWithDetails, error) {
	query := `
		SELECT m.id, m.product_id, m.quantity, m.source_location_id, m.destination_location_id,
			m.status, m.reference, m.created_at, m.updated_at,
			p.id, p.name, p.sku, p.category, p.uom, p.cost, p.min_reorder_level, p.created_at, p.updated_at,
			ls.id, ls.name, ls.short_code, ls.type, ls.warehouse_id, ls.created_at,
			ld.id, ld.name, ld.short_code, ld.type, ld.warehouse_id, ld.created_at
		FROM stock_moves m
		JOIN products p ON p.id = m.product_id
		JOIN locations ls ON ls.id = m.source_location_id
		JOIN locations ld ON ld.id = m.destination_location_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if extraWhere != "" {
		query += " AND " + fmt.Sprintf(extraWhere, pos)
		args = append(args, extraArgs...)
		pos++
	}
	if search != "" {
		query += fmt.Sprintf(
			" AND (m.reference ILIKE '%%' || $%d || '%%' OR p.name ILIKE '%%' || $%d || '%%' OR ls.name ILIKE '%%' || $%d || '%%')",
			pos, pos, pos,
		)
		args = append(args, search)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock moves: %w", err)
	}
	defer rows.Close()
	var list []*repository.MoveWithDetails
	for rows.Next() {
		var d repository.MoveWithDetails
		if err := rows.Scan(
			&d.Move.ID, &d.Move.ProductID, &d.Move.Quantity, &d.Move.SourceLocationID, &d.Move.DestinationLocationID,
			&d.Move.Status, &d.Move.Reference, &d.Move.CreatedAt, &d.Move.UpdatedAt,
			&d.Product.ID, &d.Product.Name, &d.Product.SKU, &d.Product.Category, &d.Product.UOM,
			&d.Product.Cost, &d.Product.MinReorderLevel, &d.Product.CreatedAt, &d.Product.UpdatedAt,
			&d.Source.ID, &d.Source.Name, &d.Source.ShortCode, &d.Source.Type, &d.Source.WarehouseID, &d.Source.CreatedAt,
			&d.Destination.ID, &d.Destination.Name, &d.Destination.ShortCode, &d.Destination.Type, &d.Destination.WarehouseID, &d.Destination.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock move: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
