package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas agregadas de solo lectura para el dashboard.
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// DashboardCounts totales de productos, bodegas, ubicaciones y movimientos
// (globales y desglosados por estado).
func (r *StatsRepo) DashboardCounts() (*repository.DashboardCounts, error) {
	ctx := context.Background()
	counts := &repository.DashboardCounts{MovesByStatus: map[string]int64{}}

	query := `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM warehouses),
			(SELECT COUNT(*) FROM locations),
			(SELECT COUNT(*) FROM stock_moves)`
	err := r.pool.QueryRow(ctx, query).Scan(
		&counts.Products, &counts.Warehouses, &counts.Locations, &counts.Moves,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}

	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM stock_moves GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts.MovesByStatus[status] = n
	}
	return counts, rows.Err()
}
