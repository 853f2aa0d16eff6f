package repository

// DashboardCounts totales para las tarjetas del dashboard.
type DashboardCounts struct {
	Products      int64
	Warehouses    int64
	Locations     int64
	Moves         int64
	MovesByStatus map[string]int64
}

// StatsRepository puerto de consultas agregadas de solo lectura.
type StatsRepository interface {
	DashboardCounts() (*DashboardCounts, error)
}
