package dto

// DashboardResponse totales para las tarjetas del dashboard.
type DashboardResponse struct {
	Products      int64            `json:"products"`
	Warehouses    int64            `json:"warehouses"`
	Locations     int64            `json:"locations"`
	Moves         int64            `json:"moves"`
	MovesByStatus map[string]int64 `json:"moves_by_status"`
}
