package usecase

import (
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// DashboardUseCase totales agregados para las tarjetas del dashboard.
type DashboardUseCase struct {
	repo repository.StatsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.StatsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Counts devuelve los totales de productos, bodegas, ubicaciones y
// movimientos por estado.
func (uc *DashboardUseCase) Counts() (*dto.DashboardResponse, error) {
	counts, err := uc.repo.DashboardCounts()
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		Products:      counts.Products,
		Warehouses:    counts.Warehouses,
		Locations:     counts.Locations,
		Moves:         counts.Moves,
		MovesByStatus: counts.MovesByStatus,
	}, nil
}
