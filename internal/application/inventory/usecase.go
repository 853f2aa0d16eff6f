package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Reintentos del par contar-secuencia + insertar cuando dos creaciones
// concurrentes calculan la misma referencia (índice único sobre reference).
const maxReferenceRetries = 3

// MoveUseCase registra y consulta movimientos del libro de stock.
// La creación corre en una transacción: contar la secuencia y persistir la
// referencia fuera de una tx es una carrera clásica de leer-y-escribir.
type MoveUseCase struct {
	txRunner      TxRunner
	moveRepo      repository.StockMoveRepository
	productRepo   repository.ProductRepository
	locationRepo  repository.LocationRepository
	warehouseRepo repository.WarehouseRepository
}

// NewMoveUseCase construye el caso de uso.
func NewMoveUseCase(
	txRunner TxRunner,
	moveRepo repository.StockMoveRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	warehouseRepo repository.WarehouseRepository,
) *MoveUseCase {
	return &MoveUseCase{
		txRunner:      txRunner,
		moveRepo:      moveRepo,
		productRepo:   productRepo,
		locationRepo:  locationRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Create valida el movimiento, resuelve producto y ubicaciones, genera la
// referencia (WH1/IN/0001) y persiste. Si alguna ubicación o el producto no
// existen falla con ErrNotFound y no persiste nada.
func (uc *MoveUseCase) Create(ctx context.Context, in dto.CreateMoveRequest) (*dto.MoveResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceLocationID == "" || in.DestinationLocationID == "" || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceLocationID == in.DestinationLocationID {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.MoveStatusDraft
	}
	if !entity.ValidMoveStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	source, err := uc.locationRepo.GetByID(in.SourceLocationID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, domain.ErrNotFound
	}
	dest, err := uc.locationRepo.GetByID(in.DestinationLocationID)
	if err != nil {
		return nil, err
	}
	if dest == nil {
		return nil, domain.ErrNotFound
	}

	opCode := domaininv.ClassifyOperation(source.Type, dest.Type)
	whCode := domaininv.WarehouseCode(opCode, uc.warehouseShortCode(source), uc.warehouseShortCode(dest))

	// Conteo + insert atómicos; el índice único sobre reference corta los
	// duplicados de creaciones concurrentes y se reintenta el par completo.
	var move *entity.StockMove
	for attempt := 0; attempt < maxReferenceRetries; attempt++ {
		err = uc.txRunner.Run(ctx, func(moves repository.StockMoveRepository) error {
			count, err := moves.CountByOperation(opCode)
			if err != nil {
				return err
			}
			now := time.Now()
			candidate := &entity.StockMove{
				ID:                    uuid.New().String(),
				ProductID:             in.ProductID,
				Quantity:              in.Quantity,
				SourceLocationID:      in.SourceLocationID,
				DestinationLocationID: in.DestinationLocationID,
				Status:                status,
				Reference:             domaininv.FormatReference(whCode, opCode, count+1),
				CreatedAt:             now,
				UpdatedAt:             now,
			}
			if err := moves.Create(candidate); err != nil {
				return err
			}
			move = candidate
			return nil
		})
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
	}
	if err != nil {
		return nil, domain.ErrConflict
	}

	resp := toMoveResponse(&repository.MoveWithDetails{
		Move:        *move,
		Product:     *product,
		Source:      *source,
		Destination: *dest,
	})
	return &resp, nil
}

// SetStatus cambia el estado de un movimiento validando la máquina de
// estados (draft→waiting|done|cancelled, waiting→done|cancelled; done y
// cancelled son terminales). Solo status y updated_at cambian.
func (uc *MoveUseCase) SetStatus(id, status string) (*dto.MoveResponse, error) {
	if !entity.ValidMoveStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	move, err := uc.moveRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if move == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(move.Status, status) {
		return nil, domain.ErrInvalidTransition
	}
	now := time.Now()
	if err := uc.moveRepo.UpdateStatus(id, status, now); err != nil {
		return nil, err
	}
	move.Status = status
	move.UpdatedAt = now

	product, err := uc.productRepo.GetByID(move.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	source, err := uc.locationRepo.GetByID(move.SourceLocationID)
	if err != nil || source == nil {
		return nil, domain.ErrNotFound
	}
	dest, err := uc.locationRepo.GetByID(move.DestinationLocationID)
	if err != nil || dest == nil {
		return nil, domain.ErrNotFound
	}
	resp := toMoveResponse(&repository.MoveWithDetails{
		Move:        *move,
		Product:     *product,
		Source:      *source,
		Destination: *dest,
	})
	return &resp, nil
}

// List historial de movimientos, más reciente primero. search busca en
// referencia, nombre de producto y nombre de ubicación origen.
func (uc *MoveUseCase) List(search string, limit, offset int) (*dto.MoveListResponse, error) {
	rows, err := uc.moveRepo.List(search, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMoveListResponse(rows, limit, offset), nil
}

// Receipts recepciones: movimientos con origen de tipo vendor.
func (uc *MoveUseCase) Receipts(search string, limit, offset int) (*dto.MoveListResponse, error) {
	rows, err := uc.moveRepo.ListBySourceType(entity.LocationTypeVendor, search, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMoveListResponse(rows, limit, offset), nil
}

// Deliveries entregas: movimientos con destino de tipo customer.
func (uc *MoveUseCase) Deliveries(search string, limit, offset int) (*dto.MoveListResponse, error) {
	rows, err := uc.moveRepo.ListByDestinationType(entity.LocationTypeCustomer, search, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMoveListResponse(rows, limit, offset), nil
}

// warehouseShortCode resuelve el código corto de la bodega dueña de la
// ubicación; "" si la ubicación es virtual o la bodega no existe.
func (uc *MoveUseCase) warehouseShortCode(loc *entity.Location) string {
	if loc.WarehouseID == nil || *loc.WarehouseID == "" {
		return ""
	}
	warehouse, err := uc.warehouseRepo.GetByID(*loc.WarehouseID)
	if err != nil || warehouse == nil {
		return ""
	}
	return warehouse.ShortCode
}

func toMoveListResponse(rows []*repository.MoveWithDetails, limit, offset int) *dto.MoveListResponse {
	items := make([]dto.MoveResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, toMoveResponse(r))
	}
	return &dto.MoveListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}

func toMoveResponse(d *repository.MoveWithDetails) dto.MoveResponse {
	return dto.MoveResponse{
		ID:        d.Move.ID,
		Reference: d.Move.Reference,
		Quantity:  d.Move.Quantity,
		Status:    d.Move.Status,
		Product: dto.MoveProduct{
			ID:   d.Product.ID,
			Name: d.Product.Name,
			SKU:  d.Product.SKU,
			UOM:  d.Product.UOM,
		},
		SourceLocation: dto.LocationResponse{
			ID:          d.Source.ID,
			Name:        d.Source.Name,
			ShortCode:   d.Source.ShortCode,
			Type:        d.Source.Type,
			WarehouseID: d.Source.WarehouseID,
			CreatedAt:   d.Source.CreatedAt,
		},
		DestinationLocation: dto.LocationResponse{
			ID:          d.Destination.ID,
			Name:        d.Destination.Name,
			ShortCode:   d.Destination.ShortCode,
			Type:        d.Destination.Type,
			WarehouseID: d.Destination.WarehouseID,
			CreatedAt:   d.Destination.CreatedAt,
		},
		CreatedAt: d.Move.CreatedAt,
		UpdatedAt: d.Move.UpdatedAt,
	}
}
