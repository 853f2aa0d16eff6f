// seed crea el esquema si no existe y carga los datos base: ubicaciones
// virtuales, una bodega de demostración con sus ubicaciones internas,
// productos de ejemplo y un usuario manager.
//
// Uso: go run ./cmd/seed
// Es idempotente: los inserts usan ON CONFLICT DO NOTHING.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	full_name TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT 'staff',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	reset_code TEXT,
	reset_code_expiry TIMESTAMPTZ,
	reset_attempts INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS warehouses (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	short_code TEXT NOT NULL UNIQUE,
	address TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS locations (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	short_code TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL,
	warehouse_id UUID REFERENCES warehouses(id),
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	sku TEXT NOT NULL UNIQUE,
	category TEXT NOT NULL DEFAULT '',
	uom TEXT NOT NULL DEFAULT 'Units',
	cost NUMERIC(14,2) NOT NULL DEFAULT 0,
	min_reorder_level BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS stock_moves (
	id UUID PRIMARY KEY,
	product_id UUID NOT NULL REFERENCES products(id),
	quantity BIGINT NOT NULL CHECK (quantity > 0),
	source_location_id UUID NOT NULL REFERENCES locations(id),
	destination_location_id UUID NOT NULL REFERENCES locations(id),
	status TEXT NOT NULL DEFAULT 'draft',
	reference TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_stock_moves_reference ON stock_moves (reference);
CREATE INDEX IF NOT EXISTS idx_stock_moves_product ON stock_moves (product_id);
CREATE INDEX IF NOT EXISTS idx_locations_warehouse ON locations (warehouse_id);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		fail("crear esquema", err)
	}
	fmt.Println("esquema listo")

	now := time.Now()

	// Ubicaciones virtuales: contrapartes de recepciones, entregas y ajustes.
	virtuals := []struct{ name, shortCode, typ string }{
		{"Proveedores", "VEND", entity.LocationTypeVendor},
		{"Clientes", "CUST", entity.LocationTypeCustomer},
		{"Pérdidas de inventario", "LOSS", entity.LocationTypeInventoryLoss},
		{"Producción", "PROD", entity.LocationTypeProduction},
	}
	for _, v := range virtuals {
		_, err := pool.Exec(ctx, `
			INSERT INTO locations (id, name, short_code, type, warehouse_id, created_at)
			SELECT $1, $2, $3, $4, NULL, $5
			WHERE NOT EXISTS (SELECT 1 FROM locations WHERE type = $4 AND warehouse_id IS NULL)`,
			uuid.New().String(), v.name, v.shortCode, v.typ, now,
		)
		if err != nil {
			fail("insertar ubicación virtual "+v.name, err)
		}
	}
	fmt.Println("ubicaciones virtuales listas")

	// Bodega de demostración con sus ubicaciones internas.
	warehouseID := uuid.New().String()
	tag, err := pool.Exec(ctx, `
		INSERT INTO warehouses (id, name, short_code, address, created_at, updated_at)
		VALUES ($1, 'Bodega Principal', 'WH1', 'Calle 10 #25-30', $2, $2)
		ON CONFLICT (short_code) DO NOTHING`,
		warehouseID, now,
	)
	if err != nil {
		fail("insertar bodega", err)
	}
	if tag.RowsAffected() > 0 {
		internals := []struct{ name, shortCode string }{
			{"Stock", "STK"},
			{"Recepción", "RCV"},
			{"Despacho", "SHP"},
		}
		for _, l := range internals {
			_, err := pool.Exec(ctx, `
				INSERT INTO locations (id, name, short_code, type, warehouse_id, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				uuid.New().String(), l.name, l.shortCode, entity.LocationTypeInternal, warehouseID, now,
			)
			if err != nil {
				fail("insertar ubicación interna "+l.name, err)
			}
		}
		fmt.Println("bodega de demostración lista")
	}

	// Productos de ejemplo.
	products := []struct {
		name, sku, category string
		cost                string
		minReorder          int64
	}{
		{"Tornillo hexagonal M8", "TOR-M8", "Ferretería", "0.15", 500},
		{"Pintura blanca 1gal", "PIN-B1G", "Pinturas", "18.50", 20},
		{"Cable UTP cat6 305m", "CAB-C6", "Eléctricos", "95.00", 5},
	}
	for _, p := range products {
		_, err := pool.Exec(ctx, `
			INSERT INTO products (id, name, sku, category, uom, cost, min_reorder_level, created_at, updated_at)
			VALUES ($1, $2, $3, $4, 'Units', $5, $6, $7, $7)
			ON CONFLICT (sku) DO NOTHING`,
			uuid.New().String(), p.name, p.sku, p.category, p.cost, p.minReorder, now,
		)
		if err != nil {
			fail("insertar producto "+p.sku, err)
		}
	}
	fmt.Println("productos de ejemplo listos")

	// Usuario manager inicial.
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "cambiame123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fail("hash de contraseña", err)
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, full_name, role, is_active, reset_attempts, created_at, updated_at)
		VALUES ($1, 'admin@almacen.local', $2, 'Administrador', $3, TRUE, 0, $4, $4)
		ON CONFLICT (email) DO NOTHING`,
		uuid.New().String(), string(hash), entity.RoleManager, now,
	)
	if err != nil {
		fail("insertar usuario manager", err)
	}
	fmt.Println("usuario manager listo (admin@almacen.local)")
}

func fail(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
