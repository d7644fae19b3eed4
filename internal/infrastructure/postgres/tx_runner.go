package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sathler/bomlink/internal/application/bomitems"
	"github.com/sathler/bomlink/internal/application/importing"
	"github.com/sathler/bomlink/internal/application/rfq"
	"github.com/sathler/bomlink/internal/domain/repository"
)

// Ensure TxRunner implements the flow-level runner ports.
var _ importing.TxRunner = (*TxRunner)(nil)
var _ bomitems.TxRunner = (*TxRunner)(nil)
var _ rfq.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Cubre los flujos de importación y edición de líneas:
// BOM (líneas/drafts), catálogo de partes y RFQs para el recompute.
func (r *TxRunner) Run(ctx context.Context, fn func(
	bomRepo repository.BOMRepository,
	partRepo repository.PartRepository,
	rfqRepo repository.RFQRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	bomRepo := NewBOMRepository(tx)
	partRepo := NewPartRepository(tx)
	rfqRepo := NewRFQRepository(tx)

	if err := fn(bomRepo, partRepo, rfqRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRFQ inicia una transacción con los repos que necesita la generación y
// el borrado de RFQs (cabecera BOM + RFQs + mapeos de proveedor).
func (r *TxRunner) RunRFQ(ctx context.Context, fn func(
	bomRepo repository.BOMRepository,
	rfqRepo repository.RFQRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	bomRepo := NewBOMRepository(tx)
	rfqRepo := NewRFQRepository(tx)
	supplierRepo := NewSupplierRepository(tx)

	if err := fn(bomRepo, rfqRepo, supplierRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
