package memrepo

import (
	"context"

	"github.com/sathler/bomlink/internal/domain/repository"
)

// Tx ejecuta los callbacks transaccionales sobre el almacén. Antes de cada
// callback toma una instantánea del estado y la restaura si el callback
// falla, de modo que las pruebas observan el mismo todo-o-nada que la
// transacción real de PostgreSQL.
type Tx struct {
	S *Store
}

// NewTx construye el runner sobre un almacén.
func NewTx(s *Store) *Tx { return &Tx{S: s} }

// Run satisface los puertos transaccionales de bomitems e importing.
func (t *Tx) Run(ctx context.Context, fn func(
	bomRepo repository.BOMRepository,
	partRepo repository.PartRepository,
	rfqRepo repository.RFQRepository,
) error) error {
	snap := t.S.snapshot()
	if err := fn(t.S.BOMRepo(), t.S.PartRepo(), t.S.RFQRepo()); err != nil {
		t.S.restore(snap)
		return err
	}
	return nil
}

// RunRFQ satisface el puerto transaccional del flujo RFQ.
func (t *Tx) RunRFQ(ctx context.Context, fn func(
	bomRepo repository.BOMRepository,
	rfqRepo repository.RFQRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	snap := t.S.snapshot()
	if err := fn(t.S.BOMRepo(), t.S.RFQRepo(), t.S.SupplierRepo()); err != nil {
		t.S.restore(snap)
		return err
	}
	return nil
}
