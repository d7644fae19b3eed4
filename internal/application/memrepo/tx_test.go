package memrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathler/bomlink/internal/application/memrepo"
	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/sathler/bomlink/internal/domain/repository"
)

// Un callback que falla después de escribir no deja rastro: el almacén
// vuelve a la instantánea previa, incluida la secuencia de ids.
func TestTxRun_ErrorRevierteEscrituras(t *testing.T) {
	s := memrepo.NewStore()
	bom := &entity.BOM{CustomerID: 1, Status: entity.BOMStatusDraft}
	require.NoError(t, s.BOMRepo().Create(bom))

	boom := errors.New("fallo simulado")
	err := memrepo.NewTx(s).Run(context.Background(), func(
		bomRepo repository.BOMRepository,
		partRepo repository.PartRepository,
		rfqRepo repository.RFQRepository,
	) error {
		loaded, err := bomRepo.GetByID(bom.ID)
		require.NoError(t, err)
		loaded.Status = entity.BOMStatusReady
		require.NoError(t, bomRepo.Update(loaded))
		require.NoError(t, partRepo.Create(&entity.Part{PartNumber: "NUEVA1", Unit: entity.UnitEach, ManufacturerID: 1}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	after, err := s.BOMRepo().GetByID(bom.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BOMStatusDraft, after.Status)

	parts, err := s.PartRepo().List(100, 0)
	require.NoError(t, err)
	assert.Empty(t, parts)
}

// Un callback exitoso persiste tal cual.
func TestTxRun_ExitoPersiste(t *testing.T) {
	s := memrepo.NewStore()
	err := memrepo.NewTx(s).Run(context.Background(), func(
		bomRepo repository.BOMRepository,
		partRepo repository.PartRepository,
		rfqRepo repository.RFQRepository,
	) error {
		return bomRepo.Create(&entity.BOM{CustomerID: 1, Status: entity.BOMStatusDraft})
	})
	require.NoError(t, err)

	boms, err := s.BOMRepo().List(100, 0)
	require.NoError(t, err)
	assert.Len(t, boms, 1)
}
