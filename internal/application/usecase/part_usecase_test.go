package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathler/bomlink/internal/application/dto"
	"github.com/sathler/bomlink/internal/application/memrepo"
	"github.com/sathler/bomlink/internal/application/usecase"
	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
)

func newPartUC() (*memrepo.Store, *usecase.PartUseCase) {
	s := memrepo.NewStore()
	return s, usecase.NewPartUseCase(s.PartRepo())
}

// El número se normaliza al crear: guiones y espacios fuera, mayúsculas.
func TestPartCreate_NormalizaElNumero(t *testing.T) {
	_, uc := newPartUC()

	out, err := uc.Create(dto.CreatePartRequest{PartNumber: "lc1-d18 m7", Description: "Contactor"})
	require.NoError(t, err)

	assert.Equal(t, "LC1D18M7", out.PartNumber)
	assert.Equal(t, entity.UnitEach, out.Unit, "sin unidad explícita el default es E")
}

// Dos escrituras que colapsan al mismo número normalizado chocan.
func TestPartCreate_DuplicadoTrasNormalizar(t *testing.T) {
	_, uc := newPartUC()

	_, err := uc.Create(dto.CreatePartRequest{PartNumber: "UT-25"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreatePartRequest{PartNumber: "ut25"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestPartCreate_UnidadInvalida(t *testing.T) {
	_, uc := newPartUC()

	_, err := uc.Create(dto.CreatePartRequest{PartNumber: "UT25", Unit: "KG"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPartCreate_NumeroVacioTrasNormalizar(t *testing.T) {
	_, uc := newPartUC()

	_, err := uc.Create(dto.CreatePartRequest{PartNumber: "---"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una parte referenciada por una línea de BOM no se puede borrar.
func TestPartDelete_EnUsoRechaza(t *testing.T) {
	s, uc := newPartUC()
	out, err := uc.Create(dto.CreatePartRequest{PartNumber: "UT25"})
	require.NoError(t, err)

	require.NoError(t, s.BOMRepo().CreateItem(&entity.BOMItem{BOMID: 1, PartID: out.ID, Quantity: 2}))

	assert.ErrorIs(t, uc.Delete(out.ID), domain.ErrInUse)
}
