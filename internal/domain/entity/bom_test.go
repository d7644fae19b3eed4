package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sathler/bomlink/internal/domain/entity"
)

// El estado es función pura de (¿hay RFQs?, ¿hay drafts?, ¿hay líneas?),
// evaluada en ese orden de prioridad.
func TestBOM_RecomputeStatus_TablaCompleta(t *testing.T) {
	cases := []struct {
		name                        string
		hasRFQs, hasDrafts, hasItems bool
		want                        string
	}{
		{"sin nada es Draft", false, false, false, entity.BOMStatusDraft},
		{"solo líneas es Ready", false, false, true, entity.BOMStatusReady},
		{"solo drafts es Incomplete", false, true, false, entity.BOMStatusIncomplete},
		{"draft y línea sigue Incomplete, nunca Ready", false, true, true, entity.BOMStatusIncomplete},
		{"RFQ manda sobre todo", true, false, false, entity.BOMStatusLocked},
		{"RFQ con drafts y líneas sigue Locked", true, true, true, entity.BOMStatusLocked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &entity.BOM{Status: entity.BOMStatusLocked}
			b.RecomputeStatus(tc.hasRFQs, tc.hasDrafts, tc.hasItems)
			assert.Equal(t, tc.want, b.Status)
		})
	}
}

// Comportamiento literal del sistema: Locked NO es pegajoso por sí mismo.
// Si el último RFQ desaparece, el recompute saca al BOM de Locked.
func TestBOM_RecomputeStatus_BorrarUltimoRFQDesbloquea(t *testing.T) {
	b := &entity.BOM{Status: entity.BOMStatusLocked}
	b.RecomputeStatus(false, false, true)
	assert.Equal(t, entity.BOMStatusReady, b.Status)

	b.Status = entity.BOMStatusLocked
	b.RecomputeStatus(false, true, true)
	assert.Equal(t, entity.BOMStatusIncomplete, b.Status)

	b.Status = entity.BOMStatusLocked
	b.RecomputeStatus(false, false, false)
	assert.Equal(t, entity.BOMStatusDraft, b.Status)
}

func TestBOM_IncrementVersion_SumaExactamenteUnDecimo(t *testing.T) {
	b := &entity.BOM{Version: decimal.RequireFromString("1.0")}
	b.IncrementVersion()
	assert.True(t, b.Version.Equal(decimal.RequireFromString("1.1")), "1.0 -> 1.1, obtuvo %s", b.Version)

	// Sin acumulación de error binario: 0.1 decimal exacto, magnitud irrelevante.
	b.Version = decimal.RequireFromString("99.9")
	b.IncrementVersion()
	assert.True(t, b.Version.Equal(decimal.RequireFromString("100.0")), "99.9 -> 100.0, obtuvo %s", b.Version)

	b.Version = decimal.RequireFromString("1.0")
	for i := 0; i < 10; i++ {
		b.IncrementVersion()
	}
	assert.True(t, b.Version.Equal(decimal.RequireFromString("2.0")), "diez bumps: 1.0 -> 2.0, obtuvo %s", b.Version)
}

func TestBOM_BOMNumber_CeroPaddingFijo(t *testing.T) {
	assert.Equal(t, "BOM-000123", (&entity.BOM{ID: 123}).BOMNumber())
	assert.Equal(t, "BOM-000001", (&entity.BOM{ID: 1}).BOMNumber())
	assert.Equal(t, "BOM-1234567", (&entity.BOM{ID: 1234567}).BOMNumber())
}

func TestRFQ_RFQNumber_CeroPaddingFijo(t *testing.T) {
	assert.Equal(t, "RFQ-000007", (&entity.RFQ{ID: 7}).RFQNumber())
	assert.Equal(t, "RFQ-000123", (&entity.RFQ{ID: 123}).RFQNumber())
}
