package batch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/verdeflow/trazo-api/internal/domain/batch"
)

var testDay = time.Date(2025, 11, 29, 10, 0, 0, 0, time.UTC)

func TestCode_FormatoBasico(t *testing.T) {
	code := batch.Code("Castillo", testDay, 1)
	assert.Equal(t, "CAS-251129-001", code)
}

func TestCode_SinCultivarUsaGEN(t *testing.T) {
	assert.Equal(t, "GEN-251129-007", batch.Code("", testDay, 7))
	assert.Equal(t, "GEN-251129-007", batch.Code("   ", testDay, 7))
}

func TestCode_TildesYMinusculas(t *testing.T) {
	// El prefijo debe ser ASCII en mayúsculas aunque el cultivar tenga tildes.
	assert.Equal(t, "CAF-251129-012", batch.Code("café Castillo", testDay, 12))
	assert.Equal(t, "NIN-251129-001", batch.Code("ñiño verde", testDay, 1))
}

func TestCode_NombreCortoNoSeRellena(t *testing.T) {
	// Nombre de menos de tres letras: prefijo más corto, se acepta tal cual.
	assert.Equal(t, "OG-251129-003", batch.Code("OG", testDay, 3))
}

func TestCode_IgnoraSimbolosYNumeros(t *testing.T) {
	assert.Equal(t, "KUS-251129-002", batch.Code("#1 kush 99", testDay, 2))
}

func TestCode_SecuenciaConCeros(t *testing.T) {
	assert.Equal(t, "GEN-251129-045", batch.Code("", testDay, 45))
	assert.Equal(t, "GEN-251129-120", batch.Code("", testDay, 120))
}

func TestPlantCode(t *testing.T) {
	assert.Equal(t, "CAS-251129-001-P7", batch.PlantCode("CAS-251129-001", 7))
}
