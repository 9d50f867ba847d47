package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCompanyInfo(t *testing.T) {
	text := `COMERCIAL EJEMPLO LIMITADA
76.123.456-7
VENTA AL POR MENOR DE ABARROTES
AVENIDA SIEMPRE VIVA 742
SANTIAGO
BALANCE DESDE ENERO DEL 2024 HASTA DICIEMBRE DEL 2024
`

	info := ParseCompanyInfo(text)

	assert.Equal(t, "COMERCIAL EJEMPLO LIMITADA", info.RazonSocial)
	assert.Equal(t, "76.123.456-7", info.RUT)
	assert.Equal(t, "VENTA AL POR MENOR DE ABARROTES", info.Giro)
	assert.Equal(t, "AVENIDA SIEMPRE VIVA 742", info.Direccion)
	assert.Equal(t, "SANTIAGO", info.Comuna)
	assert.Equal(t, "DESDE ENERO DEL 2024 HASTA DICIEMBRE DEL 2024", info.Periodo)
}

func TestParseCompanyInfoConcatenatedRUT(t *testing.T) {
	text := `COMERCIAL EJEMPLO LIMITADA 76.123.456-7
VENTA AL POR MENOR
AVENIDA SIEMPRE VIVA 742
SANTIAGO
`

	info := ParseCompanyInfo(text)

	assert.Equal(t, "COMERCIAL EJEMPLO LIMITADA", info.RazonSocial)
	assert.Equal(t, "76.123.456-7", info.RUT)
	assert.Equal(t, "VENTA AL POR MENOR", info.Giro)
}

func TestParseCompanyInfoWithoutRUT(t *testing.T) {
	text := `EMPRESA SIN RUT VISIBLE
OTRA LINEA
`

	info := ParseCompanyInfo(text)

	assert.Equal(t, "EMPRESA SIN RUT VISIBLE", info.RazonSocial)
	assert.Empty(t, info.RUT)
}

func TestParseCompanyInfoKRut(t *testing.T) {
	text := `SERVICIOS DEL SUR SPA
12.345.678-K
TRANSPORTE DE CARGA
`

	info := ParseCompanyInfo(text)

	assert.Equal(t, "12.345.678-K", info.RUT)
}
