package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rental-api/pkg/logger"
)

func TestNewWithWriter_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "info").Component("billing")
	log.Info().Str("invoice_id", "inv-1").Msg("factura emitida")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "billing", line["component"])
	assert.Equal(t, "inv-1", line["invoice_id"])
	assert.Equal(t, "info", line["level"])
	assert.Contains(t, line, "time")
}

func TestNewWithWriter_Nivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "WARN")
	log.Info().Msg("no sale")
	assert.Zero(t, buf.Len())
	log.Warn().Msg("sale")
	assert.NotZero(t, buf.Len())

	buf.Reset()
	logger.NewWithWriter(&buf, "desconocido").Debug().Msg("no sale")
	assert.Zero(t, buf.Len(), "nivel inválido cae a info")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { logger.Nop().Component("x").Error().Msg("nada") })
}
