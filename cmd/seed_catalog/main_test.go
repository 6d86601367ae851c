package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog_Testdata(t *testing.T) {
	f, err := os.Open("testdata/catalog.xml")
	require.NoError(t, err)
	defer f.Close()

	c, err := parseCatalog(f)
	require.NoError(t, err)
	assert.Len(t, c.Buildings, 2)
	assert.Len(t, c.Rooms, 4)
	assert.Len(t, c.Contracts, 4)
	require.Len(t, c.Services, 5)
	assert.Equal(t, "Room cleaning service", c.Services[4].Description)

	var out bytes.Buffer
	require.NoError(t, writeSQL(&out, c))
	sql := out.String()
	assert.Contains(t, sql, "VALUES ('bldg-a', 'BLDG-A', 'Building A', '12 Nguyen Trai', 3500, 15000)")
	assert.Contains(t, sql, "VALUES ('room-3', 'bldg-b', '201', 'double', 2, 4000000)")
	assert.Contains(t, sql, "'Pham Thi D'")
	assert.Contains(t, sql, "UPDATE rooms SET status = 'occupied' WHERE id IN ('room-1', 'room-2', 'room-3', 'room-4');")
}

func TestParseCatalog_Latin1(t *testing.T) {
	// "Peña" en ISO-8859-1: ñ = 0xF1
	raw := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<catalog><contract code=\"C-1\" room=\"r\" tenant=\"Pe\xf1a O'Neil\" start=\"2024-01-01\" end=\"2024-12-31\" rent=\"1\"/></catalog>"
	c, err := parseCatalog(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, c.Contracts, 1)
	assert.Equal(t, "Peña O'Neil", c.Contracts[0].Tenant)

	var out bytes.Buffer
	require.NoError(t, writeSQL(&out, c))
	assert.Contains(t, out.String(), "'Peña O''Neil'")
}

func TestParseCatalog_CodificacionDesconocida(t *testing.T) {
	_, err := parseCatalog(strings.NewReader(`<?xml version="1.0" encoding="EBCDIC"?><catalog/>`))
	assert.Error(t, err)
}

func TestNumeric(t *testing.T) {
	assert.Equal(t, "0", numeric(""))
	assert.Equal(t, "3500", numeric(" 3500 "))
	assert.Equal(t, "12.5", numeric("12.5"))
	assert.Equal(t, "0", numeric("1;DROP"))
	assert.Equal(t, "0", numeric("1.2.3"))
	assert.Equal(t, "0", numeric("-20"))
	assert.Equal(t, "0", numeric("12,5"))
	assert.Equal(t, "1500", numeric("1.5e3"))
	assert.Equal(t, "12.5", numeric("012.50"))
}
