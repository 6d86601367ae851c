// seed_catalog genera un script SQL con edificios, habitaciones, contratos y servicios
// a partir de un catálogo XML (exportado del sistema anterior, a veces en Windows-1258).
//
// Uso: go run ./cmd/seed_catalog [ruta/catalog.xml] [salida.sql]
// Por defecto lee catalog.xml y escribe seed_catalog.sql en el directorio actual.
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type catalogXML struct {
	Buildings []buildingXML `xml:"building"`
	Rooms     []roomXML     `xml:"room"`
	Contracts []contractXML `xml:"contract"`
	Services  []serviceXML  `xml:"service"`
}

type buildingXML struct {
	Code            string `xml:"code,attr"`
	Name            string `xml:"name,attr"`
	Address         string `xml:"address,attr"`
	ElectricityRate string `xml:"electricity_rate,attr"`
	WaterRate       string `xml:"water_rate,attr"`
}

type roomXML struct {
	ID       string `xml:"id,attr"`
	Building string `xml:"building,attr"`
	Number   string `xml:"number,attr"`
	Type     string `xml:"type,attr"`
	Floor    int    `xml:"floor,attr"`
	Rent     string `xml:"rent,attr"`
}

type contractXML struct {
	Code   string `xml:"code,attr"`
	Room   string `xml:"room,attr"`
	Tenant string `xml:"tenant,attr"`
	Phone  string `xml:"phone,attr"`
	Start  string `xml:"start,attr"`
	End    string `xml:"end,attr"`
	Rent   string `xml:"rent,attr"`
}

type serviceXML struct {
	ID          string `xml:"id,attr"`
	Name        string `xml:"name,attr"`
	Price       string `xml:"price,attr"`
	Description string `xml:",chardata"`
}

func main() {
	xmlPath, outPath := "catalog.xml", "seed_catalog.sql"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	c, err := parseCatalog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, c); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d edificios, %d habitaciones, %d contratos, %d servicios\n",
		outPath, len(c.Buildings), len(c.Rooms), len(c.Contracts), len(c.Services))
}

// legacyCharsets codificaciones de los exportes antiguos.
var legacyCharsets = map[string]encoding.Encoding{
	"windows-1258": charmap.Windows1258,
	"cp1258":       charmap.Windows1258,
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso8859-1":    charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
}

// parseCatalog decodifica el XML transcodificando a UTF-8 y normaliza los textos a NFC
// (Windows-1258 codifica los tonos del vietnamita como marcas combinables).
func parseCatalog(r io.Reader) (*catalogXML, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if enc, ok := legacyCharsets[strings.ToLower(charset)]; ok {
			return transform.NewReader(input, enc.NewDecoder()), nil
		}
		if strings.EqualFold(charset, "utf-8") {
			return input, nil
		}
		return nil, fmt.Errorf("codificación no soportada: %s", charset)
	}

	var c catalogXML
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	for i := range c.Buildings {
		b := &c.Buildings[i]
		b.Name, b.Address = clean(b.Name), clean(b.Address)
	}
	for i := range c.Contracts {
		c.Contracts[i].Tenant = clean(c.Contracts[i].Tenant)
	}
	for i := range c.Services {
		s := &c.Services[i]
		s.Name, s.Description = clean(s.Name), clean(s.Description)
	}
	return &c, nil
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// buildingID el id del edificio se deriva del código: BLDG-A -> bldg-a.
func buildingID(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// writeSQL escribe inserts idempotentes (ON CONFLICT) en orden de dependencias.
func writeSQL(w io.Writer, c *catalogXML) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de arriendos (generado por seed_catalog)\n\n")

	b.WriteString("-- 1. Edificios\n")
	for _, bl := range c.Buildings {
		fmt.Fprintf(&b, "INSERT INTO buildings (id, code, name, address, electricity_rate, water_rate)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', %s, %s)\n",
			escapeSQL(buildingID(bl.Code)), escapeSQL(bl.Code), escapeSQL(bl.Name), escapeSQL(bl.Address),
			numeric(bl.ElectricityRate), numeric(bl.WaterRate))
		b.WriteString("ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address;\n")
	}

	b.WriteString("\n-- 2. Habitaciones\n")
	for _, r := range c.Rooms {
		typ := r.Type
		if typ == "" {
			typ = "single"
		}
		fmt.Fprintf(&b, "INSERT INTO rooms (id, building_id, number, type, floor, base_rent)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', %d, %s)\n",
			escapeSQL(r.ID), escapeSQL(buildingID(r.Building)), escapeSQL(r.Number), escapeSQL(typ), r.Floor, numeric(r.Rent))
		b.WriteString("ON CONFLICT (id) DO UPDATE SET base_rent = EXCLUDED.base_rent;\n")
	}

	b.WriteString("\n-- 3. Contratos\n")
	occupied := map[string]bool{}
	for _, ct := range c.Contracts {
		fmt.Fprintf(&b, "INSERT INTO contracts (id, code, room_id, tenant_name, tenant_phone, start_date, end_date, monthly_rent)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', '%s', '%s', '%s', %s)\n",
			escapeSQL(strings.ToLower(ct.Code)), escapeSQL(ct.Code), escapeSQL(ct.Room), escapeSQL(ct.Tenant),
			escapeSQL(ct.Phone), escapeSQL(ct.Start), escapeSQL(ct.End), numeric(ct.Rent))
		b.WriteString("ON CONFLICT (code) DO NOTHING;\n")
		occupied[ct.Room] = true
	}
	if len(occupied) > 0 {
		rooms := make([]string, 0, len(occupied))
		for id := range occupied {
			rooms = append(rooms, "'"+escapeSQL(id)+"'")
		}
		sort.Strings(rooms)
		fmt.Fprintf(&b, "UPDATE rooms SET status = 'occupied' WHERE id IN (%s);\n", strings.Join(rooms, ", "))
	}

	b.WriteString("\n-- 4. Servicios\n")
	for _, s := range c.Services {
		fmt.Fprintf(&b, "INSERT INTO services (id, name, price, description)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', %s, '%s')\n", escapeSQL(s.ID), escapeSQL(s.Name), numeric(s.Price), escapeSQL(s.Description))
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price, description = EXCLUDED.description;\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// numeric normaliza un valor monetario del catálogo; vacío, inválido o negativo -> 0.
func numeric(s string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return "0"
	}
	return d.String()
}
