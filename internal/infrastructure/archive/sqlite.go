// Package archive guarda localmente (SQLite) las facturas renderizadas por la CLI.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/jhoicas/Rental-api/internal/application/dto"
)

// Record factura archivada. Input es el snapshot completo, así se puede volver a derivar.
type Record struct {
	ID           int64
	Number       string
	ContractCode string
	TenantName   string
	FromDate     time.Time
	ToDate       time.Time
	GrandTotal   decimal.Decimal
	PDFPath      string
	Input        dto.InvoiceInputDTO
	CreatedAt    time.Time
}

// DB envuelve la conexión SQLite.
type DB struct {
	conn *sql.DB
}

// Open abre (o crea) el archivo y asegura el esquema.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("archive: abrir base: %w", err)
	}
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("archive: inicializar esquema: %w", err)
	}
	return db, nil
}

// Close cierra la conexión.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	_, err := db.conn.Exec(`
	CREATE TABLE IF NOT EXISTS invoices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		number TEXT NOT NULL UNIQUE,
		contract_code TEXT NOT NULL,
		tenant_name TEXT NOT NULL,
		from_date TEXT NOT NULL,
		to_date TEXT NOT NULL,
		grand_total TEXT NOT NULL,
		pdf_path TEXT,
		input_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_invoices_contract ON invoices(contract_code);
	`)
	return err
}

// Save inserta o reemplaza por número de factura.
func (db *DB) Save(ctx context.Context, r *Record) error {
	raw, err := json.Marshal(r.Input)
	if err != nil {
		return fmt.Errorf("archive: serializar input: %w", err)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	res, err := db.conn.ExecContext(ctx, `
	INSERT OR REPLACE INTO invoices (number, contract_code, tenant_name, from_date, to_date, grand_total, pdf_path, input_json, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Number, r.ContractCode, r.TenantName,
		r.FromDate.Format(dto.DateLayout), r.ToDate.Format(dto.DateLayout),
		r.GrandTotal.String(), r.PDFPath, string(raw), r.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("archive: guardar factura: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		r.ID = id
	}
	return nil
}

// Get busca por número. (nil, nil) si no existe.
func (db *DB) Get(ctx context.Context, number string) (*Record, error) {
	row := db.conn.QueryRowContext(ctx, `
	SELECT id, number, contract_code, tenant_name, from_date, to_date, grand_total, pdf_path, input_json, created_at
	FROM invoices WHERE number = ?`, number)
	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

// List devuelve las facturas más recientes primero. limit <= 0 devuelve todas.
func (db *DB) List(ctx context.Context, limit int) ([]*Record, error) {
	q := `
	SELECT id, number, contract_code, tenant_name, from_date, to_date, grand_total, pdf_path, input_json, created_at
	FROM invoices ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("archive: listar: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	var (
		r                      Record
		from, to, total, input string
		created                string
		pdfPath                sql.NullString
	)
	if err := s.Scan(&r.ID, &r.Number, &r.ContractCode, &r.TenantName, &from, &to, &total, &pdfPath, &input, &created); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("archive: leer fila: %w", err)
	}
	var err error
	if r.FromDate, err = time.Parse(dto.DateLayout, from); err != nil {
		return nil, fmt.Errorf("archive: from_date: %w", err)
	}
	if r.ToDate, err = time.Parse(dto.DateLayout, to); err != nil {
		return nil, fmt.Errorf("archive: to_date: %w", err)
	}
	if r.GrandTotal, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("archive: grand_total: %w", err)
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return nil, fmt.Errorf("archive: created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(input), &r.Input); err != nil {
		return nil, fmt.Errorf("archive: input_json: %w", err)
	}
	r.PDFPath = pdfPath.String
	return &r, nil
}
