package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Rental-api/internal/infrastructure/archive"
	"github.com/jhoicas/Rental-api/internal/infrastructure/catalog"
)

var (
	archivePath string
	latency     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "rentctl",
	Short: "Calcular e imprimir facturas de arriendo desde la terminal",
	Long: `rentctl calcula facturas a partir de un borrador YAML, genera el PDF
y guarda una copia del snapshot en un archivo SQLite local.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&archivePath, "archive", "", "archivo SQLite del historial (por defecto ./rentctl.db)")
	rootCmd.PersistentFlags().DurationVar(&latency, "latency", 0, "demora simulada del catálogo de ejemplo (ej. 300ms)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getArchivePath() string {
	if archivePath != "" {
		return archivePath
	}
	return "rentctl.db"
}

// openArchive abre el historial local creando el directorio si falta.
func openArchive() (*archive.DB, error) {
	path := getArchivePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creando directorio del historial: %w", err)
	}
	return archive.Open(path)
}

func sampleCatalog() *catalog.Memory {
	return catalog.NewMemory(latency)
}
