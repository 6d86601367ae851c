package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Rental-api/internal/application/billing"
	"github.com/jhoicas/Rental-api/internal/application/dto"
	engine "github.com/jhoicas/Rental-api/internal/domain/billing"
	"github.com/jhoicas/Rental-api/internal/infrastructure/archive"
	"github.com/jhoicas/Rental-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Rental-api/pkg/money"
)

var (
	draftPath string
	outDir    string
	histLimit int
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Operaciones sobre facturas",
}

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Calcular los totales de un borrador",
	RunE:  runCompute,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Generar el PDF de un borrador y guardarlo en el historial",
	RunE:  runRender,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Listar facturas generadas",
	RunE:  runHistory,
}

func init() {
	computeCmd.Flags().StringVarP(&draftPath, "file", "f", "", "borrador YAML")
	_ = computeCmd.MarkFlagRequired("file")

	renderCmd.Flags().StringVarP(&draftPath, "file", "f", "", "borrador YAML")
	renderCmd.Flags().StringVarP(&outDir, "out", "o", ".", "directorio de salida del PDF")
	_ = renderCmd.MarkFlagRequired("file")

	historyCmd.Flags().IntVar(&histLimit, "limit", 20, "máximo de filas (0 = todas)")

	invoiceCmd.AddCommand(computeCmd, renderCmd, historyCmd)
	rootCmd.AddCommand(invoiceCmd)
}

func loadInput(ctx context.Context) (engine.Input, error) {
	in, err := loadDraftFile(draftPath)
	if err != nil {
		return in, err
	}
	return fillRoom(ctx, sampleCatalog(), in)
}

func runCompute(cmd *cobra.Command, args []string) error {
	in, err := loadInput(cmd.Context())
	if err != nil {
		return err
	}
	out := engine.DraftFromInput(in).Output()
	printTotals(cmd, out)
	if err := engine.Validate(in); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "\nEl borrador no se puede emitir: %v\n", err)
	}
	return nil
}

func printTotals(cmd *cobra.Command, out engine.Output) {
	w := cmd.OutOrStdout()
	in := out.Input
	fmt.Fprintf(w, "Room %s (%s) - %s [%s]\n", in.Room.RoomNumber, in.Room.BuildingCode, in.Room.TenantName, in.Room.ContractCode)
	fmt.Fprintf(w, "Period: %s -> %s (%d days)\n", in.Period.From.Format(dto.DateLayout), in.Period.To.Format(dto.DateLayout), out.NumberOfDays)
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintf(w, "%-22s %18s\n", "Room Fee", money.VND(out.RoomFee.Round(0)))
	fmt.Fprintf(w, "%-22s %18s\n", fmt.Sprintf("Electricity (%s kWh)", money.Number(out.Electricity.Usage)), money.VND(out.Electricity.Total))
	fmt.Fprintf(w, "%-22s %18s\n", "Water ("+string(in.Water.Method)+")", money.VND(out.Water.Total))
	for _, s := range out.BillableServices() {
		fmt.Fprintf(w, "%-22s %18s\n", fmt.Sprintf("%s x%d", s.Name, s.Quantity), money.VND(s.Amount))
	}
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintf(w, "%-22s %18s\n", "GRAND TOTAL", money.VND(out.GrandTotal))
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	in, err := loadInput(ctx)
	if err != nil {
		return err
	}
	if err := engine.Validate(in); err != nil {
		return err
	}
	out := engine.Derive(in)

	now := time.Now()
	number := billing.InvoiceNumber(in.Room.ContractCode, now)
	body, err := pdf.NewMarotoPDFGenerator().GenerateInvoicePDF(ctx, out, billing.InvoiceDocument{Number: number, IssuedAt: now})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creando directorio de salida: %w", err)
	}
	path := filepath.Join(outDir, billing.PDFFilename(in.Room.ContractCode))
	if err := os.WriteFile(path, body, 0644); err != nil {
		return fmt.Errorf("escribiendo PDF: %w", err)
	}

	db, err := openArchive()
	if err != nil {
		return fmt.Errorf("abriendo historial: %w", err)
	}
	defer db.Close()

	err = db.Save(ctx, &archive.Record{
		Number:       number,
		ContractCode: in.Room.ContractCode,
		TenantName:   in.Room.TenantName,
		FromDate:     in.Period.From,
		ToDate:       in.Period.To,
		GrandTotal:   out.GrandTotal,
		PDFPath:      path,
		Input:        dto.InputToDTO(in),
		CreatedAt:    now.UTC(),
	})
	if err != nil {
		return err
	}

	printTotals(cmd, out)
	fmt.Fprintf(cmd.OutOrStdout(), "\nInvoice %s written to %s\n", number, path)
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openArchive()
	if err != nil {
		return fmt.Errorf("abriendo historial: %w", err)
	}
	defer db.Close()

	list, err := db.List(cmd.Context(), histLimit)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(w, "No invoices found")
		return nil
	}
	fmt.Fprintf(w, "%-24s %-10s %-16s %-23s %18s\n", "Number", "Contract", "Tenant", "Period", "Total")
	fmt.Fprintln(w, "--------------------------------------------------------------------------------------------------")
	for _, r := range list {
		period := r.FromDate.Format(dto.DateLayout) + ".." + r.ToDate.Format(dto.DateLayout)
		fmt.Fprintf(w, "%-24s %-10s %-16s %-23s %18s\n", r.Number, r.ContractCode, r.TenantName, period, money.VND(r.GrandTotal))
	}
	fmt.Fprintf(w, "(%d invoices)\n", len(list))
	return nil
}
