package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/Rental-api/internal/application/billing"
	"github.com/jhoicas/Rental-api/internal/application/dto"
	engine "github.com/jhoicas/Rental-api/internal/domain/billing"
)

// draftFile borrador en YAML. Los números se leen como texto y pasan por la misma
// conversión laxa que el formulario web.
type draftFile struct {
	RoomID       string `yaml:"room_id"`
	RoomNumber   string `yaml:"room_number"`
	BuildingCode string `yaml:"building_code"`
	TenantName   string `yaml:"tenant_name"`
	ContractCode string `yaml:"contract_code"`
	RoomPrice    string `yaml:"room_price"`

	FromDate string `yaml:"from_date"`
	ToDate   string `yaml:"to_date"`

	Electricity struct {
		Previous string `yaml:"previous"`
		Current  string `yaml:"current"`
		Rate     string `yaml:"rate"`
	} `yaml:"electricity"`

	Water struct {
		Method   string `yaml:"method"`
		Previous string `yaml:"previous"`
		Current  string `yaml:"current"`
		People   string `yaml:"people"`
		Rate     string `yaml:"rate"`
	} `yaml:"water"`

	Services []struct {
		ID        string `yaml:"id"`
		Name      string `yaml:"name"`
		Quantity  string `yaml:"quantity"`
		UnitPrice string `yaml:"unit_price"`
	} `yaml:"services"`

	Notes string `yaml:"notes"`
}

func loadDraftFile(path string) (engine.Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return engine.Input{}, fmt.Errorf("leyendo borrador: %w", err)
	}
	return parseDraft(raw)
}

// parseDraft convierte el YAML al input del motor. Sin tarifas usa las de un borrador nuevo;
// sin método de agua usa medidor.
func parseDraft(raw []byte) (engine.Input, error) {
	var f draftFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return engine.Input{}, fmt.Errorf("YAML inválido: %w", err)
	}

	in := engine.Input{
		Room: engine.RoomInfo{
			RoomID:       strings.TrimSpace(f.RoomID),
			RoomNumber:   f.RoomNumber,
			BuildingCode: f.BuildingCode,
			TenantName:   f.TenantName,
			ContractCode: f.ContractCode,
			MonthlyPrice: engine.CoerceAmount(f.RoomPrice),
		},
		Period: engine.Period{From: parseDate(f.FromDate), To: parseDate(f.ToDate)},
		Electricity: engine.ElectricityReading{
			Previous: engine.CoerceAmount(f.Electricity.Previous),
			Current:  engine.CoerceAmount(f.Electricity.Current),
			Rate:     engine.CoerceAmount(f.Electricity.Rate),
		},
		Water: engine.WaterReading{
			Method:   engine.WaterMethod(strings.ToLower(strings.TrimSpace(f.Water.Method))),
			Previous: engine.CoerceAmount(f.Water.Previous),
			Current:  engine.CoerceAmount(f.Water.Current),
			People:   engine.CoerceQuantity(f.Water.People),
			Rate:     engine.CoerceAmount(f.Water.Rate),
		},
		Notes: f.Notes,
	}
	if strings.TrimSpace(f.Electricity.Rate) == "" {
		in.Electricity.Rate = engine.DefaultElectricityRate
	}
	if strings.TrimSpace(f.Water.Rate) == "" {
		in.Water.Rate = engine.DefaultWaterRate
	}
	if in.Water.Method == "" {
		in.Water.Method = engine.WaterByMeter
	}
	for _, s := range f.Services {
		in.Services = append(in.Services, engine.ServiceLine{
			ID:        s.ID,
			Name:      s.Name,
			Quantity:  engine.CoerceQuantity(s.Quantity),
			UnitPrice: engine.CoerceAmount(s.UnitPrice),
		})
	}
	return in, nil
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dto.DateLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// fillRoom completa habitación y contrato desde el catálogo cuando el borrador solo trae room_id.
func fillRoom(ctx context.Context, lookup billing.RoomLookup, in engine.Input) (engine.Input, error) {
	if in.Room.RoomID == "" || in.Room.ContractCode != "" {
		return in, nil
	}
	d, err := lookup.LookupRoom(ctx, in.Room.RoomID)
	if err != nil {
		return in, fmt.Errorf("habitación %s: %w", in.Room.RoomID, err)
	}
	in.Room = d.RoomInfo()
	return in, nil
}
