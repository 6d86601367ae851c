package usecase

import (
	"context"

	"github.com/jhoicas/Rental-api/internal/application/billing"
	"github.com/jhoicas/Rental-api/internal/application/dto"
)

// ServiceUseCase lectura del catálogo de servicios.
type ServiceUseCase struct {
	catalog billing.ServiceCatalog
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(catalog billing.ServiceCatalog) *ServiceUseCase {
	return &ServiceUseCase{catalog: catalog}
}

// List devuelve todos los servicios del catálogo.
func (uc *ServiceUseCase) List(ctx context.Context) ([]dto.ServiceResponse, error) {
	list, err := uc.catalog.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ServiceResponse{ID: s.ID, Name: s.Name, Price: s.Price, Description: s.Description})
	}
	return out, nil
}
