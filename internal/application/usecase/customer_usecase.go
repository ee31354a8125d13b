package usecase

import (
	"context"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

// CustomerUseCase lectura del perfil del cliente ya reconciliado.
type CustomerUseCase struct {
	attributes repository.AttributeRepository
}

// NewCustomerUseCase construye el caso de uso con el almacén de atributos.
func NewCustomerUseCase(attributes repository.AttributeRepository) *CustomerUseCase {
	return &CustomerUseCase{attributes: attributes}
}

// Profile arma el perfil mínimo: datos del cliente más los atributos FirstName y LastName.
func (uc *CustomerUseCase) Profile(ctx context.Context, customer *entity.Customer) (*dto.CustomerResponse, error) {
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	first, _, err := uc.attributes.Get(ctx, customer.ID, entity.AttributeFirstName)
	if err != nil {
		return nil, err
	}
	last, _, err := uc.attributes.Get(ctx, customer.ID, entity.AttributeLastName)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerResponse{
		GUID:      customer.GUID.String(),
		Email:     customer.Email,
		Username:  customer.Username,
		FirstName: first,
		LastName:  last,
		Roles:     customer.Roles.SystemNames(),
		Active:    customer.Active,
	}, nil
}
