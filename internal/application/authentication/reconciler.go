package authentication

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/identity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
	"github.com/jhoicas/storefront-api/pkg/logger"
)

// Reconciler resuelve una aserción de identidad externa a exactamente un cliente local:
// lo busca por GUID, lo da de alta la primera vez y sincroniza email, username y nombres.
// No guarda estado propio; la memoización vive en el Scope que pasa el caller.
type Reconciler struct {
	customers  repository.CustomerRepository
	attributes repository.AttributeRepository
	log        *logger.Logger
	now        func() time.Time
}

// NewReconciler construye el reconciliador con el directorio de clientes y el almacén de atributos.
func NewReconciler(customers repository.CustomerRepository, attributes repository.AttributeRepository, log *logger.Logger) *Reconciler {
	if log == nil {
		log = logger.Nop()
	}
	return &Reconciler{
		customers:  customers,
		attributes: attributes,
		log:        log.Named("reconciler"),
		now:        time.Now,
	}
}

// WithClock reemplaza el reloj usado para las fechas de alta.
func (r *Reconciler) WithClock(now func() time.Time) *Reconciler {
	r.now = now
	return r
}

// Resolve devuelve el cliente de la aserción, o nil sin error si la petición es anónima.
//
// Solo se memoriza en el scope un cliente activo, no eliminado y registrado. Un cliente
// desactivado o eliminado se devuelve igualmente, pero se vuelve a reconciliar en cada
// llamada; el caller decide si lo deja pasar (ver Customer.CanAuthenticate).
func (r *Reconciler) Resolve(ctx context.Context, scope *Scope, assertion *identity.Assertion) (*entity.Customer, error) {
	if cached := scope.Customer(); cached != nil {
		return cached, nil
	}

	guid := assertion.SubjectGUID()
	if guid == uuid.Nil {
		return nil, nil
	}

	customer, err := r.customers.GetByGUID(ctx, guid)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		customer, err = r.provision(ctx, guid)
		if err != nil {
			return nil, err
		}
	}

	// El proveedor de identidad manda sobre estos campos mientras el cliente exista.
	if err := r.synchronizeProfile(ctx, assertion, customer); err != nil {
		return nil, err
	}

	if customer.CanAuthenticate() {
		scope.remember(customer)
	} else {
		r.log.Debug().
			Str("customer_guid", guid.String()).
			Bool("active", customer.Active).
			Bool("deleted", customer.Deleted).
			Msg("cliente resuelto sin memorizar")
	}
	return customer, nil
}

// provision da de alta al cliente en el rol Registered. Si otra petición lo insertó
// primero (ErrDuplicate), se vuelve a buscar una sola vez.
func (r *Reconciler) provision(ctx context.Context, guid uuid.UUID) (*entity.Customer, error) {
	registered, err := r.customers.GetRoleBySystemName(ctx, entity.RoleRegistered)
	if err != nil {
		return nil, err
	}
	if registered == nil {
		r.log.Error().Str("customer_guid", guid.String()).Msg("rol Registered inexistente, no se puede dar de alta")
		return nil, domain.ErrRegisteredRoleMissing
	}

	now := r.now().UTC()
	customer := &entity.Customer{
		GUID:                guid,
		Active:              true,
		CreatedOnUTC:        now,
		LastActivityDateUTC: now,
	}
	customer.Roles.Add(*registered)
	// Guests y Registered son excluyentes al momento del alta.
	customer.Roles.Remove(entity.RoleGuests)

	err = r.customers.Create(ctx, customer)
	if errors.Is(err, domain.ErrDuplicate) {
		existing, lookupErr := r.customers.GetByGUID(ctx, guid)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if existing == nil {
			return nil, err
		}
		r.log.Warn().Str("customer_guid", guid.String()).Msg("alta concurrente detectada, se usa el cliente existente")
		return existing, nil
	}
	if err != nil {
		return nil, err
	}

	r.log.Info().
		Str("customer_guid", guid.String()).
		Int64("customer_id", customer.ID).
		Msg("cliente dado de alta desde la aserción de identidad")
	return customer, nil
}

// synchronizeProfile copia a cliente y atributos los claims presentes que, recortados,
// difieren del valor guardado (comparación ordinal). Cada campo cambiado se persiste
// por separado.
func (r *Reconciler) synchronizeProfile(ctx context.Context, assertion *identity.Assertion, customer *entity.Customer) error {
	if email, ok := assertion.Claim(identity.ClaimEmail); ok {
		email = strings.TrimSpace(email)
		if email != customer.Email {
			customer.Email = email
			if err := r.customers.Update(ctx, customer); err != nil {
				return err
			}
			r.logFieldChange(customer, identity.ClaimEmail)
		}
	}

	if username, ok := assertion.Claim(identity.ClaimUsername); ok {
		username = strings.TrimSpace(username)
		if username != customer.Username {
			customer.Username = username
			if err := r.customers.Update(ctx, customer); err != nil {
				return err
			}
			r.logFieldChange(customer, identity.ClaimUsername)
		}
	}

	if err := r.syncAttribute(ctx, assertion, customer, identity.ClaimGivenName, entity.AttributeFirstName); err != nil {
		return err
	}
	return r.syncAttribute(ctx, assertion, customer, identity.ClaimFamilyName, entity.AttributeLastName)
}

func (r *Reconciler) syncAttribute(ctx context.Context, assertion *identity.Assertion, customer *entity.Customer, kind identity.ClaimKind, key string) error {
	value, ok := assertion.Claim(kind)
	if !ok {
		return nil
	}
	value = strings.TrimSpace(value)

	current, found, err := r.attributes.Get(ctx, customer.ID, key)
	if err != nil {
		return err
	}
	// Un atributo inexistente cuenta como distinto, aunque el claim venga vacío.
	if found && current == value {
		return nil
	}
	if err := r.attributes.Save(ctx, customer.ID, key, value); err != nil {
		return err
	}
	r.logFieldChange(customer, kind)
	return nil
}

func (r *Reconciler) logFieldChange(customer *entity.Customer, kind identity.ClaimKind) {
	r.log.Debug().
		Str("customer_guid", customer.GUID.String()).
		Stringer("claim", kind).
		Msg("campo de perfil sincronizado")
}
