package authentication_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-api/internal/application/authentication"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/identity"
	"github.com/jhoicas/storefront-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testSubject = "3fa85f64-5717-4562-b3fc-2c963f66afa6"

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("COT", -5*3600))

type fixture struct {
	customers  *fakeCustomers
	attributes *fakeAttributes
	reconciler *authentication.Reconciler
	scope      *authentication.Scope
}

func newFixture() *fixture {
	customers := newFakeCustomers()
	attributes := newFakeAttributes()
	r := authentication.NewReconciler(customers, attributes, logger.Nop()).
		WithClock(func() time.Time { return testNow })
	return &fixture{
		customers:  customers,
		attributes: attributes,
		reconciler: r,
		scope:      authentication.NewScope(),
	}
}

func assertion(claims map[identity.ClaimKind]string) *identity.Assertion {
	return identity.NewAssertion(claims)
}

func subjectOnly() *identity.Assertion {
	return assertion(map[identity.ClaimKind]string{identity.ClaimSubject: testSubject})
}

func registeredCustomer(email, username string) *entity.Customer {
	return &entity.Customer{
		GUID:     uuid.MustParse(testSubject),
		Email:    email,
		Username: username,
		Active:   true,
		Roles:    entity.NewRoleSet(entity.CustomerRole{ID: 3, SystemName: entity.RoleRegistered, Active: true}),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Peticiones anónimas
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_SinAsercion_DevuelveNil(t *testing.T) {
	f := newFixture()

	c, err := f.reconciler.Resolve(context.Background(), f.scope, nil)

	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Zero(t, f.customers.lookups, "no debe consultarse el directorio")
	assert.Nil(t, f.scope.Customer())
}

func TestResolve_SubjectAusenteOInvalido_NoTocaDirectorio(t *testing.T) {
	casos := map[string]*identity.Assertion{
		"sin subject":       assertion(map[identity.ClaimKind]string{identity.ClaimEmail: "a@b.com"}),
		"subject no uuid":   assertion(map[identity.ClaimKind]string{identity.ClaimSubject: "usuario-42"}),
		"subject vacío":     assertion(map[identity.ClaimKind]string{identity.ClaimSubject: ""}),
		"aserción sin nada": assertion(nil),
	}
	for nombre, a := range casos {
		t.Run(nombre, func(t *testing.T) {
			f := newFixture()

			c, err := f.reconciler.Resolve(context.Background(), f.scope, a)

			require.NoError(t, err)
			assert.Nil(t, c)
			assert.Zero(t, f.customers.lookups)
			assert.Zero(t, f.customers.creates)
			assert.Zero(t, f.attributes.saves)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta en el primer acceso
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_GUIDNuevo_DaDeAltaCliente(t *testing.T) {
	f := newFixture()

	c, err := f.reconciler.Resolve(context.Background(), f.scope, subjectOnly())

	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 1, f.customers.creates, "debe insertarse exactamente un cliente")
	assert.Equal(t, uuid.MustParse(testSubject), c.GUID)
	assert.True(t, c.Roles.Has(entity.RoleRegistered))
	assert.False(t, c.Roles.Has(entity.RoleGuests), "Guests y Registered son excluyentes en el alta")
	assert.True(t, c.Active)
	assert.False(t, c.Deleted)
	assert.Equal(t, testNow.UTC(), c.CreatedOnUTC)
	assert.Equal(t, time.UTC, c.CreatedOnUTC.Location())
	assert.Equal(t, testNow.UTC(), c.LastActivityDateUTC)
	assert.NotZero(t, c.ID, "el directorio asigna el ID al insertar")
	assert.Same(t, c, f.scope.Customer(), "un cliente registrado y activo queda memorizado")
}

func TestResolve_EscenarioCompleto_DirectorioVacio(t *testing.T) {
	f := newFixture()
	a := assertion(map[identity.ClaimKind]string{
		identity.ClaimSubject:   testSubject,
		identity.ClaimEmail:     "new@x.com",
		identity.ClaimGivenName: "Ada",
	})

	c, err := f.reconciler.Resolve(context.Background(), f.scope, a)

	require.NoError(t, err)
	require.NotNil(t, c)
	stored := f.customers.stored(uuid.MustParse(testSubject))
	require.NotNil(t, stored)
	assert.Equal(t, "new@x.com", stored.Email)
	assert.Equal(t, []string{entity.RoleRegistered}, stored.Roles.SystemNames())

	firstName, ok := f.attributes.value(c.ID, entity.AttributeFirstName)
	assert.True(t, ok)
	assert.Equal(t, "Ada", firstName)
	_, ok = f.attributes.value(c.ID, entity.AttributeLastName)
	assert.False(t, ok, "sin claim family_name no se escribe LastName")
}

func TestResolve_SinRolRegistered_FallaSinInsertar(t *testing.T) {
	f := newFixture()
	delete(f.customers.roles, entity.RoleRegistered)

	c, err := f.reconciler.Resolve(context.Background(), f.scope, subjectOnly())

	assert.Nil(t, c)
	assert.ErrorIs(t, err, domain.ErrRegisteredRoleMissing)
	assert.Zero(t, f.customers.creates, "no debe insertarse nada sin el rol Registered")
	assert.Nil(t, f.scope.Customer())
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes existentes
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_GUIDConocido_NoInserta(t *testing.T) {
	f := newFixture()
	existing := f.customers.seed(registeredCustomer("a@b.com", "ada"))

	c, err := f.reconciler.Resolve(context.Background(), f.scope, subjectOnly())

	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, existing.ID, c.ID)
	assert.Zero(t, f.customers.creates)
	assert.Zero(t, f.customers.updates, "sin claims de perfil no hay actualizaciones")
	assert.Equal(t, 1, f.customers.lookups)
}

func TestResolve_DosVecesMismoScope_UnaSolaReconciliacion(t *testing.T) {
	f := newFixture()
	a := assertion(map[identity.ClaimKind]string{
		identity.ClaimSubject: testSubject,
		identity.ClaimEmail:   "new@x.com",
	})

	first, err := f.reconciler.Resolve(context.Background(), f.scope, a)
	require.NoError(t, err)
	second, err := f.reconciler.Resolve(context.Background(), f.scope, a)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, f.customers.lookups)
	assert.Equal(t, 1, f.customers.creates)
	assert.Equal(t, 1, f.customers.updates)
}

func TestResolve_ScopeNil_NoMemoriza(t *testing.T) {
	f := newFixture()
	f.customers.seed(registeredCustomer("a@b.com", "ada"))

	_, err := f.reconciler.Resolve(context.Background(), nil, subjectOnly())
	require.NoError(t, err)
	_, err = f.reconciler.Resolve(context.Background(), nil, subjectOnly())
	require.NoError(t, err)

	assert.Equal(t, 2, f.customers.lookups)
}

func TestForget_VuelveAReconciliar(t *testing.T) {
	f := newFixture()
	f.customers.seed(registeredCustomer("a@b.com", "ada"))

	_, err := f.reconciler.Resolve(context.Background(), f.scope, subjectOnly())
	require.NoError(t, err)

	f.scope.Forget()
	assert.Nil(t, f.scope.Customer())
	f.scope.Forget() // idempotente

	_, err = f.reconciler.Resolve(context.Background(), f.scope, subjectOnly())
	require.NoError(t, err)
	assert.Equal(t, 2, f.customers.lookups, "tras Forget debe repetirse la búsqueda")
}

func TestForget_ScopeVacioNoFalla(t *testing.T) {
	var nilScope *authentication.Scope
	assert.NotPanics(t, func() {
		authentication.NewScope().Forget()
		nilScope.Forget()
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes inactivos o eliminados
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_ClienteInactivo_SeDevuelvePeroNoSeMemoriza(t *testing.T) {
	f := newFixture()
	c := registeredCustomer("a@b.com", "ada")
	c.Active = false
	f.customers.seed(c)

	got, err := f.reconciler.Resolve(context.Background(), f.scope, subjectOnly())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Active, "la desactivación externa no se sobrescribe")
	assert.Nil(t, f.scope.Customer())

	_, err = f.reconciler.Resolve(context.Background(), f.scope, subjectOnly())
	require.NoError(t, err)
	assert.Equal(t, 2, f.customers.lookups)
}

func TestResolve_ClienteEliminado_NoSeMemorizaNiSeRecrea(t *testing.T) {
	f := newFixture()
	c := registeredCustomer("a@b.com", "ada")
	c.Deleted = true
	f.customers.seed(c)

	got, err := f.reconciler.Resolve(context.Background(), f.scope, subjectOnly())

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Deleted)
	assert.Zero(t, f.customers.creates)
	assert.Nil(t, f.scope.Customer())
}

// ──────────────────────────────────────────────────────────────────────────────
// Sincronización de perfil
// ──────────────────────────────────────────────────────────────────────────────

func TestSync_EmailConEspacios_NoActualiza(t *testing.T) {
	f := newFixture()
	f.customers.seed(registeredCustomer("a@b.com", "ada"))

	_, err := f.reconciler.Resolve(context.Background(), f.scope, assertion(map[identity.ClaimKind]string{
		identity.ClaimSubject: testSubject,
		identity.ClaimEmail:   " a@b.com ",
	}))

	require.NoError(t, err)
	assert.Zero(t, f.customers.updates)
}

func TestSync_EmailDistintaMayuscula_Actualiza(t *testing.T) {
	f := newFixture()
	f.customers.seed(registeredCustomer("a@b.com", "ada"))

	c, err := f.reconciler.Resolve(context.Background(), f.scope, assertion(map[identity.ClaimKind]string{
		identity.ClaimSubject: testSubject,
		identity.ClaimEmail:   "A@b.com",
	}))

	require.NoError(t, err)
	assert.Equal(t, 1, f.customers.updates, "la comparación es ordinal, no insensible a mayúsculas")
	assert.Equal(t, "A@b.com", c.Email)
	assert.Equal(t, "A@b.com", f.customers.stored(c.GUID).Email)
}

func TestSync_EmailYUsername_DosActualizaciones(t *testing.T) {
	f := newFixture()
	f.customers.seed(registeredCustomer("a@b.com", "ada"))

	c, err := f.reconciler.Resolve(context.Background(), f.scope, assertion(map[identity.ClaimKind]string{
		identity.ClaimSubject:  testSubject,
		identity.ClaimEmail:    "ada@lovelace.org",
		identity.ClaimUsername: "  lovelace ",
	}))

	require.NoError(t, err)
	assert.Equal(t, 2, f.customers.updates, "cada campo cambiado se persiste por separado")
	assert.Equal(t, "lovelace", c.Username)
}

func TestSync_ClaimAusente_NoCambiaCampo(t *testing.T) {
	f := newFixture()
	f.customers.seed(registeredCustomer("a@b.com", "ada"))

	c, err := f.reconciler.Resolve(context.Background(), f.scope, assertion(map[identity.ClaimKind]string{
		identity.ClaimSubject:  testSubject,
		identity.ClaimUsername: "ada",
	}))

	require.NoError(t, err)
	assert.Equal(t, "a@b.com", c.Email)
	assert.Zero(t, f.customers.updates)
	assert.Zero(t, f.attributes.saves)
}

func TestSync_AtributosNombre(t *testing.T) {
	f := newFixture()
	c := f.customers.seed(registeredCustomer("a@b.com", "ada"))
	require.NoError(t, f.attributes.Save(context.Background(), c.ID, entity.AttributeFirstName, "Ada"))
	f.attributes.saves = 0

	_, err := f.reconciler.Resolve(context.Background(), f.scope, assertion(map[identity.ClaimKind]string{
		identity.ClaimSubject:    testSubject,
		identity.ClaimGivenName:  " Ada ",
		identity.ClaimFamilyName: "Lovelace",
	}))

	require.NoError(t, err)
	assert.Equal(t, 1, f.attributes.saves, "FirstName igual tras recortar; solo LastName se escribe")
	last, _ := f.attributes.value(c.ID, entity.AttributeLastName)
	assert.Equal(t, "Lovelace", last)
	assert.Zero(t, f.customers.updates, "los atributos no disparan actualización del cliente")
}

func TestSync_AtributoInexistenteYClaimVacio_Escribe(t *testing.T) {
	f := newFixture()
	c := f.customers.seed(registeredCustomer("a@b.com", "ada"))

	_, err := f.reconciler.Resolve(context.Background(), f.scope, assertion(map[identity.ClaimKind]string{
		identity.ClaimSubject:   testSubject,
		identity.ClaimGivenName: "   ",
	}))

	require.NoError(t, err)
	v, ok := f.attributes.value(c.ID, entity.AttributeFirstName)
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos de colaboradores y carreras de alta
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_FalloDirectorio_SePropaga(t *testing.T) {
	f := newFixture()
	boom := errors.New("conexión perdida")
	f.customers.lookupErr = boom

	c, err := f.reconciler.Resolve(context.Background(), f.scope, subjectOnly())

	assert.Nil(t, c)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, f.scope.Customer())
}

func TestResolve_FalloUpdate_NoMemoriza(t *testing.T) {
	f := newFixture()
	f.customers.seed(registeredCustomer("a@b.com", "ada"))
	boom := errors.New("timeout")
	f.customers.updateErr = boom

	c, err := f.reconciler.Resolve(context.Background(), f.scope, assertion(map[identity.ClaimKind]string{
		identity.ClaimSubject: testSubject,
		identity.ClaimEmail:   "otro@b.com",
	}))

	assert.Nil(t, c)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, f.scope.Customer())
}

func TestResolve_FalloAtributos_SePropaga(t *testing.T) {
	f := newFixture()
	f.customers.seed(registeredCustomer("a@b.com", "ada"))
	boom := errors.New("atributos no disponibles")
	f.attributes.getErr = boom

	_, err := f.reconciler.Resolve(context.Background(), f.scope, assertion(map[identity.ClaimKind]string{
		identity.ClaimSubject:    testSubject,
		identity.ClaimFamilyName: "Lovelace",
	}))

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, f.scope.Customer())
}

func TestResolve_AltaConcurrente_UsaClienteExistente(t *testing.T) {
	f := newFixture()
	var winner *entity.Customer
	f.customers.beforeCreate = func(c *entity.Customer) {
		winner = f.customers.seed(registeredCustomer("ganador@b.com", "ganador"))
	}

	c, err := f.reconciler.Resolve(context.Background(), f.scope, subjectOnly())

	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, winner.ID, c.ID, "debe usarse el cliente insertado por la otra petición")
	assert.Equal(t, 2, f.customers.lookups, "tras el conflicto se busca una sola vez más")
	assert.Equal(t, 1, f.customers.creates)
	assert.Same(t, c, f.scope.Customer())
}

func TestResolve_ConflictoSinRegistro_DevuelveError(t *testing.T) {
	f := newFixture()
	f.customers.createErr = domain.ErrDuplicate

	c, err := f.reconciler.Resolve(context.Background(), f.scope, subjectOnly())

	assert.Nil(t, c)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 2, f.customers.lookups)
}
