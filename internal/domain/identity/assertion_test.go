package identity_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/storefront-api/internal/domain/identity"
)

const testSubject = "3fa85f64-5717-4562-b3fc-2c963f66afa6"

func TestAssertion_SubjectGUIDValido(t *testing.T) {
	a := identity.NewAssertion(map[identity.ClaimKind]string{identity.ClaimSubject: testSubject})
	assert.Equal(t, uuid.MustParse(testSubject), a.SubjectGUID())
	assert.False(t, a.IsAnonymous())
}

func TestAssertion_SubjectInvalidoEsAnonimo(t *testing.T) {
	for _, v := range []string{"", "no-es-un-uuid", "12345"} {
		a := identity.NewAssertion(map[identity.ClaimKind]string{identity.ClaimSubject: v})
		assert.Equal(t, uuid.Nil, a.SubjectGUID(), "valor %q", v)
		assert.True(t, a.IsAnonymous())
	}
}

func TestAssertion_NilEsAnonimo(t *testing.T) {
	var a *identity.Assertion
	assert.True(t, a.IsAnonymous())
	_, ok := a.Claim(identity.ClaimEmail)
	assert.False(t, ok)
}

func TestAssertion_ClaimAusenteVsVacio(t *testing.T) {
	a := identity.NewAssertion(map[identity.ClaimKind]string{identity.ClaimEmail: ""})

	v, ok := a.Claim(identity.ClaimEmail)
	assert.True(t, ok, "un claim vacío sigue estando presente")
	assert.Equal(t, "", v)

	_, ok = a.Claim(identity.ClaimUsername)
	assert.False(t, ok)
}

func TestAssertion_TiposDesconocidosSeIgnoran(t *testing.T) {
	a := identity.NewAssertion(map[identity.ClaimKind]string{identity.ClaimKind(99): "x"})
	_, ok := a.Claim(identity.ClaimKind(99))
	assert.False(t, ok)
}

func TestFromNamedClaims_MapeaNombresConfigurados(t *testing.T) {
	raw := map[string]any{
		"sub":                testSubject,
		"email":              "ada@example.com",
		"preferred_username": "ada",
		"given_name":         "Ada",
		"roles":              []any{"admin"},
		"family_name":        42, // no string: se ignora
	}
	names := map[identity.ClaimKind]string{
		identity.ClaimSubject:    "sub",
		identity.ClaimEmail:      "email",
		identity.ClaimUsername:   "preferred_username",
		identity.ClaimGivenName:  "given_name",
		identity.ClaimFamilyName: "family_name",
	}

	a := identity.FromNamedClaims(raw, names)

	assert.Equal(t, uuid.MustParse(testSubject), a.SubjectGUID())
	email, _ := a.Claim(identity.ClaimEmail)
	assert.Equal(t, "ada@example.com", email)
	given, _ := a.Claim(identity.ClaimGivenName)
	assert.Equal(t, "Ada", given)
	_, ok := a.Claim(identity.ClaimFamilyName)
	assert.False(t, ok)
}
