package validate

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "dept-service/pkg/errors"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required,max=5"`
	Email string `json:"email" validate:"required,email"`
	Kind  string `json:"kind" validate:"omitempty,oneof=A B"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(samplePayload{Name: "ok", Email: "a@b.com"})
	assert.NoError(t, err)
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(samplePayload{Email: "not-an-email"})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
	assert.Contains(t, err.Error(), "name: is required")
	assert.Contains(t, err.Error(), "email: must be a valid email address")
}

func TestStruct_ViolationsInDeclarationOrder(t *testing.T) {
	err := Struct(samplePayload{Name: "too-long-name", Email: "bad", Kind: "C"})

	require.Error(t, err)
	assert.Equal(t,
		"name: must be at most 5; email: must be a valid email address; kind: must be one of [A B]",
		err.Error())
}

func TestEach_PrefixesElementIndex(t *testing.T) {
	payloads := []samplePayload{
		{Name: "ok", Email: "a@b.com"},
		{Name: "ok", Email: "bad"},
	}

	err := Each(payloads)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "[1] ")
	assert.Contains(t, err.Error(), "email: must be a valid email address")
}

func TestUUID(t *testing.T) {
	id, err := UUID("b0f4f2d6-9a31-4f32-9c1e-3a9fdd5f3b11")
	require.NoError(t, err)
	assert.Equal(t, "b0f4f2d6-9a31-4f32-9c1e-3a9fdd5f3b11", id.String())

	_, err = UUID("nope")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
	assert.Equal(t, "id must be a valid uuid", err.Error())
}
