package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := New(Validation, "latitude é obrigatória")
	assert.Equal(t, Validation, KindOf(err))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(Store, "erro ao salvar foto", cause)

	assert.Equal(t, Store, KindOf(err))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "erro ao salvar foto")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(Storage, "whatever", nil))
}

func TestSummaryOf(t *testing.T) {
	assert.Equal(t, "erro ao enviar arquivo", SummaryOf(New(Storage, "erro ao enviar arquivo")))
	assert.Equal(t, "erro interno", SummaryOf(errors.New("boom")))
}

func TestKindSurvivesFurtherWrapping(t *testing.T) {
	inner := New(Conflict, "chave de armazenamento já existe")
	outer := Wrap(Storage, "erro ao enviar arquivo", inner)
	// the outermost classification wins
	assert.Equal(t, Storage, KindOf(outer))
}
