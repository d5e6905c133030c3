package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-dental-api/internal/domain"
)

func TestIsTransient(t *testing.T) {
	for _, code := range []string{"40001", "40P01", "55P03"} {
		err := fmt.Errorf("exec: %w", &pgconn.PgError{Code: code})
		assert.True(t, isTransient(err), code)
	}
	assert.False(t, isTransient(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isTransient(errors.New("connection refused")))
}

func TestWrapErr_MarcaTransitorios(t *testing.T) {
	err := wrapErr("update supply stock", &pgconn.PgError{Code: "40P01"})
	assert.ErrorIs(t, err, domain.ErrTransient)
	assert.Contains(t, err.Error(), "update supply stock")

	plain := wrapErr("list supplies", errors.New("boom"))
	assert.NotErrorIs(t, plain, domain.ErrTransient)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, "%gu%", likePattern("gu"))
	assert.Equal(t, `%50\%%`, likePattern("50%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\x%`, likePattern(`c:\x`))
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("3f1c2a9e-8b7d-4c6e-9a5f-1e2d3c4b5a69"))
	assert.False(t, validID("nonexistent"))
	assert.False(t, validID(""))
}
