package database

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestContainsEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%summer%", Contains("summer"))
	assert.Equal(t, `%50\%\_off%`, Contains("50%_off"))
	assert.Equal(t, `%a\\b%`, Contains(`a\b`))
}

func TestConnWithoutTransactionReturnsDB(t *testing.T) {
	db := &sql.DB{}
	assert.Same(t, db, Conn(context.Background(), db))
}

func TestConnReturnsTransactionFromContext(t *testing.T) {
	tx := &sql.Tx{}
	ctx := context.WithValue(context.Background(), txKey{}, tx)
	assert.Same(t, tx, Conn(ctx, &sql.DB{}))
}

func TestWithinTxReusesOuterTransaction(t *testing.T) {
	tx := &sql.Tx{}
	ctx := context.WithValue(context.Background(), txKey{}, tx)

	// a nil pool would panic on BeginTx, so reaching fn proves reuse
	m := NewTxManager(nil)
	called := false
	err := m.WithinTx(ctx, func(inner context.Context) error {
		called = true
		assert.Same(t, tx, Conn(inner, nil))
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
}

func TestErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert product: %w", &pq.Error{Code: "23505"})
	fk := &pq.Error{Code: "23503"}
	check := &pq.Error{Code: "23514"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsCheckViolation(check))
	assert.False(t, IsCheckViolation(sql.ErrNoRows))
}

func TestInvalidValueClassification(t *testing.T) {
	outOfRange := fmt.Errorf("update product: %w", &pq.Error{Code: "22003"})
	check := &pq.Error{Code: "23514"}

	assert.True(t, IsNumericOutOfRange(outOfRange))
	assert.False(t, IsNumericOutOfRange(check))
	assert.True(t, IsInvalidValue(outOfRange))
	assert.True(t, IsInvalidValue(check))
	assert.False(t, IsInvalidValue(&pq.Error{Code: "23505"}))
	assert.False(t, IsInvalidValue(sql.ErrNoRows))
}
