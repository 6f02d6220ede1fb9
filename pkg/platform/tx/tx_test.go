package tx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTx(t *testing.T) {
	t.Run("nil transaction leaves context untouched", func(t *testing.T) {
		ctx := context.Background()
		assert.Equal(t, ctx, WithTx(ctx, nil))
		_, ok := From(ctx)
		assert.False(t, ok)
	})

	t.Run("transaction is carried and preferred over the pool", func(t *testing.T) {
		sqlTx := &sql.Tx{}
		ctx := WithTx(context.Background(), sqlTx)

		got, ok := From(ctx)
		require.True(t, ok)
		assert.Same(t, sqlTx, got)
		assert.Same(t, sqlTx, QuerierFrom(ctx, &sql.DB{}))
	})

	t.Run("pool is used outside a transaction", func(t *testing.T) {
		db := &sql.DB{}
		assert.Same(t, db, QuerierFrom(context.Background(), db))
	})
}
