package walletregistry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("should keep the provided wallet storage", func(t *testing.T) {
		walletStorage := NewWalletStorageMock(t)

		svc := New(walletStorage)

		require.NotNil(t, svc)
		assert.Equal(t, walletStorage, svc.walletStorage)
	})
}
