package escalation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPolicy(t *testing.T) {
	policy := Policy{
		AgmCostThreshold: 50000,
		GmCostThreshold:  100000,
	}

	t.Run(`порог AGM строгий`, func(t *testing.T) {
		require.False(t, policy.RequiresAgm(50000, false, false))
		require.True(t, policy.RequiresAgm(50000.01, false, false))
	})
	t.Run(`добавление процесса требует AGM при любой стоимости`, func(t *testing.T) {
		require.True(t, policy.RequiresAgm(0, true, false))
	})
	t.Run(`добавление персонала требует AGM при любой стоимости`, func(t *testing.T) {
		require.True(t, policy.RequiresAgm(0, false, true))
	})
	t.Run(`порог GM строгий`, func(t *testing.T) {
		require.False(t, policy.RequiresGm(100000))
		require.True(t, policy.RequiresGm(100000.01))
	})
	t.Run(`флаги не влияют на GM`, func(t *testing.T) {
		require.False(t, policy.RequiresGm(0))
	})
}
