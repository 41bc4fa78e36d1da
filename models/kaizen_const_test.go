package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusStagePairs(t *testing.T) {
	t.Run(`каждый нетерминальный статус имеет парный этап`, func(t *testing.T) {
		pairs := map[KaizenStatus]KaizenStage{
			StatusDraft:               StageDraft,
			StatusPendingOwnManager:   StageOwnManager,
			StatusPendingOwnHod:       StageOwnHod,
			StatusPendingCrossManager: StageCrossManager,
			StatusPendingCrossHod:     StageCrossHod,
			StatusPendingAgm:          StageAgm,
			StatusPendingGm:           StageGm,
			StatusApproved:            StageCompleted,
		}
		for status, expected := range pairs {
			stage, exist := status.StageFor()
			require.True(t, exist, "нет этапа для статуса %v", status)
			require.Equal(t, expected, stage)
		}
	})
	t.Run(`у REJECTED нет парного этапа`, func(t *testing.T) {
		_, exist := StatusRejected.StageFor()
		require.False(t, exist)
	})
}

func TestStatusIsTerminal(t *testing.T) {
	require.True(t, StatusApproved.IsTerminal())
	require.True(t, StatusRejected.IsTerminal())
	require.False(t, StatusDraft.IsTerminal())
	require.False(t, StatusPendingCrossHod.IsTerminal())
}

func TestDecisionIsValid(t *testing.T) {
	require.True(t, DecisionApproved.IsValid())
	require.True(t, DecisionRejected.IsValid())
	require.False(t, DecisionPending.IsValid())
	require.False(t, Decision("MAYBE").IsValid())
}
