package ports

import "fleurish/internal/domain/gameplay"

type GameplayMetrics interface {
	RecordApplied(action gameplay.Action)
	RecordRejected(action gameplay.Action)
	RecordReconciled(action gameplay.Action)
	RecordUpstreamFailure(action gameplay.Action)
}
