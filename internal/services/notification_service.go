package services

import (
	"log/slog"

	"meshcode/internal/mesh"
	"meshcode/internal/metrics"
)

// NotificationService announces cell-level changes of tracked points. It
// logs each event and counts transitions; a push or message-bus client
// would hang off the same calls.
type NotificationService struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewNotificationService(logger *slog.Logger, m *metrics.Metrics) *NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{logger: logger, metrics: m}
}

// NotifyCellEntered reports a point appearing in a cell. from is the zero
// Code for a newly tracked point.
func (s *NotificationService) NotifyCellEntered(id string, from, to mesh.Code) {
	if from.IsZero() {
		s.logger.Info("point tracked", "point_id", id, "mesh_code", to.String())
		return
	}
	s.metrics.IncCellTransitions()
	s.logger.Info("point changed cell",
		"point_id", id,
		"from", from.String(),
		"to", to.String(),
	)
}

// NotifyPointRemoved reports a point that stopped being tracked.
func (s *NotificationService) NotifyPointRemoved(id string, last mesh.Code) {
	s.logger.Info("point removed", "point_id", id, "mesh_code", last.String())
}
