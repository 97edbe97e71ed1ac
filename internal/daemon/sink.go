package daemon

import (
	"log/slog"

	"github.com/1broseidon/waydock/internal/mirror"
)

// logSink is the daemon's actor-tracking consumer: it turns mirror
// notifications into structured log events for the dock surface to follow.
type logSink struct {
	logger *slog.Logger
}

func (s *logSink) ActorCreated(a *mirror.Actor) {
	s.logger.Info("window opened", "handle", uint32(a.ID()))
}

func (s *logSink) ActorUpdated(a *mirror.Actor, ch mirror.Changes) {
	s.logger.Debug("window updated",
		"handle", uint32(a.ID()),
		"title", ch.Title,
		"app_id", ch.AppID,
		"state", ch.State,
		"parent", ch.Parent)
}

func (s *logSink) ActorDestroyed(a *mirror.Actor) {
	s.logger.Info("window closed", "handle", uint32(a.ID()), "title", a.Title)
}
