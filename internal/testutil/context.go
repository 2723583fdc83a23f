package testutil

import (
	"context"

	"github.com/ThotaNithin79/Billing-Application/internal/logger"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
	"go.uber.org/zap"
)

// SetupContext returns a context carrying the actor and roles the way the
// auth middleware would set them.
func SetupContext(actorID string, roles ...string) context.Context {
	ctx := types.SetActorID(context.Background(), actorID)
	if len(roles) > 0 {
		ctx = types.SetRoles(ctx, roles)
	}
	return ctx
}

// GetLogger returns a logger that discards everything.
func GetLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}
