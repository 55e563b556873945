package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/internal/config"
	"github.com/rosterly/shiftroster/pkg/core/store"
	"github.com/rosterly/shiftroster/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Registry *store.Registry
	Logger   *zap.Logger
	Ctx      context.Context
}
