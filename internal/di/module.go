package di

import (
	"github.com/perkmart/perkmart/internal/app"
	"github.com/perkmart/perkmart/internal/config"
	"github.com/perkmart/perkmart/internal/logger"
	"github.com/perkmart/perkmart/internal/pkg/auth"
	"github.com/perkmart/perkmart/internal/server/http/router"
	"github.com/perkmart/perkmart/internal/storage/postgres"
	"github.com/perkmart/perkmart/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
