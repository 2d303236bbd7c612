package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/orderstate/internal/app"
	"github.com/polkiloo/orderstate/internal/config"
	"github.com/polkiloo/orderstate/internal/logger"
	"github.com/polkiloo/orderstate/internal/pkg/auth"
	"github.com/polkiloo/orderstate/internal/server/http/handlers"
	"github.com/polkiloo/orderstate/internal/server/http/router"
	"github.com/polkiloo/orderstate/internal/storage/postgres"
	"github.com/polkiloo/orderstate/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		usecase.Module,
		fx.Provide(func(facade *app.LifecycleFacade) handlers.LifecycleFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
