package di

import (
	"go.uber.org/fx"

	"github.com/solarteam/purchaseline/internal/adapter/push"
	"github.com/solarteam/purchaseline/internal/adapter/smsgate"
	"github.com/solarteam/purchaseline/internal/app"
	"github.com/solarteam/purchaseline/internal/config"
	"github.com/solarteam/purchaseline/internal/logger"
	"github.com/solarteam/purchaseline/internal/pkg/auth"
	"github.com/solarteam/purchaseline/internal/server/http/handlers"
	"github.com/solarteam/purchaseline/internal/server/http/router"
	"github.com/solarteam/purchaseline/internal/storage/postgres"
	"github.com/solarteam/purchaseline/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		push.Module,
		smsgate.Module,
		usecase.Module,
		fx.Provide(
			func(f *app.PurchasingFacade) handlers.PurchasingFacade { return f },
			func(s *postgres.Storage) handlers.HealthChecker { return s },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
