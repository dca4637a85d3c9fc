package push

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/solarteam/purchaseline/internal/config"
)

// Module exposes push gateway implementation to fx graph.
var Module = fx.Provide(newGateway)

type gatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p gatewayParams) (Gateway, error) {
	return NewHTTPClient(p.Config.PushGatewayAddress, p.Logger)
}
