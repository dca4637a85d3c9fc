package smsgate

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/solarteam/purchaseline/internal/config"
)

// Module exposes the SMS gateway to fx graph.
var Module = fx.Provide(newGateway)

type gatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p gatewayParams) Gateway {
	return New(p.Config.SMTPAddress, p.Config.SMTPFrom, p.Logger)
}
