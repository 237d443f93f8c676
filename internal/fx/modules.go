package fx

import (
	"github.com/ChaseWoodhams/SPNKr/internal/api"
	"github.com/ChaseWoodhams/SPNKr/internal/auth"
	"github.com/ChaseWoodhams/SPNKr/internal/config"
	"github.com/ChaseWoodhams/SPNKr/internal/logger"
	"github.com/ChaseWoodhams/SPNKr/internal/server"
	"github.com/ChaseWoodhams/SPNKr/internal/service"

	"go.uber.org/fx"
)

func ProvideTokenProvider(a *auth.Authenticator) api.TokenProvider {
	return a
}

func ProvideHaloAPI(c *api.HaloClient) service.HaloAPI {
	return c
}

func ProvideRecordGetter(s *service.RecordService) server.RecordGetter {
	return s
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	// auth chain
	fx.Provide(auth.New),
	fx.Provide(ProvideTokenProvider),
	// api client
	fx.Provide(api.NewHaloClient),
	fx.Provide(ProvideHaloAPI),
	// svc
	fx.Provide(service.NewRecordService),
	fx.Provide(ProvideRecordGetter),
	// server
	fx.Provide(server.NewRecordServer),
)
