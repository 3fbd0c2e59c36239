//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"contactbook/config"
	"contactbook/internal/api"
	"contactbook/internal/auth"
	"contactbook/internal/contact"
	"contactbook/internal/database"
	"contactbook/internal/user"
)

func InitializeServer(cfg *config.Config, db *database.Database, log *zap.Logger) (*api.Server, func(), error) {
	wire.Build(
		provideGormDB,
		provideTokenCodec,
		provideEmailSender,
		provideDispatcher,
		provideAuthService,
		provideAuthHandler,
		provideUserHandler,
		provideContactHandler,
		user.NewRepository,
		contact.NewRepository,
		contact.NewService,
		auth.NewMiddleware,
		api.NewServer,
	)
	return nil, nil, nil
}
