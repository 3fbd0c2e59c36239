package di

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"contactbook/config"
	"contactbook/internal/auth"
	"contactbook/internal/contact"
	"contactbook/internal/database"
	"contactbook/internal/email"
	"contactbook/internal/token"
	"contactbook/internal/user"
)

func provideGormDB(db *database.Database) *gorm.DB {
	return db.DB
}

func provideTokenCodec(cfg *config.Config) *token.Codec {
	return token.NewCodec([]byte(cfg.JWT.Secret))
}

func provideEmailSender(cfg *config.Config) (*email.Sender, error) {
	return email.NewSender(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		cfg.Server.BaseURL,
		cfg.SMTP.TemplateDir,
	)
}

func provideDispatcher(sender *email.Sender, log *zap.Logger) (*email.Dispatcher, func()) {
	d := email.NewDispatcher(sender, log)
	return d, d.Close
}

func provideAuthService(
	cfg *config.Config,
	users user.Repository,
	codec *token.Codec,
	dispatcher *email.Dispatcher,
	log *zap.Logger,
) *auth.Service {
	return auth.NewService(
		users,
		codec,
		dispatcher,
		log,
		cfg.JWT.AccessTTL,
		cfg.JWT.RefreshTTL,
		cfg.JWT.VerificationTTL,
	)
}

func provideAuthHandler(service *auth.Service, cfg *config.Config) *auth.JSONHandler {
	return auth.NewJSONHandler(service, cfg.Server.CookieSecure)
}

func provideUserHandler() *user.JSONHandler {
	return user.NewJSONHandler(func(ctx context.Context) (*user.User, bool) {
		return auth.UserFrom(ctx)
	})
}

func provideContactHandler(service *contact.Service) *contact.JSONHandler {
	return contact.NewJSONHandler(service, func(ctx context.Context) (*user.User, bool) {
		return auth.UserFrom(ctx)
	})
}
