package main

import (
	"context"

	"github.com/MarcoPoloResearchLab/marinemap/internal/auth"
	"github.com/MarcoPoloResearchLab/marinemap/internal/config"
	"github.com/MarcoPoloResearchLab/marinemap/internal/database"
	"github.com/MarcoPoloResearchLab/marinemap/internal/events"
	"go.uber.org/zap"
)

// application holds the long-lived components shared by the commands.
type application struct {
	Events   *events.Service
	Sessions *auth.SessionValidator
	close    func()
}

func (a *application) Close() {
	if a.close != nil {
		a.close()
	}
}

func openApplication(ctx context.Context, appConfig config.AppConfig, logger *zap.Logger, listeners ...events.ChangeListener) (*application, error) {
	db, err := database.Open(database.Options{
		Driver: appConfig.DatabaseDriver,
		Path:   appConfig.DatabasePath,
		DSN:    appConfig.DatabaseDSN,
	}, logger)
	if err != nil {
		return nil, err
	}

	app := &application{}
	serviceConfig := events.ServiceConfig{
		IDProvider: events.NewTimeOrderedIDProvider(),
		Logger:     logger,
		Listeners:  listeners,
	}
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		app.close = func() {
			_ = sqlDB.Close()
		}
		store, err := events.NewGormStore(db)
		if err != nil {
			app.Close()
			return nil, err
		}
		serviceConfig.Store = store
	}

	service, err := events.NewService(serviceConfig)
	if err != nil {
		app.Close()
		return nil, err
	}
	var seed []events.MarineEvent
	if appConfig.SeedSamples {
		seed = events.SampleEvents()
	}
	if err := service.Load(ctx, seed); err != nil {
		app.Close()
		return nil, err
	}
	app.Events = service

	if appConfig.SessionsEnabled() {
		validator, err := auth.NewSessionValidator(auth.SessionValidatorConfig{
			SigningSecret: []byte(appConfig.SessionSigningSecret),
			Issuer:        appConfig.SessionIssuer,
			CookieName:    appConfig.SessionCookieName,
		})
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Sessions = validator
	}

	return app, nil
}
