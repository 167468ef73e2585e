package main

import (
	"os"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/hausmanager/api/internal/env"
	"github.com/hausmanager/api/internal/handlers"
	"github.com/hausmanager/api/internal/ledger"
	"github.com/hausmanager/api/internal/nmi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	env.Load()

	// The gateway strategy is fixed here, once: handlers never learn
	// whether they are talking to the live gateway or the offline mock.
	var gateway nmi.TransactionGateway
	if env.Env.HasSecurityKey() {
		gateway = nmi.NewLiveGateway(env.Env.GatewayBaseURL, env.Env.SecurityKey)
		log.Info().Msg("[main] live transaction gateway configured")
	} else {
		gateway = nmi.NewMockGateway()
		log.Warn().Msg("[main] no security key configured, transaction relays run in mock mode")
	}

	partner := nmi.NewPartnerClient(env.Env.GatewayBaseURL, env.Env.PartnerKey)
	store := ledger.NewSeeded()

	app := fiber.New()
	app.Use(handlers.RequestLogger())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	h := handlers.New(gateway, partner, store, env.Env.TokenizationKey)
	h.Register(app)

	if err := app.Listen(":" + env.Env.Port); err != nil {
		log.Fatal().Err(err).Msg("[main] server terminated")
	}
}
