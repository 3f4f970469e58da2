package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/LinuxLinusDE/MS-365/config"
	"github.com/LinuxLinusDE/MS-365/telemetry"
)

// initTelemetry initializes OTEL export for the run. Telemetry is
// best-effort: an unreachable collector must not block an inventory.
func initTelemetry(ctx context.Context, cfg *config.Config) func() {
	otelCfg := telemetry.Config{
		ServiceName:    "ms365",
		ServiceVersion: version,
		OTELEndpoint:   cfg.Telemetry.Endpoint,
		Insecure:       true,
	}

	shutdown, err := telemetry.InitOTEL(ctx, otelCfg)
	if err != nil {
		log.Warn().Err(err).Msg("telemetry initialization failed, running without it")
		return func() {}
	}

	log.Info().Str("endpoint", otelCfg.OTELEndpoint).Msg("telemetry enabled")

	return func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn().Err(err).Msg("telemetry shutdown failed")
		}
	}
}
