//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/config"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/infra/deliveryqueue"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/observability"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/observability/logging"
)

func initDeliveryQueue(_ context.Context, cfg *config.Config) (deliveryqueue.DeliveryQueue, func() error, error) {
	if cfg.Delivery.ServiceURL == "" {
		slog.Warn("DELIVERY_SERVICE_URL not set, trigger registration disabled")

		return nil, nil, nil
	}

	dq := deliveryqueue.NewGatewayClient(
		cfg.Delivery.ServiceURL,
		cfg.Delivery.QueueName,
		cfg.Delivery.MaxRetries,
	)

	slog.Info("delivery queue initialized",
		slog.String("type", "gateway"),
		slog.String("url", cfg.Delivery.ServiceURL),
		slog.String("queue", cfg.Delivery.QueueName),
	)

	return dq, nil, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "dose-scheduling"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		GCPProjectID:  "",
		SamplingRate:  1.0,
		DefaultModule: logging.Module("dose-scheduling"),
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
