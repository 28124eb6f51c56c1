//go:build gcloud

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

func initDeliveryQueue(ctx context.Context, cfg *config.Config) (deliveryqueue.DeliveryQueue, func() error, error) {
	if err := cfg.Delivery.ValidateGCloud(); err != nil {
		return nil, nil, err
	}

	cloudTasksClient, err := deliveryqueue.NewCloudTasksClient(ctx, deliveryqueue.CloudTasksConfig{
		ProjectID:  cfg.Delivery.GCloudProjectID,
		LocationID: cfg.Delivery.GCloudLocationID,
		QueueID:    cfg.Delivery.GCloudQueueID,
		TargetURL:  cfg.Delivery.GCloudTargetURL,
		MaxRetries: cfg.Delivery.MaxRetries,
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("delivery queue initialized",
		slog.String("type", "cloud_tasks"),
		slog.String("project", cfg.Delivery.GCloudProjectID),
		slog.String("location", cfg.Delivery.GCloudLocationID),
		slog.String("queue", cfg.Delivery.GCloudQueueID),
	)

	cleanup := func() error {
		if err := cloudTasksClient.Close(); err != nil {
			slog.Warn("failed to close cloud tasks client", slog.String("error", err.Error()))

			return err
		}

		return nil
	}

	return cloudTasksClient, cleanup, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("K_SERVICE")
	if serviceName == "" {
		serviceName = "dose-scheduling"
	}

	env := logging.EnvProd
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = os.Getenv("GCLOUD_PROJECT_ID")
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: os.Getenv("K_REVISION"),
		},
		Environment:   env,
		GCPProjectID:  projectID,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("dose-scheduling"),
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
