package config

import (
	"errors"
	"os"
	"strconv"
)

const (
	deliveryURLEnv        = "DELIVERY_SERVICE_URL"
	deliveryQueueNameEnv  = "DELIVERY_QUEUE_NAME"
	deliveryMaxRetriesEnv = "DELIVERY_MAX_RETRIES"

	gcloudProjectIDEnv  = "GCLOUD_PROJECT_ID"
	gcloudLocationIDEnv = "GCLOUD_LOCATION_ID"
	gcloudQueueIDEnv    = "GCLOUD_QUEUE_ID"
	gcloudTargetURLEnv  = "GCLOUD_TARGET_URL"
)

type DeliveryConfig struct {
	ServiceURL string
	QueueName  string

	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
	GCloudTargetURL  string

	MaxRetries int
}

func LoadDeliveryConfig() DeliveryConfig {
	queueName := os.Getenv(deliveryQueueNameEnv)
	if queueName == "" {
		queueName = "default"
	}

	maxRetries := 3
	if v := os.Getenv(deliveryMaxRetriesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	return DeliveryConfig{
		ServiceURL: os.Getenv(deliveryURLEnv),
		QueueName:  queueName,

		GCloudProjectID:  os.Getenv(gcloudProjectIDEnv),
		GCloudLocationID: os.Getenv(gcloudLocationIDEnv),
		GCloudQueueID:    os.Getenv(gcloudQueueIDEnv),
		GCloudTargetURL:  os.Getenv(gcloudTargetURLEnv),

		MaxRetries: maxRetries,
	}
}

// ValidateGCloud checks the fields required when the gcloud delivery queue
// is compiled in.
func (c DeliveryConfig) ValidateGCloud() error {
	if c.GCloudProjectID == "" || c.GCloudLocationID == "" || c.GCloudQueueID == "" {
		return errors.New("GCLOUD_PROJECT_ID, GCLOUD_LOCATION_ID and GCLOUD_QUEUE_ID are required")
	}
	if c.GCloudTargetURL == "" {
		return errors.New("GCLOUD_TARGET_URL is required")
	}
	return nil
}
