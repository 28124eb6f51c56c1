//go:build !gcloud

package deliveryqueue

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"
)

var _ DeliveryQueue = (*GatewayClient)(nil)

// GatewayClient talks to the local delivery gateway over HTTP.
type GatewayClient struct {
	baseURL    string
	queueName  string
	httpClient *http.Client
	maxRetries int
}

func NewGatewayClient(baseURL, queueName string, maxRetries int) *GatewayClient {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &GatewayClient{
		baseURL:   baseURL,
		queueName: queueName,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: maxRetries,
	}
}

func (c *GatewayClient) RegisterReminder(ctx context.Context, task *ReminderTask) (*TaskResponse, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reminder task: %w", err)
	}

	encodedBody := base64.StdEncoding.EncodeToString(payload)

	gatewayReq := gatewayTaskRequest{
		Task: gatewayTask{
			HTTPRequest: gatewayHTTPRequest{
				Body: encodedBody,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
			},
		},
	}

	if !task.ScheduleAt.IsZero() {
		gatewayReq.Task.ScheduleTime = task.ScheduleAt.Format(time.RFC3339)
	}

	reqBody, err := json.Marshal(gatewayReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gateway request: %w", err)
	}

	url := fmt.Sprintf("%s/tasks", c.baseURL)
	if c.queueName != "" && c.queueName != "default" {
		url = fmt.Sprintf("%s/tasks/%s", c.baseURL, c.queueName)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.Debug("retrying reminder registration",
				slog.String("medication_id", task.MedicationID),
				slog.String("user_id", task.UserID),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.doRequest(ctx, url, reqBody, task.MedicationID, task.UserID)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	slog.Error("all retries exhausted for reminder registration",
		slog.String("medication_id", task.MedicationID),
		slog.String("user_id", task.UserID),
		slog.Int("max_retries", c.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return nil, fmt.Errorf("failed to register reminder after %d retries: %w", c.maxRetries, lastErr)
}

func (c *GatewayClient) doRequest(ctx context.Context, url string, reqBody []byte, medicationID, userID string) (*TaskResponse, error) {
	slog.Debug("registering reminder to delivery gateway",
		slog.String("url", url),
		slog.String("medication_id", medicationID),
		slog.String("user_id", userID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("failed to send request to delivery gateway",
			slog.String("medication_id", medicationID),
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		slog.Warn("unexpected status code from delivery gateway",
			slog.String("medication_id", medicationID),
			slog.String("user_id", userID),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var gatewayResp gatewayTaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&gatewayResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	scheduleTime, _ := time.Parse(time.RFC3339, gatewayResp.ScheduleTime)
	createTime, _ := time.Parse(time.RFC3339, gatewayResp.CreateTime)

	slog.Info("reminder registered to delivery gateway",
		slog.String("task_name", gatewayResp.Name),
		slog.String("medication_id", medicationID),
		slog.String("user_id", userID),
	)

	return &TaskResponse{
		Name:         gatewayResp.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, nil
}

func (c *GatewayClient) DeleteReminder(ctx context.Context, taskID string) error {
	url := fmt.Sprintf("%s/tasks/%s", c.baseURL, taskID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		slog.Info("reminder task not found in gateway (may have fired)",
			slog.String("task_id", taskID),
		)
		return nil
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	slog.Info("reminder task deleted from gateway",
		slog.String("task_id", taskID),
	)
	return nil
}
