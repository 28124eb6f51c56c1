package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

var _ MedicationStore = (*MedicationStoreClient)(nil)

type MedicationStoreClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewMedicationStoreClient(baseURL string) *MedicationStoreClient {
	return &MedicationStoreClient{
		baseURL:    baseURL,
		httpClient: newHTTPClient(baseURL),
	}
}

func (c *MedicationStoreClient) GetMedications(ctx context.Context, userID string) ([]MedicationResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = fmt.Sprintf("/api/v1/users/%s/medications", url.PathEscape(userID))

	slog.DebugContext(ctx, "fetching medications from MedicationStore",
		slog.String("url", u.String()),
		slog.String("user_id", userID),
	)

	var medsResp MedicationsResponse
	if err := c.getJSON(ctx, u.String(), &medsResp); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "successfully fetched medications",
		slog.String("user_id", userID),
		slog.Int("count", medsResp.Count),
	)

	return medsResp.Medications, nil
}

func (c *MedicationStoreClient) GetMedication(ctx context.Context, userID, medicationID string) (*MedicationResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = fmt.Sprintf("/api/v1/users/%s/medications/%s", url.PathEscape(userID), url.PathEscape(medicationID))

	var medResp MedicationResponse
	if err := c.getJSON(ctx, u.String(), &medResp); err != nil {
		return nil, err
	}

	return &medResp, nil
}

func (c *MedicationStoreClient) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send request to MedicationStore",
			slog.String("url", rawURL),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: failed to send request: %w", ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.ErrorContext(ctx, "unexpected status code from MedicationStore",
			slog.String("url", rawURL),
			slog.Int("status_code", resp.StatusCode),
		)
		return fmt.Errorf("%w: unexpected status code: %d", ErrStoreUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		slog.ErrorContext(ctx, "failed to decode response from MedicationStore",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
