// Package turkiye wraps the public nationwide address directory API
// (turkiyeapi.dev-compatible). It is the only place that talks to the
// external source; everything it returns is already normalized.
package turkiye

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/address-verification/internal/config"
	"github.com/address-verification/internal/domain"
	"github.com/address-verification/internal/domain/repository"
	"github.com/address-verification/internal/pkg/errors"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates the adapter for the external address directory.
func NewClient(cfg *config.GeoConfig, logger *zap.Logger) repository.AddressSourceRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

// envelope tolerates both response shapes the directory serves:
// {"status":"OK","data":...} and the bare payload.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// fetch performs one GET and decodes the payload into out. Any failure is
// reported as ErrSourceUnavailable; the directory being down must never
// abort a caller.
func (c *client) fetch(ctx context.Context, endpoint string, out interface{}) error {
	url := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("Failed to create directory request", zap.String("url", url), zap.Error(err))
		return errors.ErrSourceUnavailable
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Address directory unreachable", zap.String("url", url), zap.Error(err))
		return errors.ErrSourceUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("Address directory returned error",
			zap.String("url", url),
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("body", body))
		return errors.ErrSourceUnavailable
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("Failed to read directory response", zap.String("url", url), zap.Error(err))
		return errors.ErrSourceUnavailable
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			c.logger.Warn("Malformed directory payload", zap.String("url", url), zap.Error(err))
			return errors.ErrSourceUnavailable
		}
		return nil
	}

	// Bare payload without the {status,data} wrapper.
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Warn("Malformed directory payload", zap.String("url", url), zap.Error(err))
		return errors.ErrSourceUnavailable
	}

	return nil
}

func (c *client) FetchProvinces(ctx context.Context) ([]domain.SourcePlace, error) {
	var provinces []domain.SourcePlace
	if err := c.fetch(ctx, "/provinces", &provinces); err != nil {
		return nil, err
	}

	if len(provinces) == 0 {
		c.logger.Warn("Address directory returned no provinces")
		return nil, errors.ErrSourceUnavailable
	}

	c.logger.Debug("Fetched provinces from directory", zap.Int("count", len(provinces)))
	return provinces, nil
}

func (c *client) FetchProvinceDetail(ctx context.Context, sourceID string) (*domain.SourceProvinceDetail, error) {
	var detail domain.SourceProvinceDetail
	if err := c.fetch(ctx, fmt.Sprintf("/provinces/%s", sourceID), &detail); err != nil {
		return nil, err
	}

	if detail.Districts == nil {
		c.logger.Warn("Province detail carries no districts", zap.String("source_id", sourceID))
		return nil, errors.ErrSourceUnavailable
	}

	c.logger.Debug("Fetched province detail",
		zap.String("source_id", sourceID),
		zap.Int("districts", len(detail.Districts)))
	return &detail, nil
}

func (c *client) FetchDistrictDetail(ctx context.Context, sourceID string) (*domain.SourceDistrictDetail, error) {
	var detail domain.SourceDistrictDetail
	if err := c.fetch(ctx, fmt.Sprintf("/districts/%s", sourceID), &detail); err != nil {
		return nil, err
	}

	if detail.Neighborhoods == nil {
		c.logger.Warn("District detail carries no neighborhoods", zap.String("source_id", sourceID))
		return nil, errors.ErrSourceUnavailable
	}

	c.logger.Debug("Fetched district detail",
		zap.String("source_id", sourceID),
		zap.Int("neighborhoods", len(detail.Neighborhoods)),
		zap.Int("villages", len(detail.Villages)))
	return &detail, nil
}
