package repository

import (
	"context"

	"github.com/address-verification/internal/domain"
)

// AddressSourceRepository wraps the third-party nationwide address
// directory. Every failure mode (network, timeout, malformed payload)
// surfaces as ErrSourceUnavailable; callers degrade, they never abort.
type AddressSourceRepository interface {
	FetchProvinces(ctx context.Context) ([]domain.SourcePlace, error)
	FetchProvinceDetail(ctx context.Context, sourceID string) (*domain.SourceProvinceDetail, error)
	FetchDistrictDetail(ctx context.Context, sourceID string) (*domain.SourceDistrictDetail, error)
}
