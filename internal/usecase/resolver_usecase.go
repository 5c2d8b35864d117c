package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/address-verification/internal/domain"
	"github.com/address-verification/internal/domain/repository"
	"github.com/address-verification/internal/pkg/errors"
	"github.com/address-verification/internal/pkg/turkish"
	"github.com/address-verification/internal/repository/cache"
)

// ResolverUseCase serves province/district/neighborhood option lists from
// the durable node store, lazily backfilling levels from the external
// directory on first demand. Once a level is cached it is authoritative;
// the external source is never consulted for it again.
type ResolverUseCase struct {
	nodeRepo   repository.GeoNodeRepository
	sourceRepo repository.AddressSourceRepository
	cacheRepo  repository.CacheRepository
	streamRepo repository.StreamRepository
	logger     *zap.Logger

	listTTL time.Duration
	// provinceComplete is the expected province count; fewer cached rows
	// means an earlier partial sync and triggers a refetch.
	provinceComplete int

	group singleflight.Group
	now   func() time.Time
}

func NewResolverUseCase(
	nodeRepo repository.GeoNodeRepository,
	sourceRepo repository.AddressSourceRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	listTTL time.Duration,
	provinceComplete int,
	logger *zap.Logger,
) *ResolverUseCase {
	return &ResolverUseCase{
		nodeRepo:         nodeRepo,
		sourceRepo:       sourceRepo,
		cacheRepo:        cacheRepo,
		streamRepo:       streamRepo,
		logger:           logger,
		listTTL:          listTTL,
		provinceComplete: provinceComplete,
		now:              time.Now,
	}
}

// Provinces returns all provinces as picker options. The cached set is
// only trusted when it holds the full expected count; partial sets are
// refetched wholesale.
func (uc *ResolverUseCase) Provinces(ctx context.Context) ([]domain.AddressOption, error) {
	return uc.resolve(ctx, cache.KeyProvinces, func() ([]domain.AddressOption, error) {
		return uc.loadProvinces(ctx)
	})
}

// Districts returns the districts of a province. Any cached rows mean the
// level is complete.
func (uc *ResolverUseCase) Districts(ctx context.Context, provinceID string) ([]domain.AddressOption, error) {
	return uc.resolve(ctx, cache.KeyDistricts(provinceID), func() ([]domain.AddressOption, error) {
		return uc.loadDistricts(ctx, provinceID)
	})
}

// Neighborhoods returns the neighborhoods of a district, villages merged
// in. A district the external directory cannot serve gets a persistent
// "Diğer" fallback so the form is never left without an option.
func (uc *ResolverUseCase) Neighborhoods(ctx context.Context, districtID string) ([]domain.AddressOption, error) {
	return uc.resolve(ctx, cache.KeyNeighborhoods(districtID), func() ([]domain.AddressOption, error) {
		return uc.loadNeighborhoods(ctx, districtID)
	})
}

// resolve is the shared read path: Redis first, then the loader behind a
// singleflight gate so a burst of identical requests costs one load.
func (uc *ResolverUseCase) resolve(ctx context.Context, key string, load func() ([]domain.AddressOption, error)) ([]domain.AddressOption, error) {
	if cached, err := uc.cacheRepo.GetOptions(ctx, key); err != nil {
		uc.logger.Warn("Option cache read failed", zap.String("key", key), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	v, err, _ := uc.group.Do(key, func() (interface{}, error) {
		options, err := load()
		if err != nil {
			return nil, err
		}
		if len(options) > 0 {
			if err := uc.cacheRepo.SetOptions(ctx, key, options, uc.listTTL); err != nil {
				uc.logger.Warn("Option cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return options, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.AddressOption), nil
}

func (uc *ResolverUseCase) loadProvinces(ctx context.Context) ([]domain.AddressOption, error) {
	// A count probe decides completeness so the refetch path never loads
	// a partial set it is about to throw away.
	count, err := uc.nodeRepo.CountByType(ctx, domain.NodeTypeProvince)
	if err != nil {
		return nil, err
	}
	if count >= uc.provinceComplete {
		nodes, err := uc.nodeRepo.FindByTypeAndParent(ctx, domain.NodeTypeProvince, "")
		if err != nil {
			return nil, err
		}
		return nodeOptions(nodes), nil
	}

	places, err := uc.sourceRepo.FetchProvinces(ctx)
	if err != nil {
		uc.logger.Warn("Province fetch failed, serving empty list", zap.Error(err))
		return []domain.AddressOption{}, nil
	}

	options := make([]domain.AddressOption, 0, len(places))
	for _, p := range places {
		node := &domain.GeoNode{
			PlaceID:          domain.SourcePlaceID(domain.NodeTypeProvince, p.ID),
			Type:             domain.NodeTypeProvince,
			Name:             p.Name,
			FormattedAddress: p.Name,
		}
		if err := uc.nodeRepo.Upsert(ctx, node); err != nil {
			return nil, err
		}
		options = append(options, domain.AddressOption{ID: node.PlaceID, Name: node.Name})
	}
	turkish.SortByName(options, func(o domain.AddressOption) string { return o.Name })

	uc.logger.Info("Provinces backfilled from source", zap.Int("count", len(options)))
	return options, nil
}

func (uc *ResolverUseCase) loadDistricts(ctx context.Context, provinceID string) ([]domain.AddressOption, error) {
	nodes, err := uc.nodeRepo.FindByTypeAndParent(ctx, domain.NodeTypeDistrict, provinceID)
	if err != nil {
		return nil, err
	}
	if len(nodes) > 0 {
		return nodeOptions(nodes), nil
	}

	detail, err := uc.sourceRepo.FetchProvinceDetail(ctx, domain.SourceNumericID(provinceID, domain.NodeTypeProvince))
	if err != nil {
		uc.logger.Warn("District fetch failed, serving empty list",
			zap.String("province_id", provinceID), zap.Error(err))
		return []domain.AddressOption{}, nil
	}

	options := make([]domain.AddressOption, 0, len(detail.Districts))
	for _, d := range detail.Districts {
		node := &domain.GeoNode{
			PlaceID:          domain.SourcePlaceID(domain.NodeTypeDistrict, d.ID),
			Type:             domain.NodeTypeDistrict,
			ParentID:         provinceID,
			Name:             d.Name,
			FormattedAddress: fmt.Sprintf("%s, %s", d.Name, detail.Name),
		}
		if err := uc.nodeRepo.Upsert(ctx, node); err != nil {
			return nil, err
		}
		options = append(options, domain.AddressOption{ID: node.PlaceID, Name: node.Name})
	}
	turkish.SortByName(options, func(o domain.AddressOption) string { return o.Name })

	uc.logger.Info("Districts backfilled from source",
		zap.String("province_id", provinceID), zap.Int("count", len(options)))
	return options, nil
}

func (uc *ResolverUseCase) loadNeighborhoods(ctx context.Context, districtID string) ([]domain.AddressOption, error) {
	nodes, err := uc.nodeRepo.FindByTypeAndParent(ctx, domain.NodeTypeNeighborhood, districtID)
	if err != nil {
		return nil, err
	}
	if len(nodes) > 0 {
		return nodeOptions(nodes), nil
	}

	detail, err := uc.sourceRepo.FetchDistrictDetail(ctx, domain.SourceNumericID(districtID, domain.NodeTypeDistrict))
	if err != nil {
		uc.logger.Warn("Neighborhood fetch failed, persisting fallback",
			zap.String("district_id", districtID), zap.Error(err))
		return uc.fallbackNeighborhood(ctx, districtID)
	}

	options := make([]domain.AddressOption, 0, len(detail.Neighborhoods)+len(detail.Villages))
	persist := func(sourceID int64, name string) error {
		node := &domain.GeoNode{
			PlaceID:          domain.SourcePlaceID(domain.NodeTypeNeighborhood, sourceID),
			Type:             domain.NodeTypeNeighborhood,
			ParentID:         districtID,
			Name:             name,
			FormattedAddress: fmt.Sprintf("%s, %s", name, detail.Name),
		}
		if err := uc.nodeRepo.Upsert(ctx, node); err != nil {
			return err
		}
		options = append(options, domain.AddressOption{ID: node.PlaceID, Name: node.Name})
		return nil
	}
	for _, n := range detail.Neighborhoods {
		if err := persist(n.ID, neighborhoodDisplayName(n.Name)); err != nil {
			return nil, err
		}
	}
	for _, v := range detail.Villages {
		if err := persist(v.ID, v.Name+" Köyü"); err != nil {
			return nil, err
		}
	}
	if len(options) == 0 {
		return uc.fallbackNeighborhood(ctx, districtID)
	}
	turkish.SortByName(options, func(o domain.AddressOption) string { return o.Name })

	uc.logger.Info("Neighborhoods backfilled from source",
		zap.String("district_id", districtID), zap.Int("count", len(options)))
	return options, nil
}

// fallbackNeighborhood persists the deterministic "Diğer" node and returns
// it as the sole option, so a district the directory cannot serve still
// has a valid selection.
func (uc *ResolverUseCase) fallbackNeighborhood(ctx context.Context, districtID string) ([]domain.AddressOption, error) {
	node := &domain.GeoNode{
		PlaceID:  domain.FallbackNeighborhoodID(districtID),
		Type:     domain.NodeTypeNeighborhood,
		ParentID: districtID,
		Name:     domain.FallbackNeighborhoodName,
	}
	if err := uc.nodeRepo.Upsert(ctx, node); err != nil {
		return nil, err
	}
	return []domain.AddressOption{{ID: node.PlaceID, Name: node.Name}}, nil
}

// neighborhoodDisplayName appends the "Mahallesi" suffix unless the source
// name already carries one.
func neighborhoodDisplayName(name string) string {
	if strings.Contains(name, "Mahallesi") || strings.Contains(name, "Mah.") {
		return name
	}
	return name + " Mahallesi"
}

func nodeOptions(nodes []*domain.GeoNode) []domain.AddressOption {
	options := make([]domain.AddressOption, 0, len(nodes))
	for _, n := range nodes {
		options = append(options, domain.AddressOption{ID: n.PlaceID, Name: n.Name})
	}
	return options
}

// FullSync walks the whole hierarchy top-down, forcing every level
// through the resolver so provinces exist before their districts and
// districts before their neighborhoods. Per-branch failures are logged
// and skipped; the walk continues.
func (uc *ResolverUseCase) FullSync(ctx context.Context) (*domain.SyncResult, error) {
	result := &domain.SyncResult{}

	provinces, err := uc.Provinces(ctx)
	if err != nil {
		return nil, err
	}
	result.Provinces = len(provinces)

	for _, p := range provinces {
		districts, err := uc.Districts(ctx, p.ID)
		if err != nil {
			uc.logger.Warn("Sync skipped province branch",
				zap.String("province_id", p.ID), zap.Error(err))
			continue
		}
		result.Districts += len(districts)

		for _, d := range districts {
			neighborhoods, err := uc.Neighborhoods(ctx, d.ID)
			if err != nil {
				uc.logger.Warn("Sync skipped district branch",
					zap.String("district_id", d.ID), zap.Error(err))
				continue
			}
			result.Neighborhoods += len(neighborhoods)
		}
	}

	uc.logger.Info("Full address sync completed",
		zap.Int("provinces", result.Provinces),
		zap.Int("districts", result.Districts),
		zap.Int("neighborhoods", result.Neighborhoods))
	return result, nil
}

// EnqueueFullSync hands the hierarchy walk to the background worker. The
// caller only learns that the job was accepted.
func (uc *ResolverUseCase) EnqueueFullSync(ctx context.Context, requestedBy string) error {
	event := domain.SyncRequestedEvent{
		RequestedBy: requestedBy,
		RequestedAt: uc.now(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return uc.streamRepo.Publish(ctx, domain.StreamAddressSync, data)
}

// AddManualNeighborhood registers a hand-entered neighborhood under an
// existing province/district pair, matched case-insensitively by Turkish
// casing rules. Either both ancestors resolve and the node is persisted,
// or nothing changes.
func (uc *ResolverUseCase) AddManualNeighborhood(ctx context.Context, provinceName, districtName, neighborhoodName string) (*domain.GeoNode, error) {
	provinceName = strings.TrimSpace(provinceName)
	districtName = strings.TrimSpace(districtName)
	neighborhoodName = strings.TrimSpace(neighborhoodName)
	if provinceName == "" || districtName == "" || neighborhoodName == "" {
		return nil, errors.ErrNameRequired
	}

	province, err := uc.nodeRepo.FindByTypeAndName(ctx, domain.NodeTypeProvince, provinceName, "")
	if err != nil {
		if err == errors.ErrNodeNotFound {
			return nil, errors.ErrProvinceNotFound
		}
		return nil, err
	}
	district, err := uc.nodeRepo.FindByTypeAndName(ctx, domain.NodeTypeDistrict, districtName, province.PlaceID)
	if err != nil {
		if err == errors.ErrNodeNotFound {
			return nil, errors.ErrDistrictNotFound
		}
		return nil, err
	}

	// Idempotent: an existing neighborhood of the same name is returned
	// as-is instead of creating a duplicate.
	if existing, err := uc.nodeRepo.FindByTypeAndName(ctx, domain.NodeTypeNeighborhood, neighborhoodName, district.PlaceID); err == nil {
		return existing, nil
	} else if err != errors.ErrNodeNotFound {
		return nil, err
	}

	node := &domain.GeoNode{
		PlaceID:          domain.CustomPlaceID(domain.NodeTypeNeighborhood, uc.now()),
		Type:             domain.NodeTypeNeighborhood,
		ParentID:         district.PlaceID,
		Name:             neighborhoodName,
		FormattedAddress: fmt.Sprintf("%s, %s, %s", neighborhoodName, district.Name, province.Name),
	}
	if err := uc.nodeRepo.Upsert(ctx, node); err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.Delete(ctx, cache.KeyNeighborhoods(district.PlaceID)); err != nil {
		uc.logger.Warn("Neighborhood cache invalidation failed",
			zap.String("district_id", district.PlaceID), zap.Error(err))
	}

	uc.logger.Info("Manual neighborhood added",
		zap.String("place_id", node.PlaceID),
		zap.String("district_id", district.PlaceID),
		zap.String("name", node.Name))
	return node, nil
}
