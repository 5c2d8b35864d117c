package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/address-verification/internal/domain"
	"github.com/address-verification/internal/domain/repository"
	"github.com/address-verification/internal/pkg/errors"
	"github.com/address-verification/internal/repository/cache"
	"github.com/address-verification/internal/usecase/dto"
)

// DefinitionUseCase is the admin maintenance surface over the address
// hierarchy: listing nodes with ancestry, adding custom entries and
// deleting childless ones.
type DefinitionUseCase struct {
	nodeRepo  repository.GeoNodeRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewDefinitionUseCase(
	nodeRepo repository.GeoNodeRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *DefinitionUseCase {
	return &DefinitionUseCase{
		nodeRepo:  nodeRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns nodes of one level with optional parent scope and name
// filter, enriched with ancestor names so neighborhoods display their
// district and province.
func (uc *DefinitionUseCase) List(ctx context.Context, req *dto.DefinitionListRequest) ([]dto.DefinitionItem, error) {
	t := domain.NodeType(req.Type)
	if !domain.ValidNodeType(t) {
		return nil, errors.ErrInvalidRequest
	}

	nodes, err := uc.nodeRepo.Search(ctx, t, req.ParentID, req.Search)
	if err != nil {
		return nil, err
	}

	ancestors, err := uc.loadAncestors(ctx, nodes)
	if err != nil {
		return nil, err
	}

	items := make([]dto.DefinitionItem, 0, len(nodes))
	for _, n := range nodes {
		item := dto.DefinitionItem{
			PlaceID:  n.PlaceID,
			Name:     n.Name,
			ParentID: n.ParentID,
			IsManual: n.IsManual(),
		}
		if parent, ok := ancestors[n.ParentID]; ok {
			switch n.Type {
			case domain.NodeTypeDistrict:
				item.ProvinceName = parent.Name
			case domain.NodeTypeNeighborhood:
				item.DistrictName = parent.Name
				if grand, ok := ancestors[parent.ParentID]; ok {
					item.ProvinceName = grand.Name
				}
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// loadAncestors resolves parents and grandparents in two batch lookups.
func (uc *DefinitionUseCase) loadAncestors(ctx context.Context, nodes []*domain.GeoNode) (map[string]*domain.GeoNode, error) {
	ancestors := make(map[string]*domain.GeoNode)

	collect := func(ids map[string]struct{}) error {
		if len(ids) == 0 {
			return nil
		}
		keys := make([]string, 0, len(ids))
		for id := range ids {
			keys = append(keys, id)
		}
		found, err := uc.nodeRepo.FindByPlaceIDs(ctx, keys)
		if err != nil {
			return err
		}
		for _, n := range found {
			ancestors[n.PlaceID] = n
		}
		return nil
	}

	parentIDs := make(map[string]struct{})
	for _, n := range nodes {
		if n.ParentID != "" {
			parentIDs[n.ParentID] = struct{}{}
		}
	}
	if err := collect(parentIDs); err != nil {
		return nil, err
	}

	grandIDs := make(map[string]struct{})
	for _, p := range ancestors {
		if p.ParentID != "" {
			if _, ok := ancestors[p.ParentID]; !ok {
				grandIDs[p.ParentID] = struct{}{}
			}
		}
	}
	if err := collect(grandIDs); err != nil {
		return nil, err
	}
	return ancestors, nil
}

// Add creates a custom node at any level. Non-province nodes require an
// existing parent; the formatted address chains the parent's.
func (uc *DefinitionUseCase) Add(ctx context.Context, req *dto.AddDefinitionRequest) (*domain.GeoNode, error) {
	t := domain.NodeType(req.Type)
	if !domain.ValidNodeType(t) {
		return nil, errors.ErrInvalidRequest
	}

	node := &domain.GeoNode{
		PlaceID:          domain.CustomPlaceID(t, uc.now()),
		Type:             t,
		ParentID:         req.ParentID,
		Name:             req.Name,
		FormattedAddress: req.Name,
	}

	if t != domain.NodeTypeProvince {
		if req.ParentID == "" {
			return nil, errors.ErrInvalidRequest
		}
		parent, err := uc.nodeRepo.FindByPlaceID(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}
		node.FormattedAddress = fmt.Sprintf("%s, %s", req.Name, parent.FormattedAddress)
	}

	if err := uc.nodeRepo.Upsert(ctx, node); err != nil {
		return nil, err
	}
	uc.invalidateLevel(ctx, t, node.ParentID)

	uc.logger.Info("Address definition added",
		zap.String("place_id", node.PlaceID),
		zap.String("type", string(t)),
		zap.String("name", node.Name))
	return node, nil
}

// Delete removes a node, refusing while children still reference it.
func (uc *DefinitionUseCase) Delete(ctx context.Context, placeID string) error {
	node, err := uc.nodeRepo.FindByPlaceID(ctx, placeID)
	if err != nil {
		return err
	}

	children, err := uc.nodeRepo.CountChildren(ctx, placeID)
	if err != nil {
		return err
	}
	if children > 0 {
		return errors.NewHasChildren(children)
	}

	if err := uc.nodeRepo.Delete(ctx, placeID); err != nil {
		return err
	}
	uc.invalidateLevel(ctx, node.Type, node.ParentID)

	uc.logger.Info("Address definition deleted",
		zap.String("place_id", placeID),
		zap.String("type", string(node.Type)))
	return nil
}

// invalidateLevel drops the cached option list the mutation affects.
func (uc *DefinitionUseCase) invalidateLevel(ctx context.Context, t domain.NodeType, parentID string) {
	var key string
	switch t {
	case domain.NodeTypeProvince:
		key = cache.KeyProvinces
	case domain.NodeTypeDistrict:
		key = cache.KeyDistricts(parentID)
	case domain.NodeTypeNeighborhood:
		key = cache.KeyNeighborhoods(parentID)
	default:
		return
	}
	if err := uc.cacheRepo.Delete(ctx, key); err != nil {
		uc.logger.Warn("Option cache invalidation failed",
			zap.String("key", key), zap.Error(err))
	}
}
