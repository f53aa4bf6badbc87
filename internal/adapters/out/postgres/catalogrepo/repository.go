package catalogrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) GetVendor(ctx context.Context, id kernel.UUID) (catalog.Vendor, error) {
	var dto VendorDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.Vendor{}, errs.NewObjectNotFoundError("vendor", id.String())
	}
	if err != nil {
		return catalog.Vendor{}, err
	}
	return vendorToDomain(dto)
}

func (r *GormCatalogRepository) GetMenuItem(ctx context.Context, id kernel.UUID) (catalog.MenuItem, error) {
	var dto MenuItemDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.MenuItem{}, errs.NewObjectNotFoundError("menu item", id.String())
	}
	if err != nil {
		return catalog.MenuItem{}, err
	}
	return menuItemToDomain(dto), nil
}

func (r *GormCatalogRepository) GetMenuItems(ctx context.Context, ids []kernel.UUID) ([]catalog.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := lo.Uniq(lo.Map(ids, func(id kernel.UUID, _ int) uuid.UUID { return id.Bytes() }))
	var dtos []MenuItemDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	return lo.Map(dtos, func(dto MenuItemDTO, _ int) catalog.MenuItem { return menuItemToDomain(dto) }), nil
}
