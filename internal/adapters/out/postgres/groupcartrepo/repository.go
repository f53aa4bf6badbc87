package groupcartrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/groupcart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormGroupCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormGroupCartRepository(db *gorm.DB, tracker aggregateTracker) *GormGroupCartRepository {
	return &GormGroupCartRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormGroupCartRepository) Add(ctx context.Context, cart *groupcart.Cart) error {
	if err := cart.Validate(); err != nil {
		return err
	}

	dto := fromDomain(cart)
	if dto.CreatedAt.IsZero() {
		dto.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(cart.ID(), cart)
	return nil
}

func (r *GormGroupCartRepository) CodeExists(ctx context.Context, code groupcart.Code) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&GroupCartDTO{}).
		Where("code = ?", code.String()).
		Count(&count).Error
	return count > 0, err
}

func (r *GormGroupCartRepository) Get(ctx context.Context, id kernel.UUID) (*groupcart.Cart, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.lockedFirst(ctx, "id = ?", id.Bytes(), id.String())
}

func (r *GormGroupCartRepository) GetByCode(ctx context.Context, code groupcart.Code) (*groupcart.Cart, error) {
	return r.lockedFirst(ctx, "code = ?", code.String(), code.String())
}

func (r *GormGroupCartRepository) AddContribution(ctx context.Context, cartID kernel.UUID, item groupcart.Contribution) error {
	dto := contributionFromDomain(cartID, item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	// The first contribution fixes the cart's vendor.
	return r.db.WithContext(ctx).
		Model(&GroupCartDTO{}).
		Where("id = ? AND vendor_id IS NULL", cartID.Bytes()).
		Update("vendor_id", dto.VendorID).Error
}

func (r *GormGroupCartRepository) Deactivate(ctx context.Context, cartID kernel.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&GroupCartDTO{}).
		Where("id = ? AND is_active = ?", cartID.Bytes(), true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return groupcart.ErrCartClosed
	}
	return nil
}

func (r *GormGroupCartRepository) lockedFirst(ctx context.Context, query string, arg any, ref string) (*groupcart.Cart, error) {
	var dto GroupCartDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("group cart", ref)
	}
	if err != nil {
		return nil, err
	}

	var items []ContributionDTO
	if err = r.db.WithContext(ctx).Where("cart_id = ?", dto.ID).Order("seq").Find(&items).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, items)
}
