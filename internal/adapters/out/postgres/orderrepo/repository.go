package orderrepo

import (
	"context"
	"errors"

	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/core/ports"
	"orderledger/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a repository on db that reports every aggregate it
// writes to tracker.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order and its line items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes address, delivery state and parcel link when the stored version still
// matches the aggregate, and advances the version on both sides.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"shipping_address":     dto.ShippingAddress.Street,
			"shipping_city":        dto.ShippingAddress.City,
			"shipping_district":    dto.ShippingAddress.District,
			"shipping_state":       dto.ShippingAddress.State,
			"shipping_postal_code": dto.ShippingAddress.PostalCode,
			"shipping_country":     dto.ShippingAddress.Country,
			"is_delivered":         dto.IsDelivered,
			"delivered_at":         dto.DeliveredAt,
			"parcel_id":            dto.ParcelID,
			"updated_at":           dto.UpdatedAt,
			"version":              gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID(), ports.ErrVersionConflict)
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// MarkPaid stores the payment fields only while the row is still unpaid, so two
// concurrent confirmations cannot both succeed.
func (r *GormOrderRepository) MarkPaid(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.IsPaid() {
		return errs.NewValueIsInvalidError("isPaid")
	}

	dto := fromDomain(aggregate)
	pr := dto.PaymentResult
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND is_paid = ?", dto.ID, false).
		Updates(map[string]any{
			"is_paid":                    true,
			"paid_at":                    dto.PaidAt,
			"payment_gateway_order_id":   pr.GatewayOrderID,
			"payment_gateway_payment_id": pr.GatewayPaymentID,
			"payment_gateway_signature":  pr.GatewaySignature,
			"payment_status":             pr.Status,
			"payment_update_time":        pr.UpdateTime,
			"payment_email_address":      pr.EmailAddress,
			"updated_at":                 dto.UpdatedAt,
			"version":                    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID(), order.ErrAlreadyPaid)
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.withItems(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// List returns all orders, newest first.
func (r *GormOrderRepository) List(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.withItems(ctx).Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainAll(dtos)
}

// ListAwaitingDispatch returns orders without a parcel, oldest first.
func (r *GormOrderRepository) ListAwaitingDispatch(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.withItems(ctx).
		Where("parcel_id IS NULL").
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainAll(dtos)
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// missingOrStale tells a conditional write that matched nothing because the row is gone
// apart from one whose condition no longer holds.
func (r *GormOrderRepository) missingOrStale(ctx context.Context, id kernel.UUID, stale error) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return stale
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

var _ ports.OrderRepository = (*GormOrderRepository)(nil)
