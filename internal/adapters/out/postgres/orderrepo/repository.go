package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return errs.NewValueIsInvalidErrorWithCause("id", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists an aggregate whose status was advanced in memory. The write
// is conditional on the row still holding expectedStatus and the courier
// assignment the caller read the aggregate with; zero rows affected means a
// concurrent transition won and the caller's read is stale. The courier guard
// closes the ACCEPTED alias: without it a stale ready could match a row a
// claim just committed on and silently erase the assignment.
func (r *GormOrderRepository) Update(
	ctx context.Context,
	aggregate *order.Order,
	expectedStatus order.Status,
	expectedCourierID *kernel.UUID,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	var courierID any
	if id := aggregate.CourierID(); id != nil {
		courierID = id.Bytes()
	}

	query := r.db.WithContext(ctx).Model(&OrderDTO{})
	if expectedCourierID != nil {
		query = query.Where("id = ? AND status = ? AND courier_id = ?",
			aggregate.ID().Bytes(), expectedStatus.String(), expectedCourierID.Bytes())
	} else {
		query = query.Where("id = ? AND status = ? AND courier_id IS NULL",
			aggregate.ID().Bytes(), expectedStatus.String())
	}

	result := query.Updates(map[string]any{
		"courier_id":   courierID,
		"status":       aggregate.Status().String(),
		"accepted_at":  aggregate.AcceptedAt(),
		"picked_up_at": aggregate.PickedUpAt(),
		"delivered_at": aggregate.DeliveredAt(),
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.staleWriteError(ctx, aggregate.ID(), expectedStatus)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its lines by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Claim is the courier-claim compare-and-set. A single conditional UPDATE
// assigns the courier, stamps acceptedAt, and moves READY to ACCEPTED iff the
// order is still READY and unclaimed. Under N concurrent claims the database
// serializes the row writes and exactly one statement matches.
func (r *GormOrderRepository) Claim(ctx context.Context, orderID, courierID kernel.UUID, at time.Time) error {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND courier_id IS NULL", orderID.Bytes(), order.StatusReady.String()).
		Updates(map[string]any{
			"courier_id":  courierID.Bytes(),
			"status":      order.StatusAccepted.String(),
			"accepted_at": at,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var dto OrderDTO
		err := r.db.WithContext(ctx).Select("id", "status").First(&dto, "id = ?", orderID.Bytes()).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("order", orderID.String())
		}
		if err != nil {
			return err
		}
		return errs.NewConflictError(errs.ConflictOrderUnavailable,
			fmt.Sprintf("order %s is not claimable in status %s", orderID, dto.Status))
	}

	return nil
}

// CountActiveByCourier counts the courier's orders in non-terminal status.
func (r *GormOrderRepository) CountActiveByCourier(ctx context.Context, courierID kernel.UUID) (int64, error) {
	if err := courierID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("courier_id = ? AND status NOT IN ?", courierID.Bytes(), terminalStatuses()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// GetActiveByCourier retrieves the courier's current non-terminal order.
func (r *GormOrderRepository) GetActiveByCourier(ctx context.Context, courierID kernel.UUID) (*order.Order, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		First(&dto, "courier_id = ? AND status NOT IN ?", courierID.Bytes(), terminalStatuses()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("active order for courier", courierID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) staleWriteError(ctx context.Context, id kernel.UUID, expected order.Status) error {
	var dto OrderDTO
	err := r.db.WithContext(ctx).Select("id", "status").First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	if err != nil {
		return err
	}
	return errs.NewConflictError(errs.ConflictInvalidTransition,
		fmt.Sprintf("order %s changed concurrently since it was read in status %s, now %s",
			id, expected, dto.Status))
}

func terminalStatuses() []string {
	return []string{order.StatusDelivered.String(), order.StatusCancelled.String()}
}
