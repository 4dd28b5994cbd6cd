package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukahub/duka-api/internal/config"
	"github.com/dukahub/duka-api/internal/domain/entity"
	"github.com/dukahub/duka-api/internal/domain/enum"
	"github.com/dukahub/duka-api/internal/domain/repository"
	infraRepo "github.com/dukahub/duka-api/internal/infrastructure/repository"
	"github.com/dukahub/duka-api/pkg/apperror"
	"github.com/dukahub/duka-api/pkg/pagination"
)

// SalesReturnService processes returns against committed sales. A return
// never edits the original sale; completing one restores stock through RET
// movements in a single transaction.
type SalesReturnService struct {
	returnRepo   repository.SalesReturnRepository
	saleRepo     repository.SaleRepository
	stockRepo    repository.StockRepository
	movementRepo repository.StockMovementRepository
	shopRepo     repository.ShopRepository
	transactor   repository.Transactor
	cfg          *config.SalesConfig
}

// NewSalesReturnService creates a new sales return service
func NewSalesReturnService(
	returnRepo repository.SalesReturnRepository,
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	shopRepo repository.ShopRepository,
	transactor repository.Transactor,
	cfg *config.SalesConfig,
) *SalesReturnService {
	return &SalesReturnService{
		returnRepo:   returnRepo,
		saleRepo:     saleRepo,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		shopRepo:     shopRepo,
		transactor:   transactor,
		cfg:          cfg,
	}
}

// ReturnItemInput represents a returned line, keyed by the sold line
type ReturnItemInput struct {
	SaleItemID uuid.UUID
	Quantity   decimal.Decimal
}

// CreateReturnInput represents the create return input
type CreateReturnInput struct {
	SaleID      uuid.UUID
	CreatedByID *uuid.UUID
	ReturnDate  time.Time
	Reason      string
	Items       []ReturnItemInput
}

// CreateReturn validates every line against the quantities sold (minus what
// earlier returns already claimed) and records the return in PENDING state.
// Stock does not change until the return is completed.
func (s *SalesReturnService) CreateReturn(ctx context.Context, input *CreateReturnInput) (*entity.SalesReturn, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Return must have at least one item")
	}
	if input.Reason == "" {
		return nil, apperror.NewBadRequestError("Return reason is required")
	}

	sale, err := s.saleRepo.GetWithDetails(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	saleItems := make(map[uuid.UUID]*entity.SaleItem, len(sale.Items))
	for i := range sale.Items {
		saleItems[sale.Items[i].ID] = &sale.Items[i]
	}

	alreadyReturned, err := s.returnRepo.SumReturnedBySaleItem(ctx, sale.ID)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	items := make([]entity.SalesReturnItem, 0, len(input.Items))
	for _, item := range input.Items {
		sold, exists := saleItems[item.SaleItemID]
		if !exists {
			return nil, apperror.NewNotFoundError("Sale item")
		}
		if !item.Quantity.IsPositive() {
			return nil, apperror.NewInvalidQuantityError("Return quantity must be positive")
		}
		remaining := sold.Quantity.Sub(alreadyReturned[item.SaleItemID])
		if item.Quantity.GreaterThan(remaining) {
			return nil, apperror.NewInvalidQuantityError(fmt.Sprintf(
				"Return quantity %s exceeds remaining quantity %s for sale item",
				item.Quantity, remaining))
		}

		line := entity.SalesReturnItem{
			SaleItemID: item.SaleItemID,
			Quantity:   item.Quantity,
			UnitPrice:  sold.UnitPrice,
		}
		subtotal = subtotal.Add(line.Total())
		items = append(items, line)
	}

	taxRate := s.cfg.TaxRate
	if shop, err := s.shopRepo.GetByID(ctx, shopID); err == nil && shop != nil && shop.Settings.TaxRate != nil {
		taxRate = *shop.Settings.TaxRate
	}
	taxAmount := subtotal.Mul(taxRate).Div(oneHundred).Round(2)

	returnDate := input.ReturnDate
	if returnDate.IsZero() {
		returnDate = time.Now()
	}

	ret := &entity.SalesReturn{
		ShopID:      shopID,
		SaleID:      sale.ID,
		CreatedByID: input.CreatedByID,
		ReturnDate:  returnDate,
		Status:      enum.ReturnStatusPending,
		Reason:      input.Reason,
		Subtotal:    subtotal.Round(2),
		TaxAmount:   taxAmount,
		Total:       subtotal.Add(taxAmount).Round(2),
		Items:       items,
	}
	if err := s.returnRepo.Create(ctx, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// UpdateReturnStatus moves a return through its lifecycle. Only the
// PENDING -> APPROVED -> COMPLETED path and REJECTED from a non-terminal
// state are allowed. Completion restores stock.
func (s *SalesReturnService) UpdateReturnStatus(ctx context.Context, id uuid.UUID, status enum.ReturnStatus) (*entity.SalesReturn, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}

	ret, err := s.returnRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Sales return")
	}
	if ret.Status.IsTerminal() {
		return nil, apperror.NewInvalidStateError(fmt.Sprintf(
			"Cannot change status of a %s return", ret.Status))
	}

	switch status {
	case enum.ReturnStatusApproved:
		if ret.Status != enum.ReturnStatusPending {
			return nil, apperror.NewInvalidStateError("Only pending returns can be approved")
		}
	case enum.ReturnStatusCompleted:
		if ret.Status != enum.ReturnStatusApproved {
			return nil, apperror.NewInvalidStateError("Only approved returns can be completed")
		}
	case enum.ReturnStatusRejected:
		// Allowed from any non-terminal state.
	default:
		return nil, apperror.NewBadRequestError("Unknown return status")
	}

	if status != enum.ReturnStatusCompleted {
		updated, err := s.returnRepo.UpdateStatus(ctx, id, ret.Status, status)
		if err != nil {
			return nil, err
		}
		if !updated {
			return nil, apperror.NewConcurrentModificationError("Return status changed, retry the transition")
		}
		ret.Status = status
		return ret, nil
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		// Claim the APPROVED status before touching stock: of two racing
		// completions only one gets a row here, so stock is restored once.
		claimed, err := s.returnRepo.UpdateStatus(ctx, id, enum.ReturnStatusApproved, enum.ReturnStatusCompleted)
		if err != nil {
			return err
		}
		if !claimed {
			return apperror.NewConcurrentModificationError("Return status changed, retry the completion")
		}

		movements := make([]entity.StockMovement, 0, len(ret.Items))
		for i := range ret.Items {
			item := &ret.Items[i]
			productID := item.SaleItem.ProductID
			applied, err := s.stockRepo.ApplyDelta(ctx, productID, item.Quantity)
			if err != nil {
				return err
			}
			if !applied {
				// A positive delta only fails when the stock row is gone;
				// recreate it with the returned quantity.
				if err := s.stockRepo.Create(ctx, &entity.Stock{
					ShopID:    shopID,
					ProductID: productID,
					Quantity:  item.Quantity,
				}); err != nil {
					return err
				}
			}
			movements = append(movements, entity.StockMovement{
				ShopID:          shopID,
				ProductID:       productID,
				CreatedByID:     ret.CreatedByID,
				MovementType:    enum.MovementReturn,
				Quantity:        item.Quantity,
				UnitPrice:       item.UnitPrice,
				ReferenceNumber: ret.Sale.InvoiceNumber,
				Notes:           ret.Reason,
			})
		}
		if err := s.movementRepo.CreateBatch(ctx, movements); err != nil {
			return err
		}

		ret.Status = enum.ReturnStatusCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// GetReturn returns a sales return with its items and the original sale
func (s *SalesReturnService) GetReturn(ctx context.Context, id uuid.UUID) (*entity.SalesReturn, error) {
	ret, err := s.returnRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Sales return")
	}
	return ret, nil
}

// ListReturns returns sales returns, optionally filtered by sale
func (s *SalesReturnService) ListReturns(ctx context.Context, params *pagination.PaginationParams, saleID *uuid.UUID) ([]entity.SalesReturn, int64, error) {
	return s.returnRepo.List(ctx, params, saleID)
}
