package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukahub/duka-api/internal/config"
	"github.com/dukahub/duka-api/internal/domain/entity"
	"github.com/dukahub/duka-api/internal/domain/enum"
	"github.com/dukahub/duka-api/internal/domain/repository"
	infraRepo "github.com/dukahub/duka-api/internal/infrastructure/repository"
	"github.com/dukahub/duka-api/pkg/apperror"
	"github.com/dukahub/duka-api/pkg/sequence"
)

// PurchaseOrderService drives purchase orders through their lifecycle and
// turns receipts into stock. Receiving validates the whole batch before
// touching anything: one bad line aborts the entire receipt.
type PurchaseOrderService struct {
	poRepo       repository.PurchaseOrderRepository
	poItemRepo   repository.PurchaseOrderItemRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	stockRepo    repository.StockRepository
	movementRepo repository.StockMovementRepository
	shopRepo     repository.ShopRepository
	transactor   repository.Transactor
	numbers      *sequence.Generator
	cfg          *config.SalesConfig
}

// NewPurchaseOrderService creates a new purchase order service
func NewPurchaseOrderService(
	poRepo repository.PurchaseOrderRepository,
	poItemRepo repository.PurchaseOrderItemRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	shopRepo repository.ShopRepository,
	transactor repository.Transactor,
	numbers *sequence.Generator,
	cfg *config.SalesConfig,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		poRepo:       poRepo,
		poItemRepo:   poItemRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		shopRepo:     shopRepo,
		transactor:   transactor,
		numbers:      numbers,
		cfg:          cfg,
	}
}

// PurchaseOrderItemInput represents an ordered line
type PurchaseOrderItemInput struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// CreatePurchaseOrderInput represents the create purchase order input
type CreatePurchaseOrderInput struct {
	SupplierID           uuid.UUID
	CreatedByID          *uuid.UUID
	OrderDate            time.Time
	ExpectedDeliveryDate *time.Time
	Notes                string
	Items                []PurchaseOrderItemInput
}

// CreatePurchaseOrder creates a new purchase order in DRAFT state. Totals are
// computed once here and never recomputed.
func (s *PurchaseOrderService) CreatePurchaseOrder(ctx context.Context, input *CreatePurchaseOrderInput) (*entity.PurchaseOrder, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Purchase order must have at least one item")
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	subtotal := decimal.Zero
	items := make([]entity.PurchaseOrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		if _, exists := productMap[item.ProductID]; !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if !item.Quantity.IsPositive() {
			return nil, apperror.NewInvalidQuantityError("Quantity must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Unit price cannot be negative")
		}

		line := entity.PurchaseOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		subtotal = subtotal.Add(line.TotalPrice())
		items = append(items, line)
	}

	taxRate := s.cfg.TaxRate
	if shop, err := s.shopRepo.GetByID(ctx, shopID); err == nil && shop != nil && shop.Settings.TaxRate != nil {
		taxRate = *shop.Settings.TaxRate
	}
	taxAmount := subtotal.Mul(taxRate).Div(oneHundred).Round(2)
	total := subtotal.Add(taxAmount).Round(2)

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	prefix := s.poPrefix(ctx, shopID)

	var created *entity.PurchaseOrder
	for attempt := 0; attempt < numberAttempts; attempt++ {
		last, err := s.poRepo.LastPONumber(ctx, s.numbers.SearchPrefix(prefix))
		if err != nil {
			return nil, err
		}
		poNumber := s.numbers.Next(prefix, last)

		candidate := &entity.PurchaseOrder{
			ShopID:               shopID,
			SupplierID:           input.SupplierID,
			CreatedByID:          input.CreatedByID,
			PONumber:             poNumber,
			Status:               enum.POStatusDraft,
			OrderDate:            orderDate,
			ExpectedDeliveryDate: input.ExpectedDeliveryDate,
			Subtotal:             subtotal.Round(2),
			TaxAmount:            taxAmount,
			Total:                total,
			Notes:                input.Notes,
		}

		err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := s.poRepo.Create(ctx, candidate); err != nil {
				return err
			}
			poItems := make([]entity.PurchaseOrderItem, len(items))
			copy(poItems, items)
			for i := range poItems {
				poItems[i].PurchaseOrderID = candidate.ID
			}
			return s.poItemRepo.CreateBatch(ctx, poItems)
		})
		if err == nil {
			created = candidate
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, err
	}
	if created == nil {
		return nil, apperror.NewSequenceExhaustedError("purchase order")
	}

	return s.poRepo.GetWithDetails(ctx, created.ID)
}

// UpdateStatus transitions a purchase order. Transitions only move forward
// (DRAFT -> PENDING -> ORDERED -> RECEIVED); CANCELLED is reachable from any
// non-terminal state. RECEIVED is only ever set by receiving all items.
func (s *PurchaseOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PurchaseOrderStatus) (*entity.PurchaseOrder, error) {
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown purchase order status")
	}
	if status == enum.POStatusReceived {
		return nil, apperror.NewInvalidStateError("RECEIVED is set by receiving items, not directly")
	}

	po, err := s.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	if !po.Status.CanTransitionTo(status) {
		return nil, apperror.NewInvalidStateError(fmt.Sprintf(
			"Cannot transition purchase order from %s to %s", po.Status, status))
	}

	updated, err := s.poRepo.UpdateStatus(ctx, id, po.Status, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperror.NewConcurrentModificationError("Purchase order status changed, retry the transition")
	}
	po.Status = status
	return po, nil
}

// ReceiveItemInput represents a received quantity for a PO line
type ReceiveItemInput struct {
	ItemID   uuid.UUID
	Quantity decimal.Decimal
}

// ReceiveItems records a receipt against an ORDERED purchase order. The whole
// batch is validated first; any over-receipt aborts the entire call with
// nothing persisted. Stock increments, IN movements, received quantities and
// the possible transition to RECEIVED commit in one transaction.
func (s *PurchaseOrderService) ReceiveItems(ctx context.Context, id uuid.UUID, receipts []ReceiveItemInput) (*entity.PurchaseOrder, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}
	if len(receipts) == 0 {
		return nil, apperror.NewBadRequestError("Receipt must include at least one item")
	}

	po, err := s.poRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	if po.Status != enum.POStatusOrdered {
		return nil, apperror.NewInvalidStateError(fmt.Sprintf(
			"Cannot receive items on a %s purchase order", po.Status))
	}

	itemMap := make(map[uuid.UUID]*entity.PurchaseOrderItem, len(po.Items))
	for i := range po.Items {
		itemMap[po.Items[i].ID] = &po.Items[i]
	}

	// Validate the whole batch before mutating anything. pending accounts for
	// earlier entries in this same batch targeting the same line.
	pending := make(map[uuid.UUID]decimal.Decimal, len(receipts))
	for _, receipt := range receipts {
		item, exists := itemMap[receipt.ItemID]
		if !exists {
			return nil, apperror.NewNotFoundError("Purchase order item")
		}
		if !receipt.Quantity.IsPositive() {
			return nil, apperror.NewInvalidQuantityError("Received quantity must be positive")
		}
		if pending[receipt.ItemID].Add(receipt.Quantity).GreaterThan(item.RemainingQuantity()) {
			return nil, apperror.NewOverReceiptError(item.Product.Name)
		}
		pending[receipt.ItemID] = pending[receipt.ItemID].Add(receipt.Quantity)
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		// Re-assert the status under the transaction's row lock; a receipt
		// racing a cancellation or another receipt sees zero rows here.
		held, err := s.poRepo.UpdateStatus(ctx, po.ID, enum.POStatusOrdered, enum.POStatusOrdered)
		if err != nil {
			return err
		}
		if !held {
			return apperror.NewConcurrentModificationError("Purchase order status changed, retry the receipt")
		}

		movements := make([]entity.StockMovement, 0, len(receipts))
		for _, receipt := range receipts {
			item := itemMap[receipt.ItemID]

			// Guarded increment: a receipt that lost the race to another
			// one cannot push received_quantity past the ordered quantity.
			accumulated, err := s.poItemRepo.AccumulateReceived(ctx, item.ID, receipt.Quantity)
			if err != nil {
				return err
			}
			if !accumulated {
				return apperror.NewConcurrentModificationError("Purchase order line changed, retry the receipt")
			}

			applied, err := s.stockRepo.ApplyDelta(ctx, item.ProductID, receipt.Quantity)
			if err != nil {
				return err
			}
			if !applied {
				if err := s.stockRepo.Create(ctx, &entity.Stock{
					ShopID:    shopID,
					ProductID: item.ProductID,
					Quantity:  receipt.Quantity,
				}); err != nil {
					return err
				}
			}

			movements = append(movements, entity.StockMovement{
				ShopID:          shopID,
				ProductID:       item.ProductID,
				SupplierID:      &po.SupplierID,
				CreatedByID:     po.CreatedByID,
				MovementType:    enum.MovementIn,
				Quantity:        receipt.Quantity,
				UnitPrice:       item.UnitPrice,
				ReferenceNumber: po.PONumber,
			})
		}
		if err := s.movementRepo.CreateBatch(ctx, movements); err != nil {
			return err
		}

		// Decide RECEIVED from the rows as written, not the pre-transaction
		// copy the batch was validated against.
		items, err := s.poItemRepo.GetByPurchaseOrderID(ctx, po.ID)
		if err != nil {
			return err
		}
		po.Items = items
		if po.FullyReceived() {
			done, err := s.poRepo.UpdateStatus(ctx, po.ID, enum.POStatusOrdered, enum.POStatusReceived)
			if err != nil {
				return err
			}
			if done {
				po.Status = enum.POStatusReceived
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.poRepo.GetWithDetails(ctx, po.ID)
}

// GetPurchaseOrder returns a purchase order with items and supplier
func (s *PurchaseOrderService) GetPurchaseOrder(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	po, err := s.poRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	return po, nil
}

// ListPurchaseOrders returns purchase orders matching the filter
func (s *PurchaseOrderService) ListPurchaseOrders(ctx context.Context, params *repository.PurchaseOrderFilterParams) ([]entity.PurchaseOrder, int64, error) {
	return s.poRepo.List(ctx, params)
}

// DeletePurchaseOrder removes a draft purchase order. Orders past DRAFT are
// part of the audit trail and can only be cancelled.
func (s *PurchaseOrderService) DeletePurchaseOrder(ctx context.Context, id uuid.UUID) error {
	po, err := s.poRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if po == nil {
		return apperror.NewNotFoundError("Purchase order")
	}
	if po.Status != enum.POStatusDraft {
		return apperror.NewInvalidStateError("Only draft purchase orders can be deleted")
	}
	return s.poRepo.Delete(ctx, id)
}

func (s *PurchaseOrderService) poPrefix(ctx context.Context, shopID uuid.UUID) string {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err == nil && shop != nil && shop.Settings.POPrefix != "" {
		return shop.Settings.POPrefix
	}
	return s.cfg.POPrefix
}
