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

// numberAttempts bounds retries when a generated document number collides
// with an existing one.
const numberAttempts = 3

var oneHundred = decimal.NewFromInt(100)

// SaleService builds sale transactions, records payments against them and
// processes returns. A sale commits atomically: header, items, stock
// decrements and the optional immediate payment all land in one transaction.
type SaleService struct {
	saleRepo     repository.SaleRepository
	saleItemRepo repository.SaleItemRepository
	paymentRepo  repository.PaymentRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	stockRepo    repository.StockRepository
	movementRepo repository.StockMovementRepository
	shopRepo     repository.ShopRepository
	transactor   repository.Transactor
	numbers      *sequence.Generator
	cfg          *config.SalesConfig
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	paymentRepo repository.PaymentRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	shopRepo repository.ShopRepository,
	transactor repository.Transactor,
	numbers *sequence.Generator,
	cfg *config.SalesConfig,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		saleItemRepo: saleItemRepo,
		paymentRepo:  paymentRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		shopRepo:     shopRepo,
		transactor:   transactor,
		numbers:      numbers,
		cfg:          cfg,
	}
}

// SaleItemInput represents a line on a new sale
type SaleItemInput struct {
	ProductID          uuid.UUID
	Quantity           decimal.Decimal
	UnitPrice          *decimal.Decimal // nil means the product's selling price
	DiscountPercentage decimal.Decimal
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	CustomerID    *uuid.UUID
	CreatedByID   *uuid.UUID
	SaleDate      time.Time
	DueDate       *time.Time
	PaymentMethod enum.PaymentMethod
	// AmountPaid, when positive, records an immediate payment in the same
	// transaction that commits the sale.
	AmountPaid decimal.Decimal
	Notes      string
	Items      []SaleItemInput
}

// CreateSale validates the input, prices every line, decrements stock and
// commits the whole transaction atomically. On insufficient stock for any
// line nothing is persisted.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Sale must have at least one item")
	}
	for _, item := range input.Items {
		if !item.Quantity.IsPositive() {
			return nil, apperror.NewInvalidQuantityError("Quantity must be positive")
		}
		if item.DiscountPercentage.IsNegative() || item.DiscountPercentage.GreaterThan(oneHundred) {
			return nil, apperror.NewBadRequestError("Discount percentage must be between 0 and 100")
		}
	}
	if input.AmountPaid.IsNegative() {
		return nil, apperror.NewBadRequestError("Paid amount cannot be negative")
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = enum.PaymentMethodCash
	} else if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	// Batch fetch all products in one query (prevents N+1)
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
	discountTotal := decimal.Zero
	items := make([]entity.SaleItem, 0, len(input.Items))

	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if !product.IsActive {
			return nil, apperror.NewInvalidStateError(fmt.Sprintf("Product %s is inactive", product.Name))
		}

		unitPrice := product.SellingPrice
		if item.UnitPrice != nil {
			unitPrice = *item.UnitPrice
		}

		line := entity.SaleItem{
			ProductID:          item.ProductID,
			Quantity:           item.Quantity,
			UnitPrice:          unitPrice,
			DiscountPercentage: item.DiscountPercentage,
		}
		subtotal = subtotal.Add(line.Subtotal())
		discountTotal = discountTotal.Add(line.ItemDiscountAmount())
		items = append(items, line)
	}

	taxRate, err := s.taxRate(ctx, shopID)
	if err != nil {
		return nil, err
	}

	taxable := subtotal.Sub(discountTotal)
	taxAmount := taxable.Mul(taxRate).Div(oneHundred).Round(2)
	total := taxable.Add(taxAmount).Round(2)

	if input.AmountPaid.GreaterThan(total) {
		return nil, apperror.NewOverPaymentError(input.AmountPaid.String(), total.String())
	}

	saleDate := input.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	prefix := s.invoicePrefix(ctx, shopID)

	var sale *entity.Sale
	for attempt := 0; attempt < numberAttempts; attempt++ {
		last, err := s.saleRepo.LastInvoiceNumber(ctx, s.numbers.SearchPrefix(prefix))
		if err != nil {
			return nil, err
		}
		invoiceNumber := s.numbers.Next(prefix, last)

		candidate := &entity.Sale{
			ShopID:         shopID,
			CustomerID:     input.CustomerID,
			CreatedByID:    input.CreatedByID,
			InvoiceNumber:  invoiceNumber,
			SaleDate:       saleDate,
			DueDate:        input.DueDate,
			PaymentMethod:  input.PaymentMethod,
			PaymentStatus:  enum.DerivePaymentStatus(total, input.AmountPaid),
			Subtotal:       subtotal.Round(2),
			DiscountAmount: discountTotal.Round(2),
			TaxAmount:      taxAmount,
			Total:          total,
			PaidAmount:     input.AmountPaid,
			Notes:          input.Notes,
		}

		err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := s.saleRepo.Create(ctx, candidate); err != nil {
				return err
			}

			saleItems := make([]entity.SaleItem, len(items))
			copy(saleItems, items)
			for i := range saleItems {
				saleItems[i].SaleID = candidate.ID
			}
			if err := s.saleItemRepo.CreateBatch(ctx, saleItems); err != nil {
				return err
			}

			movements := make([]entity.StockMovement, 0, len(saleItems))
			for i := range saleItems {
				product := productMap[saleItems[i].ProductID]
				applied, err := s.stockRepo.ApplyDelta(ctx, product.ID, saleItems[i].Quantity.Neg())
				if err != nil {
					return err
				}
				if !applied {
					return apperror.NewInsufficientStockError(product.Name)
				}
				movements = append(movements, entity.StockMovement{
					ShopID:          shopID,
					ProductID:       product.ID,
					CreatedByID:     input.CreatedByID,
					MovementType:    enum.MovementOut,
					Quantity:        saleItems[i].Quantity.Neg(),
					UnitPrice:       saleItems[i].UnitPrice,
					ReferenceNumber: invoiceNumber,
				})
			}
			if err := s.movementRepo.CreateBatch(ctx, movements); err != nil {
				return err
			}

			if input.AmountPaid.IsPositive() {
				payment := &entity.Payment{
					ShopID:          shopID,
					SaleID:          candidate.ID,
					CreatedByID:     input.CreatedByID,
					Amount:          input.AmountPaid,
					PaymentDate:     saleDate,
					PaymentMethod:   input.PaymentMethod,
					ReferenceNumber: invoiceNumber,
				}
				if err := s.paymentRepo.Create(ctx, payment); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			sale = candidate
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewSequenceExhaustedError("invoice")
	}

	return s.saleRepo.GetWithDetails(ctx, sale.ID)
}

// PaymentInput represents a payment recorded against a sale
type PaymentInput struct {
	Amount          decimal.Decimal
	PaymentDate     time.Time
	PaymentMethod   enum.PaymentMethod
	CreatedByID     *uuid.UUID
	ReferenceNumber string
	Notes           string
}

// ApplyPayment records a payment against a sale. The paid amount is advanced
// by a guarded increment that refuses to pass the sale total, so two racing
// payments cannot overpay even when both read the same balance.
func (s *SaleService) ApplyPayment(ctx context.Context, saleID uuid.UUID, input *PaymentInput) (*entity.Payment, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}
	if !input.Amount.IsPositive() {
		return nil, apperror.NewInvalidQuantityError("Payment amount must be positive")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}

	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	var payment *entity.Payment
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.saleRepo.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}

		balance := sale.BalanceDue()
		if input.Amount.GreaterThan(balance) {
			return apperror.NewOverPaymentError(input.Amount.String(), balance.String())
		}

		applied, err := s.saleRepo.ApplyPaymentAmount(ctx, sale.ID, input.Amount)
		if err != nil {
			return err
		}
		if !applied {
			// The balance check above passed, so another payment landed
			// between the read and the increment.
			return apperror.NewConcurrentModificationError("Sale balance changed, retry the payment")
		}

		payment = &entity.Payment{
			ShopID:          shopID,
			SaleID:          sale.ID,
			CreatedByID:     input.CreatedByID,
			Amount:          input.Amount,
			PaymentDate:     paymentDate,
			PaymentMethod:   input.PaymentMethod,
			ReferenceNumber: input.ReferenceNumber,
			Notes:           input.Notes,
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		// The increment holds the row lock, so this read sees the final
		// paid amount for deriving the status.
		fresh, err := s.saleRepo.GetByID(ctx, sale.ID)
		if err != nil {
			return err
		}
		fresh.PaymentStatus = enum.DerivePaymentStatus(fresh.Total, fresh.PaidAmount)
		return s.saleRepo.Update(ctx, fresh)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// GetSale returns a sale with items, payments and customer
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// SaleListSummary is money metadata attached to sale listings
type SaleListSummary struct {
	TotalAmount       decimal.Decimal `json:"total_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
}

// ListSales returns sales matching the filter plus aggregate money metadata
// over the whole filtered set, not just the current page.
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, *SaleListSummary, error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, 0, nil, err
	}
	sumTotal, sumPaid, err := s.saleRepo.SumTotals(ctx, params)
	if err != nil {
		return nil, 0, nil, err
	}
	summary := &SaleListSummary{
		TotalAmount:       sumTotal,
		PaidAmount:        sumPaid,
		OutstandingAmount: sumTotal.Sub(sumPaid),
	}
	return sales, total, summary, nil
}

// ListPayments returns payments matching the filter
func (s *SaleService) ListPayments(ctx context.Context, params *repository.PaymentFilterParams) ([]entity.Payment, int64, error) {
	return s.paymentRepo.List(ctx, params)
}

// taxRate resolves the effective tax percentage: the shop's configured
// override when present, the application default otherwise.
func (s *SaleService) taxRate(ctx context.Context, shopID uuid.UUID) (decimal.Decimal, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return decimal.Zero, err
	}
	if shop != nil && shop.Settings.TaxRate != nil {
		return *shop.Settings.TaxRate, nil
	}
	return s.cfg.TaxRate, nil
}

func (s *SaleService) invoicePrefix(ctx context.Context, shopID uuid.UUID) string {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err == nil && shop != nil && shop.Settings.InvoicePrefix != "" {
		return shop.Settings.InvoicePrefix
	}
	return s.cfg.InvoicePrefix
}
