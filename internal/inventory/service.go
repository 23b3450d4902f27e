package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/speedcraftlabs/gearstock-backend/pkg/db/models"
	"github.com/speedcraftlabs/gearstock-backend/pkg/enums"
	pkgerrors "github.com/speedcraftlabs/gearstock-backend/pkg/errors"
	"github.com/speedcraftlabs/gearstock-backend/pkg/metrics"
	"github.com/speedcraftlabs/gearstock-backend/pkg/outbox"
	"github.com/speedcraftlabs/gearstock-backend/pkg/outbox/payloads"
)

// Service exposes stock record and ledger operations.
type Service interface {
	ScanAdjust(ctx context.Context, input ScanInput) (*ScanResult, error)
	BulkScan(ctx context.Context, inputs []ScanInput) (*BulkScanResult, error)
	GetProductInventory(ctx context.Context, productID int64) (*RecordDTO, error)
	UpdateProductInventory(ctx context.Context, productID int64, input UpdateInput) (*RecordDTO, error)
	AdjustVariantInventory(ctx context.Context, variantID int64, input AdjustInput) (*VariantRecordDTO, error)
	ListInventory(ctx context.Context, filter Filter) ([]RecordDTO, error)
	Stats(ctx context.Context) (*StatsDTO, error)
	GetProductLogs(ctx context.Context, productID int64, limit int) ([]LogDTO, error)
	GetVariantLogs(ctx context.Context, variantID int64, limit int) ([]LogDTO, error)
	InitializeProductInventory(ctx context.Context, tx *gorm.DB, productID int64, quantity int) (*models.Inventory, error)
	InitializeVariantInventory(ctx context.Context, tx *gorm.DB, variantID int64, quantity int) (*models.VariantInventory, error)
	DeductForOrder(ctx context.Context, tx *gorm.DB, productID int64, itemName string, count int, orderNumber string, userID *int64) error
	DeductVariantForOrder(ctx context.Context, tx *gorm.DB, variantID int64, itemName string, count int) error
}

// ScanInput is one device scan against a barcode or an explicit product.
type ScanInput struct {
	ProductID  *int64
	Barcode    string
	Action     string
	Quantity   int
	Reason     *string
	DeviceType *string
	DeviceInfo *string
	UserID     *int64
}

// UpdateInput patches the product-level record. Nil fields are left alone.
type UpdateInput struct {
	Quantity          *int
	LowStockThreshold *int
	ReorderPoint      *int
	Location          *string
	TrackInventory    *bool
	AllowBackorder    *bool
	UserID            *int64
}

// AdjustInput is a manual variant quantity change.
type AdjustInput struct {
	Quantity int
	Mode     enums.VariantAdjustMode
	Reason   *string
	UserID   *int64
}

type dbClient interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// service implements the inventory service.
type service struct {
	repo     *Repository
	dbClient dbClient
	events   eventEmitter
	metrics  *metrics.InventoryMetrics
}

// NewService constructs an inventory service instance.
func NewService(repo *Repository, dbClient dbClient, events eventEmitter, m *metrics.InventoryMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if events == nil {
		return nil, fmt.Errorf("event emitter required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		events:   events,
		metrics:  m,
	}, nil
}

// ScanAdjust applies one scan in a single transaction: resolve the target
// record, mutate it, append the ledger row, and queue the event.
func (s *service) ScanAdjust(ctx context.Context, input ScanInput) (*ScanResult, error) {
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	var (
		action enums.InventoryAction
		result *ScanResult
	)
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		res, err := txRepo.Resolve(ctx, input.Barcode, input.ProductID)
		if err != nil {
			return err
		}
		if err := res.EnsureInventory(); err != nil {
			return err
		}

		adj, err := ParseScanAction(input.Action, quantity)
		if err != nil {
			return err
		}
		action = adj.action()

		previous := res.Quantity()
		eff, err := apply(adj, state{quantity: previous, itemName: res.ItemName})
		if err != nil {
			return err
		}

		if res.TargetsVariant() {
			res.VariantInv.Quantity = eff.newQuantity
			if _, err := txRepo.UpdateVariantInventory(ctx, res.VariantInv); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update variant record")
			}
			if eff.writeLog {
				row := &models.VariantInventoryLog{
					UUID:               uuid.New(),
					VariantInventoryID: res.VariantInv.ID,
					Action:             adj.action(),
					QuantityChange:     eff.change,
					QuantityBefore:     previous,
					QuantityAfter:      eff.newQuantity,
					Reason:             input.Reason,
					DeviceType:         input.DeviceType,
					DeviceInfo:         input.DeviceInfo,
					UserID:             input.UserID,
				}
				if err := txRepo.AppendVariantLog(ctx, row); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: append variant ledger row")
				}
			}
		} else {
			res.ProductInv.Quantity = eff.newQuantity
			if eff.stampScan {
				now := time.Now().UTC()
				res.ProductInv.LastScannedAt = &now
			}
			if _, err := txRepo.UpdateInventory(ctx, res.ProductInv); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update record")
			}
			if eff.writeLog {
				row := &models.InventoryLog{
					UUID:           uuid.New(),
					InventoryID:    res.ProductInv.ID,
					Action:         adj.action(),
					QuantityChange: eff.change,
					QuantityBefore: previous,
					QuantityAfter:  eff.newQuantity,
					Reason:         input.Reason,
					DeviceType:     input.DeviceType,
					DeviceInfo:     input.DeviceInfo,
					UserID:         input.UserID,
				}
				if err := txRepo.AppendProductLog(ctx, row); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: append ledger row")
				}
			}
		}

		payload := payloads.InventoryScannedEvent{
			ProductID:        res.Product.ID,
			ProductUUID:      res.Product.UUID,
			ItemName:         res.ItemName,
			ItemSKU:          res.ItemSKU,
			Action:           adj.action(),
			PreviousQuantity: previous,
			NewQuantity:      eff.newQuantity,
			Change:           eff.change,
			DeviceType:       input.DeviceType,
		}
		if res.Variant != nil {
			payload.VariantID = &res.Variant.ID
			variantUUID := res.Variant.UUID
			payload.VariantUUID = &variantUUID
			payload.VariantName = &res.Variant.Name
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventInventoryScanned,
			AggregateType: enums.AggregateProduct,
			AggregateID:   res.Product.UUID,
			Actor:         actorFor(input.UserID),
			Data:          payload,
			Version:       1,
		}
		if err := s.events.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "outbox: queue inventory_scanned")
		}

		result = s.buildScanResult(res, previous, eff)
		return nil
	}); err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			if typed.Code() == pkgerrors.CodeInsufficientStock {
				s.metrics.IncInsufficientStock()
			}
			if action != "" {
				s.metrics.IncScan(action, "error")
			}
			return nil, err
		}
		if action != "" {
			s.metrics.IncScan(action, "error")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scan adjust")
	}

	s.metrics.IncScan(action, "ok")
	return result, nil
}

func (s *service) buildScanResult(res *Resolution, previous int, eff effect) *ScanResult {
	direction := "increased"
	if eff.change < 0 {
		direction = "decreased"
	}
	message := fmt.Sprintf("Inventory %s by %d", direction, abs(eff.change))
	if res.Variant != nil {
		message = fmt.Sprintf("%s for %s", message, res.Variant.Name)
	}
	return &ScanResult{
		Success:          true,
		Message:          message,
		ProductID:        res.Product.ID,
		ProductName:      res.ItemName,
		ProductSKU:       res.ItemSKU,
		PreviousQuantity: previous,
		NewQuantity:      eff.newQuantity,
		Change:           eff.change,
		IsInStock:        eff.newQuantity > 0,
		IsLowStock:       eff.newQuantity <= res.LowStockThreshold(),
		Timestamp:        time.Now().UTC(),
	}
}

// BulkScan applies scans strictly in order, one transaction each. A failed
// entry is collected and the rest continue.
func (s *service) BulkScan(ctx context.Context, inputs []ScanInput) (*BulkScanResult, error) {
	out := &BulkScanResult{
		Results: make([]ScanResult, 0, len(inputs)),
		Errors:  make([]ScanError, 0),
	}
	for _, input := range inputs {
		result, err := s.ScanAdjust(ctx, input)
		if err != nil {
			entry := ScanError{
				Barcode:   input.Barcode,
				ProductID: input.ProductID,
				Error:     err.Error(),
			}
			if typed := pkgerrors.As(err); typed != nil {
				entry.Error = typed.Message()
			}
			out.Errors = append(out.Errors, entry)
			out.ErrorCount++
			continue
		}
		out.Results = append(out.Results, *result)
		out.SuccessCount++
	}
	return out, nil
}

// GetProductInventory loads the product-level record.
func (s *service) GetProductInventory(ctx context.Context, productID int64) (*RecordDTO, error) {
	inv, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Inventory not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load record")
	}
	return NewRecordDTO(inv), nil
}

// UpdateProductInventory patches the record. A quantity change writes one
// adjustment ledger row and queues an inventory_updated event; setting the
// quantity never stamps the scan time.
func (s *service) UpdateProductInventory(ctx context.Context, productID int64, input UpdateInput) (*RecordDTO, error) {
	var updated *models.Inventory
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		inv, err := txRepo.FindByProductID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Inventory not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load record")
		}

		if input.Quantity != nil && *input.Quantity != inv.Quantity {
			previous := inv.Quantity
			target := *input.Quantity
			eff, err := apply(SetQuantity{Target: target}, state{quantity: previous})
			if err != nil {
				return err
			}
			inv.Quantity = eff.newQuantity

			reason := "Manual adjustment"
			row := &models.InventoryLog{
				UUID:           uuid.New(),
				InventoryID:    inv.ID,
				Action:         enums.InventoryActionAdjustment,
				QuantityChange: eff.change,
				QuantityBefore: previous,
				QuantityAfter:  eff.newQuantity,
				Reason:         &reason,
				UserID:         input.UserID,
			}
			if err := txRepo.AppendProductLog(ctx, row); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: append ledger row")
			}

			product, err := txRepo.FindProductForScan(ctx, productID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
			}
			event := outbox.DomainEvent{
				EventType:     enums.EventInventoryUpdated,
				AggregateType: enums.AggregateProduct,
				AggregateID:   product.UUID,
				Actor:         actorFor(input.UserID),
				Data: payloads.InventoryUpdatedEvent{
					ProductID:        product.ID,
					ProductUUID:      product.UUID,
					PreviousQuantity: previous,
					NewQuantity:      eff.newQuantity,
					Change:           eff.change,
				},
				Version: 1,
			}
			if err := s.events.Emit(ctx, tx, event); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "outbox: queue inventory_updated")
			}
		}

		if input.LowStockThreshold != nil {
			inv.LowStockThreshold = *input.LowStockThreshold
		}
		if input.ReorderPoint != nil {
			inv.ReorderPoint = *input.ReorderPoint
		}
		if input.Location != nil {
			inv.Location = *input.Location
		}
		if input.TrackInventory != nil {
			inv.TrackInventory = *input.TrackInventory
		}
		if input.AllowBackorder != nil {
			inv.AllowBackorder = *input.AllowBackorder
		}

		if _, err := txRepo.UpdateInventory(ctx, inv); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update record")
		}
		updated = inv
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update record")
	}
	return NewRecordDTO(updated), nil
}

// AdjustVariantInventory applies a manual set/add/remove to a variant record.
// The ledger row keeps the mode name as its action and is only written when
// the applied change is non-zero.
func (s *service) AdjustVariantInventory(ctx context.Context, variantID int64, input AdjustInput) (*VariantRecordDTO, error) {
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be zero or greater")
	}
	if !input.Mode.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "adjustment_type must be set, add or remove")
	}

	var updated *models.VariantInventory
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		inv, err := txRepo.FindByVariantID(ctx, variantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Variant inventory not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load variant record")
		}

		previous := inv.Quantity
		adj, action := adjustmentForMode(input.Mode, input.Quantity)
		eff, err := apply(adj, state{quantity: previous})
		if err != nil {
			return err
		}
		inv.Quantity = eff.newQuantity
		if _, err := txRepo.UpdateVariantInventory(ctx, inv); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update variant record")
		}

		if eff.writeLog {
			reason := input.Reason
			if reason == nil {
				fallback := fmt.Sprintf("Manual %s adjustment", input.Mode)
				reason = &fallback
			}
			row := &models.VariantInventoryLog{
				UUID:               uuid.New(),
				VariantInventoryID: inv.ID,
				Action:             action,
				QuantityChange:     eff.change,
				QuantityBefore:     previous,
				QuantityAfter:      eff.newQuantity,
				Reason:             reason,
				UserID:             input.UserID,
			}
			if err := txRepo.AppendVariantLog(ctx, row); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: append variant ledger row")
			}
		}

		if eff.change != 0 {
			variant, err := txRepo.FindVariant(ctx, variantID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load variant")
			}
			event := outbox.DomainEvent{
				EventType:     enums.EventVariantInventoryAdjusted,
				AggregateType: enums.AggregateVariant,
				AggregateID:   variant.UUID,
				Actor:         actorFor(input.UserID),
				Data: payloads.VariantInventoryAdjustedEvent{
					ProductID:        variant.ProductID,
					VariantID:        variant.ID,
					VariantUUID:      variant.UUID,
					Mode:             input.Mode,
					PreviousQuantity: previous,
					NewQuantity:      eff.newQuantity,
					Change:           eff.change,
					Reason:           input.Reason,
				},
				Version: 1,
			}
			if err := s.events.Emit(ctx, tx, event); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "outbox: queue variant_inventory_adjusted")
			}
		}

		updated = inv
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust variant record")
	}
	return NewVariantRecordDTO(updated), nil
}

// ListInventory returns records filtered by stock state.
func (s *service) ListInventory(ctx context.Context, filter Filter) ([]RecordDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list records")
	}
	out := make([]RecordDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewRecordDTO(&rows[i]))
	}
	return out, nil
}

// Stats summarizes the catalog by stock state.
func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	counts, err := s.repo.CountsByStockState(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count stock states")
	}
	return &StatsDTO{
		TotalProducts: counts.TotalProducts,
		InStock:       counts.InStock,
		OutOfStock:    counts.OutOfStock,
		LowStock:      counts.LowStock,
	}, nil
}

// GetProductLogs returns the product ledger, newest first.
func (s *service) GetProductLogs(ctx context.Context, productID int64, limit int) ([]LogDTO, error) {
	inv, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Inventory not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load record")
	}
	rows, err := s.repo.ListProductLogs(ctx, inv.ID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list ledger rows")
	}
	out := make([]LogDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewLogDTO(row))
	}
	return out, nil
}

// GetVariantLogs returns the variant ledger, newest first. A variant without
// a record yields an empty history rather than an error.
func (s *service) GetVariantLogs(ctx context.Context, variantID int64, limit int) ([]LogDTO, error) {
	inv, err := s.repo.FindByVariantID(ctx, variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []LogDTO{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load variant record")
	}
	rows, err := s.repo.ListVariantLogs(ctx, inv.ID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list variant ledger rows")
	}
	out := make([]LogDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewVariantLogDTO(row))
	}
	return out, nil
}

// InitializeProductInventory creates the product-level record inside the
// caller's transaction. The starting quantity is not written to the ledger.
func (s *service) InitializeProductInventory(ctx context.Context, tx *gorm.DB, productID int64, quantity int) (*models.Inventory, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction required")
	}
	if quantity < 0 {
		quantity = 0
	}
	inv := &models.Inventory{
		UUID:      uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
	}
	if _, err := s.repo.WithTx(tx).CreateProductRecord(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// InitializeVariantInventory creates the variant-level record inside the
// caller's transaction.
func (s *service) InitializeVariantInventory(ctx context.Context, tx *gorm.DB, variantID int64, quantity int) (*models.VariantInventory, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction required")
	}
	if quantity < 0 {
		quantity = 0
	}
	inv := &models.VariantInventory{
		UUID:      uuid.New(),
		VariantID: variantID,
		Quantity:  quantity,
	}
	if _, err := s.repo.WithTx(tx).CreateVariantRecord(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// DeductForOrder removes order-line stock from the product record inside the
// caller's transaction, writing one order_out ledger row keyed by the order
// number. A product without a record is skipped so the order can still be
// taken for untracked items.
func (s *service) DeductForOrder(ctx context.Context, tx *gorm.DB, productID int64, itemName string, count int, orderNumber string, userID *int64) error {
	if tx == nil {
		return fmt.Errorf("transaction required")
	}
	txRepo := s.repo.WithTx(tx)

	inv, err := txRepo.FindByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load record")
	}

	previous := inv.Quantity
	eff, err := apply(OrderOut{Count: count, Reference: orderNumber}, state{
		quantity:       previous,
		allowBackorder: inv.AllowBackorder,
		itemName:       itemName,
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeInsufficientStock {
			s.metrics.IncInsufficientStock()
		}
		return err
	}

	inv.Quantity = eff.newQuantity
	if eff.stampScan {
		now := time.Now().UTC()
		inv.LastScannedAt = &now
	}
	if _, err := txRepo.UpdateInventory(ctx, inv); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update record")
	}

	reason := fmt.Sprintf("Order %s", orderNumber)
	reference := orderNumber
	row := &models.InventoryLog{
		UUID:           uuid.New(),
		InventoryID:    inv.ID,
		Action:         enums.InventoryActionOrderOut,
		QuantityChange: eff.change,
		QuantityBefore: previous,
		QuantityAfter:  eff.newQuantity,
		Reason:         &reason,
		Reference:      &reference,
		UserID:         userID,
	}
	if err := txRepo.AppendProductLog(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: append ledger row")
	}

	s.metrics.IncOrderDeduction()
	return nil
}

// DeductVariantForOrder mirrors DeductForOrder for the variant record. The
// movement is already on the product ledger, so no variant row is written.
func (s *service) DeductVariantForOrder(ctx context.Context, tx *gorm.DB, variantID int64, itemName string, count int) error {
	if tx == nil {
		return fmt.Errorf("transaction required")
	}
	txRepo := s.repo.WithTx(tx)

	inv, err := txRepo.FindByVariantID(ctx, variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load variant record")
	}

	eff, err := apply(OrderOut{Count: count}, state{
		quantity:       inv.Quantity,
		allowBackorder: inv.AllowBackorder,
		itemName:       fmt.Sprintf("variant %s", itemName),
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeInsufficientStock {
			s.metrics.IncInsufficientStock()
		}
		return err
	}

	inv.Quantity = eff.newQuantity
	if _, err := txRepo.UpdateVariantInventory(ctx, inv); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update variant record")
	}
	return nil
}

func actorFor(userID *int64) *outbox.ActorRef {
	if userID == nil {
		return nil
	}
	return &outbox.ActorRef{UserID: *userID}
}
