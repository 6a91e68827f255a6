package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/example/clickpay/internal/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// TransactionFilter is an equality filter over click transactions. Zero
// fields are ignored.
type TransactionFilter struct {
	TransactionID   string
	PrepareID       int64
	UserID          uuid.UUID
	ProductID       uuid.UUID
	MerchantTransID string
	Provider        string
	Status          *int
}

// ClickStore is the gorm-backed record store used by the Click webhook.
type ClickStore struct {
	db *gorm.DB
}

func NewClickStore(db *gorm.DB) *ClickStore {
	return &ClickStore{db: db}
}

// FindOrder looks up an order by its merchant id. Ids that are not uuids
// cannot exist and resolve to ErrNotFound.
func (s *ClickStore) FindOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := s.first(ctx, id, &order); err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

func (s *ClickStore) FindUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.first(ctx, id.String(), &user); err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *ClickStore) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.first(ctx, id.String(), &product); err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &product, nil
}

// FindTransaction returns the newest transaction matching filter.
func (s *ClickStore) FindTransaction(ctx context.Context, filter TransactionFilter) (*models.ClickTransaction, error) {
	var txn models.ClickTransaction
	err := applyTransactionFilter(s.db.WithContext(ctx), filter).
		Order("created_at desc").
		Limit(1).
		Take(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find click transaction: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("find click transaction: %w", err)
	}
	return &txn, nil
}

// ListTransactions returns a page of transactions matching filter, newest first,
// together with the total number of matches.
func (s *ClickStore) ListTransactions(ctx context.Context, filter TransactionFilter, limit, offset int) ([]models.ClickTransaction, int64, error) {
	query := applyTransactionFilter(s.db.WithContext(ctx).Model(&models.ClickTransaction{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count click transactions: %w", err)
	}

	var txns []models.ClickTransaction
	if err := query.
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&txns).Error; err != nil {
		return nil, 0, fmt.Errorf("list click transactions: %w", err)
	}
	return txns, total, nil
}

func (s *ClickStore) CreateTransaction(ctx context.Context, txn *models.ClickTransaction) error {
	if err := s.db.WithContext(ctx).Create(txn).Error; err != nil {
		return fmt.Errorf("create click transaction: %w", err)
	}
	return nil
}

// UpdateTransaction applies fields to the transaction with the given id.
func (s *ClickStore) UpdateTransaction(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := s.db.WithContext(ctx).
		Model(&models.ClickTransaction{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update click transaction %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update click transaction %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *ClickStore) RecordEvent(ctx context.Context, event *models.ClickEvent) error {
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("record click event: %w", err)
	}
	return nil
}

func (s *ClickStore) first(ctx context.Context, id string, dest any) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	if err := s.db.WithContext(ctx).Where("id = ?", parsed).Take(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func applyTransactionFilter(db *gorm.DB, filter TransactionFilter) *gorm.DB {
	conds := map[string]any{
		"transaction_id":    filter.TransactionID,
		"prepare_id":        filter.PrepareID,
		"merchant_trans_id": filter.MerchantTransID,
		"provider":          filter.Provider,
	}
	if filter.UserID != uuid.Nil {
		conds["user_id"] = filter.UserID
	}
	if filter.ProductID != uuid.Nil {
		conds["product_id"] = filter.ProductID
	}
	if filter.Status != nil {
		conds["status"] = *filter.Status
	}

	conds = lo.OmitByValues(conds, []any{"", int64(0)})
	if len(conds) == 0 {
		return db
	}
	return db.Where(conds)
}
