package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/example/clickpay/internal/logger"
	"github.com/example/clickpay/internal/models"
	"github.com/example/clickpay/internal/repository"
)

// ClickStore is the record store the Click webhook reads and writes.
// Lookups that match nothing return repository.ErrNotFound.
type ClickStore interface {
	FindOrder(ctx context.Context, id string) (*models.Order, error)
	FindUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindTransaction(ctx context.Context, filter repository.TransactionFilter) (*models.ClickTransaction, error)
	CreateTransaction(ctx context.Context, txn *models.ClickTransaction) error
	UpdateTransaction(ctx context.Context, id uuid.UUID, fields map[string]any) error
	RecordEvent(ctx context.Context, event *models.ClickEvent) error
}

// PaymentNotifier is told about transactions that reached the paid state.
type PaymentNotifier interface {
	NotifyPaymentSuccess(n PaymentSuccessNotification) error
}

// ClickRequest is the body Click posts to both the prepare and complete
// endpoints. Values are kept as sent so the signature can be rebuilt.
// Error is nil when the field was absent; complete requests must carry it.
type ClickRequest struct {
	ClickTransID      string `form:"click_trans_id" json:"click_trans_id" validate:"required"`
	ServiceID         string `form:"service_id" json:"service_id" validate:"required"`
	ClickPaydocID     string `form:"click_paydoc_id" json:"click_paydoc_id"`
	MerchantTransID   string `form:"merchant_trans_id" json:"merchant_trans_id" validate:"required"`
	MerchantPrepareID string `form:"merchant_prepare_id" json:"merchant_prepare_id"`
	Amount            string `form:"amount" json:"amount" validate:"required,numeric"`
	Action            string `form:"action" json:"action" validate:"required,numeric"`
	Error             *int   `form:"error" json:"error"`
	ErrorNote         string `form:"error_note" json:"error_note"`
	SignTime          string `form:"sign_time" json:"sign_time" validate:"required"`
	SignString        string `form:"sign_string" json:"sign_string" validate:"required"`
}

// ClickResult is the response body Click expects from both endpoints.
type ClickResult struct {
	ClickTransID      string `json:"click_trans_id"`
	MerchantTransID   string `json:"merchant_trans_id"`
	MerchantPrepareID int64  `json:"merchant_prepare_id,omitempty"`
	MerchantConfirmID int64  `json:"merchant_confirm_id,omitempty"`
	Error             int    `json:"error"`
	ErrorNote         string `json:"error_note"`
}

// ClickService implements the Click prepare/complete merchant API.
type ClickService struct {
	store    ClickStore
	signer   *ClickSigner
	notifier PaymentNotifier
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewClickService(store ClickStore, signer *ClickSigner, notifier PaymentNotifier, log *zap.SugaredLogger) *ClickService {
	return &ClickService{
		store:    store,
		signer:   signer,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Prepare validates a prepare call and opens a pending transaction.
// Business rejections are reported in the result; the error is reserved for
// store failures.
func (s *ClickService) Prepare(ctx context.Context, req ClickRequest) (*ClickResult, error) {
	result, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	s.recordEvent(ctx, "prepare", req, result)
	return result, nil
}

// Complete validates a complete call and moves the prepared transaction to
// paid, or to canceled when Click reports a failure.
func (s *ClickService) Complete(ctx context.Context, req ClickRequest) (*ClickResult, error) {
	result, err := s.complete(ctx, req)
	if err != nil {
		return nil, err
	}
	s.recordEvent(ctx, "complete", req, result)
	return result, nil
}

func (s *ClickService) prepare(ctx context.Context, req ClickRequest) (*ClickResult, error) {
	order, err := s.store.FindOrder(ctx, req.MerchantTransID)
	if err != nil {
		return s.rejectOnNotFound(ctx, req, err, ClickErrorTransactionNotFound)
	}

	if !s.signer.Verify(prepareSignFields(req), req.SignString) {
		return s.reject(ctx, req, ClickErrorSignFailed), nil
	}

	if action, err := strconv.Atoi(req.Action); err != nil || action != ClickActionPrepare {
		return s.reject(ctx, req, ClickErrorActionNotFound), nil
	}

	if paid, err := s.hasPaidTransaction(ctx, order); err != nil {
		return nil, err
	} else if paid {
		return s.reject(ctx, req, ClickErrorAlreadyPaid), nil
	}

	if _, err := s.store.FindUser(ctx, order.UserID); err != nil {
		return s.rejectOnNotFound(ctx, req, err, ClickErrorUserNotFound)
	}

	product, err := s.store.FindProduct(ctx, order.ProductID)
	if err != nil {
		return s.rejectOnNotFound(ctx, req, err, ClickErrorBadRequest)
	}

	amount, ok := parseAmount(req.Amount)
	if !ok || amount != product.Price {
		return s.reject(ctx, req, ClickErrorInvalidAmount), nil
	}

	existing, err := s.findByClickTransID(ctx, req.ClickTransID)
	if err != nil {
		return nil, err
	}
	if existing != nil && IsCanceled(existing.Status) {
		return s.reject(ctx, req, ClickErrorTransactionCanceled), nil
	}

	currentTime := s.now().UnixMilli()
	txn := &models.ClickTransaction{
		TransactionID:   req.ClickTransID,
		UserID:          order.UserID,
		ProductID:       order.ProductID,
		MerchantTransID: req.MerchantTransID,
		Status:          TransactionStatePending,
		Amount:          amount,
		CreateTime:      currentTime,
		PrepareID:       currentTime,
		Provider:        clickProvider,
	}
	if err := s.store.CreateTransaction(ctx, txn); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx, s.log).Infow("click_prepare_accepted",
		"click_trans_id", req.ClickTransID,
		"merchant_trans_id", req.MerchantTransID,
		"prepare_id", currentTime,
	)

	res := newClickResult(req, ClickErrorSuccess)
	res.MerchantPrepareID = currentTime
	return res, nil
}

func (s *ClickService) complete(ctx context.Context, req ClickRequest) (*ClickResult, error) {
	order, err := s.store.FindOrder(ctx, req.MerchantTransID)
	if err != nil {
		return s.rejectOnNotFound(ctx, req, err, ClickErrorTransactionNotFound)
	}

	if !s.signer.Verify(completeSignFields(req), req.SignString) {
		return s.reject(ctx, req, ClickErrorSignFailed), nil
	}

	if action, err := strconv.Atoi(req.Action); err != nil || action != ClickActionComplete {
		return s.reject(ctx, req, ClickErrorActionNotFound), nil
	}

	if _, err := s.store.FindUser(ctx, order.UserID); err != nil {
		return s.rejectOnNotFound(ctx, req, err, ClickErrorUserNotFound)
	}

	product, err := s.store.FindProduct(ctx, order.ProductID)
	if err != nil {
		return s.rejectOnNotFound(ctx, req, err, ClickErrorBadRequest)
	}

	prepareID, err := strconv.ParseInt(req.MerchantPrepareID, 10, 64)
	if err != nil || prepareID <= 0 {
		return s.reject(ctx, req, ClickErrorTransactionNotFound), nil
	}
	txn, err := s.store.FindTransaction(ctx, repository.TransactionFilter{
		PrepareID:       prepareID,
		MerchantTransID: req.MerchantTransID,
		Provider:        clickProvider,
	})
	if err != nil {
		return s.rejectOnNotFound(ctx, req, err, ClickErrorTransactionNotFound)
	}

	if paid, err := s.hasPaidTransaction(ctx, order); err != nil {
		return nil, err
	} else if paid {
		return s.reject(ctx, req, ClickErrorAlreadyPaid), nil
	}

	amount, ok := parseAmount(req.Amount)
	if !ok || amount != product.Price {
		return s.reject(ctx, req, ClickErrorInvalidAmount), nil
	}

	existing, err := s.findByClickTransID(ctx, req.ClickTransID)
	if err != nil {
		return nil, err
	}
	if existing != nil && IsCanceled(existing.Status) {
		return s.reject(ctx, req, ClickErrorTransactionCanceled), nil
	}

	currentTime := s.now().UnixMilli()

	if clickErr := lo.FromPtr(req.Error); clickErr < 0 {
		if err := s.store.UpdateTransaction(ctx, txn.ID, map[string]any{
			"status":      TransactionStateCanceled,
			"cancel_time": currentTime,
		}); err != nil {
			return nil, err
		}
		logger.FromCtx(ctx, s.log).Infow("click_complete_canceled",
			"click_trans_id", req.ClickTransID,
			"merchant_trans_id", req.MerchantTransID,
			"click_error", clickErr,
			"click_error_note", req.ErrorNote,
		)
		// Click is answered with TransactionNotFound after a cancellation.
		return newClickResult(req, ClickErrorTransactionNotFound), nil
	}

	if err := s.store.UpdateTransaction(ctx, txn.ID, map[string]any{
		"status":       TransactionStatePaid,
		"perform_time": currentTime,
	}); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx, s.log).Infow("click_complete_paid",
		"click_trans_id", req.ClickTransID,
		"merchant_trans_id", req.MerchantTransID,
		"confirm_id", currentTime,
	)
	s.notifyPaid(ctx, req, product)

	res := newClickResult(req, ClickErrorSuccess)
	res.MerchantConfirmID = currentTime
	return res, nil
}

func (s *ClickService) hasPaidTransaction(ctx context.Context, order *models.Order) (bool, error) {
	paid := TransactionStatePaid
	_, err := s.store.FindTransaction(ctx, repository.TransactionFilter{
		UserID:    order.UserID,
		ProductID: order.ProductID,
		Provider:  clickProvider,
		Status:    &paid,
	})
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// findByClickTransID returns nil when Click's transaction id is unknown.
func (s *ClickService) findByClickTransID(ctx context.Context, clickTransID string) (*models.ClickTransaction, error) {
	txn, err := s.store.FindTransaction(ctx, repository.TransactionFilter{
		TransactionID: clickTransID,
		Provider:      clickProvider,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return txn, err
}

func (s *ClickService) rejectOnNotFound(ctx context.Context, req ClickRequest, err error, info ClickErrorInfo) (*ClickResult, error) {
	if errors.Is(err, repository.ErrNotFound) {
		return s.reject(ctx, req, info), nil
	}
	return nil, err
}

func (s *ClickService) reject(ctx context.Context, req ClickRequest, info ClickErrorInfo) *ClickResult {
	logger.FromCtx(ctx, s.log).Infow("click_request_rejected",
		"click_trans_id", req.ClickTransID,
		"merchant_trans_id", req.MerchantTransID,
		"action", req.Action,
		"reason", info.Name,
	)
	return newClickResult(req, info)
}

func (s *ClickService) notifyPaid(ctx context.Context, req ClickRequest, product *models.Product) {
	if s.notifier == nil {
		return
	}
	log := logger.FromCtx(ctx, s.log)
	n := PaymentSuccessNotification{
		Provider:      "Click",
		OrderID:       req.MerchantTransID,
		TransactionID: req.ClickTransID,
		ProductName:   product.Name,
		Amount:        float64(product.Price),
		Currency:      product.Currency,
	}
	go func() {
		if err := s.notifier.NotifyPaymentSuccess(n); err != nil {
			log.Warnw("click_payment_notification_failed", "merchant_trans_id", n.OrderID, "err", err)
		}
	}()
}

func (s *ClickService) recordEvent(ctx context.Context, action string, req ClickRequest, res *ClickResult) {
	fields := prepareSignFields(req)
	if action == "complete" {
		fields = completeSignFields(req)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		payload = []byte("{}")
	}

	event := &models.ClickEvent{
		Action:          action,
		ClickTransID:    req.ClickTransID,
		MerchantTransID: req.MerchantTransID,
		Payload:         datatypes.JSON(payload),
		SignValid:       s.signer.Verify(fields, req.SignString),
		ErrorCode:       res.Error,
		ErrorNote:       res.ErrorNote,
	}
	if err := s.store.RecordEvent(ctx, event); err != nil {
		logger.FromCtx(ctx, s.log).Warnw("click_event_record_failed", "action", action, "click_trans_id", req.ClickTransID, "err", err)
	}
}

func newClickResult(req ClickRequest, info ClickErrorInfo) *ClickResult {
	return &ClickResult{
		ClickTransID:    req.ClickTransID,
		MerchantTransID: req.MerchantTransID,
		Error:           info.Code,
		ErrorNote:       info.Note,
	}
}

func prepareSignFields(req ClickRequest) SignFields {
	return SignFields{
		ClickTransID:    req.ClickTransID,
		ServiceID:       req.ServiceID,
		MerchantTransID: req.MerchantTransID,
		Amount:          req.Amount,
		Action:          req.Action,
		SignTime:        req.SignTime,
	}
}

func completeSignFields(req ClickRequest) SignFields {
	f := prepareSignFields(req)
	f.PrepareID = req.MerchantPrepareID
	return f
}

// parseAmount reads Click's decimal amount string. Only whole amounts are
// accepted, so "5000.00" reads as 5000 while "5000.5" is rejected.
func parseAmount(raw string) (int64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, false
	}
	return int64(v), true
}
