package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/example/clickpay/internal/metrics"
	"github.com/example/clickpay/internal/models"
	"github.com/example/clickpay/internal/repository"
	"github.com/example/clickpay/internal/services"
	"github.com/example/clickpay/internal/utils"
)

// TransactionLister pages through stored Click transactions.
type TransactionLister interface {
	ListTransactions(ctx context.Context, filter repository.TransactionFilter, limit, offset int) ([]models.ClickTransaction, int64, error)
}

// ClickHandler manages Click-related endpoints.
type ClickHandler struct {
	click    *services.ClickService
	lister   TransactionLister
	validate *validator.Validate
	metrics  *metrics.Metrics
}

func NewClickHandler(click *services.ClickService, lister TransactionLister, m *metrics.Metrics) *ClickHandler {
	return &ClickHandler{
		click:    click,
		lister:   lister,
		validate: validator.New(),
		metrics:  m,
	}
}

// Prepare handles Click's prepare callback.
func (h *ClickHandler) Prepare(c *fiber.Ctx) error {
	return h.handle(c, "prepare", h.click.Prepare)
}

// Complete handles Click's complete callback.
func (h *ClickHandler) Complete(c *fiber.Ctx) error {
	return h.handle(c, "complete", h.click.Complete)
}

func (h *ClickHandler) handle(c *fiber.Ctx, action string, fn func(context.Context, services.ClickRequest) (*services.ClickResult, error)) error {
	start := time.Now()

	var req services.ClickRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request: "+err.Error())
	}
	if action == "complete" {
		if strings.TrimSpace(req.MerchantPrepareID) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "merchant_prepare_id is required")
		}
		if req.Error == nil {
			return fiber.NewError(fiber.StatusBadRequest, "error is required")
		}
	}

	result, err := fn(c.UserContext(), req)
	if err != nil {
		return fmt.Errorf("click %s: %w", action, err)
	}

	h.metrics.ObserveWebhook(action, result.Error, time.Since(start))
	return c.JSON(result)
}

type transactionView struct {
	models.ClickTransaction
	State string `json:"state"`
}

// ListTransactions returns Click transaction history, optionally filtered.
func (h *ClickHandler) ListTransactions(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	filter := repository.TransactionFilter{Provider: "click"}

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		code, err := strconv.Atoi(status)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid status")
		}
		filter.Status = &code
	}
	if userID := strings.TrimSpace(c.Query("user_id")); userID != "" {
		parsed, err := uuid.Parse(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid user_id")
		}
		filter.UserID = parsed
	}
	if orderID := strings.TrimSpace(c.Query("merchant_trans_id")); orderID != "" {
		filter.MerchantTransID = orderID
	}

	txns, total, err := h.lister.ListTransactions(c.UserContext(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": lo.Map(txns, func(t models.ClickTransaction, _ int) transactionView {
			return transactionView{ClickTransaction: t, State: stateName(t.Status)}
		}),
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

func stateName(status int) string {
	switch status {
	case services.TransactionStatePending:
		return "pending"
	case services.TransactionStatePaid:
		return "paid"
	case services.TransactionStateCanceled, services.TransactionStatePaidCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}
