package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ledgerlite/core/internal/application/services"
	"github.com/ledgerlite/core/internal/domain/entities"
	"github.com/ledgerlite/core/internal/infrastructure/logger"
	"github.com/ledgerlite/core/internal/ports"
)

// TransactionHandler handles transaction-related API requests
type TransactionHandler struct {
	txService *services.TransactionService
	logger    *logger.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(txService *services.TransactionService, logger *logger.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		logger:    logger,
	}
}

// ListTransactions handles listing all transactions
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	transactions, err := h.txService.ListTransactions(c.Request().Context())
	if err != nil {
		h.logger.Error("List transactions failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve transactions")
	}

	return c.JSON(http.StatusOK, transactions)
}

// GetTransaction handles getting a transaction by ID
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, err := parseTransactionID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid transaction ID")
	}

	tx, err := h.txService.GetTransaction(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrTransactionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Transaction not found")
		}
		h.logger.Error("Get transaction failed", "error", err, "transaction_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve transaction")
	}

	return c.JSON(http.StatusOK, tx)
}

// CreateTransaction handles transaction creation
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req ports.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tx, err := h.txService.CreateTransaction(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidAmount) {
			return echo.NewHTTPError(http.StatusBadRequest, "Amount is not a valid number")
		}
		h.logger.Error("Create transaction failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create transaction")
	}

	return c.JSON(http.StatusCreated, tx)
}

// UpdateTransaction handles updating a transaction by ID
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id, err := parseTransactionID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid transaction ID")
	}

	var req ports.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tx, err := h.txService.UpdateTransaction(c.Request().Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrTransactionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Transaction not found")
		case errors.Is(err, entities.ErrInvalidAmount):
			return echo.NewHTTPError(http.StatusBadRequest, "Amount is not a valid number")
		}
		h.logger.Error("Update transaction failed", "error", err, "transaction_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update transaction")
	}

	return c.JSON(http.StatusOK, tx)
}

// DeleteTransaction handles deleting a transaction by ID. Deleting an
// unknown id succeeds; the operation is idempotent.
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, err := parseTransactionID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid transaction ID")
	}

	if err := h.txService.DeleteTransaction(c.Request().Context(), id); err != nil {
		h.logger.Error("Delete transaction failed", "error", err, "transaction_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete transaction")
	}

	return c.NoContent(http.StatusNoContent)
}

func parseTransactionID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, entities.ErrInvalidID
	}
	return id, nil
}

// Shared response types

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
