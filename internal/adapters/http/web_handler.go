package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ledgerlite/core/internal/application/services"
	"github.com/ledgerlite/core/internal/domain/entities"
	"github.com/ledgerlite/core/internal/infrastructure/logger"
	"github.com/ledgerlite/core/internal/ports"
)

// WebHandler serves the HTML pages: the transaction table, the add form
// and the edit form. Successful mutations redirect back to the list.
type WebHandler struct {
	txService *services.TransactionService
	logger    *logger.Logger
}

// NewWebHandler creates a new web handler
func NewWebHandler(txService *services.TransactionService, logger *logger.Logger) *WebHandler {
	return &WebHandler{
		txService: txService,
		logger:    logger,
	}
}

// ListPage renders the transaction table.
func (h *WebHandler) ListPage(c echo.Context) error {
	transactions, err := h.txService.ListTransactions(c.Request().Context())
	if err != nil {
		h.logger.Error("List page failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve transactions")
	}

	return c.Render(http.StatusOK, "transactions.html", echo.Map{
		"Transactions": transactions,
	})
}

// AddPage renders the empty create form.
func (h *WebHandler) AddPage(c echo.Context) error {
	return c.Render(http.StatusOK, "form.html", echo.Map{"Date": ""})
}

// AddSubmit creates a transaction from the posted form and redirects to
// the list. An amount that is not a number re-renders the form with an
// error; nothing is stored.
func (h *WebHandler) AddSubmit(c echo.Context) error {
	req := ports.CreateTransactionRequest{
		Date:   c.FormValue("date"),
		Amount: c.FormValue("amount"),
	}

	if _, err := h.txService.CreateTransaction(c.Request().Context(), req); err != nil {
		if errors.Is(err, entities.ErrInvalidAmount) {
			return c.Render(http.StatusBadRequest, "form.html", echo.Map{
				"Error": "Amount must be a number",
				"Date":  req.Date,
			})
		}
		h.logger.Error("Create transaction failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create transaction")
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// EditPage renders the edit form for an existing transaction. An unknown
// id yields a not-found response.
func (h *WebHandler) EditPage(c echo.Context) error {
	id, err := parseTransactionID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid transaction ID")
	}

	tx, err := h.txService.GetTransaction(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrTransactionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Transaction not found")
		}
		h.logger.Error("Edit page failed", "error", err, "transaction_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve transaction")
	}

	return c.Render(http.StatusOK, "edit.html", echo.Map{
		"Transaction": tx,
	})
}

// EditSubmit updates a transaction from the posted form and redirects to
// the list.
func (h *WebHandler) EditSubmit(c echo.Context) error {
	id, err := parseTransactionID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid transaction ID")
	}

	req := ports.UpdateTransactionRequest{
		Date:   c.FormValue("date"),
		Amount: c.FormValue("amount"),
	}

	if _, err := h.txService.UpdateTransaction(c.Request().Context(), id, req); err != nil {
		switch {
		case errors.Is(err, entities.ErrTransactionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Transaction not found")
		case errors.Is(err, entities.ErrInvalidAmount):
			tx := &entities.Transaction{ID: id, Date: req.Date}
			return c.Render(http.StatusBadRequest, "edit.html", echo.Map{
				"Error":       "Amount must be a number",
				"Transaction": tx,
			})
		}
		h.logger.Error("Update transaction failed", "error", err, "transaction_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update transaction")
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// DeleteSubmit deletes a transaction and redirects to the list. Unknown
// ids redirect as well; the delete is a no-op.
func (h *WebHandler) DeleteSubmit(c echo.Context) error {
	id, err := parseTransactionID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid transaction ID")
	}

	if err := h.txService.DeleteTransaction(c.Request().Context(), id); err != nil {
		h.logger.Error("Delete transaction failed", "error", err, "transaction_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete transaction")
	}

	return c.Redirect(http.StatusFound, "/")
}
