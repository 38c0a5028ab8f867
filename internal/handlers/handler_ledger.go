package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/playforge/wallet_marketplace_app/internal/apperrors"
	portssvc "github.com/playforge/wallet_marketplace_app/internal/core/ports/services"
	"github.com/playforge/wallet_marketplace_app/internal/dto"
	"github.com/playforge/wallet_marketplace_app/internal/middleware"
)

// depositHandler receives deposit notifications from the payment provider.
type depositHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func registerDepositRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &depositHandler{ledgerService: ledgerService}
	rg.POST("/deposits", h.deposit)
}

// deposit godoc
// @Summary Credit a wallet from a completed payment
// @Description Called by the payment provider after checkout. Replays of the same externalReference return the original entry without crediting again.
// @Tags deposits
// @Accept json
// @Produce json
// @Param deposit body dto.DepositRequest true "Deposit notification"
// @Security ApiKeyAuth
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Missing or invalid API key"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 409 {object} map[string]string "Commit kept losing the version race"
// @Failure 422 {object} map[string]string "Wallet inactive"
// @Router /deposits [post]
func (h *depositHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.ledgerService.Deposit(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		case errors.Is(err, apperrors.ErrWalletInactive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to process deposit", slog.String("error", err.Error()), slog.String("address", req.WalletAddress))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process deposit"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// transferHandler handles wallet-to-wallet and outbound transfers.
type transferHandler struct {
	walletService portssvc.WalletSvcFacade
	ledgerService portssvc.LedgerSvcFacade
	feeService    portssvc.FeeSvcFacade
}

func newTransferHandler(walletService portssvc.WalletSvcFacade, ledgerService portssvc.LedgerSvcFacade, feeService portssvc.FeeSvcFacade) *transferHandler {
	return &transferHandler{
		walletService: walletService,
		ledgerService: ledgerService,
		feeService:    feeService,
	}
}

func registerTransferRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade, ledgerService portssvc.LedgerSvcFacade, feeService portssvc.FeeSvcFacade) {
	h := newTransferHandler(walletService, ledgerService, feeService)

	rg.POST("/transfers", h.transfer)
	rg.GET("/networks", h.listNetworks)
}

// transfer godoc
// @Summary Send funds from the caller's wallet
// @Description Debits the caller by amount plus the network fee; an internal recipient is credited by amount. Commits atomically.
// @Tags transfers
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input, unknown network or self transfer"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Incorrect PIN"
// @Failure 404 {object} map[string]string "Caller has no wallet"
// @Failure 409 {object} map[string]string "Commit kept losing the version race"
// @Failure 422 {object} map[string]string "Insufficient funds or inactive wallet"
// @Failure 504 {object} map[string]string "Fee lookup timed out"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	wallet, err := h.walletService.GetWalletForUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Caller has no wallet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve wallet"})
		return
	}

	entry, err := h.ledgerService.Transfer(c.Request.Context(), wallet.Address, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, apperrors.ErrSelfTransfer),
			errors.Is(err, apperrors.ErrUnknownNetwork):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientFunds),
			errors.Is(err, apperrors.ErrWalletInactive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrExternalTimeout):
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to process transfer", slog.String("error", err.Error()), slog.String("from", wallet.Address))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transfer"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listNetworks godoc
// @Summary List settlement networks and fees
// @Tags transfers
// @Produce json
// @Success 200 {array} domain.Network
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 504 {object} map[string]string "Fee lookup timed out"
// @Security BearerAuth
// @Router /networks [get]
func (h *transferHandler) listNetworks(c *gin.Context) {
	networks, err := h.feeService.ListNetworks(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrExternalTimeout) {
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list networks"})
		return
	}
	c.JSON(http.StatusOK, networks)
}
