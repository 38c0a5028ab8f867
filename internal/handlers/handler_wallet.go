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

// walletHandler handles wallet lifecycle, balance and history requests.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
	ledgerService portssvc.LedgerSvcFacade
}

func newWalletHandler(walletService portssvc.WalletSvcFacade, ledgerService portssvc.LedgerSvcFacade) *walletHandler {
	return &walletHandler{
		walletService: walletService,
		ledgerService: ledgerService,
	}
}

func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newWalletHandler(walletService, ledgerService)

	wallets := rg.Group("/wallets")
	{
		wallets.POST("", h.createWallet)
		wallets.GET("/me", h.getMyWallet)
		wallets.DELETE("/me", h.deactivateWallet)
		wallets.POST("/me/verify-pin", h.verifyPIN)
		wallets.GET("/:address/balance", h.getBalance)
		wallets.GET("/:address/entries", h.getHistory)
	}
}

// resolveOwnWallet fetches the wallet at address and verifies it belongs to
// the caller. Balances and history are private to the wallet's owner.
func (h *walletHandler) resolveOwnWallet(c *gin.Context, address string) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}

	wallet, err := h.walletService.GetWalletByAddress(c.Request.Context(), address)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
			return "", false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve wallet"})
		return "", false
	}
	if wallet.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Wallet does not belong to caller"})
		return "", false
	}
	return userID, true
}

// createWallet godoc
// @Summary Open a wallet
// @Description Creates the caller's wallet. Each player has exactly one; the returned recovery secret is shown only once.
// @Tags wallets
// @Accept json
// @Produce json
// @Param wallet body dto.CreateWalletRequest true "Wallet PIN"
// @Success 201 {object} dto.CreateWalletResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Caller already has a wallet"
// @Security BearerAuth
// @Router /wallets [post]
func (h *walletHandler) createWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	wallet, recoverySecret, err := h.walletService.CreateWallet(c.Request.Context(), userID, req.PIN)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create wallet", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wallet"})
		return
	}

	c.JSON(http.StatusCreated, dto.CreateWalletResponse{
		Wallet:         dto.ToWalletResponse(wallet),
		RecoverySecret: recoverySecret,
	})
}

// getMyWallet godoc
// @Summary Get the caller's wallet
// @Tags wallets
// @Produce json
// @Success 200 {object} dto.WalletResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Caller has no wallet"
// @Security BearerAuth
// @Router /wallets/me [get]
func (h *walletHandler) getMyWallet(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallet, err := h.walletService.GetWalletForUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve wallet"})
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// deactivateWallet godoc
// @Summary Close the caller's wallet
// @Description Marks the wallet inactive. History is retained; further mutations are rejected.
// @Tags wallets
// @Produce json
// @Success 204 "Wallet deactivated"
// @Failure 400 {object} map[string]string "Wallet already inactive"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Caller has no wallet"
// @Security BearerAuth
// @Router /wallets/me [delete]
func (h *walletHandler) deactivateWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.walletService.DeactivateWallet(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to deactivate wallet", slog.String("error", err.Error()), slog.String("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate wallet"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// verifyPIN godoc
// @Summary Verify the caller's wallet PIN
// @Description Confirms the PIN before a sensitive client-side flow. Does not mutate anything.
// @Tags wallets
// @Accept json
// @Produce json
// @Param pin body dto.VerifyPINRequest true "Wallet PIN"
// @Success 204 "PIN is correct"
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "PIN mismatch"
// @Failure 404 {object} map[string]string "Caller has no wallet"
// @Security BearerAuth
// @Router /wallets/me/verify-pin [post]
func (h *walletHandler) verifyPIN(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.VerifyPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.walletService.VerifyPIN(c.Request.Context(), userID, req.PIN); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "PIN mismatch"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify PIN"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// getBalance godoc
// @Summary Get a wallet balance
// @Description Returns the current balance of the caller's own wallet
// @Tags wallets
// @Produce json
// @Param address path string true "Wallet address"
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Wallet belongs to another user"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Security BearerAuth
// @Router /wallets/{address}/balance [get]
func (h *walletHandler) getBalance(c *gin.Context) {
	address := c.Param("address")
	if _, ok := h.resolveOwnWallet(c, address); !ok {
		return
	}

	balance, err := h.ledgerService.GetBalance(c.Request.Context(), address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Address: address, Balance: balance})
}

// getHistory godoc
// @Summary Get a wallet's transaction history
// @Description Returns a page of the wallet's ledger entries, newest first
// @Tags wallets
// @Produce json
// @Param address path string true "Wallet address"
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Opaque token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Wallet belongs to another user"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Security BearerAuth
// @Router /wallets/{address}/entries [get]
func (h *walletHandler) getHistory(c *gin.Context) {
	address := c.Param("address")
	if _, ok := h.resolveOwnWallet(c, address); !ok {
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.ledgerService.GetHistory(c.Request.Context(), address, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}

	c.JSON(http.StatusOK, page)
}
