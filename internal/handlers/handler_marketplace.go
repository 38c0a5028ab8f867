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

// marketplaceHandler handles listing, browsing and purchase requests.
type marketplaceHandler struct {
	marketplaceService portssvc.MarketplaceSvcFacade
	walletService      portssvc.WalletSvcFacade
}

func newMarketplaceHandler(marketplaceService portssvc.MarketplaceSvcFacade, walletService portssvc.WalletSvcFacade) *marketplaceHandler {
	return &marketplaceHandler{
		marketplaceService: marketplaceService,
		walletService:      walletService,
	}
}

func registerMarketplaceRoutes(rg *gin.RouterGroup, marketplaceService portssvc.MarketplaceSvcFacade, walletService portssvc.WalletSvcFacade) {
	h := newMarketplaceHandler(marketplaceService, walletService)

	marketplace := rg.Group("/marketplace")
	{
		marketplace.GET("/listings", h.browseListings)
		marketplace.POST("/listings", h.listAsset)
		marketplace.DELETE("/listings/:tokenID", h.unlistAsset)
		marketplace.POST("/purchases", h.buyAsset)
		marketplace.GET("/assets/:tokenID", h.getAsset)
		marketplace.GET("/inventory", h.getInventory)
	}
}

// mintHandler receives mint notifications from the asset minting pipeline.
type mintHandler struct {
	marketplaceService portssvc.MarketplaceSvcFacade
}

func registerMintRoutes(rg *gin.RouterGroup, marketplaceService portssvc.MarketplaceSvcFacade) {
	h := &mintHandler{marketplaceService: marketplaceService}
	rg.POST("/assets", h.mint)
}

// mint godoc
// @Summary Record a minted asset
// @Description Called by the minting pipeline when a new asset is created. Repeated notifications for the same token id return the existing asset.
// @Tags assets
// @Accept json
// @Produce json
// @Param asset body dto.MintAssetRequest true "Minted asset"
// @Security ApiKeyAuth
// @Success 201 {object} dto.AssetResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Missing or invalid API key"
// @Failure 404 {object} map[string]string "Owner wallet not found"
// @Router /assets [post]
func (h *mintHandler) mint(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.MintAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	asset, err := h.marketplaceService.Mint(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Owner wallet not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record minted asset", slog.String("error", err.Error()), slog.String("token_id", req.TokenID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record minted asset"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssetResponse(asset))
}

// callerWallet resolves the authenticated caller's wallet address.
func (h *marketplaceHandler) callerWallet(c *gin.Context) (string, string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}

	wallet, err := h.walletService.GetWalletForUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Caller has no wallet"})
			return "", "", false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve wallet"})
		return "", "", false
	}

	return userID, wallet.Address, true
}

// browseListings godoc
// @Summary Browse active listings
// @Tags marketplace
// @Produce json
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Opaque token from the previous page"
// @Success 200 {object} dto.ListListingsResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /marketplace/listings [get]
func (h *marketplaceHandler) browseListings(c *gin.Context) {
	var params dto.ListListingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.marketplaceService.BrowseListings(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to browse listings"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// getAsset godoc
// @Summary Get one asset
// @Tags marketplace
// @Produce json
// @Param tokenID path string true "Asset token id"
// @Success 200 {object} dto.AssetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Asset not found"
// @Security BearerAuth
// @Router /marketplace/assets/{tokenID} [get]
func (h *marketplaceHandler) getAsset(c *gin.Context) {
	asset, err := h.marketplaceService.GetAsset(c.Request.Context(), c.Param("tokenID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		return
	}
	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// getInventory godoc
// @Summary Get the caller's asset inventory
// @Tags marketplace
// @Produce json
// @Success 200 {array} dto.AssetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Caller has no wallet"
// @Security BearerAuth
// @Router /marketplace/inventory [get]
func (h *marketplaceHandler) getInventory(c *gin.Context) {
	_, address, ok := h.callerWallet(c)
	if !ok {
		return
	}

	assets, err := h.marketplaceService.GetInventory(c.Request.Context(), address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve inventory"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetResponses(assets))
}

// listAsset godoc
// @Summary List an asset for sale
// @Description Puts an asset the caller owns up for sale. Ownership does not move until a purchase commits.
// @Tags marketplace
// @Accept json
// @Produce json
// @Param listing body dto.ListAssetRequest true "Listing details"
// @Success 201 {object} dto.AssetResponse
// @Failure 400 {object} map[string]string "Invalid input or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller does not own the asset"
// @Failure 404 {object} map[string]string "Asset or wallet not found"
// @Failure 409 {object} map[string]string "Asset already listed or version race lost"
// @Failure 422 {object} map[string]string "Wallet inactive"
// @Security BearerAuth
// @Router /marketplace/listings [post]
func (h *marketplaceHandler) listAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ListAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, address, ok := h.callerWallet(c)
	if !ok {
		return
	}

	err := h.marketplaceService.List(c.Request.Context(), req.TokenID, address, req.Price, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		case errors.Is(err, apperrors.ErrNotOwner), errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrAlreadyListed), errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrWalletInactive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to list asset", slog.String("error", err.Error()), slog.String("token_id", req.TokenID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list asset"})
		}
		return
	}

	asset, err := h.marketplaceService.GetAsset(c.Request.Context(), req.TokenID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssetResponse(asset))
}

// unlistAsset godoc
// @Summary Withdraw the caller's listing
// @Tags marketplace
// @Produce json
// @Param tokenID path string true "Asset token id"
// @Success 204 "Listing withdrawn"
// @Failure 400 {object} map[string]string "Asset is not listed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller does not own the asset"
// @Failure 404 {object} map[string]string "Asset or wallet not found"
// @Failure 409 {object} map[string]string "Version race lost"
// @Security BearerAuth
// @Router /marketplace/listings/{tokenID} [delete]
func (h *marketplaceHandler) unlistAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tokenID := c.Param("tokenID")

	userID, address, ok := h.callerWallet(c)
	if !ok {
		return
	}

	err := h.marketplaceService.Unlist(c.Request.Context(), tokenID, address, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		case errors.Is(err, apperrors.ErrNotOwner), errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotListed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to unlist asset", slog.String("error", err.Error()), slog.String("token_id", tokenID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlist asset"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// buyAsset godoc
// @Summary Buy a listed asset
// @Description Pays the listed price from the caller's wallet; ownership and funds move in one atomic commit. If the listing changed since it was viewed the purchase fails without charging anyone.
// @Tags marketplace
// @Accept json
// @Produce json
// @Param purchase body dto.BuyAssetRequest true "Purchase details"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} map[string]string "Invalid input, self purchase or asset not listed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Asset or wallet not found"
// @Failure 409 {object} map[string]string "Listing changed or version race lost"
// @Failure 422 {object} map[string]string "Insufficient funds or inactive wallet"
// @Security BearerAuth
// @Router /marketplace/purchases [post]
func (h *marketplaceHandler) buyAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BuyAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, address, ok := h.callerWallet(c)
	if !ok {
		return
	}

	entry, err := h.marketplaceService.Buy(c.Request.Context(), req.TokenID, address, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		case errors.Is(err, apperrors.ErrNotListed), errors.Is(err, apperrors.ErrSelfTransfer):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientFunds), errors.Is(err, apperrors.ErrWalletInactive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrListingChanged), errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to buy asset", slog.String("error", err.Error()), slog.String("token_id", req.TokenID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to buy asset"})
		}
		return
	}

	asset, err := h.marketplaceService.GetAsset(c.Request.Context(), req.TokenID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		return
	}

	c.JSON(http.StatusCreated, dto.PurchaseResponse{
		EntryID: entry.EntryID,
		Asset:   dto.ToAssetResponse(asset),
	})
}
