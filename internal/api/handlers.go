package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aleister1102/assetscout/internal/common"
	"github.com/aleister1102/assetscout/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Assembler produces the asset list of a domain; *crawler.Crawler implements it
type Assembler interface {
	Assemble(ctx context.Context, domain string) ([]models.Asset, error)
}

// AssetsResponse is the body of a successful GET /api/v1/assets
type AssetsResponse struct {
	Domain string         `json:"domain"`
	Count  int            `json:"count"`
	Assets []models.Asset `json:"assets"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AssetsHandler serves crawl results
type AssetsHandler struct {
	assembler Assembler
	logger    zerolog.Logger
}

// NewAssetsHandler creates an AssetsHandler
func NewAssetsHandler(assembler Assembler, logger zerolog.Logger) *AssetsHandler {
	return &AssetsHandler{
		assembler: assembler,
		logger:    logger.With().Str("component", "AssetsHandler").Logger(),
	}
}

// GetAssets handles GET /api/v1/assets?domain=<d>[&type=a,b]
func (h *AssetsHandler) GetAssets(c *gin.Context) {
	domain := strings.TrimSpace(c.Query("domain"))
	if domain == "" {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid_domain", Message: "query parameter 'domain' is required"})
		return
	}

	types, err := ParseTypeFilter(c.Query("type"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid_type", Message: err.Error()})
		return
	}

	assets, err := h.assembler.Assemble(c.Request.Context(), domain)
	if err != nil {
		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			h.logger.Warn().Err(err).Str("domain", domain).Int("status", status).Msg("Crawl request failed")
		}
		c.JSON(status, body)
		return
	}

	assets = models.FilterByType(assets, types...)
	if assets == nil {
		assets = []models.Asset{}
	}
	c.JSON(http.StatusOK, AssetsResponse{
		Domain: domain,
		Count:  len(assets),
		Assets: assets,
	})
}

// Healthz reports liveness
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ParseTypeFilter parses a comma-separated list of asset types. Empty input means no filter.
func ParseTypeFilter(raw string) ([]models.AssetType, error) {
	var types []models.AssetType
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		t, ok := models.ParseAssetType(part)
		if !ok {
			return nil, common.NewValidationError("type", part, "unknown asset type")
		}
		types = append(types, t)
	}
	return types, nil
}

func errorResponse(err error) (int, ErrorResponse) {
	switch {
	case models.IsUnfetchable(err):
		return http.StatusBadGateway, ErrorResponse{Error: "unfetchable", Message: err.Error()}
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid_domain", Message: err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrorResponse{Error: "timeout"}
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, ErrorResponse{Error: "canceled"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal error"}
	}
}
