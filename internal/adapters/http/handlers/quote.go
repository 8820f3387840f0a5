package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-store/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-store/internal/app"
	"github.com/jsamuelsen/quote-store/internal/domain"
	"github.com/jsamuelsen/quote-store/internal/platform/logging"
)

// QuoteHandler serves the quote collection.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// ListQuotes handles GET /
// Returns every quote in current order.
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.service.ListQuotes(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromDomainList(quotes))
}

// RandomQuote handles GET /quote/random
func (h *QuoteHandler) RandomQuote(c *gin.Context) {
	quote, err := h.service.RandomQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromDomain(quote))
}

// GetQuote handles GET /quote/:id
// The id is the quote's current zero-based position.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.service.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromDomain(quote))
}

// CreateQuote handles POST /quote
// Both "author" and "text" keys must be present; responds with JSON true.
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		logging.FromContext(c.Request.Context()).DebugContext(c.Request.Context(), "rejected quote body",
			slog.Any("error", err),
		)
		dto.HandleError(c, domain.NewValidationError(missingField(err), "key is required"))

		return
	}

	if _, err := h.service.CreateQuote(c.Request.Context(), req.ToDomain()); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, true)
}

// DeleteQuote handles DELETE /quote/:id
// Later quotes shift down one position; responds with JSON true.
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	if err := h.service.DeleteQuote(c.Request.Context(), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, true)
}

// RegisterQuoteRoutes registers the quote routes on r.
// /quote/random is a static segment and takes precedence over /quote/:id.
func (h *QuoteHandler) RegisterQuoteRoutes(r gin.IRoutes) {
	r.GET("/", h.ListQuotes)
	r.GET("/quote/random", h.RandomQuote)
	r.GET("/quote/:id", h.GetQuote)
	r.POST("/quote", h.CreateQuote)
	r.DELETE("/quote/:id", h.DeleteQuote)
}

func missingField(err error) string {
	if fields := dto.MissingFields(err); len(fields) > 0 {
		return strings.Join(fields, ",")
	}

	return "body"
}
