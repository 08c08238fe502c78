package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinda/backend/internal/domain"
	"github.com/cinda/backend/internal/infrastructure/affiliate"
	"github.com/cinda/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	chatService    *usecase.ChatService
	contextService *usecase.ContextService
	catalog        domain.ShoeCatalog
}

// NewHandler creates a new HTTP handler
func NewHandler(chatService *usecase.ChatService, contextService *usecase.ContextService, catalog domain.ShoeCatalog) *Handler {
	return &Handler{
		chatService:    chatService,
		contextService: contextService,
		catalog:        catalog,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cinda-backend",
		"version": "1.0.0",
	})
}

// Chat handles one conversation turn
func (h *Handler) Chat(c *gin.Context) {
	if h.chatService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Chat service not configured",
		})
		return
	}

	var request domain.ChatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	response, err := h.chatService.Chat(c.Request.Context(), &request)
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Context returns the conversation context the server would derive from the
// given turn, without calling the model. Useful for client-side display and
// debugging of the extraction pipeline.
func (h *Handler) Context(c *gin.Context) {
	var request domain.ChatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	conversation := h.contextService.BuildContext(request.ChatHistory, request.Message)
	followUp, _ := h.contextService.MissingContext(conversation)

	c.JSON(http.StatusOK, gin.H{
		"context":  conversation,
		"followUp": followUp,
	})
}

// ListShoes returns the full catalog with outbound retailer links
func (h *Handler) ListShoes(c *gin.Context) {
	shoes := h.catalog.All()

	listings := make([]domain.ShoeListing, len(shoes))
	for i, shoe := range shoes {
		listings[i] = domain.ShoeListing{
			Shoe:  shoe,
			Links: affiliate.LinksForShoe(shoe.Brand + " " + shoe.Model),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"shoes": listings,
		"count": len(listings),
	})
}

// respondWithError maps domain errors to HTTP status codes
func (h *Handler) respondWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request",
		})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Too many requests, please slow down",
		})
	case errors.Is(err, domain.ErrOpenAIFailure):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "OpenAI API temporarily unavailable",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
