package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/ytagent/internal/models"
	"github.com/denisAlshanov/ytagent/internal/services/youtube"
	"github.com/denisAlshanov/ytagent/internal/utils"
)

// Router is the core operation the agent endpoint delegates to.
type Router interface {
	Route(ctx context.Context, req models.Request) (models.Result, error)
}

type AgentHandler struct {
	router Router
}

// AliveResponse is returned when no conversion was requested.
type AliveResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

func NewAgentHandler(router Router) *AgentHandler {
	return &AgentHandler{
		router: router,
	}
}

// Convert godoc
// @Summary Resolve a direct download link
// @Description Routes the request to the next donor and returns its download URL. Without id and format it answers with a liveness payload.
// @Tags agent
// @Produce json
// @Param id query string false "YouTube video id or URL"
// @Param format query string false "Requested format" Enums(mp3, 720)
// @Success 200 {object} models.Result
// @Success 200 {object} AliveResponse
// @Failure 400 {object} models.Result
// @Failure 403 {object} models.Result
// @Failure 500 {object} models.Result
// @Security AgentKeyAuth
// @Router / [get]
func (h *AgentHandler) Convert(c *gin.Context) {
	rawID := c.Query("id")
	format := c.Query("format")

	if rawID == "" || format == "" {
		c.JSON(http.StatusOK, AliveResponse{
			Status:    "alive",
			Timestamp: time.Now().UnixMilli(),
		})
		return
	}

	// Donors run to completion even if the caller goes away.
	ctx := context.WithoutCancel(c.Request.Context())

	videoID, err := youtube.ParseVideoID(rawID)
	if err != nil {
		appErr := utils.NewInvalidVideoIDError(rawID, err)
		utils.LogWarn(ctx, "Invalid video id", utils.Fields{"id": rawID, "error": err.Error()})
		c.JSON(appErr.StatusCode, models.Failure(appErr.Message, appErr.Details))
		return
	}

	result, err := h.router.Route(ctx, models.NewRequest(videoID, format))
	if err != nil {
		status := http.StatusInternalServerError
		var appErr *utils.AppError
		if errors.As(err, &appErr) {
			status = appErr.StatusCode
		}
		c.JSON(status, result)
		return
	}

	c.JSON(http.StatusOK, result)
}
