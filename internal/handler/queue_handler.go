package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"analysis/toolutil/internal/service"
	"analysis/toolutil/internal/store"
	"analysis/toolutil/pkg/response"
)

type QueueHandler struct {
	queueService service.QueueService
}

func NewQueueHandler(queueService service.QueueService) *QueueHandler {
	return &QueueHandler{queueService: queueService}
}

type PushRequest struct {
	Value *string `json:"value" binding:"required"`
}

type PushResponse struct {
	List string `json:"list"`
}

type PopResponse struct {
	Value string `json:"value"`
	Found bool   `json:"found"`
}

type TempDirResponse struct {
	Path string `json:"path"`
}

// Push prepends the request value to the named list.
func (h *QueueHandler) Push(c *gin.Context) {
	var req PushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	list := c.Param("name")
	if err := h.queueService.Push(c.Request.Context(), list, *req.Value); err != nil {
		storeError(c, "push failed", err)
		return
	}

	response.Success(c, PushResponse{List: list})
}

// Pop removes a random member of the named set. An empty set is reported
// with found=false.
func (h *QueueHandler) Pop(c *gin.Context) {
	value, found, err := h.queueService.PopRandom(c.Request.Context(), c.Param("name"))
	if err != nil {
		storeError(c, "pop failed", err)
		return
	}

	response.Success(c, PopResponse{Value: value, Found: found})
}

func (h *QueueHandler) TempDir(c *gin.Context) {
	response.Success(c, TempDirResponse{Path: h.queueService.TempDir()})
}

func storeError(c *gin.Context, message string, err error) {
	_ = c.Error(err)
	if errors.Is(err, store.ErrEmptyKey) {
		response.BadRequest(c, message+": empty key")
		return
	}
	var opErr *store.OperationError
	if errors.As(err, &opErr) {
		response.BadGateway(c, message)
		return
	}
	response.InternalError(c, message)
}
