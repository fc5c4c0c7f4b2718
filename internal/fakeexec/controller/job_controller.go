package controller

import (
	"net/http"
	"strings"

	"ojplay/internal/api"
	"ojplay/internal/fakeexec/service"
	"ojplay/internal/submission"
	"ojplay/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

// JobController handles execution HTTP endpoints.
type JobController struct {
	executor *service.Executor
}

// NewJobController creates a new JobController.
func NewJobController(executor *service.Executor) *JobController {
	return &JobController{executor: executor}
}

// ListProblems returns the catalog inside the response envelope.
func (h *JobController) ListProblems(c *gin.Context) {
	response.Success(c, h.executor.Problems())
}

// Execute queues a submission.
func (h *JobController) Execute(c *gin.Context) {
	var req submission.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request parameters")
		return
	}

	jobID, err := h.executor.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, api.ExecuteResponse{JobID: jobID})
}

// Status returns the bare job status, without the envelope.
func (h *JobController) Status(c *gin.Context) {
	jobID := strings.TrimSpace(c.Param("id"))
	if jobID == "" {
		response.BadRequest(c, "Invalid job id")
		return
	}

	status, err := h.executor.Status(c.Request.Context(), jobID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
