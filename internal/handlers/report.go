package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/dto"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/services"
)

// ReportHandler serves the task reports
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// CompletedLastWeek lists tasks completed during the trailing seven days
func (h *ReportHandler) CompletedLastWeek(c *gin.Context) {
	tasks, err := h.reportService.CompletedLastWeek()
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tasks completed in the last week.",
		"data": dto.CompletedTasksDTO{
			Count: len(tasks),
			Tasks: dto.ToTaskDTOs(tasks),
		},
	})
}

// PendingWork totals the remaining days of work across open tasks
func (h *ReportHandler) PendingWork(c *gin.Context) {
	total, err := h.reportService.PendingWorkTotal()
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Total pending work in days.",
		"data":    dto.PendingWorkDTO{TotalPendingDays: total},
	})
}

// ClosedTasks counts completed tasks grouped by the groupBy query parameter
func (h *ReportHandler) ClosedTasks(c *gin.Context) {
	groupBy := c.Query("groupBy")

	groups, err := h.reportService.ClosedByGroup(groupBy)
	if err != nil {
		if errors.Is(err, services.ErrInvalidGroupBy) {
			apierrors.InvalidParameter(c, err.Error())
			return
		}
		respondInternalError(c, err)
		return
	}

	data := make([]dto.ClosedGroupDTO, len(groups))
	for i, group := range groups {
		data[i] = dto.ClosedGroupDTO{
			ID:               group.GroupID,
			TotalClosedTasks: group.Total,
		}
		switch {
		case group.Team != nil:
			data[i].Details = dto.ToTeamDTO(*group.Team)
		case group.Project != nil:
			data[i].Details = dto.ToProjectDTO(*group.Project)
		case group.Owner != nil:
			data[i].Details = dto.ToUserDTO(*group.Owner)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Closed tasks grouped by " + groupBy + ".",
		"data":    data,
	})
}
