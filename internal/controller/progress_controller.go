package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lapados-backend/internal/model"
	"lapados-backend/internal/service"
	"lapados-backend/utilities"
)

type ProgressController struct {
	progressSvc service.ProgressService
	reportSvc   service.ReportService
}

func NewProgressController(progressSvc service.ProgressService, reportSvc service.ReportService) *ProgressController {
	return &ProgressController{progressSvc: progressSvc, reportSvc: reportSvc}
}

// Me returns the caller's own progress, creating the record on first
// access.
func (ctl *ProgressController) Me(c *gin.Context) {
	view, err := ctl.progressSvc.GetForUser(utilities.CurrentUserEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (ctl *ProgressController) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := ctl.progressSvc.Leaderboard(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Report streams the caller's progress report as a PDF download.
func (ctl *ProgressController) Report(c *gin.Context) {
	email := utilities.CurrentUserEmail(c)
	pdf, err := ctl.reportSvc.ProgressReport(email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "progress_report.pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Admin surface below.

func (ctl *ProgressController) List(c *gin.Context) {
	rows, err := ctl.progressSvc.List(listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (ctl *ProgressController) Filter(c *gin.Context) {
	p, ok := filterParams(c)
	if !ok {
		return
	}
	rows, err := ctl.progressSvc.List(p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (ctl *ProgressController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	progress, err := ctl.progressSvc.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (ctl *ProgressController) Create(c *gin.Context) {
	var progress model.UserProgress
	if err := c.ShouldBindJSON(&progress); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	created, err := ctl.progressSvc.Create(&progress)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (ctl *ProgressController) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var changes model.UserProgress
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	progress, err := ctl.progressSvc.Update(id, &changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (ctl *ProgressController) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctl.progressSvc.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "progress deleted"})
}
