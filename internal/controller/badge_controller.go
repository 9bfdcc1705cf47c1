package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lapados-backend/internal/model"
	"lapados-backend/internal/service"
)

type BadgeController struct {
	badgeSvc service.BadgeService
}

func NewBadgeController(badgeSvc service.BadgeService) *BadgeController {
	return &BadgeController{badgeSvc: badgeSvc}
}

func (ctl *BadgeController) List(c *gin.Context) {
	badges, err := ctl.badgeSvc.List(listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, badges)
}

func (ctl *BadgeController) Filter(c *gin.Context) {
	p, ok := filterParams(c)
	if !ok {
		return
	}
	badges, err := ctl.badgeSvc.List(p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, badges)
}

func (ctl *BadgeController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	badge, err := ctl.badgeSvc.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, badge)
}

func (ctl *BadgeController) Create(c *gin.Context) {
	var badge model.Badge
	if err := c.ShouldBindJSON(&badge); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	created, err := ctl.badgeSvc.Create(&badge)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (ctl *BadgeController) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var badge model.Badge
	if err := c.ShouldBindJSON(&badge); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	updated, err := ctl.badgeSvc.Update(id, &badge)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (ctl *BadgeController) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctl.badgeSvc.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "badge deleted"})
}
