package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lapados-backend/internal/model"
	"lapados-backend/internal/service"
	"lapados-backend/utilities"
)

type ModuloController struct {
	moduloSvc service.ModuloService
}

func NewModuloController(moduloSvc service.ModuloService) *ModuloController {
	return &ModuloController{moduloSvc: moduloSvc}
}

func (ctl *ModuloController) List(c *gin.Context) {
	moduloz, err := ctl.moduloSvc.List(listParams(c), utilities.IsAdminRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, moduloz)
}

func (ctl *ModuloController) Filter(c *gin.Context) {
	p, ok := filterParams(c)
	if !ok {
		return
	}
	moduloz, err := ctl.moduloSvc.List(p, utilities.IsAdminRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, moduloz)
}

func (ctl *ModuloController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	modulo, err := ctl.moduloSvc.GetByID(id, utilities.IsAdminRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, modulo)
}

func (ctl *ModuloController) Create(c *gin.Context) {
	var modulo model.Modulo
	if err := c.ShouldBindJSON(&modulo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	created, err := ctl.moduloSvc.Create(&modulo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (ctl *ModuloController) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var modulo model.Modulo
	if err := c.ShouldBindJSON(&modulo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	updated, err := ctl.moduloSvc.Update(id, &modulo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (ctl *ModuloController) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctl.moduloSvc.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "modulo deleted"})
}
