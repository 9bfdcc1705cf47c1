package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lapados-backend/internal/model"
	"lapados-backend/internal/service"
	"lapados-backend/utilities"
)

type BlogController struct {
	blogSvc service.BlogService
}

func NewBlogController(blogSvc service.BlogService) *BlogController {
	return &BlogController{blogSvc: blogSvc}
}

func (ctl *BlogController) List(c *gin.Context) {
	blogs, err := ctl.blogSvc.List(listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

func (ctl *BlogController) Filter(c *gin.Context) {
	p, ok := filterParams(c)
	if !ok {
		return
	}
	blogs, err := ctl.blogSvc.List(p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

func (ctl *BlogController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	blog, err := ctl.blogSvc.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (ctl *BlogController) Create(c *gin.Context) {
	var blog model.Blog
	if err := c.ShouldBindJSON(&blog); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	created, err := ctl.blogSvc.Create(actorFrom(c), &blog)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (ctl *BlogController) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var changes model.Blog
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	blog, err := ctl.blogSvc.Update(actorFrom(c), id, &changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (ctl *BlogController) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctl.blogSvc.Delete(actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "blog deleted"})
}

func (ctl *BlogController) ToggleLike(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	blog, err := ctl.blogSvc.ToggleLike(utilities.CurrentUserEmail(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}
