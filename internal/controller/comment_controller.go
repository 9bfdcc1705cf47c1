package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lapados-backend/internal/model"
	"lapados-backend/internal/service"
)

type CommentController struct {
	commentSvc service.CommentService
}

func NewCommentController(commentSvc service.CommentService) *CommentController {
	return &CommentController{commentSvc: commentSvc}
}

func (ctl *CommentController) List(c *gin.Context) {
	comments, err := ctl.commentSvc.List(listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (ctl *CommentController) Filter(c *gin.Context) {
	p, ok := filterParams(c)
	if !ok {
		return
	}
	comments, err := ctl.commentSvc.List(p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (ctl *CommentController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	comment, err := ctl.commentSvc.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (ctl *CommentController) Create(c *gin.Context) {
	var comment model.Comment
	if err := c.ShouldBindJSON(&comment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	created, err := ctl.commentSvc.Create(actorFrom(c), &comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (ctl *CommentController) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	comment, err := ctl.commentSvc.Update(actorFrom(c), id, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (ctl *CommentController) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctl.commentSvc.Delete(actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
