package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lapados-backend/internal/service"
	"lapados-backend/utilities"
)

type QuizController struct {
	quizSvc service.QuizService
}

func NewQuizController(quizSvc service.QuizService) *QuizController {
	return &QuizController{quizSvc: quizSvc}
}

// StartAttempt handles POST /moduloz/:id/attempts.
func (ctl *QuizController) StartAttempt(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := ctl.quizSvc.StartAttempt(utilities.CurrentUserEmail(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (ctl *QuizController) GetAttempt(c *gin.Context) {
	view, err := ctl.quizSvc.GetAttempt(utilities.CurrentUserEmail(c), c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (ctl *QuizController) SubmitAnswer(c *gin.Context) {
	var req struct {
		AnswerIndex *int `json:"answer_index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.AnswerIndex == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "answer_index is required"})
		return
	}
	view, err := ctl.quizSvc.SubmitAnswer(utilities.CurrentUserEmail(c), c.Param("session_id"), *req.AnswerIndex)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (ctl *QuizController) Advance(c *gin.Context) {
	view, err := ctl.quizSvc.Advance(utilities.CurrentUserEmail(c), c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
