package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newshub-app/newshub/model"
)

type createBoardRequest struct {
	// The board id is a caller-supplied natural key, never generated.
	Id    string  `json:"id" binding:"required,min=3,max=50"`
	Title string  `json:"title" binding:"required"`
	Fee   float64 `json:"fee"`
}

type updateBoardRequest struct {
	Title   string  `json:"title" binding:"required"`
	Fee     float64 `json:"fee"`
	Version int     `json:"version"`
}

func (h *handler) listBoards(c *gin.Context) {
	boards, err := h.directory.ListBoards(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

func (h *handler) getBoard(c *gin.Context) {
	board, err := h.directory.GetBoard(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *handler) createBoard(c *gin.Context) {
	var req createBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	board := &model.NewsBoard{Id: req.Id, Title: req.Title, Fee: req.Fee}
	if err := h.directory.CreateBoard(c.Request.Context(), board); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

func (h *handler) updateBoard(c *gin.Context) {
	var req updateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	board := &model.NewsBoard{
		Id:      c.Param("id"),
		Title:   req.Title,
		Fee:     req.Fee,
		Version: req.Version,
	}
	if err := h.directory.UpdateBoard(c.Request.Context(), board); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *handler) deleteBoard(c *gin.Context) {
	if err := h.directory.DeleteBoard(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
