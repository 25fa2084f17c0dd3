package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/newshub-app/newshub/model"
)

type updateNewsRequest struct {
	NewsBoardID *string `json:"news_board_id"`
	FileName    string  `json:"file_name" binding:"required"`
	ImageUrl    string  `json:"image_url" binding:"required"`
}

func (h *handler) listNews(c *gin.Context) {
	view, err := h.assets.ListForBoard(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// createNews accepts a multipart upload, stores the blob and records the
// row, then redirects to the owning board's news listing.
func (h *handler) createNews(c *gin.Context) {
	boardID := c.Param("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file upload"})
		return
	}
	defer file.Close()

	if _, err := h.assets.CreateNewsItem(c.Request.Context(), file, boardID); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/boards/"+boardID+"/news")
}

func (h *handler) getNews(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "news id must be an integer"})
		return
	}
	news, err := h.assets.GetNews(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, news)
}

func (h *handler) updateNews(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "news id must be an integer"})
		return
	}
	var req updateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	news := &model.News{
		Id:          id,
		NewsBoardID: req.NewsBoardID,
		FileName:    req.FileName,
		ImageUrl:    req.ImageUrl,
	}
	if err := h.assets.UpdateNews(c.Request.Context(), news); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, news)
}

// deleteNews purges the blob then the row, redirecting to the formerly
// owning board's listing when there is one.
func (h *handler) deleteNews(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "news id must be an integer"})
		return
	}
	boardID, err := h.assets.DeleteNewsItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if boardID != nil {
		c.Redirect(http.StatusSeeOther, "/boards/"+*boardID+"/news")
		return
	}
	c.Status(http.StatusNoContent)
}
