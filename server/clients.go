package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newshub-app/newshub/model"
)

type clientRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	BirthDate string `json:"birth_date" binding:"required"`
	Version   int    `json:"version"`
}

func (r *clientRequest) toModel() (*model.Client, error) {
	birthDate, err := time.Parse("2006-01-02", r.BirthDate)
	if err != nil {
		return nil, err
	}
	return &model.Client{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		BirthDate: birthDate,
		Version:   r.Version,
	}, nil
}

// listClients serves the directory listing. With ?id= it additionally
// carries that client's subscriptions and the complete board list.
func (h *handler) listClients(c *gin.Context) {
	var clientID *int
	if raw := c.Query("id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "client id must be an integer"})
			return
		}
		clientID = &id
	}

	view, err := h.subscriptions.ListBoardView(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handler) getClient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client id must be an integer"})
		return
	}
	client, err := h.directory.GetClient(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *handler) createClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "birth_date must be YYYY-MM-DD"})
		return
	}
	if err := h.directory.CreateClient(c.Request.Context(), client); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *handler) updateClient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client id must be an integer"})
		return
	}
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "birth_date must be YYYY-MM-DD"})
		return
	}
	client.Id = id
	if err := h.directory.UpdateClient(c.Request.Context(), client); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *handler) deleteClient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client id must be an integer"})
		return
	}
	if err := h.directory.DeleteClient(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) editSubscriptions(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client id must be an integer"})
		return
	}
	view, err := h.subscriptions.EditProjection(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handler) register(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client id must be an integer"})
		return
	}
	view, err := h.subscriptions.Register(c.Request.Context(), id, c.Param("boardID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *handler) deregister(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client id must be an integer"})
		return
	}
	view, err := h.subscriptions.Deregister(c.Request.Context(), id, c.Param("boardID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
