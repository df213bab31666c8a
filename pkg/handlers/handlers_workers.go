package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AhiyaSchneider/server-FinalProject/pkg/database"
)

// GetWorkers returns all worker records
func (h *Handler) GetWorkers(c *gin.Context) {
	var workers []database.Worker
	if err := h.DB.Find(&workers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch workers"})
		return
	}
	c.JSON(http.StatusOK, workers)
}

// AddWorker creates a new worker record
func (h *Handler) AddWorker(c *gin.Context) {
	var req struct {
		Name   string   `json:"name"`
		Skills []string `json:"skills"`
		Shift  string   `json:"shift"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" || len(req.Skills) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and skills are required"})
		return
	}

	worker := database.Worker{
		Name:   req.Name,
		Skills: strings.Join(req.Skills, ","),
		Shift:  req.Shift,
	}
	if err := h.DB.Create(&worker).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, worker)
}
