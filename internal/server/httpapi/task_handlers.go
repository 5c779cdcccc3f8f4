package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dsmirnov87/taskvault/internal/common"
	"github.com/dsmirnov87/taskvault/internal/server/models"
	"github.com/dsmirnov87/taskvault/internal/server/services"
)

type createTaskRequest struct {
	Heading     string `json:"heading" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type updateTaskRequest struct {
	Heading     *string `json:"heading"`
	Description *string `json:"description"`
	IsCompleted *bool   `json:"is_completed"`
}

// completedString renders the completion flag the way the API has always
// exposed it: the strings "True" and "False".
func completedString(completed bool) string {
	if completed {
		return "True"
	}
	return "False"
}

func taskResponse(task *models.Task) gin.H {
	return gin.H{
		"id":           task.ID,
		"heading":      task.Heading,
		"description":  task.Description,
		"is_completed": completedString(task.IsCompleted),
	}
}

// ownerID resolves the authenticated identity to its user record.
func (s *Server) ownerID(c *gin.Context) (int64, bool) {
	username := c.GetString(ctxUsernameKey)
	user, err := s.users.GetByUsername(c.Request.Context(), username)
	if err != nil {
		s.logger.Error(c.Request.Context(), "resolve user failed", "username", username, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
		return 0, false
	}
	return user.ID, true
}

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return 0, false
	}
	return id, true
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, ok := s.ownerID(c)
	if !ok {
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), userID, req.Heading, req.Description)
	if err != nil {
		s.logger.Error(c.Request.Context(), "create task failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task was created successfully",
		"id":      task.ID,
	})
}

func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := s.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Task %d does not exist", id)})
			return
		}
		s.logger.Error(c.Request.Context(), "get task failed", "id", id, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

func (s *Server) handleListTasks(c *gin.Context) {
	userID, ok := s.ownerID(c)
	if !ok {
		return
	}

	tasks, err := s.tasks.ListForOwner(c.Request.Context(), userID)
	if err != nil {
		s.logger.Error(c.Request.Context(), "list tasks failed", "user_id", userID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks"})
		return
	}

	result := make([]gin.H, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, taskResponse(task))
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := s.tasks.Update(c.Request.Context(), id, services.TaskUpdate{
		Heading:     req.Heading,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Task %d does not exist", id)})
			return
		}
		s.logger.Error(c.Request.Context(), "update task failed", "id", id, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to update task %d", id)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Task updated successfully",
		"id":           task.ID,
		"heading":      task.Heading,
		"description":  task.Description,
		"is_completed": completedString(task.IsCompleted),
	})
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := s.tasks.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Task %d does not exist", id)})
			return
		}
		s.logger.Error(c.Request.Context(), "delete task failed", "id", id, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to delete task %d", id)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task Deleted Successfully"})
}
