package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dsmirnov87/taskvault/internal/common"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, pair, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{
				"error": fmt.Sprintf("User with username - %s or email %s is already present", req.Username, req.Email),
			})
			return
		}
		s.logger.Error(c.Request.Context(), "register failed", "username", req.Username, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User creation failed"})
		return
	}

	s.logger.Info(c.Request.Context(), "user registered", "username", user.Username)
	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("User %s was created", user.Username),
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Username %s doesn't exist", req.Username)})
		case errors.Is(err, common.ErrorUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Password is not correct"})
		default:
			s.logger.Error(c.Request.Context(), "login failed", "username", req.Username, "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	s.logger.Info(c.Request.Context(), "user logged in", "username", req.Username)
	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("User %s is logged in.", req.Username),
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	username := c.GetString(ctxUsernameKey)

	if err := s.users.UpdateEmail(c.Request.Context(), username, req.Email); err != nil {
		s.logger.Error(c.Request.Context(), "update user failed", "username", username, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to update user %s data", username)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User %s data successfully updated", username)})
}

func (s *Server) handleLogoutAccess(c *gin.Context) {
	jti := c.GetString(ctxJTIKey)
	if err := s.users.Logout(c.Request.Context(), jti); err != nil {
		s.logger.Error(c.Request.Context(), "revoke failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully revoked access token"})
}

func (s *Server) handleLogoutRefresh(c *gin.Context) {
	jti := c.GetString(ctxJTIKey)
	if err := s.users.Logout(c.Request.Context(), jti); err != nil {
		s.logger.Error(c.Request.Context(), "revoke failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully revoked refresh token"})
}

func (s *Server) handleRefresh(c *gin.Context) {
	username := c.GetString(ctxUsernameKey)
	access, err := s.users.Refresh(c.Request.Context(), username)
	if err != nil {
		s.logger.Error(c.Request.Context(), "refresh failed", "username", username, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": access})
}
