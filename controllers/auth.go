// controllers/auth.go
package controllers

import (
	"errors"
	"net/http"

	"barberledger-backend/logger"
	"barberledger-backend/services"
	"barberledger-backend/utils"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Operators    *services.OperatorService
	Tokens       *utils.TokenIssuer
	Log          *logger.Logger
	SecureCookie bool
}

func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	user, err := ac.Operators.Register(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			utils.RespondWithError(c, http.StatusConflict, "Email already registered")
			return
		}
		respondServiceError(c, ac.Log, "Failed to create user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	user, err := ac.Operators.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondServiceError(c, ac.Log, "Failed to log in", err)
		return
	}

	token, err := ac.Tokens.GenerateToken(user.ID.String())
	if err != nil {
		respondServiceError(c, ac.Log, "Failed to generate token", err)
		return
	}
	c.SetCookie("token", token, int(ac.Tokens.Expiry.Seconds()), "/", "", ac.SecureCookie, true)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	ownerID, ok := operatorID(c)
	if !ok {
		return
	}
	user, err := ac.Operators.Get(c.Request.Context(), ownerID.String())
	if err != nil {
		respondServiceError(c, ac.Log, "Failed to load user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
