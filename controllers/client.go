package controllers

import (
	"net/http"

	"barberledger-backend/logger"
	"barberledger-backend/services"

	"github.com/gin-gonic/gin"
)

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name           string  `json:"name" binding:"required"`
	Phone          *string `json:"phone"`
	AcceptsContact *bool   `json:"acceptsContact"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	AcceptsContact *bool   `json:"acceptsContact"`
}

type ClientController struct {
	Clients    *services.ClientStore
	Inactivity *services.InactivityService
	Log        *logger.Logger
}

func (cc *ClientController) CreateClient(c *gin.Context) {
	ownerID, ok := operatorID(c)
	if !ok {
		return
	}

	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	client, err := cc.Clients.Create(c.Request.Context(), ownerID, services.ClientInput{
		Name:           input.Name,
		Phone:          input.Phone,
		AcceptsContact: input.AcceptsContact,
	})
	if err != nil {
		respondServiceError(c, cc.Log, "Failed to create client", err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (cc *ClientController) GetClients(c *gin.Context) {
	ownerID, ok := operatorID(c)
	if !ok {
		return
	}
	clients, err := cc.Clients.List(c.Request.Context(), ownerID, c.Query("search"))
	if err != nil {
		respondServiceError(c, cc.Log, "Failed to retrieve clients", err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (cc *ClientController) GetClient(c *gin.Context) {
	ownerID, ok := operatorID(c)
	if !ok {
		return
	}
	clientID, ok := pathID(c, "client")
	if !ok {
		return
	}
	client, err := cc.Clients.Get(c.Request.Context(), ownerID, clientID)
	if err != nil {
		respondServiceError(c, cc.Log, "Failed to retrieve client", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (cc *ClientController) UpdateClient(c *gin.Context) {
	ownerID, ok := operatorID(c)
	if !ok {
		return
	}
	clientID, ok := pathID(c, "client")
	if !ok {
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	client, err := cc.Clients.Update(c.Request.Context(), ownerID, clientID, services.ClientUpdate{
		Name:           input.Name,
		Phone:          input.Phone,
		AcceptsContact: input.AcceptsContact,
	})
	if err != nil {
		respondServiceError(c, cc.Log, "Failed to update client", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient soft deletes a client; its appointments stay in the ledger.
func (cc *ClientController) DeleteClient(c *gin.Context) {
	ownerID, ok := operatorID(c)
	if !ok {
		return
	}
	clientID, ok := pathID(c, "client")
	if !ok {
		return
	}
	if err := cc.Clients.Delete(c.Request.Context(), ownerID, clientID); err != nil {
		respondServiceError(c, cc.Log, "Failed to delete client", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

func (cc *ClientController) GetInactiveClients(c *gin.Context) {
	ownerID, ok := operatorID(c)
	if !ok {
		return
	}
	clients, err := cc.Inactivity.FindInactive(c.Request.Context(), ownerID)
	if err != nil {
		respondServiceError(c, cc.Log, "Failed to retrieve inactive clients", err)
		return
	}
	c.JSON(http.StatusOK, clients)
}
