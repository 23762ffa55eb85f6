package handlers

import (
	"net/http"

	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type clientHandler struct {
	service portssvc.ClientSvcFacade
}

func registerClientRoutes(rg *gin.RouterGroup, service portssvc.ClientSvcFacade) {
	h := &clientHandler{service: service}
	clients := rg.Group("/clients")
	{
		clients.POST("", h.create)
		clients.GET("", h.list)
		clients.GET("/:id", h.get)
		clients.PUT("/:id", h.update)
		clients.DELETE("/:id", h.delete)
	}
}

// create godoc
// @Summary Create a client
// @Tags clients
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client to create"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) create(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	client, err := h.service.CreateClient(c.Request.Context(), requester, req)
	if err != nil {
		respondError(c, err, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// list godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Success 200 {array} dto.ClientResponse
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) list(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	clients, err := h.service.ListClients(c.Request.Context(), requester)
	if err != nil {
		respondError(c, err, "Failed to list clients")
		return
	}
	c.JSON(http.StatusOK, dto.ToListClientResponse(clients))
}

// get godoc
// @Summary Get a client by ID
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *clientHandler) get(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	client, err := h.service.GetClientByID(c.Request.Context(), requester, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// update godoc
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param client body dto.UpdateClientRequest true "Fields to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *clientHandler) update(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	client, err := h.service.UpdateClient(c.Request.Context(), requester, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// delete godoc
// @Summary Delete a client
// @Description Soft deletes a client. Admin only.
// @Tags clients
// @Param id path string true "Client ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *clientHandler) delete(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	if err := h.service.DeleteClient(c.Request.Context(), requester, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete client")
		return
	}
	c.Status(http.StatusNoContent)
}
