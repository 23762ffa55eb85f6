package handlers

import (
	"net/http"

	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type projectHandler struct {
	service portssvc.ProjectSvcFacade
}

func registerProjectRoutes(rg *gin.RouterGroup, service portssvc.ProjectSvcFacade) {
	h := &projectHandler{service: service}
	projects := rg.Group("/projects")
	{
		projects.POST("", h.create)
		projects.GET("", h.list)
		projects.GET("/:id", h.get)
		projects.PUT("/:id", h.update)
		projects.DELETE("/:id", h.delete)
	}
}

// create godoc
// @Summary Create a project
// @Description Creates a project attached to a client of the organization.
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project to create"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects [post]
func (h *projectHandler) create(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	project, err := h.service.CreateProject(c.Request.Context(), requester, req)
	if err != nil {
		respondError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// list godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Success 200 {array} dto.ProjectResponse
// @Security BearerAuth
// @Router /projects [get]
func (h *projectHandler) list(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	projects, err := h.service.ListProjects(c.Request.Context(), requester)
	if err != nil {
		respondError(c, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProjectResponse(projects))
}

// get godoc
// @Summary Get a project by ID
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *projectHandler) get(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	project, err := h.service.GetProjectByID(c.Request.Context(), requester, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// update godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *projectHandler) update(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	project, err := h.service.UpdateProject(c.Request.Context(), requester, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// delete godoc
// @Summary Delete a project
// @Description Soft deletes a project. Admin only.
// @Tags projects
// @Param id path string true "Project ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *projectHandler) delete(c *gin.Context) {
	requester, ok := requireRequester(c)
	if !ok {
		return
	}
	if err := h.service.DeleteProject(c.Request.Context(), requester, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete project")
		return
	}
	c.Status(http.StatusNoContent)
}
