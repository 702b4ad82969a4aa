package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mnogodumalon/kurs40/internal/app/form"
	"github.com/mnogodumalon/kurs40/internal/app/models/dto"
	"github.com/mnogodumalon/kurs40/internal/app/schema"
	"github.com/mnogodumalon/kurs40/internal/app/services"
	"github.com/mnogodumalon/kurs40/internal/middleware"
)

// ResourceController serves the generic entity-CRUD contract. One
// instance handles all resource kinds; routes bind it to a kind key.
type ResourceController struct {
	resourceService services.ResourceService
	catalog         *schema.Catalog
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService services.ResourceService, catalog *schema.Catalog) *ResourceController {
	return &ResourceController{
		resourceService: resourceService,
		catalog:         catalog,
	}
}

// ListRecords returns the full collection of a kind together with
// resolved reference display names and form option lists.
// @Summary List all records of a resource kind
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListView}
// @Router /{kind}/records [get]
func (c *ResourceController) ListRecords(kindKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		view, err := c.resourceService.List(ctx.Request.Context(), kindKey)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(view))
	}
}

// GetRecordForEdit returns one record with reference fields rewritten to
// bare identifiers, the shape the entity form edits.
// @Summary Get a record prepared for editing
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.EditView}
// @Router /{kind}/records/{id}/edit [get]
func (c *ResourceController) GetRecordForEdit(kindKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		view, err := c.resourceService.GetForEdit(ctx.Request.Context(), kindKey, ctx.Param("id"))
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(view))
	}
}

// CreateRecord validates and persists a new record.
// @Summary Create a record
// @Accept json
// @Produce json
// @Param request body dto.SaveRecordRequest true "Flat field values"
// @Success 201 {object} dto.APIResponse{data=livingapps.Record}
// @Router /{kind}/records [post]
func (c *ResourceController) CreateRecord(kindKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		values, ok := c.bindValues(ctx, kindKey)
		if !ok {
			return
		}

		record, err := c.resourceService.Create(ctx.Request.Context(), kindKey, values)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusCreated, dto.NewAPIResponse(record))
	}
}

// UpdateRecord validates and persists the full field set of an existing
// record. The remote store applies it as a partial update; last write
// wins, there is no conflict detection.
// @Summary Update a record
// @Accept json
// @Produce json
// @Param request body dto.SaveRecordRequest true "Flat field values"
// @Success 200 {object} dto.APIResponse{data=livingapps.Record}
// @Router /{kind}/records/{id} [patch]
func (c *ResourceController) UpdateRecord(kindKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		values, ok := c.bindValues(ctx, kindKey)
		if !ok {
			return
		}

		record, err := c.resourceService.Update(ctx.Request.Context(), kindKey, ctx.Param("id"), values)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(record))
	}
}

// DeleteRecord removes a record. Deletion is immediate and irreversible;
// the confirmation step lives in the clients of this API.
// @Summary Delete a record
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /{kind}/records/{id} [delete]
func (c *ResourceController) DeleteRecord(kindKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.resourceService.Delete(ctx.Request.Context(), kindKey, ctx.Param("id")); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewMessageResponse("Record deleted"))
	}
}

// bindValues binds and decodes a save request body into validated form
// values. Responds itself on failure.
func (c *ResourceController) bindValues(ctx *gin.Context, kindKey string) (form.Values, bool) {
	var req dto.SaveRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	kind, ok := c.catalog.Get(kindKey)
	if !ok {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnknownKind, "Unknown resource kind")))
		return nil, false
	}

	values, err := form.DecodeJSON(kind, req.Fields)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return values, true
}
