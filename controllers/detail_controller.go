package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"gin-shopcart/constants"
	"gin-shopcart/dto"
	"gin-shopcart/services"

	"github.com/gin-gonic/gin"
)

type IDetailController interface {
	FindByItem(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type DetailController struct {
	service services.IDetailService
}

func NewDetailController(service services.IDetailService) IDetailController {
	return &DetailController{service: service}
}

func (c *DetailController) FindByItem(ctx *gin.Context) {
	var query dto.ItemIDQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respond(ctx, http.StatusBadRequest, constants.MsgBadInput, nil)
		return
	}

	details, err := c.service.FindByItem(ctx.Request.Context(), query.ID)
	if err != nil {
		handleDetailError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, "Successfully fetched item details", dto.NewDetailResponses(details))
}

func (c *DetailController) Create(ctx *gin.Context) {
	var input dto.CreateDetailInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respond(ctx, http.StatusBadRequest, constants.MsgBadInput, nil)
		return
	}

	details, err := c.service.Create(ctx.Request.Context(), input)
	if err != nil {
		handleDetailError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, fmt.Sprintf("Successfully added new item detail by name %s", input.Name), dto.NewDetailResponses(details))
}

func (c *DetailController) Update(ctx *gin.Context) {
	var input dto.UpdateDetailInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respond(ctx, http.StatusBadRequest, constants.MsgBadInput, nil)
		return
	}

	details, err := c.service.Update(ctx.Request.Context(), input)
	if err != nil {
		handleDetailError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, fmt.Sprintf("Successfully edited item detail by name %s", input.Name), dto.NewDetailResponses(details))
}

func (c *DetailController) Delete(ctx *gin.Context) {
	var query dto.DetailQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respond(ctx, http.StatusBadRequest, constants.MsgBadInput, nil)
		return
	}

	item, err := c.service.Delete(ctx.Request.Context(), query.ItemID, query.DetailID)
	if err != nil {
		handleDetailError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, "Successfully deleted item detail", dto.NewItemResponse(*item))
}

func handleDetailError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		respond(ctx, http.StatusNotFound, constants.MsgItemNotFound, nil)
	case errors.Is(err, services.ErrDetailNotFound):
		respond(ctx, http.StatusNotFound, constants.MsgDetailNotFound, nil)
	default:
		respondUnexpected(ctx, err)
	}
}
