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

type IItemController interface {
	Home(ctx *gin.Context)
	FindAll(ctx *gin.Context)
	FindPage(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type ItemController struct {
	service services.IItemService
}

func NewItemController(service services.IItemService) IItemController {
	return &ItemController{service: service}
}

func (c *ItemController) Home(ctx *gin.Context) {
	respond(ctx, http.StatusOK, constants.MsgWelcome, nil)
}

func (c *ItemController) FindAll(ctx *gin.Context) {
	items, err := c.service.FindAll(ctx.Request.Context())
	if err != nil {
		respondUnexpected(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, "Successfully fetched all items", dto.NewItemSummaries(items))
}

func (c *ItemController) FindPage(ctx *gin.Context) {
	var query dto.PagedItemsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respond(ctx, http.StatusBadRequest, constants.MsgBadInput+": "+err.Error(), nil)
		return
	}

	items, count, err := c.service.FindPage(ctx.Request.Context(), query)
	if err != nil {
		respondUnexpected(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, "Successfully fetched paged items", dto.PagedItemsResponse{
		Items: dto.NewItemSummaries(items),
		Count: count,
	})
}

func (c *ItemController) Create(ctx *gin.Context) {
	var input dto.CreateItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respond(ctx, http.StatusBadRequest, constants.MsgBadInput, nil)
		return
	}

	newItem, err := c.service.Create(ctx.Request.Context(), input)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, fmt.Sprintf("Successfully added new item by name %s", newItem.Name), dto.NewItemResponse(*newItem))
}

func (c *ItemController) Update(ctx *gin.Context) {
	var input dto.UpdateItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respond(ctx, http.StatusBadRequest, constants.MsgBadInput, nil)
		return
	}

	updatedItem, err := c.service.Update(ctx.Request.Context(), input)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, fmt.Sprintf("Successfully edited item by name %s", updatedItem.Name), dto.NewItemResponse(*updatedItem))
}

func (c *ItemController) Delete(ctx *gin.Context) {
	var query dto.ItemIDQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respond(ctx, http.StatusBadRequest, constants.MsgBadInput, nil)
		return
	}

	deletedItem, err := c.service.Delete(ctx.Request.Context(), query.ID)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, fmt.Sprintf("Successfully deleted item by name %s", deletedItem.Name), nil)
}

func (c *ItemController) handleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		respond(ctx, http.StatusNotFound, constants.MsgItemNotFound, nil)
	case errors.Is(err, services.ErrItemExists):
		respond(ctx, http.StatusConflict, constants.MsgItemExists, nil)
	default:
		respondUnexpected(ctx, err)
	}
}
