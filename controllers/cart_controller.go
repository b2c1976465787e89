package controllers

import (
	"net/http"

	"gin-shopcart/constants"
	"gin-shopcart/dto"
	"gin-shopcart/services"

	"github.com/gin-gonic/gin"
)

type ICartController interface {
	Items(ctx *gin.Context)
	Add(ctx *gin.Context)
	Remove(ctx *gin.Context)
	ItemDetails(ctx *gin.Context)
	Summary(ctx *gin.Context)
}

type CartController struct {
	service services.ICartService
}

func NewCartController(service services.ICartService) ICartController {
	return &CartController{service: service}
}

func (c *CartController) Items(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	items, err := c.service.Items(ctx.Request.Context(), user.ID)
	if err != nil {
		respondUnexpected(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, "Successfully fetched cart items", dto.NewItemSummaries(items))
}

func (c *CartController) Add(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var input dto.CartInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respond(ctx, http.StatusBadRequest, constants.MsgBadInput, nil)
		return
	}

	items, err := c.service.Add(ctx.Request.Context(), user.ID, input.ItemID)
	if err != nil {
		handleDetailError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, "Successfully added one item to cart", dto.NewItemSummaries(items))
}

func (c *CartController) Remove(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var query dto.CartItemQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respond(ctx, http.StatusBadRequest, constants.MsgBadInput, nil)
		return
	}

	items, err := c.service.Remove(ctx.Request.Context(), user.ID, query.ItemID)
	if err != nil {
		respondUnexpected(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, "Successfully removed one item from cart", dto.NewItemSummaries(items))
}

func (c *CartController) ItemDetails(ctx *gin.Context) {
	var query dto.CartItemQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respond(ctx, http.StatusBadRequest, constants.MsgBadInput, nil)
		return
	}

	details, err := c.service.ItemDetails(ctx.Request.Context(), query.ItemID)
	if err != nil {
		handleDetailError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, "Successfully fetched cart item details", dto.NewDetailResponses(details))
}

func (c *CartController) Summary(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	summary, err := c.service.Summary(ctx.Request.Context(), user.ID)
	if err != nil {
		respondUnexpected(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, "Successfully fetched cart summary", summary)
}
