package dto

import (
	"time"

	"gin-shopcart/models"
)

type CreateItemInput struct {
	Name  string `json:"name" binding:"required"`
	Type  string `json:"type"`
	Price string `json:"price" binding:"required"`
}

type UpdateItemInput struct {
	ID    string `json:"id" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Type  string `json:"type"`
	Price string `json:"price" binding:"required"`
}

type ItemIDQuery struct {
	ID string `form:"id" binding:"required"`
}

// PagedItemsQuery は /home/items-paged のクエリ。ページは0始まり
type PagedItemsQuery struct {
	Page          int    `form:"page" binding:"min=0"`
	Size          int    `form:"size" binding:"omitempty,min=1,max=100"`
	SortColumn    string `form:"sortColumn" binding:"omitempty,oneof=name type price createdAt"`
	SortDirection int    `form:"sortDirection" binding:"omitempty,oneof=1 -1"`
	Filter        string `form:"filter"`
}

// ItemSummary is an item without its details, as used by listings and carts.
type ItemSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

type ItemResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Type      string           `json:"type"`
	Price     string           `json:"price"`
	CreatedAt time.Time        `json:"createdAt"`
	Details   []DetailResponse `json:"details"`
}

type PagedItemsResponse struct {
	Items []ItemSummary `json:"items"`
	Count int64         `json:"count"`
}

func NewItemSummary(item models.Item) ItemSummary {
	return ItemSummary{
		ID:        item.ID,
		Name:      item.Name,
		Type:      item.Type,
		Price:     item.Price,
		CreatedAt: item.CreatedAt,
	}
}

func NewItemSummaries(items []models.Item) []ItemSummary {
	summaries := make([]ItemSummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, NewItemSummary(item))
	}
	return summaries
}

func NewItemResponse(item models.Item) ItemResponse {
	return ItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Type:      item.Type,
		Price:     item.Price,
		CreatedAt: item.CreatedAt,
		Details:   NewDetailResponses(item.Details),
	}
}
