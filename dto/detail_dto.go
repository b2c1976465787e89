package dto

import "gin-shopcart/models"

type CreateDetailInput struct {
	ItemID string `json:"id" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Value  string `json:"value"`
}

type UpdateDetailInput struct {
	ItemID   string `json:"itemId" binding:"required"`
	DetailID string `json:"detailId" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Value    string `json:"value"`
}

type DetailQuery struct {
	ItemID   string `form:"itemId" binding:"required"`
	DetailID string `form:"detailId" binding:"required"`
}

type DetailResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

func NewDetailResponses(details []models.Detail) []DetailResponse {
	responses := make([]DetailResponse, 0, len(details))
	for _, d := range details {
		responses = append(responses, DetailResponse{ID: d.ID, Name: d.Name, Value: d.Value})
	}
	return responses
}
