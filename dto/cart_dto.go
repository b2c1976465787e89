package dto

type CartInput struct {
	ItemID string `json:"itemId" binding:"required"`
}

type CartItemQuery struct {
	ItemID string `form:"itemId" binding:"required"`
}

// CartSummaryResponse.Total is a decimal string; prices that cannot be parsed are skipped.
type CartSummaryResponse struct {
	Count   int    `json:"count"`
	Total   string `json:"total"`
	Skipped int    `json:"skipped"`
}
