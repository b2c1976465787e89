package services_test

import (
	"testing"
	"time"

	"gin-shopcart/dto"
	"gin-shopcart/infra/infratest"
	"gin-shopcart/models"
	"gin-shopcart/repositories"
	"gin-shopcart/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		price  string
		want   string
		wantOK bool
	}{
		{price: "900$", want: "900", wantOK: true},
		{price: "1,400$", want: "1400", wantOK: true},
		{price: "€ 12.50", want: "12.5", wantOK: true},
		{price: "free", wantOK: false},
		{price: "", wantOK: false},
		{price: "1.2.3", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			got, ok := services.ParsePrice(tt.price)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
			}
		})
	}
}

func TestCartSummary(t *testing.T) {
	db := infratest.NewTestDB(t)
	ctx := t.Context()
	itemRepository := repositories.NewItemRepository(db)
	cartRepository := repositories.NewCartRepository(db)
	service := services.NewCartService(cartRepository, repositories.NewDetailRepository(db))

	user, err := repositories.NewAuthRepository(db).CreateUser(ctx, models.User{Username: "alice", Email: "a@b.c", Password: "hash"})
	require.NoError(t, err)

	var ids []string
	for _, seed := range []struct{ name, price string }{
		{"Dell XPS 15", "1400$"},
		{"No name psu", "30.25$"},
		{"Mystery box", "ask"},
	} {
		item, err := itemRepository.Create(ctx, models.Item{Name: seed.name, Price: seed.price, CreatedAt: time.Now()})
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}

	for _, id := range []string{ids[0], ids[1], ids[1], ids[2]} {
		_, err := service.Add(ctx, user.ID, id)
		require.NoError(t, err)
	}

	summary, err := service.Summary(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.CartSummaryResponse{Count: 4, Total: "1460.50", Skipped: 1}, summary)

	_, err = service.Add(ctx, user.ID, "missing")
	assert.ErrorIs(t, err, services.ErrItemNotFound)

	items, err := service.Remove(ctx, user.ID, ids[1])
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = service.ItemDetails(ctx, "missing")
	assert.ErrorIs(t, err, services.ErrItemNotFound)
}
