package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techstore/storefront/internal/interfaces/http/dto"
	"github.com/techstore/storefront/internal/testutil"
)

func (f *fixture) openView(t *testing.T) dto.CartViewResponse {
	t.Helper()
	resp := decode[dto.CartViewResponse](t, f.do(http.MethodPost, "/storefront/cart/views"), http.StatusCreated)
	require.True(t, resp.Success)
	return resp.Data
}

func TestCartHandler_GetCount(t *testing.T) {
	f := newFixture(t)

	count := decodeOK[dto.CartCountResponse](t, f.do(http.MethodGet, "/storefront/cart/count"))
	assert.Equal(t, 0, count.Count)
	assert.False(t, count.Loading)
}

func TestCartHandler_OpenView(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		f := newFixture(t)

		view := f.openView(t)
		assert.NotEmpty(t, view.ViewID)
		assert.Equal(t, "empty", view.State)
		assert.Equal(t, "Your cart is empty", view.Heading)
		assert.Empty(t, view.Items)
	})

	t.Run("populated cart", func(t *testing.T) {
		f := newFixture(t)
		f.fake.Seed("smartwatch123", 2)

		view := f.openView(t)
		assert.Equal(t, "ready", view.State)
		assert.Equal(t, "2 items in your cart", view.Heading)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "$399.98", view.Items[0].DisplayTotalPrice)
		require.NotNil(t, view.Summary)
		assert.Equal(t, "Tax (18%)", view.Summary.TaxLabel)
	})

	t.Run("load failure then retry", func(t *testing.T) {
		f := newFixture(t)
		f.fake.Seed("tshirt101", 1)
		f.fake.FailNext(testutil.RouteCart, http.StatusInternalServerError, 1)

		view := f.openView(t)
		assert.Equal(t, "error", view.State)
		assert.Equal(t, "Failed to load cart", view.Error)

		retried := decodeOK[dto.CartViewResponse](t, f.do(http.MethodPost, "/storefront/cart/views/"+view.ViewID+"/retry"))
		assert.Equal(t, "ready", retried.State)
		assert.Empty(t, retried.Error)
		assert.Len(t, retried.Items, 1)
	})
}

func TestCartHandler_GetView(t *testing.T) {
	f := newFixture(t)
	view := f.openView(t)

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"existing view", "/storefront/cart/views/" + view.ViewID, http.StatusOK, ""},
		{"unknown view", "/storefront/cart/views/6f1c2d7e-2c1a-4c55-9d6b-3a8f0e4b7c21", http.StatusNotFound, dto.ErrCodeViewNotFound},
		{"malformed view id", "/storefront/cart/views/not-a-view", http.StatusBadRequest, dto.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := decode[dto.CartViewResponse](t, f.do(http.MethodGet, tt.path), tt.status)
			if tt.code == "" {
				assert.Equal(t, view.ViewID, resp.Data.ViewID)
				return
			}
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestCartHandler_AdjustQuantity(t *testing.T) {
	f := newFixture(t)
	f.fake.Seed("programmingbook303", 1)
	view := f.openView(t)
	base := "/storefront/cart/views/" + view.ViewID + "/items/programmingbook303/"

	added := decodeOK[dto.CartActionResponse](t, f.do(http.MethodPost, base+"add"))
	assert.Equal(t, "succeeded", added.Reconciliation)
	assert.Equal(t, 2, added.View.TotalItems)
	assert.Equal(t, 2, f.store.MustCount())

	decodeOK[dto.CartActionResponse](t, f.do(http.MethodPost, base+"subtract"))
	emptied := decodeOK[dto.CartActionResponse](t, f.do(http.MethodPost, base+"subtract"))
	assert.Equal(t, "empty", emptied.View.State)
	assert.Equal(t, 0, emptied.View.TotalItems)
	assert.Equal(t, 0, f.store.MustCount())

	count := decodeOK[dto.CartCountResponse](t, f.do(http.MethodGet, "/storefront/cart/count"))
	assert.Equal(t, 0, count.Count)
}

func TestCartHandler_AdjustQuantity_MutationFailure(t *testing.T) {
	f := newFixture(t)
	f.fake.Seed("yogamat404", 1)
	view := f.openView(t)

	resp := decodeOK[dto.CartActionResponse](t, f.do(http.MethodPost,
		"/storefront/cart/views/"+view.ViewID+"/items/denimjeans202/subtract"))

	assert.Empty(t, resp.Reconciliation)
	assert.Equal(t, "ready", resp.View.State)
	assert.Equal(t, "Failed to remove item from cart", resp.View.Error)
	assert.Len(t, resp.View.Items, 1)
}

func TestCartHandler_PlaceOrder(t *testing.T) {
	f := newFixture(t)
	f.fake.Seed("aabdbb5b", 1)
	view := f.openView(t)

	out := decodeOK[dto.CheckoutResponse](t, f.do(http.MethodPost, "/storefront/cart/views/"+view.ViewID+"/order"))

	assert.True(t, out.OrderCreated)
	assert.False(t, out.CartStillPopulated)
	assert.Equal(t, testConfirmationDelay.Milliseconds(), out.ReloadAfterMs)
	assert.Equal(t, "order_placed", out.View.State)
	assert.Equal(t, "Order Placed!", out.View.Confirmation)
	assert.Equal(t, 1, f.fake.Orders())

	assert.Eventually(t, func() bool {
		var resp APIResponse[dto.CartViewResponse]
		w := f.do(http.MethodGet, "/storefront/cart/views/"+view.ViewID)
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			return false
		}
		return resp.Data.State == "empty"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCartHandler_PlaceOrder_Failure(t *testing.T) {
	f := newFixture(t)
	f.fake.Seed("aabdbb5b", 1)
	f.fake.Fail(testutil.RouteOrder, http.StatusInternalServerError)
	view := f.openView(t)

	out := decodeOK[dto.CheckoutResponse](t, f.do(http.MethodPost, "/storefront/cart/views/"+view.ViewID+"/order"))

	assert.False(t, out.OrderCreated)
	assert.Zero(t, out.ReloadAfterMs)
	assert.Equal(t, "ready", out.View.State)
	assert.Equal(t, "Failed to place order", out.View.Error)
	assert.Len(t, out.View.Items, 1)
}
