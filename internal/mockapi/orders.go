package mockapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/petuniaboards/storefront/internal/core/domain"
)

// defaultOrderCurrency prices the order-creation response; history requests
// name their currency explicitly.
const defaultOrderCurrency = "BRL"

type createOrderRequest struct {
	Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type orderItemRequest struct {
	ProductID int64 `json:"productId" validate:"required"`
	Quantity  int   `json:"quantity"  validate:"required,gt=0"`
}

type orderPage struct {
	Content []domain.Order `json:"content"`
}

type orderHandler struct {
	state *state
}

// Create captures current product prices into a new order for the
// authenticated account.
func (h *orderHandler) Create(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	record := orderRecord{
		id:    h.state.nextOrderID,
		email: email,
		date:  time.Now().UTC(),
	}
	for _, item := range req.Items {
		i, ok := h.state.findProductLocked(item.ProductID)
		if !ok {
			return domain.ErrProductNotFound
		}
		product := h.state.products[i]
		record.items = append(record.items, orderItemRecord{
			id:      h.state.nextItemID,
			product: product,
			qty:     item.Quantity,
			price:   product.Price,
		})
		h.state.nextItemID++
	}
	h.state.nextOrderID++
	h.state.orders = append(h.state.orders, record)

	return c.JSON(http.StatusCreated, record.view(defaultOrderCurrency))
}

// List pages through the account's orders, newest first, priced in the
// requested currency.
func (h *orderHandler) List(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}
	currency := c.Param("currency")
	size := queryInt(c, "size", 20)
	page := queryInt(c, "page", 0)

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	var mine []orderRecord
	for _, r := range h.state.orders {
		if r.email == email {
			mine = append(mine, r)
		}
	}
	// Newest first.
	for i, j := 0, len(mine)-1; i < j; i, j = i+1, j-1 {
		mine[i], mine[j] = mine[j], mine[i]
	}

	resp := orderPage{Content: []domain.Order{}}
	start := page * size
	for i := start; i < len(mine) && i < start+size; i++ {
		resp.Content = append(resp.Content, mine[i].view(currency))
	}
	return c.JSON(http.StatusOK, resp)
}
