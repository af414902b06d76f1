package mockapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/petuniaboards/storefront/internal/core/domain"
)

type productRequest struct {
	Description string  `json:"description" validate:"required"`
	Brand       string  `json:"brand"       validate:"required"`
	Model       string  `json:"model"       validate:"required"`
	Currency    string  `json:"currency"    validate:"required"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	ImageURL    string  `json:"imageUrl"`
	Stock       int     `json:"stock"`
}

type productPage struct {
	Content []domain.Product `json:"content"`
}

type productHandler struct {
	state *state
}

// List returns up to size products priced in the requested currency.
func (h *productHandler) List(c echo.Context) error {
	currency := c.Param("currency")
	size := queryInt(c, "size", 20)

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	page := productPage{Content: []domain.Product{}}
	for _, p := range h.state.products {
		if len(page.Content) >= size {
			break
		}
		p.ConvertedPrice = convert(p.Price, p.Currency, currency)
		page.Content = append(page.Content, p)
	}
	return c.JSON(http.StatusOK, page)
}

// Get returns one product priced in the requested currency.
func (h *productHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	currency := c.Param("currency")

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	i, ok := h.state.findProductLocked(id)
	if !ok {
		return domain.ErrProductNotFound
	}
	p := h.state.products[i]
	p.ConvertedPrice = convert(p.Price, p.Currency, currency)
	return c.JSON(http.StatusOK, p)
}

// Create adds a catalog entry (admin only, enforced by middleware).
func (h *productHandler) Create(c echo.Context) error {
	req, err := bindProduct(c)
	if err != nil {
		return err
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	p := req.toProduct()
	p.ID = h.state.nextProductID
	h.state.nextProductID++
	h.state.products = append(h.state.products, p)

	return c.JSON(http.StatusCreated, p)
}

// Update rewrites an existing catalog entry (admin only).
func (h *productHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	req, err := bindProduct(c)
	if err != nil {
		return err
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	i, ok := h.state.findProductLocked(id)
	if !ok {
		return domain.ErrProductNotFound
	}
	p := req.toProduct()
	p.ID = id
	h.state.products[i] = p

	return c.JSON(http.StatusOK, p)
}

// Delete removes a catalog entry (admin only).
func (h *productHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	i, ok := h.state.findProductLocked(id)
	if !ok {
		return domain.ErrProductNotFound
	}
	h.state.products = append(h.state.products[:i], h.state.products[i+1:]...)

	return c.NoContent(http.StatusNoContent)
}

func (r productRequest) toProduct() domain.Product {
	return domain.Product{
		Description: r.Description,
		Brand:       r.Brand,
		Model:       r.Model,
		Currency:    r.Currency,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Stock:       r.Stock,
	}
}

func bindProduct(c echo.Context) (productRequest, error) {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	return id, nil
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
