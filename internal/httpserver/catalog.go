package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/antonskv/shop_backend/internal/service"
)

func (s *Server) handleListProducts(c echo.Context) error {
	params := service.ListParams{
		Firm: c.QueryParam("firm"),
		Sort: c.QueryParam("sort"),
		Page: queryInt(c, "page"),
		Size: queryInt(c, "size"),
	}
	if v := c.QueryParam("minPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return badRequest(c, "INVALID_DATA", "minPrice должен быть числом")
		}
		params.MinPrice = &f
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return badRequest(c, "INVALID_DATA", "maxPrice должен быть числом")
		}
		params.MaxPrice = &f
	}
	if v := c.QueryParam("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "INVALID_DATA", "year должен быть целым числом")
		}
		params.Year = &y
	}

	items, meta, err := s.Catalog.List(c.Request().Context(), params)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "meta": meta})
}

func (s *Server) handleGetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "INVALID_PRODUCT_ID", "productId должен быть целым числом больше 0")
	}

	product, photos, err := s.Catalog.Get(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"product": product, "photos": photos})
}

// productRequest carries images base64-encoded in JSON.
type productRequest struct {
	Name              string   `json:"name" validate:"required"`
	Description       *string  `json:"description"`
	Price             float64  `json:"price"`
	LastPrice         *float64 `json:"last_price"`
	LogoImage         []byte   `json:"logo_image"`
	FirmName          *string  `json:"firm_name"`
	ManufacturingYear *int     `json:"manufacturing_year"`
	Photos            [][]byte `json:"photos"`
}

func (r *productRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:              r.Name,
		Description:       r.Description,
		Price:             r.Price,
		LastPrice:         r.LastPrice,
		LogoImage:         r.LogoImage,
		FirmName:          r.FirmName,
		ManufacturingYear: r.ManufacturingYear,
		Photos:            r.Photos,
	}
}

func (s *Server) handleCreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}

	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	product, err := s.Catalog.CreateProduct(c.Request().Context(), req.toInput())
	if err != nil {
		return writeErr(c, err)
	}

	s.publish(c, topicProductEvents, "created", map[string]any{
		"product_id": product.ID, "name": product.Name,
	})
	return c.JSON(http.StatusCreated, product)
}

func (s *Server) handleUpdateProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "INVALID_PRODUCT_ID", "productId должен быть целым числом больше 0")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return bindErr(c)
	}

	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	product, err := s.Catalog.UpdateProduct(c.Request().Context(), id, req.toInput())
	if err != nil {
		return writeErr(c, err)
	}

	s.publish(c, topicProductEvents, "updated", map[string]any{"product_id": product.ID})
	return c.JSON(http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return badRequest(c, "INVALID_PRODUCT_ID", "productId должен быть целым числом больше 0")
	}

	if err := s.Catalog.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}

	s.publish(c, topicProductEvents, "deleted", map[string]any{"product_id": id})
	return c.JSON(http.StatusOK, echo.Map{"message": "Товар удален"})
}

func (s *Server) handleSearch(c echo.Context) error {
	items, meta, err := s.Search.Search(c.Request().Context(), c.QueryParam("q"), queryInt(c, "page"), queryInt(c, "size"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "meta": meta})
}
