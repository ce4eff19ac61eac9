package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"github.com/talkincode/productcards/internal/catalog"
	"github.com/talkincode/productcards/internal/domain"
	"github.com/talkincode/productcards/internal/webserver"
)

// productPayload accepts price as a JSON number or string; the store validates it
type productPayload struct {
	Name  string      `json:"name"`
	Image string      `json:"image"`
	Price interface{} `json:"price"`
	Info  string      `json:"info"`
}

func (p productPayload) form() domain.Form {
	f := domain.Form{Name: p.Name, Image: p.Image, Info: p.Info}
	if p.Price != nil {
		f.Price = cast.ToString(p.Price)
	}
	return f
}

// Init registers the admin API routes on the current web server
func Init() {
	registerProductRoutes()
	registerExportRoutes()
}

// registerProductRoutes registers product CRUD endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

// listProducts returns the collection in insertion order
//
// @Summary list products
// @Tags Product
// @Success 200 {object} Response{data=[]domain.Product}
// @Router /api/products [get]
func listProducts(c echo.Context) error {
	return ok(c, webserver.GetStore(c).List())
}

// @Summary get a product
// @Tags Product
// @Param id path int true "Product ID"
// @Success 200 {object} Response{data=domain.Product}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/products/{id} [get]
func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, found := webserver.GetStore(c).Get(id)
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

// createProduct validates the payload and appends a product.
// Validation alerts are returned in details.alerts.
//
// @Summary create a product
// @Tags Product
// @Param product body productPayload true "Product fields, price as number or string"
// @Success 200 {object} Response{data=domain.Product}
// @Failure 400 {object} Response
// @Failure 500 {object} Response
// @Router /api/products [post]
func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	prompter := &apiPrompter{}
	ctx := catalog.WithPrompter(c.Request().Context(), prompter)
	p, err := webserver.GetStore(c).Create(ctx, payload.form())
	if err != nil {
		return storeError(c, err, prompter.Alerts())
	}
	return ok(c, p)
}

// @Summary replace every field of a product but its id
// @Tags Product
// @Param id path int true "Product ID"
// @Param product body productPayload true "Product fields"
// @Success 200 {object} Response{data=domain.Product}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/products/{id} [put]
func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	prompter := &apiPrompter{}
	ctx := catalog.WithPrompter(c.Request().Context(), prompter)
	p, err := webserver.GetStore(c).Update(ctx, id, payload.form())
	if err != nil {
		return storeError(c, err, prompter.Alerts())
	}
	return ok(c, p)
}

// deleteProduct removes a product. The confirm query parameter answers the
// confirmation prompt; without it nothing is deleted.
//
// @Summary delete a product
// @Tags Product
// @Param id path int true "Product ID"
// @Param confirm query bool true "must be true"
// @Success 200 {object} Response
// @Failure 409 {object} Response
// @Router /api/products/{id} [delete]
func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	prompter := &apiPrompter{confirmed: cast.ToBool(c.QueryParam("confirm"))}
	ctx := catalog.WithPrompter(c.Request().Context(), prompter)
	if err := webserver.GetStore(c).Delete(ctx, id); err != nil {
		return storeError(c, err, nil)
	}
	return ok(c, map[string]interface{}{"id": id})
}
