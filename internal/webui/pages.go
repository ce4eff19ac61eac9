// Package webui serves the product card page and its form overlay.
package webui

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/talkincode/productcards/internal/catalog"
	"github.com/talkincode/productcards/internal/domain"
	"github.com/talkincode/productcards/internal/webserver"
	"go.uber.org/zap"
)

//go:embed templates/*
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.gohtml").Funcs(funcMap).ParseFS(templateFS, "templates/index.gohtml"))

const editingIDField = "editing_id"

// Init registers the page routes on the current web server
func Init() {
	registerPageRoutes()
	registerFormRoutes()
}

func registerPageRoutes() {
	webserver.GET("/", indexPage)
	webserver.POST("/products/new", beginCreate)
	webserver.POST("/products/:id/edit", beginEdit)
	webserver.GET("/products/:id/delete", confirmDelete)
	webserver.POST("/products/:id/delete", deleteProduct)
}

func registerFormRoutes() {
	webserver.POST("/form/cancel", cancelForm)
	webserver.POST("/form/submit", submitForm)
}

func indexPage(c echo.Context) error {
	return render(c, nil)
}

func render(c echo.Context, confirm *domain.Product) error {
	store := webserver.GetStore(c)
	data := pageData{
		Products: store.List(),
		State:    store.State(),
		Flashes:  webserver.Flashes(c),
		Confirm:  confirm,
	}
	var sb strings.Builder
	if err := pageTemplate.Execute(&sb, data); err != nil {
		zap.L().Error("render page failed", zap.String("namespace", "web"), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "render failed")
	}
	return c.HTML(http.StatusOK, sb.String())
}

func backHome(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/")
}

func beginCreate(c echo.Context) error {
	webserver.GetStore(c).BeginCreate()
	return backHome(c)
}

func beginEdit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := webserver.GetStore(c).BeginEdit(id); err != nil {
		webserver.AddFlash(c, "Product not found")
	}
	return backHome(c)
}

func cancelForm(c echo.Context) error {
	webserver.GetStore(c).Cancel()
	return backHome(c)
}

func submitForm(c echo.Context) error {
	form, err := bindForm(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse form")
	}
	store := webserver.GetStore(c)
	ctx := catalog.WithPrompter(c.Request().Context(), &pagePrompter{c: c})
	if st, ok := postedState(c, form); ok {
		_, err = store.SubmitState(ctx, st)
	} else {
		store.SetForm(form)
		_, err = store.Submit(ctx)
	}
	switch {
	case err == nil, errors.Is(err, catalog.ErrValidation):
	case errors.Is(err, catalog.ErrNotFound):
		webserver.AddFlash(c, "Product not found")
	case errors.Is(err, catalog.ErrPersist):
		webserver.AddFlash(c, "Saved in memory, but writing to storage failed")
	default:
		return err
	}
	return backHome(c)
}

func confirmDelete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, ok := webserver.GetStore(c).Get(id)
	if !ok {
		return backHome(c)
	}
	return render(c, &p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	prompter := &pagePrompter{c: c, confirmed: c.FormValue("confirm") == "yes"}
	ctx := catalog.WithPrompter(c.Request().Context(), prompter)
	err = webserver.GetStore(c).Delete(ctx, id)
	switch {
	case err == nil, errors.Is(err, catalog.ErrNotConfirmed):
	case errors.Is(err, catalog.ErrPersist):
		webserver.AddFlash(c, "Deleted in memory, but writing to storage failed")
	default:
		return err
	}
	return backHome(c)
}

// bindForm decodes the posted fields into a form buffer
func bindForm(c echo.Context) (domain.Form, error) {
	params, err := c.FormParams()
	if err != nil {
		return domain.Form{}, err
	}
	values := make(map[string]interface{}, len(params))
	for k, v := range params {
		if len(v) > 0 {
			values[k] = v[0]
		}
	}
	var form domain.Form
	err = mapstructure.Decode(values, &form)
	return form, err
}

// postedState rebuilds the form state from the hidden editing_id field the
// overlay posts. Clients that omit the field fall back to the shared state.
func postedState(c echo.Context, form domain.Form) (catalog.UIState, bool) {
	params, err := c.FormParams()
	if err != nil {
		return catalog.UIState{}, false
	}
	if _, ok := params[editingIDField]; !ok {
		return catalog.UIState{}, false
	}
	st := catalog.UIState{Form: form}
	if id, err := cast.ToInt64E(strings.TrimSpace(params.Get(editingIDField))); err == nil && id != 0 {
		st.Editing = true
		st.EditingID = id
	}
	return st, true
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	return id, nil
}
