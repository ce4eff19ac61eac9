package adminapi

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/productcards/internal/exporter"
	"github.com/talkincode/productcards/internal/webserver"
)

// registerExportRoutes registers export and backup endpoints
func registerExportRoutes() {
	webserver.ApiGET("/products/export", exportProducts)
	webserver.ApiPOST("/backup", runBackup)
}

// @Summary export the catalog
// @Tags Product
// @Param format query string false "csv, xlsx or json (default)"
// @Produce json,text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 400 {object} Response
// @Router /api/products/export [get]
func exportProducts(c echo.Context) error {
	format, err := exporter.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_FORMAT", "Format must be csv, xlsx or json", nil)
	}
	var buf bytes.Buffer
	if err := exporter.Write(format, &buf, webserver.GetStore(c).List()); err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export products", err.Error())
	}
	filename := fmt.Sprintf("products-%s.%s", time.Now().Format("20060102"), format)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, exporter.ContentType(format), buf.Bytes())
}

// runBackup writes a snapshot to the backup directory now
//
// @Summary write a backup snapshot
// @Tags Product
// @Success 200 {object} Response
// @Failure 500 {object} Response
// @Router /api/backup [post]
func runBackup(c echo.Context) error {
	path, err := webserver.GetApp(c).RunBackupNow()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "BACKUP_ERROR", "Failed to write backup", err.Error())
	}
	return ok(c, map[string]interface{}{"path": path})
}
