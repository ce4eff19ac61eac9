package webui

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/productcards/internal/webserver"
)

// pagePrompter shows alerts as flash messages on the next page. The answer to
// a confirmation is the explicit choice posted from the confirm dialog.
type pagePrompter struct {
	c         echo.Context
	confirmed bool
}

func (p *pagePrompter) Alert(_ context.Context, message string) {
	webserver.AddFlash(p.c, message)
}

func (p *pagePrompter) Confirm(_ context.Context, _ string) bool {
	return p.confirmed
}
