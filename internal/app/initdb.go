package app

import (
	"context"

	"github.com/talkincode/productcards/internal/domain"
	"go.uber.org/zap"
)

var defaultProducts = []domain.Form{
	{Name: "Ceramic Mug", Price: "9.99", Info: "350ml, dishwasher safe"},
	{Name: "Canvas Tote", Price: "24.5", Info: "Heavy cotton canvas"},
	{Name: "Desk Lamp", Price: "49.95"},
	{Name: "Notebook", Price: "4", Info: "A5, dotted"},
}

// checkProducts initializes demo products when the collection is empty
func (a *Application) checkProducts() {
	if len(a.store.List()) > 0 {
		return
	}
	for _, f := range defaultProducts {
		p, err := a.store.Create(context.Background(), f)
		if err != nil {
			zap.L().Error("failed to create demo product", zap.String("name", f.Name), zap.Error(err))
			continue
		}
		zap.L().Info("initialized demo product", zap.String("name", p.Name), zap.Int64("id", p.ID))
	}
}
