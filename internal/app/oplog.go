package app

import (
	"github.com/talkincode/productcards/internal/catalog"
	"github.com/talkincode/productcards/internal/domain"
	"go.uber.org/zap"
)

// subscribeOperationLog records every product mutation in the log
func (a *Application) subscribeOperationLog() {
	for topic, action := range map[string]string{
		catalog.TopicCreated: "create",
		catalog.TopicUpdated: "update",
		catalog.TopicDeleted: "delete",
	} {
		action := action
		err := a.bus.Subscribe(topic, func(p domain.Product) {
			zap.L().Info("product "+action,
				zap.String("namespace", "oplog"),
				zap.String("action", action),
				zap.Int64("id", p.ID),
				zap.String("name", p.Name),
				zap.Float64("price", p.Price))
		})
		if err != nil {
			zap.S().Errorf("subscribe %s error %s", topic, err.Error())
		}
	}
}
