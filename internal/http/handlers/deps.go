package handlers

import (
	"annapurna/internal/repos"
	"annapurna/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler         *AuthHandler
	ItemHandler         *ItemHandler
	OrderHandler        *OrderHandler
	NotificationHandler *NotificationHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService) *Deps {
	catalogRepo := repos.NewCatalogRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	notifRepo := repos.NewNotificationRepo(db)

	catalogSvc := services.NewCatalogService(catalogRepo)
	orderSvc := services.NewOrderService(orderRepo, notifRepo)
	notifSvc := services.NewNotificationService(notifRepo)

	return &Deps{
		AuthHandler:         &AuthHandler{Auth: auth},
		ItemHandler:         &ItemHandler{Catalog: catalogSvc},
		OrderHandler:        &OrderHandler{Orders: orderSvc},
		NotificationHandler: &NotificationHandler{Notifs: notifSvc},
	}
}
