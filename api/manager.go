package api

import (
	"storefront_server/api/dashboard"
	"storefront_server/api/health"
	"storefront_server/api/shop"

	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	shopRoutes      *shop.ShopRoutesManager
	dashboardRoutes *dashboard.DashboardRoutesManager
	healthRoutes    *health.HealthRoutesManager
}

func NewRouterManager(
	shopRoutes *shop.ShopRoutesManager,
	dashboardRoutes *dashboard.DashboardRoutesManager,
	healthRoutes *health.HealthRoutesManager,
) *routerManager {
	return &routerManager{
		shopRoutes:      shopRoutes,
		dashboardRoutes: dashboardRoutes,
		healthRoutes:    healthRoutes,
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.shopRoutes.RegisterRoutes(r)
	rm.dashboardRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
}
