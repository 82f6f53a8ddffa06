// Package router wires handlers and middleware onto the Echo instance.
// Public read endpoints go through the Redis response cache; everything
// else requires a valid access token, with destructive registry
// operations restricted to managers.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hospitality-suite/internal/config"
	"github.com/iliyamo/hospitality-suite/internal/handler"
	"github.com/iliyamo/hospitality-suite/internal/middleware"
	"github.com/iliyamo/hospitality-suite/internal/model"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	Tables    *handler.TableHandler
	Venues    *handler.VenueHandler
	Menu      *handler.MenuItemHandler
	Orders    *handler.OrderHandler
	Bookings  *handler.BookingHandler
	Guests    *handler.GuestHandler
	Inventory *handler.InventoryHandler
	Employees *handler.EmployeeHandler
	Rooms     *handler.RoomHandler
}

// Register mounts all routes. rdb may be nil, which disables the cache
// and rate limiter but leaves every endpoint functional.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	ratelimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.Use(ratelimit)

	// Auth endpoints.
	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	// Public browse endpoints: cached reads, no token required, so menus
	// and availability can back a customer-facing page.
	pub := e.Group("/v1/public", cache)
	pub.GET("/menu-items", h.Menu.List)
	pub.GET("/tables", h.Tables.List)
	pub.GET("/venues", h.Venues.List)
	pub.GET("/rooms", h.Rooms.List)

	// Everything below requires a valid access token.
	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(cfg.JWTSecret))
	v1.Use(middleware.RequireRole(model.RoleManager, model.RoleStaff))
	manager := middleware.RequireRole(model.RoleManager)

	v1.GET("/me", h.Auth.Me)

	// Registry CRUD. Deletes and registry edits are manager-only.
	v1.GET("/tables", h.Tables.List)
	v1.GET("/tables/:id", h.Tables.Get)
	v1.POST("/tables", h.Tables.Create, manager)
	v1.PUT("/tables/:id", h.Tables.Update, manager)
	v1.PATCH("/tables/:id/status", h.Tables.SetStatus)
	v1.DELETE("/tables/:id", h.Tables.Delete, manager)

	v1.GET("/venues", h.Venues.List)
	v1.GET("/venues/:id", h.Venues.Get)
	v1.POST("/venues", h.Venues.Create, manager)
	v1.PUT("/venues/:id", h.Venues.Update, manager)
	v1.DELETE("/venues/:id", h.Venues.Delete, manager)

	v1.GET("/menu-items", h.Menu.List)
	v1.GET("/menu-items/:id", h.Menu.Get)
	v1.POST("/menu-items", h.Menu.Create, manager)
	v1.PUT("/menu-items/:id", h.Menu.Update, manager)
	v1.PATCH("/menu-items/:id/availability", h.Menu.SetAvailability)
	v1.DELETE("/menu-items/:id", h.Menu.Delete, manager)

	v1.GET("/rooms", h.Rooms.List)
	v1.GET("/rooms/:id", h.Rooms.Get)
	v1.POST("/rooms", h.Rooms.Create, manager)
	v1.PUT("/rooms/:id", h.Rooms.Update, manager)
	v1.DELETE("/rooms/:id", h.Rooms.Delete, manager)

	// Guests, inventory and employees: staff operate day to day,
	// employee records are manager-only.
	v1.GET("/guests", h.Guests.List)
	v1.GET("/guests/:id", h.Guests.Get)
	v1.POST("/guests", h.Guests.Create)
	v1.PUT("/guests/:id", h.Guests.Update)
	v1.DELETE("/guests/:id", h.Guests.Delete, manager)

	v1.GET("/inventory", h.Inventory.List)
	v1.GET("/inventory/:id", h.Inventory.Get)
	v1.POST("/inventory", h.Inventory.Create)
	v1.PUT("/inventory/:id", h.Inventory.Update)
	v1.PATCH("/inventory/:id/adjust", h.Inventory.Adjust)
	v1.DELETE("/inventory/:id", h.Inventory.Delete, manager)

	v1.GET("/employees", h.Employees.List, manager)
	v1.GET("/employees/:id", h.Employees.Get, manager)
	v1.POST("/employees", h.Employees.Create, manager)
	v1.PUT("/employees/:id", h.Employees.Update, manager)
	v1.DELETE("/employees/:id", h.Employees.Delete, manager)

	// Orders: the transactional aggregate.
	v1.POST("/orders", h.Orders.Create)
	v1.GET("/orders", h.Orders.List)
	v1.GET("/orders/stats", h.Orders.Stats)
	v1.GET("/orders/number/:number", h.Orders.GetByNumber)
	v1.GET("/orders/:id", h.Orders.Get)
	v1.PATCH("/orders/:id/status", h.Orders.ChangeStatus)
	v1.POST("/orders/:id/items", h.Orders.AddItem)
	v1.PATCH("/order-items/:id/quantity", h.Orders.UpdateItem)
	v1.DELETE("/order-items/:id", h.Orders.RemoveItem)
	v1.DELETE("/orders/:id", h.Orders.Delete, manager)

	// Venue bookings.
	v1.POST("/bookings", h.Bookings.Create)
	v1.GET("/bookings", h.Bookings.List)
	v1.GET("/bookings/:id", h.Bookings.Get)
	v1.PATCH("/bookings/:id/status", h.Bookings.ChangeStatus)
	v1.DELETE("/bookings/:id", h.Bookings.Delete, manager)
}
