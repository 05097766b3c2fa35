package routes

import (
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/api/handlers"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/middleware"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	RecipeHandler   handlers.RecipeHandler
	CatalogHandler  handlers.CatalogHandler
	ShoppingHandler handlers.ShoppingHandler
	UserHandler     handlers.UserHandler
	ImageHandler    handlers.ImageHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
	MediaRoot       string
	MediaURL        string
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Media()
	c.GuestRoute()
	c.User()
	c.Recipes()
	c.Catalog()
	c.ShoppingList()
	c.Images()
}

// Media serves locally stored images. Empty MediaRoot means images live in
// object storage and are served from there.
func (c *Config) Media() {
	if c.MediaRoot == "" || c.MediaURL == "" {
		return
	}
	c.App.Static(c.MediaURL, c.MediaRoot, fiber.Static{
		Browse: false,
	})
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users", c.Middleware.AuthMiddleware(c.JWTService))
	{
		user.Get("/me", c.UserHandler.Me)
		user.Get("/me/image", c.UserHandler.GetProfileImage)
		user.Put("/me/image", c.UserHandler.UploadProfileImage)
		user.Delete("/me/image", c.UserHandler.DeleteProfileImage)
	}
}

func (c *Config) Recipes() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.OptionalAuth(c.JWTService))
	{
		recipes.Get("", c.RecipeHandler.GetRecipes)
		recipes.Get("/:id", c.RecipeHandler.GetRecipe)
		recipes.Post("", auth, c.RecipeHandler.CreateRecipe)
		recipes.Put("/:id", auth, c.RecipeHandler.UpdateRecipe)
		recipes.Patch("/:id", auth, c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)
		recipes.Post("/:id/favorite", auth, c.RecipeHandler.AddFavorite)
		recipes.Delete("/:id/favorite", auth, c.RecipeHandler.RemoveFavorite)
	}
	c.App.Get("/api/v1/favorites", auth, c.RecipeHandler.GetFavorites)
}

func (c *Config) Catalog() {
	catalog := c.App.Group("/api/v1")
	catalog.Get("/categories", c.CatalogHandler.GetCategories)
	catalog.Get("/units", c.CatalogHandler.GetUnits)
	catalog.Get("/ingredients", c.CatalogHandler.GetIngredients)
}

func (c *Config) ShoppingList() {
	list := c.App.Group("/api/v1/shopping-list", c.Middleware.AuthMiddleware(c.JWTService))
	list.Get("", c.ShoppingHandler.GetItems)
	list.Post("", c.ShoppingHandler.AddItem)
	list.Patch("/:id", c.ShoppingHandler.UpdateItem)
	list.Delete("/:id", c.ShoppingHandler.DeleteItem)
	list.Post("/from-recipe/:id", c.ShoppingHandler.AddRecipe)
}

func (c *Config) Images() {
	c.App.Get("/api/v1/images", c.ImageHandler.GetImages)

	admin := c.App.Group("/api/v1/admin", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.AdminOnly())
	admin.Get("/images", c.ImageHandler.GetAdminImages)
}
