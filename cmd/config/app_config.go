package config

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Project-CookFlow-E2E/CF-Backend/internal/api/handlers"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/api/presenters"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/api/routes"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/middleware"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils/cache"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils/logger"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils/storage"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/catalog"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/image"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/jwt"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/recipe"
	"github.com/Project-CookFlow-E2E/CF-Backend/pkg/shopping"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// App is the wired HTTP server plus whatever must be released on shutdown.
type App struct {
	Fiber   *fiber.App
	closers []io.Closer
}

func (a *App) Close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
}

func NewApp(ctx context.Context, db *gorm.DB, log *logger.Logger) (*App, error) {
	utils.InitValidator()
	validator := utils.Validate
	out := &App{}

	maxUpload := int64(utils.GetConfigInt("MAX_UPLOAD_SIZE"))
	app := fiber.New(fiber.Config{
		// one photo plus step images per request
		BodyLimit: int(maxUpload) * 8,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return presenters.ErrorResponse(c, code, err.Error(), err)
		},
	})
	middlewares := middleware.NewMiddleware()

	// setting up logging and limiter
	logFile := utils.GetConfig("LOG_FILE")
	if err := os.MkdirAll(filepath.Dir(logFile), os.ModePerm); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	out.closers = append(out.closers, file)

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT"),
		Expiration: 1 * time.Second,
	}))

	// utils
	store, err := storage.New(ctx)
	if err != nil {
		return nil, err
	}
	viewCache, err := cache.New(ctx)
	if err != nil {
		return nil, err
	}
	if closer, ok := viewCache.(io.Closer); ok {
		out.closers = append(out.closers, closer)
	}
	cacheTTL := utils.GetConfigDuration("CACHE_TTL")

	// Repository
	catalogRepository := catalog.NewCatalogRepository(db)
	imageRepository := image.NewImageRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	ingredientLineRepository := recipe.NewIngredientLineRepository(db)
	stepRepository := recipe.NewStepRepository(db)
	shoppingRepository := shopping.NewShoppingRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	catalogService := catalog.NewCatalogService(catalogRepository, viewCache, cacheTTL, log)
	imageService := image.NewImageService(imageRepository, store, image.OptionsFromConfig(), log)
	recipeService := recipe.NewRecipeService(
		db,
		recipeRepository,
		ingredientLineRepository,
		stepRepository,
		catalogService,
		imageService,
		viewCache,
		cacheTTL,
		log,
	)
	shoppingService := shopping.NewShoppingService(db, shoppingRepository, catalogService, log)

	// Handler
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	shoppingHandler := handlers.NewShoppingHandler(shoppingService, validator)
	userHandler := handlers.NewUserHandler(imageService)
	imageHandler := handlers.NewImageHandler(imageService)

	// routes
	routesConfig := routes.Config{
		App:             app,
		RecipeHandler:   recipeHandler,
		CatalogHandler:  catalogHandler,
		ShoppingHandler: shoppingHandler,
		UserHandler:     userHandler,
		ImageHandler:    imageHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	if local, ok := store.(*storage.LocalStorage); ok {
		routesConfig.MediaRoot = local.Root()
		routesConfig.MediaURL = utils.GetConfig("MEDIA_URL")
	}
	routesConfig.Setup()

	out.Fiber = app
	return out, nil
}
