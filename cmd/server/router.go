package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/catalog-api/internal/api"
	apiMiddleware "github.com/phrazzld/catalog-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	userHandler := api.NewUserHandler(app.userService, app.jwtService, app.logger)
	productHandler := api.NewProductHandler(app.productService, app.logger)
	categoryHandler := api.NewCategoryHandler(app.categoryService, app.logger)
	stockHandler := api.NewStockHandler(app.stockService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/user", userHandler.Register)
		r.Post("/user/token", userHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/user/me", userHandler.Me)

			r.Route("/product", func(r chi.Router) {
				r.Get("/products", productHandler.ListProducts)
				r.Post("/products", productHandler.CreateProduct)
				r.Get("/products/{id}", productHandler.GetProduct)
				r.Put("/products/{id}", productHandler.UpdateProduct)
				r.Patch("/products/{id}", productHandler.PatchProduct)
				r.Delete("/products/{id}", productHandler.DeleteProduct)

				r.Get("/categories", categoryHandler.ListCategories)
				r.Put("/categories/{id}", categoryHandler.UpdateCategory)
				r.Patch("/categories/{id}", categoryHandler.UpdateCategory)
				r.Delete("/categories/{id}", categoryHandler.DeleteCategory)

				r.Get("/stocks", stockHandler.ListStocks)
				r.Post("/stocks", stockHandler.CreateStock)
				r.Put("/stocks/{id}", stockHandler.UpdateStock)
				r.Patch("/stocks/{id}", stockHandler.UpdateStock)
				r.Delete("/stocks/{id}", stockHandler.DeleteStock)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
