package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/mocks"
	"github.com/stretchr/testify/require"
)

// testHandlers bundles the mocks behind a router that mirrors the product
// and user routes. The authenticated user is injected directly.
type testHandlers struct {
	products   *mocks.MockProductService
	categories *mocks.MockCategoryService
	stocks     *mocks.MockStockService
	users      *mocks.MockUserService
	jwt        *mocks.MockJWTService
	router     chi.Router
}

func newTestHandlers(userID uuid.UUID) *testHandlers {
	th := &testHandlers{
		products:   &mocks.MockProductService{},
		categories: &mocks.MockCategoryService{},
		stocks:     &mocks.MockStockService{},
		users:      &mocks.MockUserService{},
		jwt:        &mocks.MockJWTService{},
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	productHandler := NewProductHandler(th.products, log)
	categoryHandler := NewCategoryHandler(th.categories, log)
	stockHandler := NewStockHandler(th.stocks, log)
	userHandler := NewUserHandler(th.users, th.jwt, log)

	r := chi.NewRouter()
	r.Post("/user", userHandler.Register)
	r.Post("/user/token", userHandler.Login)
	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				if userID != uuid.Nil {
					req = req.WithContext(shared.WithUserID(req.Context(), userID))
				}
				next.ServeHTTP(w, req)
			})
		})
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
	th.router = r
	return th
}

func (th *testHandlers) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	th.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
