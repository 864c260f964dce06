// internal/handlers/router.go
package handlers

import (
	"github.com/go-chi/chi/v5"

	"github.com/maslima80/hatchy-sub001/internal/config"
	"github.com/maslima80/hatchy-sub001/internal/handlers/categories"
	"github.com/maslima80/hatchy-sub001/internal/handlers/media"
	"github.com/maslima80/hatchy-sub001/internal/handlers/orders"
	paymentshandler "github.com/maslima80/hatchy-sub001/internal/handlers/payments"
	printifyhandler "github.com/maslima80/hatchy-sub001/internal/handlers/printify"
	"github.com/maslima80/hatchy-sub001/internal/handlers/products"
	"github.com/maslima80/hatchy-sub001/internal/handlers/stores"
	"github.com/maslima80/hatchy-sub001/internal/handlers/tags"
	"github.com/maslima80/hatchy-sub001/internal/middleware"
	"github.com/maslima80/hatchy-sub001/internal/payments"
	"github.com/maslima80/hatchy-sub001/internal/printify"
	"github.com/maslima80/hatchy-sub001/internal/repo"
)

// RegisterRoutes wires every resource route group. Each group applies auth
// once; nothing below the middleware runs without a valid session.
func RegisterRoutes(mux *chi.Mux, r repo.Repo, pay payments.Client, pod printify.Client, cfg config.Config) {
	ph := products.New(r)
	sh := stores.New(r)
	ch := categories.New(r)
	th := tags.New(r)
	oh := orders.New(r)
	payh := paymentshandler.New(r, pay, cfg)
	podh := printifyhandler.New(r, pod)
	mh := media.New(cfg)

	requireAuth := middleware.RequireAuth(r)

	mux.Route("/products", func(sr chi.Router) {
		sr.Use(requireAuth)

		sr.Post("/", ph.Upsert)
		sr.Get("/", ph.List)
		sr.Get("/{productID}", ph.GetByID)
		sr.Delete("/{productID}", ph.Delete)
		sr.Post("/{productID}/variants", ph.UpsertVariant)
		sr.Delete("/{productID}/variants/{variantID}", ph.DeleteVariant)
	})

	mux.Route("/stores", func(sr chi.Router) {
		sr.Use(requireAuth)

		sr.Post("/", sh.Upsert)
		sr.Get("/", sh.List)
		sr.Delete("/{storeID}", sh.Delete)
		sr.Post("/{storeID}/products", sh.AttachProduct)
		sr.Get("/{storeID}/products", sh.ListProducts)
		sr.Put("/{storeID}/products/{storeProductID}/price", sh.SetPrice)
	})

	mux.Route("/categories", func(sr chi.Router) {
		sr.Use(requireAuth)

		sr.Post("/", ch.Upsert)
		sr.Get("/", ch.List)
		sr.Delete("/{categoryID}", ch.Delete)
	})

	mux.Route("/tags", func(sr chi.Router) {
		sr.Use(requireAuth)

		sr.Post("/", th.Upsert)
		sr.Get("/", th.List)
		sr.Delete("/{tagID}", th.Delete)
	})

	mux.Route("/orders", func(sr chi.Router) {
		sr.Use(requireAuth)

		sr.Get("/", oh.List)
		sr.Get("/{orderID}", oh.GetByID)
		sr.Patch("/{orderID}/status", oh.ChangeStatus)
	})

	mux.Route("/payments", func(sr chi.Router) {
		sr.Use(requireAuth)

		sr.Post("/checkout", payh.CreateCheckout)
		sr.Post("/payout-account", payh.CreatePayoutAccount)
		sr.Post("/payout-account/login-link", payh.CreateLoginLink)
	})

	mux.Route("/printify", func(sr chi.Router) {
		sr.Use(requireAuth)

		sr.Post("/connect", podh.Connect)
		sr.Get("/shops", podh.ListShops)
		sr.Get("/products", podh.ListProducts)
		sr.Post("/import", podh.Import)
	})

	mux.Route("/media", func(sr chi.Router) {
		sr.Use(requireAuth)

		sr.Get("/auth", mh.UploadAuth)
	})
}
