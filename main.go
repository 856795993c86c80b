package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"cadboq/collections"
	"cadboq/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed rate tables on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Pages ────────────────────────────────────────────────
		se.Router.GET("/", handlers.HandleHomePage(app))
		se.Router.GET("/conversions/page", handlers.HandleConversionsPage(app))

		// ── Conversion pipeline ──────────────────────────────────
		se.Router.POST("/convert", handlers.HandleConvert(app))
		se.Router.POST("/conversions/{id}/regenerate", handlers.HandleConversionRegenerate(app))

		// ── Conversion export ────────────────────────────────────
		se.Router.GET("/conversions/{id}/export/csv", handlers.HandleExportCSV(app))
		se.Router.GET("/conversions/{id}/export/excel", handlers.HandleExportExcel(app))
		se.Router.GET("/conversions/{id}/export/pdf", handlers.HandleExportPDF(app))

		// ── Conversion list, view, delete (after /conversions/* routes) ──
		se.Router.GET("/conversions", handlers.HandleConversionList(app))
		se.Router.GET("/conversions/{id}", handlers.HandleConversionView(app))
		se.Router.DELETE("/conversions/{id}", handlers.HandleConversionDelete(app))

		// ── Rate tables ──────────────────────────────────────────
		se.Router.GET("/rates", handlers.HandleRateList(app))
		se.Router.PATCH("/rates/{id}", handlers.HandleRateUpdate(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
