// Package seed loads a starter catalog and the first Administrador account.
package seed

import (
	"context"

	"stagestyle/internal/services"
	"stagestyle/internal/validation"

	log "github.com/sirupsen/logrus"
)

// Products is the starter catalog.
var Products = []validation.Payload{
	{
		"title":         "Polerón Oversize Stage",
		"description":   "Polerón de algodón perchado con capucha.",
		"price":         29990.0,
		"originalPrice": 34990.0,
		"category":      "Polerones",
		"image":         "https://cdn.stagestyle.cl/productos/poleron-oversize.webp",
		"sizes":         []any{"S", "M", "L", "XL"},
		"badge":         "Nuevo",
	},
	{
		"title":       "Polera Básica Negra",
		"description": "Polera de algodón peinado, corte recto.",
		"price":       12990.0,
		"category":    "Poleras",
		"image":       "https://cdn.stagestyle.cl/productos/polera-negra.jpg",
		"sizes":       []any{"S", "M", "L"},
	},
	{
		"title":    "Jockey Bordado",
		"details":  "Talla única, ajuste trasero.",
		"price":    9990.0,
		"category": "Gorros",
		"image":    "https://cdn.stagestyle.cl/productos/jockey.png",
	},
}

// Result counts what a Run created.
type Result struct {
	ProductsCreated int
	ProductsSkipped int
	AdminCreated    bool
}

// Run creates every starter product that passes validation and, when adminEmail is set,
// the first Administrador. Products rejected as duplicates are skipped, so Run can be
// repeated.
func Run(ctx context.Context, products *services.ProductService, users *services.UserService, adminEmail, adminPassword string) (Result, error) {
	var res Result
	for _, payload := range Products {
		product, err := products.CreateProduct(ctx, payload)
		if err != nil {
			if reason, ok := validation.ReasonOf(err); ok {
				log.WithFields(log.Fields{"title": payload["title"], "reason": reason}).Info("Skipping seed product")
				res.ProductsSkipped++
				continue
			}
			return res, err
		}
		log.WithFields(log.Fields{"id": product.ID, "title": product.Title}).Info("Seeded product")
		res.ProductsCreated++
	}

	if adminEmail == "" {
		log.Warn("ADMIN_EMAIL not set. Skipping admin account")
		return res, nil
	}
	created, err := users.BootstrapAdmin(ctx, adminEmail, adminPassword)
	if err != nil {
		return res, err
	}
	res.AdminCreated = created
	return res, nil
}
