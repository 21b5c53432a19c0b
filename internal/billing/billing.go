package billing

import (
	"math"

	"github.com/shopspring/decimal"

	"swiftcart/internal/models"
)

// Politique tarifaire du magasin
var (
	FreeDeliveryThreshold = decimal.NewFromInt(199)
	DeliveryFee           = decimal.NewFromInt(25)
	PlatformFeeRate       = decimal.RequireFromString("0.02")
)

// ComputeBill calcule la facture à partir des lignes du panier.
// Aucun arrondi ici : on arrondit seulement à l'affichage (voir Format).
// TotalItems est plafonné à math.MaxInt.
func ComputeBill(items []models.LineItem) models.Bill {
	bill := models.Bill{Subtotal: decimal.Zero}

	for _, item := range items {
		if bill.TotalItems > math.MaxInt-item.Quantity {
			bill.TotalItems = math.MaxInt
		} else {
			bill.TotalItems += item.Quantity
		}
		bill.Subtotal = bill.Subtotal.Add(item.Subtotal())
	}

	bill.DeliveryFee = DeliveryFee
	if bill.Subtotal.GreaterThan(FreeDeliveryThreshold) {
		bill.DeliveryFee = decimal.Zero
	}
	bill.PlatformFee = bill.Subtotal.Mul(PlatformFeeRate)
	bill.Total = bill.Subtotal.Add(bill.DeliveryFee).Add(bill.PlatformFee)

	return bill
}
