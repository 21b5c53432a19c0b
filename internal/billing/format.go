package billing

import (
	"github.com/shopspring/decimal"

	"swiftcart/internal/models"
)

const CurrencySymbol = "₹"

// FormattedBill est la facture prête à afficher (2 décimales)
type FormattedBill struct {
	TotalItems  int    `json:"totalItems"`
	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"deliveryFee"`
	PlatformFee string `json:"platformFee"`
	Total       string `json:"total"`
}

func Format(b models.Bill) FormattedBill {
	return FormattedBill{
		TotalItems:  b.TotalItems,
		Subtotal:    Money(b.Subtotal),
		DeliveryFee: Money(b.DeliveryFee),
		PlatformFee: Money(b.PlatformFee),
		Total:       Money(b.Total),
	}
}

// Money formate un montant avec le symbole monétaire, ex. ₹106.60
func Money(d decimal.Decimal) string {
	return CurrencySymbol + d.StringFixed(2)
}
