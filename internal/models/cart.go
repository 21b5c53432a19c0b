package models

import "github.com/shopspring/decimal"

// LineItem représente un produit présent dans le panier
type LineItem struct {
	ProductID ID              `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	VendorID  ID              `json:"vendorId"`
	Quantity  int             `json:"quantity"`
}

// Subtotal retourne prix unitaire × quantité
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Bill est le détail de facturation dérivé du panier, jamais stocké
type Bill struct {
	TotalItems  int             `json:"totalItems"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	PlatformFee decimal.Decimal `json:"platformFee"`
	Total       decimal.Decimal `json:"total"`
}

// View est ce que reçoit la couche de présentation après chaque changement
type View struct {
	Items []LineItem `json:"items"`
	Bill  Bill       `json:"bill"`
	Empty bool       `json:"empty"`
}
