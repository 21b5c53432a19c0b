package store

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"swiftcart/internal/models"
)

// record est la forme persistée d'une ligne : { id, name, price, vendor_id, quantity }
type record struct {
	ID       models.ID   `json:"id"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	VendorID models.ID   `json:"vendor_id"`
	Quantity int         `json:"quantity"`
}

// Encode sérialise les lignes dans l'ordre du panier
func Encode(items []models.LineItem) ([]byte, error) {
	records := make([]record, 0, len(items))
	for _, it := range items {
		records = append(records, record{
			ID:       it.ProductID,
			Name:     it.Name,
			Price:    json.Number(it.UnitPrice.String()),
			VendorID: it.VendorID,
			Quantity: it.Quantity,
		})
	}
	return json.Marshal(records)
}

// Decode relit une entrée persistée
func Decode(data []byte) ([]models.LineItem, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("décodage panier: %w", err)
	}

	items := make([]models.LineItem, 0, len(records))
	for i, r := range records {
		price, err := decimal.NewFromString(r.Price.String())
		if err != nil {
			return nil, fmt.Errorf("prix invalide pour la ligne %d: %w", i, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("prix négatif pour la ligne %d", i)
		}
		items = append(items, models.LineItem{
			ProductID: r.ID,
			Name:      r.Name,
			UnitPrice: price,
			VendorID:  r.VendorID,
			Quantity:  r.Quantity,
		})
	}
	return items, nil
}
