package models

import "encoding/json"

// OrderRequest est le corps envoyé à POST /create-order
type OrderRequest struct {
	Items []OrderItem `json:"items"`
}

type OrderItem struct {
	ProductID ID  `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// OrderResponse est la réponse du service de commandes.
// Un champ success absent vaut false.
type OrderResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Confirmation est l'état confirmé côté serveur, relu après une commande réussie
type Confirmation struct {
	OrderID ID              `json:"order_id,omitempty"`
	Status  string          `json:"status,omitempty"`
	Message string          `json:"message,omitempty"`
	Raw     json.RawMessage `json:"-"`
}
