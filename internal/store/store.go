package store

import (
	"context"

	"swiftcart/internal/models"
)

// Store conserve le panier sous une clé fixe.
// Load ne remonte jamais d'erreur : une entrée absente ou illisible donne un panier vide.
// Save avec un panier vide supprime l'entrée au lieu d'écrire une liste vide.
type Store interface {
	Load(ctx context.Context) []models.LineItem
	Save(ctx context.Context, items []models.LineItem) error
	Clear(ctx context.Context) error
}
