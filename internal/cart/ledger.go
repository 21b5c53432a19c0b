package cart

import (
	"errors"
	"math"
	"sync"

	"swiftcart/internal/models"
)

// ErrInvalidQuantity est renvoyée quand on ajoute moins d'une unité
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// ErrQuantityOverflow : la nouvelle quantité ne tient pas dans un int
var ErrQuantityOverflow = errors.New("quantity too large")

// Ledger est le panier en mémoire : une liste ordonnée de lignes, unique par produit.
// Toutes les lignes ont une quantité >= 1.
type Ledger struct {
	mu    sync.RWMutex
	items []models.LineItem
}

// New crée un panier, éventuellement à partir de lignes rechargées depuis le stockage.
// Les lignes à quantité <= 0 sont ignorées et les doublons fusionnés
// (plafonnés à math.MaxInt).
func New(items ...models.LineItem) *Ledger {
	l := &Ledger{}
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if i := l.indexOf(it.ProductID); i >= 0 {
			if q, ok := addQuantity(l.items[i].Quantity, it.Quantity); ok {
				l.items[i].Quantity = q
			} else {
				l.items[i].Quantity = math.MaxInt
			}
			continue
		}
		l.items = append(l.items, it)
	}
	return l
}

// AddOrMerge ajoute un produit ou incrémente la quantité d'une ligne existante.
// Sur une ligne existante, nom, prix et vendeur d'origine sont conservés.
func (l *Ledger) AddOrMerge(item models.LineItem) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexOf(item.ProductID); i >= 0 {
		// 0 sur une ligne existante : fusion sans effet
		if item.Quantity < 0 {
			return ErrInvalidQuantity
		}
		q, ok := addQuantity(l.items[i].Quantity, item.Quantity)
		if !ok {
			return ErrQuantityOverflow
		}
		l.items[i].Quantity = q
		return nil
	}

	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}
	l.items = append(l.items, item)
	return nil
}

// ChangeQuantity applique delta à la ligne ; une quantité résultante <= 0 supprime la ligne.
// Retourne false si le produit n'est pas dans le panier ; en cas de dépassement
// la ligne reste inchangée.
func (l *Ledger) ChangeQuantity(productID models.ID, delta int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(productID)
	if i < 0 {
		return false, nil
	}

	q, ok := addQuantity(l.items[i].Quantity, delta)
	if !ok {
		return false, ErrQuantityOverflow
	}
	if q <= 0 {
		l.removeAt(i)
		return true, nil
	}
	l.items[i].Quantity = q
	return true, nil
}

// Remove supprime la ligne si elle existe
func (l *Ledger) Remove(productID models.ID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(productID)
	if i < 0 {
		return false
	}
	l.removeAt(i)
	return true
}

// Clear vide le panier
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}

// Snapshot retourne une copie des lignes, dans l'ordre d'insertion
func (l *Ledger) Snapshot() []models.LineItem {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Get retourne la ligne d'un produit
func (l *Ledger) Get(productID models.ID) (models.LineItem, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i := l.indexOf(productID); i >= 0 {
		return l.items[i], true
	}
	return models.LineItem{}, false
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

func (l *Ledger) IsEmpty() bool {
	return l.Len() == 0
}

func (l *Ledger) indexOf(productID models.ID) int {
	for i := range l.items {
		if l.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// addQuantity additionne deux quantités, ok=false en cas de dépassement
func addQuantity(q, delta int) (int, bool) {
	if delta > 0 && q > math.MaxInt-delta {
		return 0, false
	}
	if delta < 0 && q < math.MinInt-delta {
		return 0, false
	}
	return q + delta, true
}

func (l *Ledger) removeAt(i int) {
	l.items = append(l.items[:i], l.items[i+1:]...)
}
