package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"swiftcart/internal/billing"
	"swiftcart/internal/cart"
	"swiftcart/internal/models"
	"swiftcart/internal/order"
	"swiftcart/internal/session"
)

type itemResponse struct {
	models.LineItem
	LineTotal string `json:"lineTotal"`
}

type cartResponse struct {
	Items []itemResponse        `json:"items"`
	Bill  billing.FormattedBill `json:"bill"`
	Count int                   `json:"count"`
	Empty bool                  `json:"empty"`
}

func newCartResponse(view models.View) cartResponse {
	items := make([]itemResponse, 0, len(view.Items))
	for _, it := range view.Items {
		items = append(items, itemResponse{LineItem: it, LineTotal: billing.Money(it.Subtotal())})
	}
	return cartResponse{
		Items: items,
		Bill:  billing.Format(view.Bill),
		Count: len(view.Items),
		Empty: view.Empty,
	}
}

// CartHandler expose les commandes du panier à la couche de présentation
type CartHandler struct {
	session *session.Session
	log     *zap.Logger
}

func NewCartHandler(s *session.Session, log *zap.Logger) *CartHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartHandler{session: s, log: log}
}

// 🟢 GET /api/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, newCartResponse(h.session.View()))
}

// 🟢 POST /api/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var input struct {
		ProductID models.ID       `json:"productId" binding:"required"`
		Name      string          `json:"name" binding:"required"`
		Price     decimal.Decimal `json:"price"`
		VendorID  models.ID       `json:"vendorId"`
		Quantity  int             `json:"quantity" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix invalide"})
		return
	}

	view, err := h.session.AddOrMerge(c.Request.Context(), models.LineItem{
		ProductID: input.ProductID,
		Name:      input.Name,
		UnitPrice: input.Price,
		VendorID:  input.VendorID,
		Quantity:  input.Quantity,
	})
	h.respond(c, view, err)
}

// 🔁 PATCH /api/cart/items/:productId
func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	var input struct {
		Delta *int `json:"delta" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	view, err := h.session.ChangeQuantity(c.Request.Context(), models.ID(c.Param("productId")), *input.Delta)
	h.respond(c, view, err)
}

// ❌ DELETE /api/cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	view, err := h.session.Remove(c.Request.Context(), models.ID(c.Param("productId")))
	h.respond(c, view, err)
}

// 🧾 POST /api/cart/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	out, err := h.session.SubmitOrder(c.Request.Context())

	switch {
	case errors.Is(err, session.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": out.Message})
	case errors.Is(err, order.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Commande déjà en cours"})
	case errors.Is(err, session.ErrOrderRejected):
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": out.Message})
	case err != nil:
		h.log.Error("❌ Erreur commande", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": order.MsgOrderFailed})
	default:
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      out.Message,
			"confirmation": out.Confirmation,
			"cart":         newCartResponse(h.session.View()),
		})
	}
}

func (h *CartHandler) respond(c *gin.Context, view models.View, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, newCartResponse(view))
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
	case errors.Is(err, cart.ErrQuantityOverflow):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité trop grande"})
	case errors.Is(err, order.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "Commande en cours, panier verrouillé"})
	default:
		// le panier en mémoire fait foi, seule la sauvegarde a échoué
		h.log.Warn("⚠️ Panier modifié mais non sauvegardé", zap.Error(err))
		resp := newCartResponse(view)
		c.JSON(http.StatusOK, gin.H{
			"items":   resp.Items,
			"bill":    resp.Bill,
			"count":   resp.Count,
			"empty":   resp.Empty,
			"warning": "Panier non sauvegardé",
		})
	}
}

// GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "swiftcart"})
}
