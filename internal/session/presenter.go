package session

import (
	"go.uber.org/zap"

	"swiftcart/internal/billing"
	"swiftcart/internal/models"
)

// Presenter est la couche d'affichage. Elle reçoit l'état après chaque changement
// et ne doit pas rappeler la session de façon synchrone.
type Presenter interface {
	Refresh(view models.View)
	Notify(message string)
	Confirmed(conf models.Confirmation)
}

// Presenters diffuse vers plusieurs présentations
type Presenters []Presenter

func (ps Presenters) Refresh(view models.View) {
	for _, p := range ps {
		p.Refresh(view)
	}
}

func (ps Presenters) Notify(message string) {
	for _, p := range ps {
		p.Notify(message)
	}
}

func (ps Presenters) Confirmed(conf models.Confirmation) {
	for _, p := range ps {
		p.Confirmed(conf)
	}
}

// LogPresenter trace les rafraîchissements dans les logs
type LogPresenter struct {
	Log *zap.Logger
}

func (p LogPresenter) Refresh(view models.View) {
	bill := billing.Format(view.Bill)
	p.Log.Debug("🛒 Panier mis à jour",
		zap.Int("lines", len(view.Items)),
		zap.Int("items", bill.TotalItems),
		zap.String("total", bill.Total),
	)
}

func (p LogPresenter) Notify(message string) {
	p.Log.Info("🔔 Message utilisateur", zap.String("message", message))
}

func (p LogPresenter) Confirmed(conf models.Confirmation) {
	p.Log.Info("🎉 Commande confirmée",
		zap.String("order_id", conf.OrderID.String()),
		zap.String("status", conf.Status),
	)
}
