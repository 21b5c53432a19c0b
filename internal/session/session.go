package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"swiftcart/internal/billing"
	"swiftcart/internal/cart"
	"swiftcart/internal/models"
	"swiftcart/internal/order"
	"swiftcart/internal/store"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderRejected = errors.New("order rejected")
)

// Confirmer relit l'état confirmé par le serveur après une commande réussie
type Confirmer interface {
	FetchConfirmation(ctx context.Context) (models.Confirmation, error)
}

type Deps struct {
	Store     store.Store
	Service   order.Service
	Confirmer Confirmer
	Presenter Presenter
	Logger    *zap.Logger
}

// Outcome décrit le résultat d'une commande pour l'utilisateur
type Outcome struct {
	Success      bool
	Message      string
	Confirmation *models.Confirmation
}

// Session possède un panier et tout ce qui gravite autour : stockage,
// présentation et envoi de commande. Chaque mutation suit le même chemin :
// panier → facture → présentation → stockage.
type Session struct {
	mu        sync.Mutex
	ledger    *cart.Ledger
	store     store.Store
	submitter *order.Submitter
	confirmer Confirmer
	presenter Presenter
	log       *zap.Logger
}

// New recharge le panier depuis le stockage (une seule fois) et publie l'état initial
func New(ctx context.Context, deps Deps) *Session {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	presenter := deps.Presenter
	if presenter == nil {
		presenter = Presenters{}
	}

	items := deps.Store.Load(ctx)
	s := &Session{
		ledger:    cart.New(items...),
		store:     deps.Store,
		submitter: order.NewSubmitter(deps.Service, log),
		confirmer: deps.Confirmer,
		presenter: presenter,
		log:       log,
	}

	log.Info("🛒 Panier rechargé", zap.Int("lines", s.ledger.Len()))
	s.presenter.Refresh(s.view())
	return s
}

// AddOrMerge ajoute quantity unités du produit au panier
func (s *Session) AddOrMerge(ctx context.Context, item models.LineItem) (models.View, error) {
	return s.mutate(ctx, func(l *cart.Ledger) (bool, error) {
		if err := l.AddOrMerge(item); err != nil {
			return false, err
		}
		return true, nil
	})
}

// ChangeQuantity applique delta ; sans effet si le produit est absent
func (s *Session) ChangeQuantity(ctx context.Context, productID models.ID, delta int) (models.View, error) {
	return s.mutate(ctx, func(l *cart.Ledger) (bool, error) {
		return l.ChangeQuantity(productID, delta)
	})
}

// Remove retire le produit ; sans effet s'il est absent
func (s *Session) Remove(ctx context.Context, productID models.ID) (models.View, error) {
	return s.mutate(ctx, func(l *cart.Ledger) (bool, error) {
		return l.Remove(productID), nil
	})
}

func (s *Session) View() models.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) Snapshot() []models.LineItem {
	return s.ledger.Snapshot()
}

func (s *Session) Bill() models.Bill {
	return billing.ComputeBill(s.ledger.Snapshot())
}

// State expose l'état de la machine d'envoi
func (s *Session) State() order.State {
	return s.submitter.State()
}

// SubmitOrder envoie le panier au service de commandes.
// Succès : panier vidé, stockage vidé, présentation rafraîchie puis état serveur relu.
// Échec : panier et stockage intacts, message montré à l'utilisateur.
func (s *Session) SubmitOrder(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	if s.ledger.IsEmpty() {
		s.presenter.Notify(order.MsgEmptyCart)
		s.mu.Unlock()
		return Outcome{Message: order.MsgEmptyCart}, ErrEmptyCart
	}
	if err := s.submitter.Begin(); err != nil {
		s.mu.Unlock()
		return Outcome{}, err
	}
	items := s.ledger.Snapshot()
	s.mu.Unlock()

	defer s.submitter.End()

	res := s.submitter.Send(ctx, items)
	if !res.Success {
		s.mu.Lock()
		s.presenter.Notify(res.Message)
		s.mu.Unlock()
		return Outcome{Message: res.Message}, fmt.Errorf("%w: %s", ErrOrderRejected, res.Message)
	}

	s.mu.Lock()
	s.ledger.Clear()
	// la commande est acceptée : le stockage doit suivre même si l'appelant a abandonné
	if err := s.store.Clear(context.WithoutCancel(ctx)); err != nil {
		// la commande est passée : on le signale sans la faire échouer
		s.log.Error("❌ Impossible de vider le panier stocké", zap.Error(err))
	}
	s.presenter.Refresh(s.view())
	s.mu.Unlock()

	out := Outcome{Success: true}
	if s.confirmer != nil {
		conf, err := s.confirmer.FetchConfirmation(ctx)
		if err != nil {
			s.log.Warn("⚠️ Confirmation serveur indisponible", zap.Error(err))
			return out, nil
		}
		out.Confirmation = &conf
		out.Message = conf.Message
		s.presenter.Confirmed(conf)
	}
	return out, nil
}

func (s *Session) mutate(ctx context.Context, op func(*cart.Ledger) (bool, error)) (models.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitter.State() == order.Submitting {
		return s.view(), order.ErrSubmissionInFlight
	}

	changed, err := op(s.ledger)
	if err != nil {
		return s.view(), err
	}

	view := s.view()
	if !changed {
		return view, nil
	}

	s.presenter.Refresh(view)
	if err := s.store.Save(context.WithoutCancel(ctx), view.Items); err != nil {
		s.log.Error("❌ Sauvegarde du panier impossible", zap.Error(err))
		return view, fmt.Errorf("sauvegarde panier: %w", err)
	}
	return view, nil
}

func (s *Session) view() models.View {
	items := s.ledger.Snapshot()
	return models.View{
		Items: items,
		Bill:  billing.ComputeBill(items),
		Empty: len(items) == 0,
	}
}
