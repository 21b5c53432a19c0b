package order

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"swiftcart/internal/models"
)

// Messages montrés à l'utilisateur
const (
	MsgEmptyCart   = "Cart is empty"
	MsgOrderFailed = "Order failed"
)

// ErrSubmissionInFlight : une commande est déjà en cours d'envoi
var ErrSubmissionInFlight = errors.New("order submission already in progress")

type State int

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Service est le contrat du service de commandes distant
type Service interface {
	CreateOrder(ctx context.Context, req models.OrderRequest) (models.OrderResponse, error)
}

// Result est l'issue d'un envoi. Message est vide en cas de succès.
type Result struct {
	Success bool
	Message string
	Err     error
}

// Submitter porte la machine à états Idle → Submitting → Idle
type Submitter struct {
	svc Service
	log *zap.Logger

	mu    sync.Mutex
	state State
}

func NewSubmitter(svc Service, log *zap.Logger) *Submitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Submitter{svc: svc, log: log}
}

func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Begin passe en Submitting, ou refuse si un envoi est déjà en cours
func (s *Submitter) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Submitting {
		return ErrSubmissionInFlight
	}
	s.state = Submitting
	return nil
}

// End revient à Idle, une fois la réponse entièrement traitée
func (s *Submitter) End() {
	s.mu.Lock()
	s.state = Idle
	s.mu.Unlock()
}

// BuildRequest sérialise les lignes dans l'ordre du panier
func BuildRequest(items []models.LineItem) models.OrderRequest {
	req := models.OrderRequest{Items: make([]models.OrderItem, 0, len(items))}
	for _, it := range items {
		req.Items = append(req.Items, models.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return req
}

// Send envoie un seul essai au service et interprète la réponse
func (s *Submitter) Send(ctx context.Context, items []models.LineItem) Result {
	req := BuildRequest(items)

	res, err := s.svc.CreateOrder(ctx, req)
	if err != nil {
		s.log.Error("❌ Échec envoi commande", zap.Int("lines", len(req.Items)), zap.Error(err))
		return Result{Message: MsgOrderFailed, Err: err}
	}

	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = MsgOrderFailed
		}
		s.log.Warn("⚠️ Commande refusée par le service", zap.String("error", msg))
		return Result{Message: msg}
	}

	s.log.Info("✅ Commande acceptée", zap.Int("lines", len(req.Items)))
	return Result{Success: true}
}
