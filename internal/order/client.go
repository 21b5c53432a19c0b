package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"swiftcart/internal/models"
)

const (
	CreateOrderPath = "/create-order"
	RequestIDHeader = "X-Request-ID"

	// taille max lue dans une réponse du service
	maxResponseBytes = 1 << 20
)

// Client parle au service de commandes distant
type Client struct {
	baseURL          string
	confirmationPath string
	cookie           string
	http             *http.Client
	log              *zap.Logger
}

type ClientOption func(*Client)

// WithHTTPClient remplace le client HTTP (tests, transport custom)
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithCookie ajoute l'en-tête Cookie de la session boutique à chaque appel
func WithCookie(cookie string) ClientOption {
	return func(c *Client) { c.cookie = cookie }
}

// WithConfirmationPath change le chemin relu après une commande réussie
func WithConfirmationPath(path string) ClientOption {
	return func(c *Client) { c.confirmationPath = path }
}

func WithLogger(log *zap.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// NewClient crée un client. Pas de timeout ni de retry : un essai par action utilisateur,
// borné uniquement par le contexte de l'appelant.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:          baseURL,
		confirmationPath: "/orders/latest",
		http:             &http.Client{},
		log:              zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateOrder envoie la commande. Le corps est décodé quel que soit le statut HTTP,
// le service répond {error} avec des 4xx. Une erreur n'est renvoyée que si aucune
// réponse exploitable n'a été reçue.
func (c *Client) CreateOrder(ctx context.Context, req models.OrderRequest) (models.OrderResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.OrderResponse{}, fmt.Errorf("encodage commande: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+CreateOrderPath, bytes.NewReader(body))
	if err != nil {
		return models.OrderResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	requestID := c.decorate(httpReq)

	res, err := c.http.Do(httpReq)
	if err != nil {
		return models.OrderResponse{}, fmt.Errorf("envoi commande: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return models.OrderResponse{}, fmt.Errorf("lecture réponse commande: %w", err)
	}

	var out models.OrderResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return models.OrderResponse{}, fmt.Errorf("réponse commande illisible (HTTP %d): %w", res.StatusCode, err)
	}

	c.log.Debug("📦 Réponse service commandes",
		zap.String("request_id", requestID),
		zap.Int("status", res.StatusCode),
		zap.Bool("success", out.Success),
	)
	return out, nil
}

// FetchConfirmation relit l'état confirmé par le serveur après une commande
func (c *Client) FetchConfirmation(ctx context.Context) (models.Confirmation, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.confirmationPath, nil)
	if err != nil {
		return models.Confirmation{}, err
	}
	httpReq.Header.Set("Accept", "application/json")
	c.decorate(httpReq)

	res, err := c.http.Do(httpReq)
	if err != nil {
		return models.Confirmation{}, fmt.Errorf("lecture confirmation: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return models.Confirmation{}, fmt.Errorf("lecture confirmation: HTTP %d", res.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return models.Confirmation{}, fmt.Errorf("lecture confirmation: %w", err)
	}

	var conf models.Confirmation
	if err := json.Unmarshal(raw, &conf); err != nil {
		return models.Confirmation{}, fmt.Errorf("confirmation illisible: %w", err)
	}
	conf.Raw = raw
	return conf, nil
}

func (c *Client) decorate(req *http.Request) string {
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}
	return requestID
}
