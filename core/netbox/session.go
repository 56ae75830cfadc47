package netbox

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Session is an authenticated connection to NetBox acquired once per run.
type Session struct {
	Client *Client

	logger *zap.Logger
	// provisionedID is the id of a token created by Open, 0 for static tokens.
	provisionedID int
}

// Open authenticates against NetBox and verifies it is reachable.
// A static token takes priority over username/password. Any failure here means the run
// cannot start, so it is wrapped with ErrUnreachable.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.HasToken() && !cfg.HasCredentials() {
		return nil, ErrNoCredentials
	}

	client, err := NewClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	sess := &Session{Client: client, logger: logger}

	if !cfg.HasToken() {
		var tok provisionedToken
		body := map[string]any{"username": cfg.Username, "password": cfg.Password}
		if err := client.do(ctx, http.MethodPost, "/api/users/tokens/provision/", body, &tok); err != nil {
			return nil, fmt.Errorf("%w: failed to provision token for %s: %w", ErrUnreachable, cfg.Username, err)
		}
		client.SetToken(tok.Key)
		sess.provisionedID = tok.ID
		logger.Info("Provisioned temporary NetBox token", zap.String("username", cfg.Username), zap.Int("token_id", tok.ID))
	}

	if err := client.Status(ctx); err != nil {
		sess.Close(ctx)
		return nil, fmt.Errorf("%w: status check failed: %w", ErrUnreachable, err)
	}

	return sess, nil
}

// Close deletes a provisioned token. It is safe to call more than once.
func (s *Session) Close(ctx context.Context) {
	if s == nil || s.provisionedID == 0 {
		return
	}

	path := fmt.Sprintf("/api/users/tokens/%d/", s.provisionedID)
	if err := s.Client.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		s.logger.Warn("Failed to delete provisioned token", zap.Int("token_id", s.provisionedID), zap.Error(err))
		return
	}
	s.logger.Info("Deleted temporary NetBox token", zap.Int("token_id", s.provisionedID))
	s.provisionedID = 0
}
