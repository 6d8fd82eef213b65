package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pokenihongo/admin-console/internal/domain"
)

// Create validates sub, posts it and invalidates the screen's cached pages.
func (r *Registry) Create(ctx context.Context, role domain.Role, screen string, sub Submission) (json.RawMessage, error) {
	s, payload, err := r.prepare(screen, role, sub)
	if err != nil {
		return nil, err
	}

	data, err := r.client.Create(ctx, s.Path(), payload)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.Name(), err)
	}

	r.mutated(ctx, s, "created", "")
	return data, nil
}

// Update validates sub and replaces record id.
func (r *Registry) Update(ctx context.Context, role domain.Role, screen, id string, sub Submission) (json.RawMessage, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("id", "required")
	}
	s, payload, err := r.prepare(screen, role, sub)
	if err != nil {
		return nil, err
	}

	data, err := r.client.Update(ctx, s.Path(), id, payload)
	if err != nil {
		return nil, fmt.Errorf("update %s %s: %w", s.Name(), id, err)
	}

	r.mutated(ctx, s, "updated", id)
	return data, nil
}

// Delete removes record id.
func (r *Registry) Delete(ctx context.Context, role domain.Role, screen, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewValidationError("id", "required")
	}
	s, err := r.Guard(screen, role)
	if err != nil {
		return err
	}

	if err := r.client.Delete(ctx, s.Path(), id); err != nil {
		return fmt.Errorf("delete %s %s: %w", s.Name(), id, err)
	}

	r.mutated(ctx, s, "deleted", id)
	return nil
}

// prepare guards the screen, builds the payload and validates it.
func (r *Registry) prepare(screen string, role domain.Role, sub Submission) (Screen, any, error) {
	s, err := r.Guard(screen, role)
	if err != nil {
		return nil, nil, err
	}
	if !s.CanCreate() {
		return nil, nil, fmt.Errorf("%s: %w", s.Name(), domain.ErrNotSupported)
	}

	payload, err := s.payload(sub)
	if err != nil {
		return nil, nil, err
	}
	if err := r.validate.Struct(payload); err != nil {
		return nil, nil, toValidationError(err)
	}
	return s, payload, nil
}

func (r *Registry) mutated(ctx context.Context, s Screen, verb, id string) {
	n := r.Invalidate(ctx, s.Name())
	r.log.InfoContext(ctx, s.Title()+" "+verb,
		slog.String("screen", s.Name()),
		slog.String("id", id),
		slog.Int("invalidated", n),
	)
}
