package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campusmatch/Backend-Study-Match/src/models"
	"github.com/campusmatch/Backend-Study-Match/src/store"
)

const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

// ConnectionService drives the request/accept/reject state machine. A
// request from A to B lives only in B's pendingConnections; accepting makes
// the pair a member of each other's connections, rejecting erases the
// request without a trace so A may try again later.
type ConnectionService struct {
	store store.UserStore
	log   *slog.Logger
}

func NewConnectionService(st store.UserStore, log *slog.Logger) *ConnectionService {
	return &ConnectionService{store: st, log: log}
}

// SendRequest records a pending request from requester on the target's
// document after checking every precondition of the state machine.
func (s *ConnectionService) SendRequest(ctx context.Context, requesterID, targetID primitive.ObjectID) error {
	if requesterID == targetID {
		return fmt.Errorf("%w: cannot send a connection request to yourself", ErrInvalidTransition)
	}

	target, err := s.store.ByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("looking up target failed", "err", err)
		return fmt.Errorf("send request: %w", ErrInternal)
	}
	if !target.IsActive {
		return fmt.Errorf("%w: target user is not active", ErrInvalidTransition)
	}

	requester, err := s.store.ByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("looking up requester failed", "err", err)
		return fmt.Errorf("send request: %w", ErrInternal)
	}

	if requester.HasConnection(targetID) {
		return fmt.Errorf("%w: already connected with this user", ErrInvalidTransition)
	}
	if target.HasPendingFrom(requesterID) {
		return fmt.Errorf("%w: connection request already sent", ErrInvalidTransition)
	}
	if requester.HasPendingFrom(targetID) {
		return fmt.Errorf("%w: this user has already sent you a connection request", ErrInvalidTransition)
	}

	if err := s.store.AddToSet(ctx, targetID, store.FieldPendingConnections, requesterID); err != nil {
		s.log.Error("recording pending request failed", "err", err)
		return fmt.Errorf("send request: %w", ErrInternal)
	}
	return nil
}

// Respond settles a pending request addressed to responder. Accept connects
// both users symmetrically; reject only clears the pending entry.
func (s *ConnectionService) Respond(ctx context.Context, responderID, requesterID primitive.ObjectID, decision string) error {
	if decision != DecisionAccept && decision != DecisionReject {
		return ErrInvalidDecision
	}

	if _, err := s.store.ByID(ctx, requesterID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("looking up requester failed", "err", err)
		return fmt.Errorf("respond: %w", ErrInternal)
	}

	responder, err := s.store.ByID(ctx, responderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("looking up responder failed", "err", err)
		return fmt.Errorf("respond: %w", ErrInternal)
	}

	if !responder.HasPendingFrom(requesterID) {
		return fmt.Errorf("%w: no pending connection request from this user", ErrInvalidTransition)
	}

	if decision == DecisionReject {
		if err := s.store.RemoveFromSet(ctx, responderID, store.FieldPendingConnections, requesterID); err != nil {
			s.log.Error("clearing pending request failed", "err", err)
			return fmt.Errorf("respond: %w", ErrInternal)
		}
		return nil
	}

	return s.accept(ctx, responderID, requesterID)
}

// accept runs the cross-record update as a saga: the responder's document is
// settled first, then the requester's. If the requester-side write fails the
// responder-side changes are compensated so no one-sided connection remains.
func (s *ConnectionService) accept(ctx context.Context, responderID, requesterID primitive.ObjectID) error {
	if err := s.store.RemoveFromSet(ctx, responderID, store.FieldPendingConnections, requesterID); err != nil {
		s.log.Error("clearing pending request failed", "err", err)
		return fmt.Errorf("accept: %w", ErrInternal)
	}

	if err := s.store.AddToSet(ctx, responderID, store.FieldConnections, requesterID); err != nil {
		s.log.Error("adding responder connection failed", "err", err)
		s.compensate(ctx, responderID, store.FieldPendingConnections, requesterID, true)
		return fmt.Errorf("accept: %w", ErrInternal)
	}

	if err := s.store.AddToSet(ctx, requesterID, store.FieldConnections, responderID); err != nil {
		s.log.Error("adding requester connection failed", "err", err)
		s.compensate(ctx, responderID, store.FieldConnections, requesterID, false)
		s.compensate(ctx, responderID, store.FieldPendingConnections, requesterID, true)
		return fmt.Errorf("accept: %w", ErrInternal)
	}

	return nil
}

// compensate reverts a single set update, logging when the rollback itself
// fails since manual cleanup is then required.
func (s *ConnectionService) compensate(ctx context.Context, id primitive.ObjectID, field store.SetField, value primitive.ObjectID, add bool) {
	var err error
	if add {
		err = s.store.AddToSet(ctx, id, field, value)
	} else {
		err = s.store.RemoveFromSet(ctx, id, field, value)
	}
	if err != nil {
		s.log.Error("rollback failed, state may be inconsistent",
			"user_id", id.Hex(), "field", string(field), "value", value.Hex(), "err", err)
	}
}

// ConnectionsOf returns the profiles the user is connected with.
func (s *ConnectionService) ConnectionsOf(ctx context.Context, userID primitive.ObjectID) ([]models.User, error) {
	user, err := s.store.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("looking up user failed", "err", err)
		return nil, fmt.Errorf("connections: %w", ErrInternal)
	}

	users, err := s.store.ByIDs(ctx, user.Connections)
	if err != nil {
		s.log.Error("loading connections failed", "err", err)
		return nil, fmt.Errorf("connections: %w", ErrInternal)
	}
	return users, nil
}

// PendingRequesters returns the profiles that have an undecided request to
// the user.
func (s *ConnectionService) PendingRequesters(ctx context.Context, userID primitive.ObjectID) ([]models.User, error) {
	user, err := s.store.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("looking up user failed", "err", err)
		return nil, fmt.Errorf("pending requesters: %w", ErrInternal)
	}

	users, err := s.store.ByIDs(ctx, user.PendingConnections)
	if err != nil {
		s.log.Error("loading pending requesters failed", "err", err)
		return nil, fmt.Errorf("pending requesters: %w", ErrInternal)
	}
	return users, nil
}
