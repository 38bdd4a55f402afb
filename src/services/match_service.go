package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campusmatch/Backend-Study-Match/src/matching"
	"github.com/campusmatch/Backend-Study-Match/src/models"
	"github.com/campusmatch/Backend-Study-Match/src/store"
)

// MatchService ranks collaboration candidates for a requester.
type MatchService struct {
	store store.UserStore
	log   *slog.Logger
}

func NewMatchService(st store.UserStore, log *slog.Logger) *MatchService {
	return &MatchService{store: st, log: log}
}

// FindMatches scores every eligible candidate against the requester and
// returns them sorted by score, highest first. Excluded from the candidate
// pool: the requester, existing connections, users who requested the
// requester, users the requester has requested, admins and inactive
// accounts. Candidates with a zero score are dropped.
//
// The ranking is a read-only snapshot; it may be stale against concurrent
// connection changes.
func (s *MatchService) FindMatches(ctx context.Context, requesterID primitive.ObjectID) ([]models.Match, error) {
	requester, err := s.store.ByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("looking up requester failed", "err", err)
		return nil, fmt.Errorf("find matches: %w", ErrInternal)
	}

	// Outgoing requests are only recorded on the recipients, so they are
	// found by a reverse scan over pendingConnections.
	sent, err := s.store.IDsWithPendingFrom(ctx, requesterID)
	if err != nil {
		s.log.Error("reverse pending scan failed", "err", err)
		return nil, fmt.Errorf("find matches: %w", ErrInternal)
	}

	excluded := make([]primitive.ObjectID, 0, 1+len(requester.Connections)+len(requester.PendingConnections)+len(sent))
	excluded = append(excluded, requesterID)
	excluded = append(excluded, requester.Connections...)
	excluded = append(excluded, requester.PendingConnections...)
	excluded = append(excluded, sent...)

	candidates, err := s.store.ActiveStudents(ctx, excluded)
	if err != nil {
		s.log.Error("candidate scan failed", "err", err)
		return nil, fmt.Errorf("find matches: %w", ErrInternal)
	}

	matches := []models.Match{}
	for i := range candidates {
		candidate := &candidates[i]
		result := matching.Score(
			requester.Interest, candidate.Interest,
			requester.Skills, candidate.Skills,
			requester.ProjectIdea, candidate.ProjectIdea,
		)
		if result.Score == 0 {
			continue
		}
		matches = append(matches, models.Match{
			User:          models.NewMatchProfile(candidate),
			MatchScore:    result.Score,
			MatchReasons:  result.Reasons,
			Compatibility: matching.Compatibility(result.Score),
		})
	}

	// Stable sort: equal scores keep candidate-scan encounter order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	return matches, nil
}
