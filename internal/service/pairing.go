package service

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/akyairhashvil/cohortops/internal/database"
	"github.com/akyairhashvil/cohortops/internal/models"
	"go.uber.org/zap"
)

// PairingHistoryEntry is one pairing seen from a member's side.
type PairingHistoryEntry struct {
	Pairing   models.Pairing `json:"pairing"`
	PartnerID int64          `json:"partner_id"`
}

// PairingMatcher creates coffee-chat pairings. Selection is greedy and
// uniformly random among eligible partners; the exclusion set is read
// inside the same transaction that writes the new pairings.
type PairingMatcher struct {
	repo  database.PairingRepository
	scope database.ExclusionScope
	log   *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPairingMatcher uses rng for partner selection; a nil rng is seeded
// from the runtime's random source.
func NewPairingMatcher(repo database.PairingRepository, scope database.ExclusionScope, rng *rand.Rand, log *zap.Logger) *PairingMatcher {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &PairingMatcher{repo: repo, scope: scope, rng: rng, log: named(log, "pairing")}
}

// Request pairs memberID with a random eligible member of memberIDs.
func (m *PairingMatcher) Request(ctx context.Context, sprintID, memberID int64, memberIDs []int64) (models.Pairing, error) {
	pool := uniqueIDs(memberIDs)
	if !slices.Contains(pool, memberID) {
		return models.Pairing{}, invalid("member_id", "member %d is not in the cohort", memberID)
	}
	created, err := m.repo.CreatePairings(ctx, sprintID, m.scope, func(excluded models.ExclusionSet) ([]database.PairPlan, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		partner, err := PickPartner(m.rng, memberID, pool, excluded)
		if err != nil {
			return nil, err
		}
		return []database.PairPlan{{MemberA: memberID, MemberB: partner}}, nil
	})
	if err != nil {
		return models.Pairing{}, err
	}
	p := created[0]
	m.log.Info("pairing created",
		zap.Int64("pairing_id", p.ID), zap.Int64("sprint_id", sprintID),
		zap.Int64("member_a", p.MemberA), zap.Int64("member_b", p.MemberB))
	return p, nil
}

// GenerateRound pairs the whole cohort for a sprint. Members left without
// an eligible partner, including the odd one out, are reported as unpaired.
func (m *PairingMatcher) GenerateRound(ctx context.Context, sprintID int64, memberIDs []int64) (models.RoundResult, error) {
	pool := uniqueIDs(memberIDs)
	var unpaired []int64
	created, err := m.repo.CreatePairings(ctx, sprintID, m.scope, func(excluded models.ExclusionSet) ([]database.PairPlan, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		var plans []database.PairPlan
		plans, unpaired = PlanRound(m.rng, pool, excluded)
		return plans, nil
	})
	if err != nil {
		return models.RoundResult{}, err
	}
	m.log.Info("pairing round generated",
		zap.Int64("sprint_id", sprintID), zap.Int("pairs", len(created)), zap.Int("unpaired", len(unpaired)))
	return models.RoundResult{SprintID: sprintID, Pairings: created, Unpaired: unpaired}, nil
}

// PickPartner chooses uniformly among pool members other than self that
// excluded does not forbid.
func PickPartner(rng *rand.Rand, self int64, pool []int64, excluded models.ExclusionSet) (int64, error) {
	candidates := make([]int64, 0, len(pool))
	for _, id := range pool {
		if id != self && !excluded.Excludes(self, id) {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return 0, ErrNoAvailablePartner
	}
	return candidates[rng.IntN(len(candidates))], nil
}

// PlanRound shuffles pool and repeatedly pairs the next member with a random
// eligible partner, removing both and recording the pair in excluded.
func PlanRound(rng *rand.Rand, pool []int64, excluded models.ExclusionSet) ([]database.PairPlan, []int64) {
	remaining := slices.Clone(pool)
	rng.Shuffle(len(remaining), func(i, j int) { remaining[i], remaining[j] = remaining[j], remaining[i] })

	var plans []database.PairPlan
	var unpaired []int64
	for len(remaining) > 0 {
		self := remaining[0]
		remaining = remaining[1:]
		partner, err := PickPartner(rng, self, remaining, excluded)
		if err != nil {
			unpaired = append(unpaired, self)
			continue
		}
		remaining = slices.DeleteFunc(remaining, func(id int64) bool { return id == partner })
		excluded.Add(self, partner)
		plans = append(plans, database.PairPlan{MemberA: self, MemberB: partner})
	}
	return plans, unpaired
}

func (m *PairingMatcher) Schedule(ctx context.Context, pairingID int64, at time.Time) (models.Pairing, error) {
	if at.IsZero() {
		return models.Pairing{}, invalid("scheduled_at", "is required")
	}
	return m.repo.SchedulePairing(ctx, pairingID, at)
}

func (m *PairingMatcher) MarkCompleted(ctx context.Context, pairingID int64, notes string) (models.Pairing, error) {
	p, err := m.repo.CompletePairing(ctx, pairingID, notes)
	if err != nil {
		return models.Pairing{}, err
	}
	m.log.Info("pairing completed", zap.Int64("pairing_id", pairingID))
	return p, nil
}

func (m *PairingMatcher) MarkSkipped(ctx context.Context, pairingID int64) (models.Pairing, error) {
	p, err := m.repo.SkipPairing(ctx, pairingID)
	if err != nil {
		return models.Pairing{}, err
	}
	m.log.Info("pairing skipped", zap.Int64("pairing_id", pairingID))
	return p, nil
}

func (m *PairingMatcher) Get(ctx context.Context, pairingID int64) (models.Pairing, error) {
	return m.repo.GetPairing(ctx, pairingID)
}

// CurrentFor returns the member's open pairing for the sprint, or nil.
func (m *PairingMatcher) CurrentFor(ctx context.Context, memberID, sprintID int64) (*models.Pairing, error) {
	return m.repo.CurrentPairing(ctx, memberID, sprintID)
}

// History lists every pairing involving the member, newest first.
func (m *PairingMatcher) History(ctx context.Context, memberID int64) ([]PairingHistoryEntry, error) {
	pairings, err := m.repo.MemberPairings(ctx, memberID)
	if err != nil {
		return nil, err
	}
	out := make([]PairingHistoryEntry, 0, len(pairings))
	for _, p := range pairings {
		partner, _ := p.Partner(memberID)
		out = append(out, PairingHistoryEntry{Pairing: p, PartnerID: partner})
	}
	return out, nil
}

func (m *PairingMatcher) ForSprint(ctx context.Context, sprintID int64) ([]models.Pairing, error) {
	return m.repo.SprintPairings(ctx, sprintID)
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
