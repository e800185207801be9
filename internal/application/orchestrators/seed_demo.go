package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	accountStore "fairway/internal/adapters/storage/account"
	"fairway/internal/domain/account"
	"fairway/internal/domain/practice"
	"fairway/internal/domain/shot"
)

// Demo account credentials for local development.
const (
	DemoEmail    = "demo@fairway.local"
	DemoPassword = "fairway-demo"
	DemoName     = "Demo Golfer"
)

// seedDemoDays is how far back seeded shots go.
const seedDemoDays = 21

// SeedDemoDeps holds stores needed for demo seeding.
type SeedDemoDeps struct {
	AccountStore  seedAccountStore
	ShotStore     seedShotStore
	PracticeStore PracticeStoreForPressure
	GenerateID    func() string
	Now           func() time.Time
}

type seedAccountStore interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

type seedShotStore interface {
	Save(ctx context.Context, s shot.Shot) error
}

// SeedDemoResult reports what was seeded.
type SeedDemoResult struct {
	AccountID string
	Created   bool
	Shots     int
}

// demoClub is the typical flight of one club for a mid-handicap player.
type demoClub struct {
	club      shot.Club
	carry     float64
	rollout   float64
	smash     float64
	spin      int
	launchDeg float64
}

var demoBag = []demoClub{
	{shot.ClubDriver, 225, 20, 1.46, 2700, 12.5},
	{shot.ClubWood3, 205, 14, 1.44, 3600, 11.5},
	{shot.ClubHybrid, 182, 9, 1.40, 4400, 13},
	{shot.ClubIron5, 170, 7, 1.38, 5100, 14},
	{shot.ClubIron7, 148, 5, 1.34, 6800, 17.5},
	{shot.ClubIron9, 127, 3, 1.28, 8300, 22},
	{shot.ClubWedgePW, 112, 2, 1.24, 9000, 25},
	{shot.ClubWedgeSW, 82, 1, 1.15, 9900, 31},
}

// ExecuteSeedDemo creates the demo account with three weeks of range sessions, putting sessions and one pressure game.
// It is idempotent: an existing demo account is left untouched.
// PRE: Database is migrated
// POST: DemoEmail exists; Created reports whether this call created it
func ExecuteSeedDemo(ctx context.Context, deps SeedDemoDeps) (SeedDemoResult, error) {
	existing, err := deps.AccountStore.GetByEmail(ctx, DemoEmail)
	if err == nil {
		return SeedDemoResult{AccountID: existing.ID}, nil
	}
	if !errors.Is(err, accountStore.ErrNotFound) {
		return SeedDemoResult{}, err
	}

	now := deps.Now().UTC()
	acct := account.Account{
		ID:        deps.GenerateID(),
		Name:      DemoName,
		Email:     DemoEmail,
		CreatedAt: now.AddDate(0, 0, -seedDemoDays),
	}
	if err := acct.SetPassword(DemoPassword); err != nil {
		return SeedDemoResult{}, err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return SeedDemoResult{}, fmt.Errorf("seed demo account: %w", err)
	}

	// fixed seed so every fresh database gets the same history
	rng := rand.New(rand.NewPCG(7, 18))
	count := 0

	for day := seedDemoDays; day > 0; day -= 3 {
		session := time.Date(now.Year(), now.Month(), now.Day(), 17, 30, 0, 0, time.UTC).AddDate(0, 0, -day)
		for i, dc := range demoBag {
			for n := 0; n < 4; n++ {
				s := demoSwing(rng, dc)
				s.ID = deps.GenerateID()
				s.UserID = acct.ID
				s.CreatedAt = session.Add(time.Duration(i*4+n) * time.Minute)
				if err := deps.ShotStore.Save(ctx, s); err != nil {
					return SeedDemoResult{}, fmt.Errorf("seed demo shot: %w", err)
				}
				count++
			}
		}
		for i, dist := range shot.StandardPuttDistances {
			s := demoPutting(rng, i, dist)
			s.ID = deps.GenerateID()
			s.UserID = acct.ID
			s.CreatedAt = session.Add(time.Hour + time.Duration(i)*10*time.Minute)
			if err := deps.ShotStore.Save(ctx, s); err != nil {
				return SeedDemoResult{}, fmt.Errorf("seed demo putting: %w", err)
			}
			count++
		}
	}

	game, err := ExecuteSavePressureGame(ctx, SavePressureInput{
		UserID: acct.ID,
		Score:  23.5,
		Rounds: 3,
		Details: []practice.PressureRound{
			{Club: "IRON_7", Target: 150, Actual: 146, Points: 8.5},
			{Club: "9i", Target: 125, Actual: 131, Points: 7},
			{Club: "PW", Target: 110, Actual: 109, Points: 8},
		},
	}, SavePressureDeps{
		PracticeStore: deps.PracticeStore,
		GenerateID:    deps.GenerateID,
		Now:           func() time.Time { return now.Add(-2 * time.Hour) },
	})
	if err != nil {
		return SeedDemoResult{}, err
	}
	count += len(game.Shots)

	slog.Info("seed_event", "event", "demo_seeded", "account_id", acct.ID, "shots", count)
	return SeedDemoResult{AccountID: acct.ID, Created: true, Shots: count}, nil
}

func demoSwing(rng *rand.Rand, dc demoClub) shot.Shot {
	carry := round1(dc.carry + rng.NormFloat64()*dc.carry*0.04)
	ballSpeed := round1(carry*0.62 + 18)
	clubSpeed := round1(ballSpeed / dc.smash)
	offline := round1(rng.NormFloat64() * carry * 0.06)

	result := "Green"
	if dc.club.Category() == shot.CategoryDriver {
		result = "Fairway"
	}
	switch {
	case offline > 15:
		result = "Right rough"
	case offline < -15:
		result = "Left rough"
	}

	return shot.Shot{
		Club:      dc.club,
		Carry:     carry,
		Total:     round1(carry + dc.rollout + rng.Float64()*4),
		BallSpeed: ballSpeed,
		ClubSpeed: clubSpeed,
		Smash:     math.Round(ballSpeed/clubSpeed*100) / 100,
		Spin:      dc.spin + rng.IntN(600) - 300,
		LaunchDeg: round1(dc.launchDeg + rng.NormFloat64()),
		OfflineM:  offline,
		Result:    result,
	}
}

func demoPutting(rng *rand.Rand, station int, dist string) shot.Shot {
	total := shot.DefaultPuttsPerSession
	perfect := 12 - station*3 + rng.IntN(4)
	good := 2 + rng.IntN(3)
	return shot.Shot{
		Club:         shot.ClubPutter,
		Distance:     dist,
		TotalPutts:   total,
		PerfectMakes: perfect,
		GoodMakes:    good,
		Misses:       total - perfect - good,
		Notes:        "Gate drill",
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
