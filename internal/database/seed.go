package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/iliyamo/cricket-ticket-booking/internal/repository"
	"github.com/iliyamo/cricket-ticket-booking/internal/seatmap"
)

// SeedAdmin creates the admin account if no ADMIN user exists yet. The
// password comes from SEED_ADMIN_PASSWORD so no credential is baked in.
func SeedAdmin(ctx context.Context, db *sql.DB, bcryptCost int) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = 'ADMIN'`).Scan(&n); err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return nil
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Println("seed: SEED_ADMIN_PASSWORD not set, skipping admin account")
		return nil
	}
	users := repository.NewUserRepo(db)
	if _, err := users.Create(ctx, "Admin", "admin@example.com", "", password, "ADMIN", bcryptCost); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Println("seed: created admin@example.com")
	return nil
}

type seedMatch struct {
	team1, team2 int // indexes into the seeded team slice
	stadium      int // index into the seeded stadium slice
	daysAhead    int
	price        uint32
}

// SeedDemoData populates teams, stadiums, matches and seat grids so the
// storefront has something to show out of the box. It is a no-op when the
// teams table already has rows. Seat grids are rolled with the demo
// generator, so part of each stand starts out taken.
func SeedDemoData(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams`).Scan(&n); err != nil {
		return fmt.Errorf("count teams: %w", err)
	}
	if n > 0 {
		return nil
	}

	teamRepo := repository.NewTeamRepo(db)
	stadiumRepo := repository.NewStadiumRepo(db)
	matchRepo := repository.NewMatchRepo(db)
	seatRepo := repository.NewMatchSeatRepo(db)

	teams := []*repository.Team{
		{Name: "Mumbai Indians", Coach: "Mahela Jayawardene", Captain: "Hardik Pandya"},
		{Name: "Chennai Super Kings", Coach: "Stephen Fleming", Captain: "Ruturaj Gaikwad"},
		{Name: "Royal Challengers Bengaluru", Coach: "Andy Flower", Captain: "Rajat Patidar"},
		{Name: "Kolkata Knight Riders", Coach: "Chandrakant Pandit", Captain: "Ajinkya Rahane"},
		{Name: "Delhi Capitals", Coach: "Hemang Badani", Captain: "Axar Patel"},
		{Name: "Rajasthan Royals", Coach: "Rahul Dravid", Captain: "Sanju Samson"},
	}
	for _, t := range teams {
		if err := teamRepo.Create(ctx, t); err != nil {
			return fmt.Errorf("seed team %q: %w", t.Name, err)
		}
	}

	stadiums := []*repository.Stadium{
		{Name: "Wankhede Stadium", Location: "Mumbai", Capacity: 33108},
		{Name: "M. A. Chidambaram Stadium", Location: "Chennai", Capacity: 50000},
		{Name: "Eden Gardens", Location: "Kolkata", Capacity: 66000},
		{Name: "Arun Jaitley Stadium", Location: "Delhi", Capacity: 35200},
	}
	for _, s := range stadiums {
		if err := stadiumRepo.Create(ctx, s); err != nil {
			return fmt.Errorf("seed stadium %q: %w", s.Name, err)
		}
	}

	fixtures := []seedMatch{
		{team1: 0, team2: 1, stadium: 0, daysAhead: 7, price: 1500},
		{team1: 2, team2: 3, stadium: 2, daysAhead: 10, price: 1800},
		{team1: 4, team2: 5, stadium: 3, daysAhead: 13, price: 1200},
		{team1: 0, team2: 2, stadium: 0, daysAhead: 16, price: 2000},
		{team1: 1, team2: 3, stadium: 1, daysAhead: 19, price: 1700},
		{team1: 4, team2: 0, stadium: 3, daysAhead: 22, price: 1900},
	}
	for _, f := range fixtures {
		// evening start at 19:30 UTC
		startsAt := time.Now().UTC().AddDate(0, 0, f.daysAhead).Truncate(24 * time.Hour).
			Add(19*time.Hour + 30*time.Minute)

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("seed match tx: %w", err)
		}
		committed := false
		rollback := func() {
			if !committed {
				_ = tx.Rollback()
			}
		}

		m := &repository.Match{
			Team1ID:     teams[f.team1].ID,
			Team2ID:     teams[f.team2].ID,
			StadiumID:   stadiums[f.stadium].ID,
			StartsAt:    startsAt,
			TicketPrice: f.price,
			Status:      "SCHEDULED",
		}
		if err := matchRepo.CreateTx(ctx, tx, m); err != nil {
			rollback()
			return fmt.Errorf("seed match: %w", err)
		}

		grid := make([]repository.MatchSeat, 0, seatmap.TotalSeats)
		for _, seat := range seatmap.Generate(m.ID, m.StadiumID) {
			grid = append(grid, repository.MatchSeat{SeatLabel: seat.Label, Status: seat.Status})
		}
		if err := seatRepo.CreateBulkTx(ctx, tx, m.ID, m.StadiumID, grid); err != nil {
			rollback()
			return fmt.Errorf("seed seats: %w", err)
		}

		if err := tx.Commit(); err != nil {
			rollback()
			return fmt.Errorf("seed match commit: %w", err)
		}
		committed = true
	}

	log.Printf("seed: created %d teams, %d stadiums, %d matches", len(teams), len(stadiums), len(fixtures))
	return nil
}
