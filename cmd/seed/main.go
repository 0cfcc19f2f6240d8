package main

import (
	"context"
	"fmt"
	"math/rand"

	"hostelfinder/internal/config"
	"hostelfinder/internal/database"
	"hostelfinder/internal/domain"
	"hostelfinder/internal/logging"
	"hostelfinder/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var cities = []struct {
	name    string
	pincode string
}{
	{"Pune", "411001"},
	{"Bengaluru", "560001"},
	{"Mumbai", "400001"},
	{"Delhi", "110001"},
}

var amenityPool = []string{"wifi", "laundry", "ac", "meals", "parking", "gym", "study room"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: "console"})

	db, err := database.Connect(cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		logging.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("migration failed")
	}

	ctx := context.Background()

	// order matters for foreign keys
	logging.Info().Msg("cleaning old data")
	for _, table := range []string{"reviews", "bookings", "hostel_images", "hostel_amenities", "hostels", "amenities", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			logging.Fatal().Err(err).Str("table", table).Msg("cleanup failed")
		}
	}

	users := repository.NewUserRepository(db)
	hostels := repository.NewHostelRepository(db)
	reviews := repository.NewReviewRepository(db)

	newUser := func(name, email, password string, t domain.UserType) *domain.User {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			logging.Fatal().Err(err).Msg("hash password")
		}
		u := &domain.User{Name: name, Email: email, PasswordHash: string(hash), Phone: "9000000000", UserType: t}
		if err := users.Create(ctx, u); err != nil {
			logging.Fatal().Err(err).Str("email", email).Msg("create user")
		}
		return u
	}

	// ================== USERS ==================
	newUser("Administrator", "admin@hostelfinder.local", "admin12345", domain.UserAdmin)
	logging.Info().Msg("admin created: admin@hostelfinder.local / admin12345")

	owners := make([]*domain.User, 0, 2)
	for i := 1; i <= 2; i++ {
		owners = append(owners, newUser(fmt.Sprintf("Owner %d", i), fmt.Sprintf("owner%d@hostelfinder.local", i), "owner12345", domain.UserOwner))
	}

	seekers := make([]*domain.User, 0, 3)
	for i := 1; i <= 3; i++ {
		seekers = append(seekers, newUser(fmt.Sprintf("Seeker %d", i), fmt.Sprintf("seeker%d@hostelfinder.local", i), "seeker12345", domain.UserSeeker))
	}

	// ================== HOSTELS ==================
	created := make([]*domain.Hostel, 0, len(cities)*2)
	for i, city := range cities {
		for j := 0; j < 2; j++ {
			h := &domain.Hostel{
				OwnerID:        owners[(i+j)%len(owners)].ID,
				Name:           fmt.Sprintf("%s Stay %d", city.name, j+1),
				Location:       fmt.Sprintf("Main Road %d", 10+j),
				City:           city.name,
				Rent:           float64(4000 + rand.Intn(8)*500),
				Description:    "Furnished rooms close to colleges and offices",
				AvailableRooms: 2 + rand.Intn(6),
				Pincode:        city.pincode,
			}
			rand.Shuffle(len(amenityPool), func(a, b int) { amenityPool[a], amenityPool[b] = amenityPool[b], amenityPool[a] })
			if err := hostels.Create(ctx, h, amenityPool[:3]); err != nil {
				logging.Fatal().Err(err).Str("hostel", h.Name).Msg("create hostel")
			}
			created = append(created, h)
		}
	}

	// ================== REVIEWS ==================
	for _, h := range created {
		for _, s := range seekers[:1+rand.Intn(len(seekers))] {
			rv := &domain.Review{UserID: s.ID, HostelID: h.ID, Rating: 3 + rand.Intn(3), Comment: "Good value for the area"}
			if _, err := reviews.CreateAndRecompute(ctx, rv); err != nil {
				logging.Fatal().Err(err).Int64("hostel_id", h.ID).Msg("create review")
			}
		}
	}

	logging.Info().
		Int("owners", len(owners)).
		Int("seekers", len(seekers)).
		Int("hostels", len(created)).
		Msg("seed completed")
}
