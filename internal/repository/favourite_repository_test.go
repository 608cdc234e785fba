package repository

import (
	"context"
	"database/sql"
	"log"
	"testing"
	"time"

	"shopmesh/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var testDB *sql.DB

func setupTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, error) {
	var (
		dbName = "testdb"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:15",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), "5432/tcp")
	if err != nil {
		return dbContainer.Terminate, err
	}

	connStr := "postgres://" + dbUser + ":" + dbPwd + "@" + dbHost + ":" + dbPort.Port() + "/" + dbName + "?sslmode=disable"
	testDB, err = sql.Open("pgx", connStr)
	if err != nil {
		return dbContainer.Terminate, err
	}

	_, err = testDB.Exec(`
		CREATE TABLE IF NOT EXISTS favourites (
			user_id INTEGER NOT NULL,
			product_id INTEGER NOT NULL,
			like_date TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (user_id, product_id, like_date)
		)
	`)
	if err != nil {
		return dbContainer.Terminate, err
	}

	return dbContainer.Terminate, nil
}

func TestMain(m *testing.M) {
	teardown, err := setupTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Fatalf("could not teardown postgres container: %v", err)
		}
	}
}

// Property: a saved favourite is always retrievable by its exact
// composite key, and a second save of the same key is a no-op.
func TestProperty_FavouriteCompositeKeyRoundTrip(t *testing.T) {
	repo := NewFavouriteRepository(testDB)
	ctx := context.Background()

	properties := gopter.NewProperties(nil)

	properties.Property("save then find by composite key returns the row", prop.ForAll(
		func(userID int, productID int, hourOffset int) bool {
			likeDate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).
				Add(time.Duration(hourOffset) * time.Hour)
			id := domain.FavouriteID{UserID: userID, ProductID: productID, LikeDate: likeDate}

			_, _ = testDB.Exec(
				"DELETE FROM favourites WHERE user_id = $1 AND product_id = $2 AND like_date = $3",
				userID, productID, likeDate,
			)

			favourite := &domain.Favourite{UserID: userID, ProductID: productID, LikeDate: likeDate}
			if err := repo.Save(ctx, favourite); err != nil {
				t.Logf("Failed to save favourite: %v", err)
				return false
			}

			// Saving the same key again must not error or duplicate.
			if err := repo.Save(ctx, favourite); err != nil {
				t.Logf("Second save of the same key failed: %v", err)
				return false
			}

			found, err := repo.FindByID(ctx, id)
			if err != nil {
				t.Logf("Failed to find favourite by composite key: %v", err)
				return false
			}
			if found.UserID != userID || found.ProductID != productID {
				t.Logf("FAIL: retrieved a different row: %+v", found)
				return false
			}
			if !found.LikeDate.Equal(likeDate) {
				t.Logf("FAIL: like date changed in round trip: %v vs %v", found.LikeDate, likeDate)
				return false
			}
			return true
		},
		gen.IntRange(1, 10000),
		gen.IntRange(1, 10000),
		gen.IntRange(0, 8760),
	))

	properties.TestingRun(t)
}

func TestFavouriteFindByIDMissingKey(t *testing.T) {
	repo := NewFavouriteRepository(testDB)
	ctx := context.Background()

	missing := domain.FavouriteID{
		UserID:    999999,
		ProductID: 999999,
		LikeDate:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := repo.FindByID(ctx, missing)
	if err != ErrFavouriteNotFound {
		t.Fatalf("expected ErrFavouriteNotFound, got %v", err)
	}
}

func TestFavouriteDeleteByID(t *testing.T) {
	repo := NewFavouriteRepository(testDB)
	ctx := context.Background()

	likeDate := time.Date(2026, 6, 2, 12, 0, 0, 0, time.UTC)
	favourite := &domain.Favourite{UserID: 777, ProductID: 888, LikeDate: likeDate}
	if err := repo.Save(ctx, favourite); err != nil {
		t.Fatalf("failed to save favourite: %v", err)
	}

	id := favourite.ID()
	if err := repo.DeleteByID(ctx, id); err != nil {
		t.Fatalf("failed to delete favourite: %v", err)
	}

	if _, err := repo.FindByID(ctx, id); err != ErrFavouriteNotFound {
		t.Fatalf("expected ErrFavouriteNotFound after delete, got %v", err)
	}

	if err := repo.DeleteByID(ctx, id); err != ErrFavouriteNotFound {
		t.Fatalf("expected ErrFavouriteNotFound for double delete, got %v", err)
	}
}
