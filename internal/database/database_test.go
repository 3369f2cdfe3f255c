package database_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"geofeed/internal/database"
	"geofeed/internal/domain"
)

var cologne = domain.GeoPoint{Lat: 50.94133, Lon: 6.95812}

func newTestDatabase(t *testing.T) *database.Database {
	t.Helper()

	db, err := database.New(context.Background(), filepath.Join(t.TempDir(), "db.sqlite"), slog.Default())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})

	places := []domain.Place{
		{ID: 1, Name: "Kölner Dom", FeatureCode: "CH", Location: cologne},
		{ID: 2, Name: "Hotel Far", FeatureCode: "HTL", Location: domain.GeoPoint{Lat: 50.95, Lon: 6.97}},
		{ID: 3, Name: "Hotel Near", FeatureCode: "HTL", Location: domain.GeoPoint{Lat: 50.9415, Lon: 6.9585}},
		{ID: 4, Name: "Bahnhof", FeatureCode: "RSTN", Location: domain.GeoPoint{Lat: 50.9430, Lon: 6.9590}},
		{ID: 5, Name: "Hotel Middle", FeatureCode: "HTL", Location: domain.GeoPoint{Lat: 50.944, Lon: 6.962}},
	}

	if err = db.InsertPlaces(context.Background(), places); err != nil {
		t.Fatalf("insert places: %v", err)
	}

	return db
}

func TestFindLandmarksMatchesRegexp(t *testing.T) {
	db := newTestDatabase(t)

	got, err := db.FindLandmarks(context.Background(), "Köln.*Dom", 5)
	if err != nil {
		t.Fatalf("find landmarks: %v", err)
	}

	if len(got) != 1 || got[0].Name != "Kölner Dom" {
		t.Fatalf("unexpected landmarks: %+v", got)
	}

	if got[0].Location != cologne {
		t.Fatalf("unexpected location: %+v", got[0].Location)
	}
}

func TestFindLandmarksRespectsLimit(t *testing.T) {
	db := newTestDatabase(t)

	got, err := db.FindLandmarks(context.Background(), "^Hotel", 2)
	if err != nil {
		t.Fatalf("find landmarks: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 landmarks, got %d", len(got))
	}
}

func TestFindLandmarksInvalidPattern(t *testing.T) {
	db := newTestDatabase(t)

	if _, err := db.FindLandmarks(context.Background(), "(", 5); err == nil {
		t.Fatalf("expected error for invalid pattern")
	}
}

func TestNearestPlacesOrderedByDistance(t *testing.T) {
	db := newTestDatabase(t)

	got, err := db.NearestPlaces(context.Background(), cologne, "HTL", 10)
	if err != nil {
		t.Fatalf("nearest places: %v", err)
	}

	want := []string{"Hotel Near", "Hotel Middle", "Hotel Far"}
	if len(got) != len(want) {
		t.Fatalf("expected %d places, got %d", len(want), len(got))
	}

	for i := range want {
		if got[i].Name != want[i] {
			t.Fatalf("unexpected place at index %d: got %q want %q", i, got[i].Name, want[i])
		}

		if i > 0 && got[i].Distance < got[i-1].Distance {
			t.Fatalf("distances are not ascending: %+v", got)
		}
	}
}

func TestNearestPlacesRespectsLimit(t *testing.T) {
	db := newTestDatabase(t)

	got, err := db.NearestPlaces(context.Background(), cologne, "HTL", 1)
	if err != nil {
		t.Fatalf("nearest places: %v", err)
	}

	if len(got) != 1 || got[0].Name != "Hotel Near" {
		t.Fatalf("unexpected places: %+v", got)
	}
}

func TestInsertPlacesReplacesByID(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	renamed := domain.Place{ID: 3, Name: "Hotel Renamed", FeatureCode: "HTL", Location: domain.GeoPoint{Lat: 50.9415, Lon: 6.9585}}
	if err := db.InsertPlaces(ctx, []domain.Place{renamed}); err != nil {
		t.Fatalf("insert places: %v", err)
	}

	got, err := db.NearestPlaces(ctx, cologne, "HTL", 10)
	if err != nil {
		t.Fatalf("nearest places: %v", err)
	}

	if len(got) != 3 || got[0].Name != "Hotel Renamed" {
		t.Fatalf("unexpected places after replace: %+v", got)
	}
}

func TestNewIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.sqlite")

	for range 2 {
		db, err := database.New(context.Background(), path, slog.Default())
		if err != nil {
			t.Fatalf("open database: %v", err)
		}

		if err = db.Close(); err != nil {
			t.Fatalf("close database: %v", err)
		}
	}
}
