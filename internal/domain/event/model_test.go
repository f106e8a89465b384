package event

import "testing"

func TestIsKnownSport(t *testing.T) {
	for _, sport := range []string{SportNFL, SportCollegeFootball, SportNBA, SportCollegeBasket, SportMLB} {
		if !IsKnownSport(sport) {
			t.Fatalf("expected %q to be known", sport)
		}
	}
	if IsKnownSport("curling") {
		t.Fatal("expected unknown sport to be rejected")
	}
	if !IsKnownSport(" NFL ") {
		t.Fatal("expected sport keys to normalize case and whitespace")
	}
}

func TestFiltersCacheKey(t *testing.T) {
	t.Run("bare query", func(t *testing.T) {
		got := Filters{}.CacheKey("espn", "nfl")
		if got != "events:espn:nfl" {
			t.Fatalf("unexpected key: %s", got)
		}
	})

	t.Run("all filters set", func(t *testing.T) {
		filters := Filters{Date: "20260905", Week: 2, Conference: "SEC", TeamID: "61"}
		got := filters.CacheKey("espn", "college-football")
		want := "events:espn:college-football:d=20260905:w=2:c=sec:t=61"
		if got != want {
			t.Fatalf("unexpected key: got=%s want=%s", got, want)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		filters := Filters{Date: "20260905", Week: 2}
		if filters.CacheKey("espn", "nfl") != filters.CacheKey("espn", "nfl") {
			t.Fatal("cache key must be deterministic")
		}
	})
}
