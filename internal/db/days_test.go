// ABOUTME: Tests for users, day aggregates, goals, and profiles.
// ABOUTME: Includes a concurrent increment check for atomicity.
package db

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/harperreed/pullups/internal/models"
)

func TestCreateUserAndLookup(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "Ada")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if u.ID == "" || u.Token == "" {
		t.Fatal("expected id and token to be set")
	}

	got, err := UserByToken(ctx, db, u.Token)
	if err != nil {
		t.Fatalf("UserByToken failed: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("UserByToken ID = %s, want %s", got.ID, u.ID)
	}

	p, err := GetProfile(ctx, db, u.ID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p == nil || p.Name != "Ada" {
		t.Errorf("GetProfile = %+v, want Ada", p)
	}
}

func TestUserByTokenUnknown(t *testing.T) {
	db := setupTestDB(t)

	_, err := UserByToken(context.Background(), db, "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UserByToken error = %v, want ErrNotFound", err)
	}
}

func TestCreateUserWithoutName(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	p, err := GetProfile(ctx, db, u.ID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p != nil {
		t.Errorf("expected no profile, got %+v", p)
	}
}

func TestIncrementAndGetDay(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	u := setupTestUser(t, db)

	if s, err := GetDay(ctx, db, u.ID, 100); err != nil || s != nil {
		t.Fatalf("GetDay on empty = %+v, %v; want nil, nil", s, err)
	}

	total, err := IncrementDay(ctx, db, u.ID, 100, 5)
	if err != nil {
		t.Fatalf("IncrementDay failed: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	total, err = IncrementDay(ctx, db, u.ID, 100, 7)
	if err != nil {
		t.Fatalf("IncrementDay failed: %v", err)
	}
	if total != 12 {
		t.Errorf("total = %d, want 12", total)
	}

	s, err := GetDay(ctx, db, u.ID, 100)
	if err != nil {
		t.Fatalf("GetDay failed: %v", err)
	}
	if *s != (models.DayStats{Reps: 12, Sets: 2}) {
		t.Errorf("GetDay = %+v, want {12 2}", *s)
	}

	// Other days and users are untouched.
	if s, _ := GetDay(ctx, db, u.ID, 101); s != nil {
		t.Errorf("expected no stats for another day, got %+v", s)
	}
	other := setupTestUser(t, db)
	if s, _ := GetDay(ctx, db, other.ID, 100); s != nil {
		t.Errorf("expected no stats for another user, got %+v", s)
	}
}

func TestIncrementDayConcurrent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	u := setupTestUser(t, db)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := IncrementDay(ctx, db, u.ID, 7, 3); err != nil {
				t.Errorf("IncrementDay failed: %v", err)
			}
		}()
	}
	wg.Wait()

	s, err := GetDay(ctx, db, u.ID, 7)
	if err != nil {
		t.Fatalf("GetDay failed: %v", err)
	}
	if s.Reps != 60 || s.Sets != 20 {
		t.Errorf("GetDay = %+v, want {60 20}", *s)
	}
}

func TestListDays(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	u := setupTestUser(t, db)

	days, err := ListDays(ctx, db, u.ID)
	if err != nil {
		t.Fatalf("ListDays failed: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("expected no days, got %d", len(days))
	}

	for _, stamp := range []int64{30, 10, 20} {
		if _, err := IncrementDay(ctx, db, u.ID, stamp, stamp); err != nil {
			t.Fatalf("IncrementDay failed: %v", err)
		}
	}

	days, err = ListDays(ctx, db, u.ID)
	if err != nil {
		t.Fatalf("ListDays failed: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	for i, want := range []int64{10, 20, 30} {
		if days[i].DayStamp != want || days[i].Reps != want {
			t.Errorf("days[%d] = %+v, want stamp/reps %d", i, days[i], want)
		}
	}
}

func TestGoals(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	u := setupTestUser(t, db)

	if g, err := GetGoal(ctx, db, u.ID, 5); err != nil || g != nil {
		t.Fatalf("GetGoal on empty = %v, %v", g, err)
	}

	if err := SetGoal(ctx, db, u.ID, 5, 50); err != nil {
		t.Fatalf("SetGoal failed: %v", err)
	}
	if err := SetGoal(ctx, db, u.ID, 5, 60); err != nil {
		t.Fatalf("SetGoal overwrite failed: %v", err)
	}
	g, err := GetGoal(ctx, db, u.ID, 5)
	if err != nil || g == nil || *g != 60 {
		t.Fatalf("GetGoal = %v, %v; want 60", g, err)
	}

	// A goal belongs to its day only.
	if g, _ := GetGoal(ctx, db, u.ID, 6); g != nil {
		t.Errorf("expected no goal on another day, got %d", *g)
	}

	// Zero clears.
	if err := SetGoal(ctx, db, u.ID, 5, 0); err != nil {
		t.Fatalf("SetGoal(0) failed: %v", err)
	}
	if g, _ := GetGoal(ctx, db, u.ID, 5); g != nil {
		t.Errorf("expected goal cleared, got %d", *g)
	}
}

func TestSaveProfile(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	u, _ := CreateUser(ctx, db, "first")

	if err := SaveProfile(ctx, db, u.ID, models.Profile{Name: "second"}); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	p, err := GetProfile(ctx, db, u.ID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p.Name != "second" {
		t.Errorf("Name = %s, want second", p.Name)
	}
}
