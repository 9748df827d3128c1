package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/HammerMeetNail/tripboard/internal/models"
	"github.com/HammerMeetNail/tripboard/internal/services"
)

func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

type fakeTrips struct {
	trip     *models.Trip
	migrated int
	resets   int
	err      error
}

func (f *fakeTrips) GetTrip(ctx context.Context) (*models.Trip, error) {
	return f.trip, f.err
}

func (f *fakeTrips) MigrateLegacyReactions(ctx context.Context) (int, error) {
	return f.migrated, f.err
}

func (f *fakeTrips) Reset(ctx context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.resets++
	return nil
}

type fakeMembers struct {
	list    []models.Member
	removed []uuid.UUID
	err     error
}

func (f *fakeMembers) List(ctx context.Context) ([]models.Member, error) {
	return f.list, f.err
}

func (f *fakeMembers) Remove(ctx context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.removed = append(f.removed, id)
	return nil
}

type fakeSchema struct {
	ups, downs int
	closed     bool
	upErr      error
}

func (f *fakeSchema) Up() error {
	f.ups++
	return f.upErr
}

func (f *fakeSchema) Down() error {
	f.downs++
	return nil
}

func (f *fakeSchema) Version() (uint, bool, error) { return 3, false, nil }

func (f *fakeSchema) Close() error {
	f.closed = true
	return nil
}

func testBackends(trips *fakeTrips, members *fakeMembers, schema *fakeSchema) (*backends, *int) {
	closes := 0
	closeFn := func() { closes++ }
	return &backends{
		trip: func(ctx context.Context) (tripAdmin, func(), error) {
			return trips, closeFn, nil
		},
		members: func(ctx context.Context) (memberAdmin, func(), error) {
			return members, closeFn, nil
		},
		migrator: func() (schemaAdmin, error) {
			return schema, nil
		},
	}, &closes
}

func lisbonTrip(t *testing.T) *models.Trip {
	t.Helper()
	trip, err := models.NewTrip("Lisbon Trip", "2026-02-11", "2026-02-12", models.LocaleEnglish)
	if err != nil {
		t.Fatalf("new trip: %v", err)
	}
	trip.Activities = []models.Activity{{
		ID:          "a1",
		Title:       "Pastéis de nata",
		Day:         "2026-02-12",
		CreatorName: "Alice",
		Votes:       []models.Vote{{UserName: "Bob", Vote: models.VoteYes}},
	}}
	return trip
}

func TestMigrateUp(t *testing.T) {
	schema := &fakeSchema{}
	b, _ := testBackends(nil, nil, schema)

	out, err := executeCommand(newRootCmd(b), "migrate", "up")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schema.ups != 1 || !schema.closed {
		t.Fatalf("expected one up and a close, got %+v", schema)
	}
	if !strings.Contains(out, "schema version 3") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestMigrateUp_Error(t *testing.T) {
	schema := &fakeSchema{upErr: errors.New("dirty database")}
	b, _ := testBackends(nil, nil, schema)

	_, err := executeCommand(newRootCmd(b), "migrate", "up")
	if err == nil || !strings.Contains(err.Error(), "migrating up") {
		t.Fatalf("expected wrapped migrate error, got %v", err)
	}
	if !schema.closed {
		t.Fatal("expected migrator to be closed on error")
	}
}

func TestMigrateDown(t *testing.T) {
	schema := &fakeSchema{}
	b, _ := testBackends(nil, nil, schema)

	if _, err := executeCommand(newRootCmd(b), "migrate", "down"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schema.downs != 1 || schema.ups != 0 {
		t.Fatalf("expected one down, got %+v", schema)
	}
}

func TestTripShow(t *testing.T) {
	b, closes := testBackends(&fakeTrips{trip: lisbonTrip(t)}, nil, nil)

	out, err := executeCommand(newRootCmd(b), "trip", "show")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Lisbon Trip (2 days, 1 activities)", "Pastéis de nata", "by Alice", "1 yes / 0 no"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if *closes != 1 {
		t.Fatalf("expected store to be closed once, got %d", *closes)
	}
}

func TestTripShow_JSON(t *testing.T) {
	b, _ := testBackends(&fakeTrips{trip: lisbonTrip(t)}, nil, nil)

	out, err := executeCommand(newRootCmd(b), "trip", "show", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"tripName": "Lisbon Trip"`) {
		t.Fatalf("expected indented JSON, got:\n%s", out)
	}
}

func TestTripShow_Error(t *testing.T) {
	loadErr := errors.New("redis unavailable")
	b, _ := testBackends(&fakeTrips{err: loadErr}, nil, nil)

	if _, err := executeCommand(newRootCmd(b), "trip", "show"); !errors.Is(err, loadErr) {
		t.Fatalf("expected trip error, got %v", err)
	}
}

func TestTripReset_RequiresConfirmation(t *testing.T) {
	trips := &fakeTrips{}
	b, _ := testBackends(trips, nil, nil)

	if _, err := executeCommand(newRootCmd(b), "trip", "reset"); err == nil {
		t.Fatal("expected reset without --yes to fail")
	}
	if trips.resets != 0 {
		t.Fatal("expected no reset")
	}

	out, err := executeCommand(newRootCmd(b), "trip", "reset", "--yes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trips.resets != 1 || !strings.Contains(out, "trip reset") {
		t.Fatalf("expected one reset, got %d (%q)", trips.resets, out)
	}
}

func TestTripMigrateReactions(t *testing.T) {
	b, _ := testBackends(&fakeTrips{migrated: 4}, nil, nil)

	out, err := executeCommand(newRootCmd(b), "trip", "migrate-reactions")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "migrated 4 activities") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestMembersList(t *testing.T) {
	id := uuid.MustParse("2f1f6c0e-7f38-4c44-9a2c-0d6a3f3a9b11")
	members := &fakeMembers{list: []models.Member{{
		ID:       id,
		Name:     "Søren",
		JoinedAt: time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
	}}}
	b, _ := testBackends(nil, members, nil)

	out, err := executeCommand(newRootCmd(b), "members", "list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got:\n%s", out)
	}
	if got := strings.Fields(lines[1]); !cmp.Equal(got, []string{id.String(), "Søren", "2026-02-01", "09:30"}) {
		t.Fatalf("unexpected row: %s", cmp.Diff([]string{id.String(), "Søren", "2026-02-01", "09:30"}, got))
	}
}

func TestMembersRemove(t *testing.T) {
	members := &fakeMembers{}
	b, _ := testBackends(nil, members, nil)
	id := uuid.New()

	if _, err := executeCommand(newRootCmd(b), "members", "remove", id.String()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]uuid.UUID{id}, members.removed); diff != "" {
		t.Fatalf("removed mismatch (-want +got):\n%s", diff)
	}
}

func TestMembersRemove_Errors(t *testing.T) {
	b, _ := testBackends(nil, &fakeMembers{err: services.ErrMemberNotFound}, nil)

	if _, err := executeCommand(newRootCmd(b), "members", "remove", "not-a-uuid"); err == nil || !strings.Contains(err.Error(), "invalid member id") {
		t.Fatalf("expected invalid id error, got %v", err)
	}
	if _, err := executeCommand(newRootCmd(b), "members", "remove", uuid.NewString()); !errors.Is(err, services.ErrMemberNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := executeCommand(newRootCmd(b), "members", "remove"); err == nil {
		t.Fatal("expected missing argument error")
	}
}
