package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/HammerMeetNail/tripboard/internal/models"
)

func newTestCommentService(t *testing.T) *CommentService {
	t.Helper()
	store, _ := newTestStore()
	seedActivities(t, store, models.Activity{ID: "a1", Title: "Dinner"})
	svc := NewCommentService(store)
	svc.now = func() time.Time { return time.Date(2026, 2, 11, 20, 0, 0, 0, time.UTC) }
	return svc
}

func TestCommentService_AddEditDelete(t *testing.T) {
	svc := newTestCommentService(t)
	alice := testMember("Alice")
	ctx := context.Background()

	comment, activity, err := svc.Add(ctx, alice, "a1", "  Book a table ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if comment.Text != "Book a table" || comment.UserID != alice.ID.String() {
		t.Fatalf("unexpected comment %+v", comment)
	}
	if len(activity.Comments) != 1 {
		t.Fatalf("expected comment on activity, got %+v", activity.Comments)
	}

	edited, _, err := svc.Edit(ctx, alice, "a1", comment.ID, "Booked for 8pm")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Text != "Booked for 8pm" || edited.UpdatedAt == nil {
		t.Fatalf("unexpected edited comment %+v", edited)
	}

	activity, err = svc.Delete(ctx, alice, "a1", comment.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(activity.Comments) != 0 {
		t.Fatalf("expected no comments, got %+v", activity.Comments)
	}
}

func TestCommentService_OnlyAuthorMayChange(t *testing.T) {
	svc := newTestCommentService(t)
	alice, bob := testMember("Alice"), testMember("Bob")
	ctx := context.Background()

	comment, _, _ := svc.Add(ctx, alice, "a1", "mine")

	if _, _, err := svc.Edit(ctx, bob, "a1", comment.ID, "yours now"); !errors.Is(err, ErrNotCommentAuthor) {
		t.Fatalf("expected ErrNotCommentAuthor on edit, got %v", err)
	}
	if _, err := svc.Delete(ctx, bob, "a1", comment.ID); !errors.Is(err, ErrNotCommentAuthor) {
		t.Fatalf("expected ErrNotCommentAuthor on delete, got %v", err)
	}
}

func TestCommentService_Errors(t *testing.T) {
	svc := newTestCommentService(t)
	alice := testMember("Alice")
	ctx := context.Background()

	if _, _, err := svc.Add(ctx, alice, "a1", "   "); !errors.Is(err, models.ErrCommentRequired) {
		t.Fatalf("expected ErrCommentRequired, got %v", err)
	}
	if _, _, err := svc.Add(ctx, alice, "missing", "hi"); !errors.Is(err, ErrActivityNotFound) {
		t.Fatalf("expected ErrActivityNotFound, got %v", err)
	}
	if _, err := svc.Delete(ctx, alice, "a1", "nope"); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}
