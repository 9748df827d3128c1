package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/tripboard/internal/models"
	"github.com/HammerMeetNail/tripboard/internal/services"
)

type mockTripService struct {
	services.TripServiceInterface
	GetTripFunc           func(ctx context.Context) (*models.Trip, error)
	ReplaceActivitiesFunc func(ctx context.Context, member *models.Member, activities []models.Activity) (*models.Trip, error)
}

func (m *mockTripService) GetTrip(ctx context.Context) (*models.Trip, error) {
	return m.GetTripFunc(ctx)
}

func (m *mockTripService) ReplaceActivities(ctx context.Context, member *models.Member, activities []models.Activity) (*models.Trip, error) {
	return m.ReplaceActivitiesFunc(ctx, member, activities)
}

type mockActivityService struct {
	services.ActivityServiceInterface
	ListFunc   func(ctx context.Context) ([]models.Activity, error)
	CreateFunc func(ctx context.Context, creator *models.Member, params models.CreateActivityParams) (*models.Activity, []models.Activity, error)
	UpdateFunc func(ctx context.Context, member *models.Member, id string, patch models.ActivityPatch) (*models.Activity, error)
	DeleteFunc func(ctx context.Context, member *models.Member, id string) error
}

func (m *mockActivityService) List(ctx context.Context) ([]models.Activity, error) {
	return m.ListFunc(ctx)
}

func (m *mockActivityService) Create(ctx context.Context, creator *models.Member, params models.CreateActivityParams) (*models.Activity, []models.Activity, error) {
	return m.CreateFunc(ctx, creator, params)
}

func (m *mockActivityService) Update(ctx context.Context, member *models.Member, id string, patch models.ActivityPatch) (*models.Activity, error) {
	return m.UpdateFunc(ctx, member, id, patch)
}

func (m *mockActivityService) Delete(ctx context.Context, member *models.Member, id string) error {
	return m.DeleteFunc(ctx, member, id)
}

type mockReactionService struct {
	services.ReactionServiceInterface
	ToggleLikeFunc     func(ctx context.Context, member *models.Member, activityID string, kind models.ReactionKind) (*models.Activity, error)
	ToggleReactionFunc func(ctx context.Context, member *models.Member, activityID, emoji string) (*models.Activity, error)
	CastVoteFunc       func(ctx context.Context, member *models.Member, activityID string, value models.VoteValue) (*models.Activity, error)
	RemoveVoteFunc     func(ctx context.Context, member *models.Member, activityID string) (*models.Activity, error)
}

func (m *mockReactionService) ToggleLike(ctx context.Context, member *models.Member, activityID string, kind models.ReactionKind) (*models.Activity, error) {
	return m.ToggleLikeFunc(ctx, member, activityID, kind)
}

func (m *mockReactionService) ToggleReaction(ctx context.Context, member *models.Member, activityID, emoji string) (*models.Activity, error) {
	return m.ToggleReactionFunc(ctx, member, activityID, emoji)
}

func (m *mockReactionService) CastVote(ctx context.Context, member *models.Member, activityID string, value models.VoteValue) (*models.Activity, error) {
	return m.CastVoteFunc(ctx, member, activityID, value)
}

func (m *mockReactionService) RemoveVote(ctx context.Context, member *models.Member, activityID string) (*models.Activity, error) {
	return m.RemoveVoteFunc(ctx, member, activityID)
}

type mockCommentService struct {
	services.CommentServiceInterface
	AddFunc    func(ctx context.Context, author *models.Member, activityID, text string) (*models.Comment, *models.Activity, error)
	EditFunc   func(ctx context.Context, author *models.Member, activityID, commentID, text string) (*models.Comment, *models.Activity, error)
	DeleteFunc func(ctx context.Context, author *models.Member, activityID, commentID string) (*models.Activity, error)
}

func (m *mockCommentService) Add(ctx context.Context, author *models.Member, activityID, text string) (*models.Comment, *models.Activity, error) {
	return m.AddFunc(ctx, author, activityID, text)
}

func (m *mockCommentService) Edit(ctx context.Context, author *models.Member, activityID, commentID, text string) (*models.Comment, *models.Activity, error) {
	return m.EditFunc(ctx, author, activityID, commentID, text)
}

func (m *mockCommentService) Delete(ctx context.Context, author *models.Member, activityID, commentID string) (*models.Activity, error) {
	return m.DeleteFunc(ctx, author, activityID, commentID)
}

type mockAuthService struct {
	services.AuthServiceInterface
	JoinFunc   func(ctx context.Context, params services.JoinParams) (*models.Member, string, error)
	LogoutFunc func(ctx context.Context, token string) error
}

func (m *mockAuthService) Join(ctx context.Context, params services.JoinParams) (*models.Member, string, error) {
	return m.JoinFunc(ctx, params)
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	return m.LogoutFunc(ctx, token)
}

type mockInviteService struct {
	services.InviteServiceInterface
	CreateInviteFunc    func(ctx context.Context, inviter *models.Member, baseURL string) (*services.Invite, error)
	SendInviteEmailFunc func(ctx context.Context, inviter *models.Member, baseURL, address string) error
}

func (m *mockInviteService) CreateInvite(ctx context.Context, inviter *models.Member, baseURL string) (*services.Invite, error) {
	return m.CreateInviteFunc(ctx, inviter, baseURL)
}

func (m *mockInviteService) SendInviteEmail(ctx context.Context, inviter *models.Member, baseURL, address string) error {
	return m.SendInviteEmailFunc(ctx, inviter, baseURL, address)
}

func testMember() *models.Member {
	return &models.Member{ID: uuid.New(), Name: "Alice"}
}

func assertErrorResponse(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("expected status %d, got %d (body %q)", status, rr.Code, rr.Body.String())
	}
	var resp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if resp.Error != message {
		t.Fatalf("expected error %q, got %q", message, resp.Error)
	}
}
