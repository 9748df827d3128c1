package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/tripboard/internal/models"
)

type TripServiceInterface interface {
	GetTrip(ctx context.Context) (*models.Trip, error)
	ReplaceActivities(ctx context.Context, member *models.Member, activities []models.Activity) (*models.Trip, error)
}

type ActivityServiceInterface interface {
	List(ctx context.Context) ([]models.Activity, error)
	Create(ctx context.Context, creator *models.Member, params models.CreateActivityParams) (*models.Activity, []models.Activity, error)
	Update(ctx context.Context, member *models.Member, id string, patch models.ActivityPatch) (*models.Activity, error)
	Delete(ctx context.Context, member *models.Member, id string) error
}

type ReactionServiceInterface interface {
	ToggleLike(ctx context.Context, member *models.Member, activityID string, kind models.ReactionKind) (*models.Activity, error)
	ToggleReaction(ctx context.Context, member *models.Member, activityID, emoji string) (*models.Activity, error)
	CastVote(ctx context.Context, member *models.Member, activityID string, value models.VoteValue) (*models.Activity, error)
	RemoveVote(ctx context.Context, member *models.Member, activityID string) (*models.Activity, error)
}

type CommentServiceInterface interface {
	Add(ctx context.Context, author *models.Member, activityID, text string) (*models.Comment, *models.Activity, error)
	Edit(ctx context.Context, author *models.Member, activityID, commentID, text string) (*models.Comment, *models.Activity, error)
	Delete(ctx context.Context, author *models.Member, activityID, commentID string) (*models.Activity, error)
}

type AuthServiceInterface interface {
	Join(ctx context.Context, params JoinParams) (*models.Member, string, error)
	ValidateSession(ctx context.Context, token string) (*models.Member, error)
	Logout(ctx context.Context, token string) error
}

type InviteServiceInterface interface {
	CreateInvite(ctx context.Context, inviter *models.Member, baseURL string) (*Invite, error)
	SendInviteEmail(ctx context.Context, inviter *models.Member, baseURL, address string) error
}

type MemberServiceInterface interface {
	GetOrCreateByName(ctx context.Context, name string) (*models.Member, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
	List(ctx context.Context) ([]models.Member, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

var (
	_ TripServiceInterface     = (*TripService)(nil)
	_ ActivityServiceInterface = (*ActivityService)(nil)
	_ ReactionServiceInterface = (*ReactionService)(nil)
	_ CommentServiceInterface  = (*CommentService)(nil)
	_ AuthServiceInterface     = (*AuthService)(nil)
	_ InviteServiceInterface   = (*InviteService)(nil)
	_ MemberServiceInterface   = (*MemberService)(nil)
)
