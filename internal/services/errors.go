package services

import "errors"

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCreator       = errors.New("only the creator can change this activity")
	ErrNotCommentAuthor = errors.New("only the author can change this comment")
	ErrInvalidDay       = errors.New("day is not part of the trip")
	ErrDayRequired      = errors.New("day is required")
	ErrInvalidEmoji     = errors.New("invalid emoji")
	ErrInvalidReaction  = errors.New("reaction type must be like or dislike")
	ErrInvalidVote      = errors.New("vote must be yes or no")
	ErrInvalidActivity  = errors.New("invalid activity")

	ErrMemberNotFound   = errors.New("member not found")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrInvalidInvite    = errors.New("invalid or expired invite")
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrEmailUnavailable = errors.New("email delivery is not configured")
)
