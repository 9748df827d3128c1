package services

import (
	"context"
	"strings"
	"time"

	"github.com/HammerMeetNail/tripboard/internal/models"
)

type CommentService struct {
	store *TripStore
	now   func() time.Time
}

func NewCommentService(store *TripStore) *CommentService {
	return &CommentService{store: store, now: time.Now}
}

func (s *CommentService) Add(ctx context.Context, author *models.Member, activityID, text string) (*models.Comment, *models.Activity, error) {
	if err := models.ValidateCommentText(text); err != nil {
		return nil, nil, err
	}

	var (
		comment  models.Comment
		activity models.Activity
	)
	_, err := s.store.Update(ctx, func(trip *models.Trip) error {
		a, err := findActivity(trip, activityID)
		if err != nil {
			return err
		}
		comment = a.AddComment(author, text, s.now())
		activity = *a
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &comment, &activity, nil
}

func (s *CommentService) Edit(ctx context.Context, author *models.Member, activityID, commentID, text string) (*models.Comment, *models.Activity, error) {
	if err := models.ValidateCommentText(text); err != nil {
		return nil, nil, err
	}

	var (
		comment  models.Comment
		activity models.Activity
	)
	_, err := s.store.Update(ctx, func(trip *models.Trip) error {
		a, c, err := s.authorComment(trip, author, activityID, commentID)
		if err != nil {
			return err
		}
		now := s.now().UTC()
		c.Text = strings.TrimSpace(text)
		c.UpdatedAt = &now
		comment = *c
		activity = *a
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &comment, &activity, nil
}

func (s *CommentService) Delete(ctx context.Context, author *models.Member, activityID, commentID string) (*models.Activity, error) {
	var activity models.Activity
	_, err := s.store.Update(ctx, func(trip *models.Trip) error {
		a, _, err := s.authorComment(trip, author, activityID, commentID)
		if err != nil {
			return err
		}
		a.RemoveComment(commentID)
		activity = *a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (s *CommentService) authorComment(trip *models.Trip, author *models.Member, activityID, commentID string) (*models.Activity, *models.Comment, error) {
	a, err := findActivity(trip, activityID)
	if err != nil {
		return nil, nil, err
	}
	idx := a.CommentIndex(commentID)
	if idx < 0 {
		return nil, nil, ErrCommentNotFound
	}
	c := &a.Comments[idx]
	if !author.Owns(c.UserID, c.UserName) {
		return nil, nil, ErrNotCommentAuthor
	}
	return a, c, nil
}
