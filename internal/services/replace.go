package services

import (
	"fmt"
	"strings"

	"github.com/HammerMeetNail/tripboard/internal/models"
)

// mergeActivity checks one client-supplied activity against the stored copy
// (nil for a new one) and returns what gets written.
func mergeActivity(trip *models.Trip, stored *models.Activity, in models.Activity, member *models.Member) (models.Activity, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)

	if err := in.ValidateDetails(); err != nil {
		return models.Activity{}, err
	}
	if in.Day == "" {
		return models.Activity{}, ErrDayRequired
	}
	if !trip.HasDay(in.Day) {
		return models.Activity{}, ErrInvalidDay
	}

	if stored == nil {
		if !member.Owns(in.CreatorID, in.CreatorName) {
			return models.Activity{}, fmt.Errorf("%w: %q", ErrNotCreator, in.ID)
		}
		stored = &models.Activity{ID: in.ID}
		stored.Normalize()
	} else {
		if !in.SameCreator(stored) {
			return models.Activity{}, fmt.Errorf("%w: %q", ErrNotCreator, in.ID)
		}
		if !member.Owns(stored.CreatorID, stored.CreatorName) && !in.SameDetails(stored) {
			return models.Activity{}, fmt.Errorf("%w: %q", ErrNotCreator, in.ID)
		}
	}

	out := in
	var err error
	if out.Likes, out.Dislikes, err = mergeLikes(stored, &in, member); err != nil {
		return models.Activity{}, err
	}
	if out.Reactions, err = mergeReactions(stored.Reactions, in.Reactions, member); err != nil {
		return models.Activity{}, err
	}
	if out.Votes, err = mergeVotes(stored.Votes, in.Votes, member); err != nil {
		return models.Activity{}, err
	}
	if out.Comments, err = mergeComments(stored.Comments, in.Comments, member, in.ID); err != nil {
		return models.Activity{}, err
	}
	out.Normalize()
	return out, nil
}

func isMemberName(member *models.Member, name string) bool {
	return models.NameKey(name) == models.NameKey(member.Name)
}

func hasMemberName(member *models.Member, names []string) bool {
	for _, n := range names {
		if isMemberName(member, n) {
			return true
		}
	}
	return false
}

// withMember returns the stored names other than the member's, followed by
// the member's own name when include is set.
func withMember(stored []string, member *models.Member, include bool) []string {
	out := make([]string, 0, len(stored)+1)
	seen := make(map[string]bool, len(stored))
	for _, n := range stored {
		key := models.NameKey(n)
		if seen[key] || isMemberName(member, n) {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	if include {
		out = append(out, member.Name)
	}
	return out
}

func mergeLikes(stored, in *models.Activity, member *models.Member) (likes, dislikes []string, err error) {
	liked := hasMemberName(member, in.Likes)
	disliked := hasMemberName(member, in.Dislikes)
	if liked && disliked {
		return nil, nil, fmt.Errorf("%w: %s both likes and dislikes %q", ErrInvalidActivity, member.Name, in.ID)
	}
	return withMember(stored.Likes, member, liked), withMember(stored.Dislikes, member, disliked), nil
}

// mergeReactions keeps every stored group's other users and applies the
// member's own picks from the client copy. Empty groups are dropped.
func mergeReactions(stored, in []models.Reaction, member *models.Member) ([]models.Reaction, error) {
	picked := make(map[string]bool)
	var order []string
	for _, group := range in {
		emoji := models.NormalizeEmoji(group.Emoji)
		if !hasMemberName(member, group.Users) {
			continue
		}
		if !models.IsAllowedEmoji(emoji) {
			return nil, ErrInvalidEmoji
		}
		if !picked[emoji] {
			picked[emoji] = true
			order = append(order, emoji)
		}
	}

	out := make([]models.Reaction, 0, len(stored)+len(order))
	placed := make(map[string]bool)
	for _, group := range stored {
		users := withMember(group.Users, member, picked[group.Emoji])
		placed[group.Emoji] = true
		if len(users) > 0 {
			out = append(out, models.Reaction{Emoji: group.Emoji, Users: users})
		}
	}
	for _, emoji := range order {
		if !placed[emoji] {
			out = append(out, models.Reaction{Emoji: emoji, Users: []string{member.Name}})
		}
	}
	return out, nil
}

func mergeVotes(stored, in []models.Vote, member *models.Member) ([]models.Vote, error) {
	out := make([]models.Vote, 0, len(stored)+1)
	for _, v := range stored {
		if !member.Owns(v.UserID, v.UserName) {
			out = append(out, v)
		}
	}
	for _, v := range in {
		if !member.Owns(v.UserID, v.UserName) {
			continue
		}
		if !v.Vote.IsValid() {
			return nil, ErrInvalidVote
		}
		out = append(out, models.Vote{UserID: member.ID.String(), UserName: member.Name, Vote: v.Vote})
		break
	}
	return out, nil
}

// mergeComments requires every comment by someone else to come back unchanged
// and lets the member add, edit or drop only their own.
func mergeComments(stored, in []models.Comment, member *models.Member, activityID string) ([]models.Comment, error) {
	storedByID := make(map[string]models.Comment, len(stored))
	for _, c := range stored {
		storedByID[c.ID] = c
	}

	out := make([]models.Comment, 0, len(in))
	returned := make(map[string]bool, len(in))
	for _, c := range in {
		if c.ID == "" || returned[c.ID] {
			return nil, fmt.Errorf("%w: comment without a unique id", ErrInvalidActivity)
		}
		returned[c.ID] = true

		prev, existed := storedByID[c.ID]
		switch {
		case existed && !member.Owns(prev.UserID, prev.UserName):
			if c.Text != prev.Text {
				return nil, fmt.Errorf("%w: %q", ErrNotCommentAuthor, c.ID)
			}
			out = append(out, prev)
		case existed:
			if err := models.ValidateCommentText(c.Text); err != nil {
				return nil, err
			}
			prev.Text = strings.TrimSpace(c.Text)
			prev.UpdatedAt = c.UpdatedAt
			out = append(out, prev)
		default:
			if !member.Owns(c.UserID, c.UserName) {
				return nil, fmt.Errorf("%w: %q", ErrNotCommentAuthor, c.ID)
			}
			if err := models.ValidateCommentText(c.Text); err != nil {
				return nil, err
			}
			c.Text = strings.TrimSpace(c.Text)
			c.ActivityID = activityID
			c.UserID = member.ID.String()
			c.UserName = member.Name
			out = append(out, c)
		}
	}

	for _, c := range stored {
		if !returned[c.ID] && !member.Owns(c.UserID, c.UserName) {
			return nil, fmt.Errorf("%w: %q", ErrNotCommentAuthor, c.ID)
		}
	}
	return out, nil
}
