package models

import (
	"golang.org/x/text/unicode/norm"
)

const (
	EmojiThumbsUp   = "👍"
	EmojiThumbsDown = "👎"
)

// AllowedEmojis is the reaction picker, in display order.
var AllowedEmojis = []string{EmojiThumbsUp, EmojiThumbsDown, "🔥", "🍷", "😂", "🤯"}

// Reaction groups every user who reacted to an activity with one emoji.
type Reaction struct {
	Emoji string   `json:"emoji"`
	Users []string `json:"users"`
}

type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

func (k ReactionKind) IsValid() bool {
	return k == ReactionLike || k == ReactionDislike
}

func NormalizeEmoji(emoji string) string {
	return norm.NFC.String(emoji)
}

func IsAllowedEmoji(emoji string) bool {
	emoji = NormalizeEmoji(emoji)
	for _, e := range AllowedEmojis {
		if e == emoji {
			return true
		}
	}
	return false
}

// ToggleName removes name from set when present and appends it otherwise.
// The returned bool is true when name is a member afterwards.
func ToggleName(set []string, name string) ([]string, bool) {
	if containsName(set, name) {
		return removeName(set, name), false
	}
	out := make([]string, 0, len(set)+1)
	out = append(out, set...)
	return append(out, name), true
}

func containsName(set []string, name string) bool {
	for _, n := range set {
		if n == name {
			return true
		}
	}
	return false
}

func removeName(set []string, name string) []string {
	out := make([]string, 0, len(set))
	for _, n := range set {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

// ToggleLike toggles name in Likes after taking it out of Dislikes.
func (a *Activity) ToggleLike(name string) bool {
	name = NormalizeName(name)
	a.Dislikes = removeName(a.Dislikes, name)
	var liked bool
	a.Likes, liked = ToggleName(a.Likes, name)
	return liked
}

// ToggleDislike toggles name in Dislikes after taking it out of Likes.
func (a *Activity) ToggleDislike(name string) bool {
	name = NormalizeName(name)
	a.Likes = removeName(a.Likes, name)
	var disliked bool
	a.Dislikes, disliked = ToggleName(a.Dislikes, name)
	return disliked
}

// Toggle applies a like or dislike toggle.
func (a *Activity) Toggle(kind ReactionKind, name string) bool {
	if kind == ReactionDislike {
		return a.ToggleDislike(name)
	}
	return a.ToggleLike(name)
}

// ToggleReaction adds or removes name from the emoji's group. A group left
// without users is dropped; new groups go to the end.
func (a *Activity) ToggleReaction(emoji, name string) bool {
	emoji = NormalizeEmoji(emoji)
	name = NormalizeName(name)

	for i, group := range a.Reactions {
		if group.Emoji != emoji {
			continue
		}
		users, reacted := ToggleName(group.Users, name)
		if len(users) == 0 {
			out := make([]Reaction, 0, len(a.Reactions)-1)
			out = append(out, a.Reactions[:i]...)
			a.Reactions = append(out, a.Reactions[i+1:]...)
			return false
		}
		a.Reactions[i].Users = users
		return reacted
	}

	a.Reactions = append(a.Reactions, Reaction{Emoji: emoji, Users: []string{name}})
	return true
}

// HasReacted reports whether name is in the emoji's group.
func (a *Activity) HasReacted(emoji, name string) bool {
	emoji = NormalizeEmoji(emoji)
	for _, group := range a.Reactions {
		if group.Emoji == emoji {
			return containsName(group.Users, NormalizeName(name))
		}
	}
	return false
}

// MigrateLegacyReactions folds Likes into the 👍 group and Dislikes into the
// 👎 group. It only runs on activities without emoji reactions and reports
// whether anything changed.
func (a *Activity) MigrateLegacyReactions() bool {
	if len(a.Reactions) > 0 || (len(a.Likes) == 0 && len(a.Dislikes) == 0) {
		return false
	}
	reactions := make([]Reaction, 0, 2)
	if len(a.Likes) > 0 {
		reactions = append(reactions, Reaction{Emoji: EmojiThumbsUp, Users: dedupeNames(a.Likes)})
	}
	if len(a.Dislikes) > 0 {
		reactions = append(reactions, Reaction{Emoji: EmojiThumbsDown, Users: dedupeNames(a.Dislikes)})
	}
	a.Reactions = reactions
	a.Likes = []string{}
	a.Dislikes = []string{}
	return true
}

func dedupeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = NormalizeName(n)
		if !containsName(out, n) {
			out = append(out, n)
		}
	}
	return out
}
