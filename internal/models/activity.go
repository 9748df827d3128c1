package models

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxLocationLength    = 300
	MaxCommentLength     = 1000
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title is too long")
	ErrDescriptionLong = errors.New("description is too long")
	ErrLocationLong    = errors.New("location is too long")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidBudget   = errors.New("invalid budget")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrCommentRequired = errors.New("comment text is required")
	ErrCommentTooLong  = errors.New("comment text is too long")
)

type Category string

const (
	CategoryRestaurant  Category = "restaurant"
	CategoryBrunch      Category = "brunch"
	CategorySightseeing Category = "sightseeing"
	CategoryBar         Category = "bar"
	CategoryCafe        Category = "cafe"
	CategoryExperience  Category = "experience"
	CategoryOther       Category = "other"
)

// ValidCategories defines the allowed activity categories
var ValidCategories = []Category{
	CategoryRestaurant,
	CategoryBrunch,
	CategorySightseeing,
	CategoryBar,
	CategoryCafe,
	CategoryExperience,
	CategoryOther,
}

func (c Category) IsValid() bool {
	for _, valid := range ValidCategories {
		if c == valid {
			return true
		}
	}
	return false
}

type Budget string

const (
	BudgetCheap     Budget = "cheap"
	BudgetMedium    Budget = "medium"
	BudgetExpensive Budget = "expensive"
)

func (b Budget) IsValid() bool {
	return b == BudgetCheap || b == BudgetMedium || b == BudgetExpensive
}

type Status string

const (
	StatusTentative Status = "tentative"
	StatusConfirmed Status = "confirmed"
)

func (s Status) IsValid() bool {
	return s == StatusTentative || s == StatusConfirmed
}

type VoteValue string

const (
	VoteYes VoteValue = "yes"
	VoteNo  VoteValue = "no"
)

func (v VoteValue) IsValid() bool {
	return v == VoteYes || v == VoteNo
}

type Vote struct {
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
	Vote     VoteValue `json:"vote"`
}

type Comment struct {
	ID         string     `json:"id"`
	ActivityID string     `json:"activityId"`
	UserID     string     `json:"userId,omitempty"`
	UserName   string     `json:"userName"`
	Text       string     `json:"text"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

type Activity struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	Day         string     `json:"day"`
	CreatorID   string     `json:"creatorId"`
	CreatorName string     `json:"creatorName"`
	CreatedAt   time.Time  `json:"createdAt"`
	Category    Category   `json:"category,omitempty"`
	Budget      Budget     `json:"budget,omitempty"`
	Status      Status     `json:"status,omitempty"`
	Likes       []string   `json:"likes"`
	Dislikes    []string   `json:"dislikes"`
	Reactions   []Reaction `json:"reactions"`
	Votes       []Vote     `json:"votes"`
	Comments    []Comment  `json:"comments"`
}

type CreateActivityParams struct {
	Title       string
	Description string
	Location    string
	Day         string
	Category    Category
	Budget      Budget
	Status      Status
}

// ActivityPatch holds the fields a creator may change. Nil means unchanged.
type ActivityPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Day         *string   `json:"day,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Budget      *Budget   `json:"budget,omitempty"`
	Status      *Status   `json:"status,omitempty"`
}

// NewActivity builds an activity owned by creator with empty collections.
func NewActivity(params CreateActivityParams, creator *Member, now time.Time) *Activity {
	a := &Activity{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(params.Title),
		Description: strings.TrimSpace(params.Description),
		Location:    strings.TrimSpace(params.Location),
		Day:         params.Day,
		CreatorID:   creator.ID.String(),
		CreatorName: creator.Name,
		CreatedAt:   now.UTC(),
		Category:    params.Category,
		Budget:      params.Budget,
		Status:      params.Status,
	}
	a.Normalize()
	return a
}

func (p CreateActivityParams) Validate() error {
	if err := validateTitle(p.Title); err != nil {
		return err
	}
	return validateDetails(p.Description, p.Location, p.Category, p.Budget, p.Status)
}

func (p ActivityPatch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	var (
		description, location string
		category              Category
		budget                Budget
		status                Status
	)
	if p.Description != nil {
		description = *p.Description
	}
	if p.Location != nil {
		location = *p.Location
	}
	if p.Category != nil {
		category = *p.Category
	}
	if p.Budget != nil {
		budget = *p.Budget
	}
	if p.Status != nil {
		status = *p.Status
	}
	return validateDetails(description, location, category, budget, status)
}

// Apply copies the set fields of p onto a.
func (p ActivityPatch) Apply(a *Activity) {
	if p.Title != nil {
		a.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		a.Description = strings.TrimSpace(*p.Description)
	}
	if p.Location != nil {
		a.Location = strings.TrimSpace(*p.Location)
	}
	if p.Day != nil {
		a.Day = *p.Day
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Budget != nil {
		a.Budget = *p.Budget
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func validateDetails(description, location string, category Category, budget Budget, status Status) error {
	if utf8.RuneCountInString(strings.TrimSpace(description)) > MaxDescriptionLength {
		return ErrDescriptionLong
	}
	if utf8.RuneCountInString(strings.TrimSpace(location)) > MaxLocationLength {
		return ErrLocationLong
	}
	if category != "" && !category.IsValid() {
		return ErrInvalidCategory
	}
	if budget != "" && !budget.IsValid() {
		return ErrInvalidBudget
	}
	if status != "" && !status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// ValidateDetails applies the create-time field rules to a whole activity.
func (a *Activity) ValidateDetails() error {
	if err := validateTitle(a.Title); err != nil {
		return err
	}
	return validateDetails(a.Description, a.Location, a.Category, a.Budget, a.Status)
}

// SameCreator reports whether both copies record the same creator.
func (a *Activity) SameCreator(other *Activity) bool {
	return a.CreatorID == other.CreatorID &&
		a.CreatorName == other.CreatorName &&
		a.CreatedAt.Equal(other.CreatedAt)
}

// SameDetails reports whether the creator-editable fields match.
func (a *Activity) SameDetails(other *Activity) bool {
	return strings.TrimSpace(a.Title) == strings.TrimSpace(other.Title) &&
		strings.TrimSpace(a.Description) == strings.TrimSpace(other.Description) &&
		strings.TrimSpace(a.Location) == strings.TrimSpace(other.Location) &&
		a.Day == other.Day &&
		a.Category == other.Category &&
		a.Budget == other.Budget &&
		a.Status == other.Status
}

// EffectiveStatus treats a missing status as tentative.
func (a *Activity) EffectiveStatus() Status {
	if a.Status == "" {
		return StatusTentative
	}
	return a.Status
}

// Normalize replaces missing collections with empty ones so snapshots written
// by older clients encode the same way as new ones.
func (a *Activity) Normalize() {
	if a.Likes == nil {
		a.Likes = []string{}
	}
	if a.Dislikes == nil {
		a.Dislikes = []string{}
	}
	if a.Reactions == nil {
		a.Reactions = []Reaction{}
	}
	for i := range a.Reactions {
		if a.Reactions[i].Users == nil {
			a.Reactions[i].Users = []string{}
		}
	}
	if a.Votes == nil {
		a.Votes = []Vote{}
	}
	if a.Comments == nil {
		a.Comments = []Comment{}
	}
}

func (v Vote) castBy(userID, userName string) bool {
	if userID != "" && v.UserID == userID {
		return true
	}
	return v.UserName != "" && NameKey(v.UserName) == NameKey(userName)
}

// VoteOf returns the vote cast by the user, or nil.
func (a *Activity) VoteOf(userID, userName string) *Vote {
	for i := range a.Votes {
		if a.Votes[i].castBy(userID, userName) {
			return &a.Votes[i]
		}
	}
	return nil
}

// CastVote records value for the user, replacing any earlier vote. Casting the
// value the user already holds retracts it; the result is then nil.
func (a *Activity) CastVote(userID, userName string, value VoteValue) *Vote {
	var previous VoteValue
	if v := a.VoteOf(userID, userName); v != nil {
		previous = v.Vote
	}
	a.RemoveVote(userID, userName)
	if previous == value {
		return nil
	}
	a.Votes = append(a.Votes, Vote{UserID: userID, UserName: userName, Vote: value})
	return &a.Votes[len(a.Votes)-1]
}

// RemoveVote drops the user's vote and reports whether one existed.
func (a *Activity) RemoveVote(userID, userName string) bool {
	out := make([]Vote, 0, len(a.Votes))
	for _, v := range a.Votes {
		if !v.castBy(userID, userName) {
			out = append(out, v)
		}
	}
	removed := len(out) != len(a.Votes)
	a.Votes = out
	return removed
}

// VoteCounts tallies yes and no votes.
func (a *Activity) VoteCounts() (yes, no int) {
	for _, v := range a.Votes {
		switch v.Vote {
		case VoteYes:
			yes++
		case VoteNo:
			no++
		}
	}
	return yes, no
}

func ValidateCommentText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrCommentRequired
	}
	if utf8.RuneCountInString(text) > MaxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}

func (a *Activity) AddComment(author *Member, text string, now time.Time) Comment {
	c := Comment{
		ID:         uuid.NewString(),
		ActivityID: a.ID,
		UserID:     author.ID.String(),
		UserName:   author.Name,
		Text:       strings.TrimSpace(text),
		CreatedAt:  now.UTC(),
	}
	a.Comments = append(a.Comments, c)
	return c
}

// CommentIndex returns the position of the comment or -1.
func (a *Activity) CommentIndex(commentID string) int {
	for i := range a.Comments {
		if a.Comments[i].ID == commentID {
			return i
		}
	}
	return -1
}

func (a *Activity) RemoveComment(commentID string) {
	out := make([]Comment, 0, len(a.Comments))
	for _, c := range a.Comments {
		if c.ID != commentID {
			out = append(out, c)
		}
	}
	a.Comments = out
}
