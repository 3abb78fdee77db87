package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueCategory enum
type IssueCategory string

const (
	Electrical IssueCategory = "electrical"
	Plumbing   IssueCategory = "plumbing"
	HVAC       IssueCategory = "hvac"
	Cleaning   IssueCategory = "cleaning"
	Safety     IssueCategory = "safety"
	Other      IssueCategory = "other"
)

// IssueStatus enum
type IssueStatus string

const (
	Pending  IssueStatus = "pending"
	Active   IssueStatus = "active"
	Resolved IssueStatus = "resolved"
)

// IssuePriority enum
type IssuePriority string

const (
	High   IssuePriority = "high"
	Medium IssuePriority = "medium"
	Low    IssuePriority = "low"
)

// Comment is a single entry in an issue's append-only comment log.
type Comment struct {
	Text        string             `bson:"text" json:"text"`
	AuthorID    primitive.ObjectID `bson:"authorId" json:"authorId"`
	AuthorEmail string             `bson:"authorEmail" json:"authorEmail"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}

// Issue represents a facilities problem reported by a student
type Issue struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Category        IssueCategory      `bson:"category" json:"category"`
	Building        string             `bson:"building" json:"building"`
	Room            string             `bson:"room" json:"room"`
	Description     string             `bson:"description" json:"description"`
	ImageURL        *string            `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Status          IssueStatus        `bson:"status" json:"status"`
	Priority        IssuePriority      `bson:"priority" json:"priority"`
	ReportedBy      primitive.ObjectID `bson:"reportedBy" json:"reportedBy"`
	ReportedByEmail string             `bson:"reportedByEmail" json:"reportedByEmail"`
	AssignedTo      *string            `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Comments        []Comment          `bson:"comments" json:"comments"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
	ResolvedAt      *time.Time         `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
}

// ValidCategory reports whether s names a known issue category.
func ValidCategory(s string) bool {
	switch IssueCategory(s) {
	case Electrical, Plumbing, HVAC, Cleaning, Safety, Other:
		return true
	}
	return false
}

// ClassifyPriority maps a category to its priority tier. Unknown
// categories fall through to low rather than failing.
func ClassifyPriority(category IssueCategory) IssuePriority {
	switch category {
	case Safety, Electrical, Plumbing:
		return High
	case HVAC, Cleaning:
		return Medium
	default:
		return Low
	}
}

// PriorityRank orders priorities for sorting: high first.
func PriorityRank(p IssuePriority) int {
	switch p {
	case High:
		return 1
	case Medium:
		return 2
	default:
		return 3
	}
}

// Transition advances the issue lifecycle. Only admins may transition,
// and only pending→active and active→resolved are legal; anything else
// is rejected without touching the issue. The caller persists the
// returned timestamps as a single merge patch.
func (i *Issue) Transition(target IssueStatus, actor *User, now time.Time) error {
	if actor == nil || actor.Role != RoleAdmin {
		return ErrPermissionDenied
	}
	switch {
	case i.Status == Pending && target == Active:
		i.Status = Active
		i.UpdatedAt = now
	case i.Status == Active && target == Resolved:
		i.Status = Resolved
		i.UpdatedAt = now
		i.ResolvedAt = &now
	default:
		return ErrInvalidTransition
	}
	return nil
}

// AddComment appends a comment to the issue's log after validating the
// text. Existing comments are never reordered or rewritten.
func (i *Issue) AddComment(actor *User, text string, now time.Time) (*Comment, error) {
	text = strings.TrimSpace(text)
	// Bounds are in characters, not bytes, so non-ASCII comments get
	// the same 500-character budget.
	if n := utf8.RuneCountInString(text); n < 1 || n > 500 {
		return nil, ErrCommentLength
	}
	if actor == nil {
		return nil, ErrPermissionDenied
	}
	comment := Comment{
		Text:        text,
		AuthorID:    actor.ID,
		AuthorEmail: actor.Email,
		Timestamp:   now,
	}
	i.Comments = append(i.Comments, comment)
	i.UpdatedAt = now
	return &comment, nil
}
