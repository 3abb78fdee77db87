package models

import (
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func adminUser() *User {
	return &User{ID: primitive.NewObjectID(), Email: "admin@kiet.edu", Role: RoleAdmin}
}

func studentUser() *User {
	return &User{ID: primitive.NewObjectID(), Email: "student@kiet.edu", Role: RoleStudent}
}

func pendingIssue() *Issue {
	now := time.Now()
	return &Issue{
		ID:          primitive.NewObjectID(),
		Category:    Electrical,
		Building:    "Science Block",
		Room:        "204",
		Description: "Power socket sparking near the window desk",
		Status:      Pending,
		Priority:    ClassifyPriority(Electrical),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestClassifyPriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category IssueCategory
		want     IssuePriority
	}{
		{Safety, High},
		{Electrical, High},
		{Plumbing, High},
		{HVAC, Medium},
		{Cleaning, Medium},
		{Other, Low},
		{IssueCategory("elevator"), Low},
		{IssueCategory(""), Low},
	}

	for _, tt := range tests {
		if got := ClassifyPriority(tt.category); got != tt.want {
			t.Errorf("ClassifyPriority(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestTransitionPendingToActive(t *testing.T) {
	t.Parallel()

	issue := pendingIssue()
	now := time.Now()

	if err := issue.Transition(Active, adminUser(), now); err != nil {
		t.Fatalf("Transition(pending→active) error: %v", err)
	}
	if issue.Status != Active {
		t.Errorf("status = %q, want %q", issue.Status, Active)
	}
	if !issue.UpdatedAt.Equal(now) {
		t.Errorf("updatedAt = %v, want %v", issue.UpdatedAt, now)
	}
	if issue.ResolvedAt != nil {
		t.Errorf("resolvedAt = %v, want nil", issue.ResolvedAt)
	}
}

func TestTransitionActiveToResolved(t *testing.T) {
	t.Parallel()

	issue := pendingIssue()
	activatedAt := time.Now()
	if err := issue.Transition(Active, adminUser(), activatedAt); err != nil {
		t.Fatalf("Transition(pending→active) error: %v", err)
	}

	resolvedAt := activatedAt.Add(time.Hour)
	if err := issue.Transition(Resolved, adminUser(), resolvedAt); err != nil {
		t.Fatalf("Transition(active→resolved) error: %v", err)
	}
	if issue.Status != Resolved {
		t.Errorf("status = %q, want %q", issue.Status, Resolved)
	}
	if issue.ResolvedAt == nil {
		t.Fatal("resolvedAt is nil after resolve")
	}
	if issue.ResolvedAt.Before(activatedAt) {
		t.Errorf("resolvedAt %v precedes activation %v", issue.ResolvedAt, activatedAt)
	}
}

func TestTransitionRejectsPendingToResolved(t *testing.T) {
	t.Parallel()

	issue := pendingIssue()
	err := issue.Transition(Resolved, adminUser(), time.Now())
	if err != ErrInvalidTransition {
		t.Fatalf("Transition(pending→resolved) error = %v, want ErrInvalidTransition", err)
	}
	if issue.Status != Pending {
		t.Errorf("status changed to %q on rejected transition", issue.Status)
	}
	if issue.ResolvedAt != nil {
		t.Errorf("resolvedAt set on rejected transition")
	}
}

func TestTransitionRejectsFromResolved(t *testing.T) {
	t.Parallel()

	issue := pendingIssue()
	admin := adminUser()
	now := time.Now()
	if err := issue.Transition(Active, admin, now); err != nil {
		t.Fatal(err)
	}
	if err := issue.Transition(Resolved, admin, now); err != nil {
		t.Fatal(err)
	}

	for _, target := range []IssueStatus{Pending, Active, Resolved} {
		if err := issue.Transition(target, admin, now); err != ErrInvalidTransition {
			t.Errorf("Transition(resolved→%s) error = %v, want ErrInvalidTransition", target, err)
		}
	}
}

func TestTransitionRejectsNonAdmin(t *testing.T) {
	t.Parallel()

	for _, actor := range []*User{studentUser(), nil} {
		issue := pendingIssue()
		if err := issue.Transition(Active, actor, time.Now()); err != ErrPermissionDenied {
			t.Errorf("Transition with actor %v error = %v, want ErrPermissionDenied", actor, err)
		}
		if issue.Status != Pending {
			t.Errorf("status changed to %q for non-admin actor", issue.Status)
		}
	}
}

func TestAddCommentLength(t *testing.T) {
	t.Parallel()

	issue := pendingIssue()
	student := studentUser()
	now := time.Now()

	if _, err := issue.AddComment(student, "", now); err != ErrCommentLength {
		t.Errorf("empty comment error = %v, want ErrCommentLength", err)
	}
	if _, err := issue.AddComment(student, "   ", now); err != ErrCommentLength {
		t.Errorf("whitespace comment error = %v, want ErrCommentLength", err)
	}
	if _, err := issue.AddComment(student, strings.Repeat("x", 501), now); err != ErrCommentLength {
		t.Errorf("501-char comment error = %v, want ErrCommentLength", err)
	}
	if _, err := issue.AddComment(student, "a", now); err != nil {
		t.Errorf("1-char comment error = %v, want nil", err)
	}
	if _, err := issue.AddComment(student, strings.Repeat("x", 500), now); err != nil {
		t.Errorf("500-char comment error = %v, want nil", err)
	}
}

func TestAddCommentLengthCountsCharacters(t *testing.T) {
	t.Parallel()

	issue := pendingIssue()
	student := studentUser()
	now := time.Now()

	// 300 Devanagari characters are 900 bytes but well inside the
	// 500-character budget.
	if _, err := issue.AddComment(student, strings.Repeat("क", 300), now); err != nil {
		t.Errorf("300-char multi-byte comment error = %v, want nil", err)
	}
	if _, err := issue.AddComment(student, strings.Repeat("क", 500), now); err != nil {
		t.Errorf("500-char multi-byte comment error = %v, want nil", err)
	}
	if _, err := issue.AddComment(student, strings.Repeat("क", 501), now); err != ErrCommentLength {
		t.Errorf("501-char multi-byte comment error = %v, want ErrCommentLength", err)
	}
}

func TestAddCommentPreservesOrder(t *testing.T) {
	t.Parallel()

	issue := pendingIssue()
	student := studentUser()
	admin := adminUser()

	texts := []string{"first", "second", "third"}
	actors := []*User{student, admin, student}
	for i, text := range texts {
		if _, err := issue.AddComment(actors[i], text, time.Now()); err != nil {
			t.Fatalf("AddComment(%q) error: %v", text, err)
		}
	}

	if len(issue.Comments) != len(texts) {
		t.Fatalf("got %d comments, want %d", len(issue.Comments), len(texts))
	}
	for i, text := range texts {
		if issue.Comments[i].Text != text {
			t.Errorf("comments[%d].Text = %q, want %q", i, issue.Comments[i].Text, text)
		}
	}
	if issue.Comments[1].AuthorEmail != admin.Email {
		t.Errorf("comments[1].AuthorEmail = %q, want %q", issue.Comments[1].AuthorEmail, admin.Email)
	}
}

func TestIssueLifecycleEndToEnd(t *testing.T) {
	t.Parallel()

	issue := pendingIssue()
	if issue.Priority != High {
		t.Fatalf("electrical issue priority = %q, want %q", issue.Priority, High)
	}
	if issue.Status != Pending {
		t.Fatalf("new issue status = %q, want %q", issue.Status, Pending)
	}

	admin := adminUser()
	activatedAt := time.Now()
	if err := issue.Transition(Active, admin, activatedAt); err != nil {
		t.Fatal(err)
	}
	if issue.ResolvedAt != nil {
		t.Fatal("resolvedAt set before resolution")
	}
	firstUpdate := issue.UpdatedAt

	resolvedAt := activatedAt.Add(30 * time.Minute)
	if err := issue.Transition(Resolved, admin, resolvedAt); err != nil {
		t.Fatal(err)
	}
	if issue.ResolvedAt == nil || issue.ResolvedAt.Before(firstUpdate) {
		t.Errorf("resolvedAt = %v, want ≥ %v", issue.ResolvedAt, firstUpdate)
	}
}

func TestInstitutionEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email string
		want  bool
	}{
		{"student@kiet.edu", true},
		{"STUDENT@KIET.EDU", true},
		{"student@gmail.com", false},
		{"student@kiet.edu.fake.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := InstitutionEmail(tt.email); got != tt.want {
			t.Errorf("InstitutionEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}
