package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"campuscare-be/config"
	"campuscare-be/middlewares"
	"campuscare-be/models"
	"campuscare-be/views"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// issueCollection is resolved per call so the Mongo client is not
// forced up during package init, before the environment is loaded.
func issueCollection() *mongo.Collection {
	return config.GetCollection("issues")
}

// mapStoreErr translates driver sentinels into the domain taxonomy.
func mapStoreErr(err error) error {
	if err == mongo.ErrNoDocuments {
		return models.ErrNotFound
	}
	return err
}

// findIssue fetches one issue, mapping a store miss onto ErrNotFound.
func findIssue(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	var issue models.Issue
	if err := issueCollection().FindOne(ctx, bson.M{"_id": id}).Decode(&issue); err != nil {
		return nil, mapStoreErr(err)
	}
	return &issue, nil
}

// viewParamsFromQuery builds a fresh projection from the request; view
// state is never shared between requests.
func viewParamsFromQuery(c *gin.Context) views.Params {
	params := views.Params{
		Search:   c.Query("search"),
		Sort:     views.SortKey(c.DefaultQuery("sort", "newest")),
		PageSize: views.DefaultPageSize,
	}

	if category := c.Query("category"); category != "" && category != "all" && models.ValidCategory(category) {
		params.Category = models.IssueCategory(category)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	params.Page = page

	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit >= 1 && limit <= 100 {
		params.PageSize = limit
	}

	return params
}

// CreateIssue handles the creation of a new issue report
func CreateIssue(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Category    string  `json:"category" binding:"required"`
		Building    string  `json:"building" binding:"required,max=100"`
		Room        string  `json:"room" binding:"required,max=50"`
		Description string  `json:"description" binding:"required,min=20,max=2000"`
		ImageURL    *string `json:"imageUrl,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	category := models.IssueCategory(input.Category)
	now := time.Now()

	// Priority is derived from the category once, at creation, and
	// never recomputed afterwards.
	issue := models.Issue{
		ID:              primitive.NewObjectID(),
		Category:        category,
		Building:        input.Building,
		Room:            input.Room,
		Description:     input.Description,
		ImageURL:        input.ImageURL,
		Status:          models.Pending,
		Priority:        models.ClassifyPriority(category),
		ReportedBy:      user.ID,
		ReportedByEmail: user.Email,
		Comments:        []models.Comment{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := issueCollection().InsertOne(ctx, issue); err != nil {
		config.Logger.Error().Err(err).Msg("Error inserting issue")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// GetAdminIssues returns the triage board: every pending or active
// issue, narrowed and ordered by the caller's view parameters.
func GetAdminIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"status": bson.M{"$in": []models.IssueStatus{models.Pending, models.Active}}}

	cursor, err := issueCollection().Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	// The pending badge reflects the filtered set, so narrowing by
	// category or search narrows the count with it.
	page := views.Apply(issues, viewParamsFromQuery(c))

	c.JSON(http.StatusOK, gin.H{
		"issues":       page.Issues,
		"totalIssues":  page.TotalIssues,
		"totalPages":   page.TotalPages,
		"currentPage":  page.CurrentPage,
		"pendingCount": page.Counts[models.Pending],
	})
}

// GetMyIssues returns the authenticated user's own reports through the
// same view pipeline as the admin board.
func GetMyIssues(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := issueCollection().Find(ctx, bson.M{"reportedBy": user.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	page := views.Apply(issues, viewParamsFromQuery(c))
	counts := views.StatusCounts(issues)

	c.JSON(http.StatusOK, gin.H{
		"issues":      page.Issues,
		"totalIssues": page.TotalIssues,
		"totalPages":  page.TotalPages,
		"currentPage": page.CurrentPage,
		"summary": gin.H{
			"pending":  counts[models.Pending],
			"active":   counts[models.Active],
			"resolved": counts[models.Resolved],
		},
	})
}

// GetIssue retrieves an issue by its ID, comments included
func GetIssue(c *gin.Context) {
	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, err := findIssue(ctx, issueID)
	if err != nil {
		if err == models.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	c.JSON(http.StatusOK, issue)
}

// UpdateIssueStatus applies an admin lifecycle transition. The model
// rejects anything other than pending→active and active→resolved; the
// write is a single merge patch so a failure leaves no partial state.
func UpdateIssueStatus(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target := models.IssueStatus(input.Status)
	if target != models.Active && target != models.Resolved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, err := findIssue(ctx, issueID)
	if err != nil {
		if err == models.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	if err := issue.Transition(target, user, time.Now()); err != nil {
		switch err {
		case models.ErrPermissionDenied:
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
		case models.ErrInvalidTransition:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status transition"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	update := bson.M{
		"status":    issue.Status,
		"updatedAt": issue.UpdatedAt,
	}
	if issue.ResolvedAt != nil {
		update["resolvedAt"] = issue.ResolvedAt
	}

	if _, err := issueCollection().UpdateOne(ctx, bson.M{"_id": issueID}, bson.M{"$set": update}); err != nil {
		config.Logger.Error().Err(err).Msg("Error updating issue status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue status"})
		return
	}

	c.JSON(http.StatusOK, issue)
}

// AddIssueComment appends a comment to an issue's log. The write uses
// $push so two simultaneous commenters both land.
func AddIssueComment(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Text string `json:"text" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, err := findIssue(ctx, issueID)
	if err != nil {
		if err == models.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	comment, err := issue.AddComment(user, input.Text, time.Now())
	if err != nil {
		if err == models.ErrCommentLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to comment"})
		}
		return
	}

	_, err = issueCollection().UpdateOne(ctx, bson.M{"_id": issueID}, bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updatedAt": issue.UpdatedAt},
	})
	if err != nil {
		config.Logger.Error().Err(err).Msg("Error adding comment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}
