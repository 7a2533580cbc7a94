package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rescue-hub/database"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SeverityUrgent  = "urgent"
	SeverityOngoing = "ongoing"
	SeverityBasic   = "basic"
)

// Locations is the fixed set of cities a report may be filed under.
var Locations = map[string]bool{
	"karachi": true, "lahore": true, "islamabad": true, "rawalpindi": true,
	"peshawar": true, "quetta": true, "multan": true, "faisalabad": true,
	"hyderabad": true, "sialkot": true, "gujranwala": true, "bahawalpur": true,
	"sargodha": true, "sukkur": true, "larkana": true, "sheikhupura": true,
	"bhimber": true, "mirpur": true, "muzaffarabad": true, "gilgit": true,
	"skardu": true, "hunza": true, "khuzdar": true, "turbat": true,
	"gwadar": true, "abbottabad": true, "mansehra": true, "swat": true,
	"mardan": true, "jacobabad": true, "kashmore": true, "thatta": true,
	"rahim-yar-khan": true, "sahiwal": true, "okara": true,
}

type Report struct {
	ID              primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Title           string              `json:"title" bson:"title"`
	Content         string              `json:"content" bson:"content"`
	Image           string              `json:"image" bson:"image"`
	Severity        string              `json:"severity" bson:"severity"`
	Location        string              `json:"location" bson:"location"`
	Keywords        string              `json:"keywords" bson:"keywords"`
	DonationTarget  float64             `json:"donationTarget" bson:"donation_target"`
	DonationCurrent float64             `json:"donationCurrent" bson:"donation_current"`
	AuthorName      string              `json:"authorName" bson:"author_name"`
	CreatedAt       time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updatedAt" bson:"updated_at"`
	AssignedTeamID  *primitive.ObjectID `json:"assignedTeamId,omitempty" bson:"assigned_team_id,omitempty"`
}

func ValidSeverity(s string) bool {
	return s == SeverityUrgent || s == SeverityOngoing || s == SeverityBasic
}

func ValidLocation(l string) bool {
	return Locations[l]
}

// ValidateNewReport checks every field required at creation time.
func ValidateNewReport(r Report) error {
	switch {
	case r.Title == "":
		return NewValidationError("title is required")
	case r.Content == "":
		return NewValidationError("content is required")
	case r.Severity == "":
		return NewValidationError("severity is required")
	case !ValidSeverity(r.Severity):
		return NewValidationError(fmt.Sprintf("severity must be one of urgent, ongoing, basic; got %q", r.Severity))
	case r.Location == "":
		return NewValidationError("location is required")
	case !ValidLocation(r.Location):
		return NewValidationError(fmt.Sprintf("unknown location %q", r.Location))
	case r.Keywords == "":
		return NewValidationError("keywords is required")
	case r.DonationTarget < 0:
		return NewValidationError("donationTarget must be non-negative")
	case r.AuthorName == "":
		return NewValidationError("authorName is required")
	case r.Image == "":
		return NewValidationError("image is required")
	}
	return nil
}

func InsertReport(report Report) (Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	report.ID = primitive.NewObjectID()
	report.DonationCurrent = 0
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now

	_, err := db.ReportCollection.InsertOne(ctx, report)
	if err != nil {
		return Report{}, err
	}
	return report, nil
}

// GetAllReports returns every report, most recent first.
func GetAllReports() ([]Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := db.ReportCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// GetReportsByAuthor filters on the denormalized author name, most recent first.
func GetReportsByAuthor(authorName string) ([]Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := db.ReportCollection.Find(ctx, bson.M{"author_name": authorName}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func GetReportByID(id string) (Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Report{}, ErrInvalidID
	}

	var report Report
	err = db.ReportCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Report{}, ErrNotFound
	}
	if err != nil {
		return Report{}, err
	}
	return report, nil
}

// UpdateReport applies a partial $set and returns the updated document.
// updated_at is stamped here so every mutation path carries it.
func UpdateReport(id string, set bson.M) (Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Report{}, ErrInvalidID
	}

	set["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Report
	err = db.ReportCollection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Report{}, ErrNotFound
	}
	if err != nil {
		return Report{}, err
	}
	return updated, nil
}

// DeleteReport removes the report and clears any team still pointing at it,
// so the assignment reference cannot go stale. The delete itself is the
// operation: a failed release is logged and left to the reconciler sweep.
func DeleteReport(id string) (Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Report{}, ErrInvalidID
	}

	var deleted Report
	err = db.ReportCollection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&deleted)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Report{}, ErrNotFound
	}
	if err != nil {
		return Report{}, err
	}

	if err := ReleaseTeamsForReport(ctx, objID); err != nil {
		logrus.WithError(err).Warn("failed to release team assignments for deleted report")
	}
	return deleted, nil
}

// IncrementDonation bumps the display counter. Amount must already be
// validated as positive; the counter never decreases.
func IncrementDonation(id string, amount float64) (Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Report{}, ErrInvalidID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$inc": bson.M{"donation_current": amount},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	var updated Report
	err = db.ReportCollection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Report{}, ErrNotFound
	}
	if err != nil {
		return Report{}, err
	}
	return updated, nil
}

// SetReportAssignedTeam points a report at a team, or clears the link when
// teamID is nil.
func SetReportAssignedTeam(ctx context.Context, reportID primitive.ObjectID, teamID *primitive.ObjectID) error {
	var update bson.M
	if teamID == nil {
		update = bson.M{
			"$unset": bson.M{"assigned_team_id": ""},
			"$set":   bson.M{"updated_at": time.Now().UTC()},
		}
	} else {
		update = bson.M{
			"$set": bson.M{"assigned_team_id": *teamID, "updated_at": time.Now().UTC()},
		}
	}

	result, err := db.ReportCollection.UpdateOne(ctx, bson.M{"_id": reportID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
