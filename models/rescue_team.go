package models

import (
	"context"
	"errors"
	"time"

	"rescue-hub/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type RescueTeam struct {
	ID                 primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	TeamName           string              `json:"teamName" bson:"team_name"`
	Email              string              `json:"email" bson:"email"`
	Phone              string              `json:"phone" bson:"phone"`
	Password           string              `json:"-" bson:"password"`
	Description        string              `json:"description" bson:"description"`
	TeamSize           int                 `json:"teamSize" bson:"team_size"`
	DeployedDate       string              `json:"deployedDate" bson:"deployed_date"`
	CertificatePath    string              `json:"certificatePath" bson:"certificate_path"`
	ProfilePicturePath string              `json:"profilePicturePath" bson:"profile_picture_path"`
	AssignedBlogID     *primitive.ObjectID `json:"assignedBlogId,omitempty" bson:"assigned_blog_id,omitempty"`
	AssignedBlogTitle  string              `json:"assignedBlogTitle,omitempty" bson:"assigned_blog_title,omitempty"`
	CreatedAt          time.Time           `json:"createdAt" bson:"created_at"`
}

// ValidateNewRescueTeam checks every field required at registration.
// Password here is the plaintext candidate; hashing happens in the controller
// before InsertRescueTeam is called.
func ValidateNewRescueTeam(t RescueTeam) error {
	switch {
	case t.TeamName == "":
		return NewValidationError("teamName is required")
	case t.Email == "":
		return NewValidationError("email is required")
	case t.Phone == "":
		return NewValidationError("phone is required")
	case t.Password == "":
		return NewValidationError("password is required")
	case t.TeamSize <= 0:
		return NewValidationError("teamSize must be a positive integer")
	case t.DeployedDate == "":
		return NewValidationError("deployedDate is required")
	case t.CertificatePath == "":
		return NewValidationError("certificate is required")
	case t.ProfilePicturePath == "":
		return NewValidationError("profilePicture is required")
	}
	return nil
}

func InsertRescueTeam(team RescueTeam) (RescueTeam, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	team.ID = primitive.NewObjectID()
	team.CreatedAt = time.Now().UTC()

	_, err := db.RescueTeamCollection.InsertOne(ctx, team)
	if err != nil {
		return RescueTeam{}, err
	}
	return team, nil
}

func GetAllRescueTeams() ([]RescueTeam, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.RescueTeamCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	teams := []RescueTeam{}
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func GetRescueTeamByID(id string) (RescueTeam, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return RescueTeam{}, ErrInvalidID
	}

	var team RescueTeam
	err = db.RescueTeamCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&team)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return RescueTeam{}, ErrNotFound
	}
	if err != nil {
		return RescueTeam{}, err
	}
	return team, nil
}

func FindRescueTeamByEmail(email string) (RescueTeam, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var team RescueTeam
	err := db.RescueTeamCollection.FindOne(ctx, bson.M{"email": email}).Decode(&team)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return RescueTeam{}, ErrNotFound
	}
	if err != nil {
		return RescueTeam{}, err
	}
	return team, nil
}

// SetTeamAssignment points a team at a report (with the denormalized title),
// or clears the link when reportID is nil.
func SetTeamAssignment(ctx context.Context, teamID primitive.ObjectID, reportID *primitive.ObjectID, reportTitle string) error {
	var update bson.M
	if reportID == nil {
		update = bson.M{
			"$unset": bson.M{"assigned_blog_id": "", "assigned_blog_title": ""},
		}
	} else {
		update = bson.M{
			"$set": bson.M{"assigned_blog_id": *reportID, "assigned_blog_title": reportTitle},
		}
	}

	result, err := db.RescueTeamCollection.UpdateOne(ctx, bson.M{"_id": teamID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ReleaseTeamsForReport clears the assignment of every team still pointing at
// the given report. Used when a report is deleted.
func ReleaseTeamsForReport(ctx context.Context, reportID primitive.ObjectID) error {
	_, err := db.RescueTeamCollection.UpdateMany(ctx,
		bson.M{"assigned_blog_id": reportID},
		bson.M{"$unset": bson.M{"assigned_blog_id": "", "assigned_blog_title": ""}},
	)
	return err
}
