package models

import (
	"context"
	"errors"

	"rescue-hub/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store adapts the Mongo collections to the record-level operations the
// assignment workflow needs.
type Store struct{}

func (Store) ReportByID(ctx context.Context, id primitive.ObjectID) (Report, error) {
	var report Report
	err := db.ReportCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Report{}, ErrNotFound
	}
	if err != nil {
		return Report{}, err
	}
	return report, nil
}

func (Store) TeamByID(ctx context.Context, id primitive.ObjectID) (RescueTeam, error) {
	var team RescueTeam
	err := db.RescueTeamCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return RescueTeam{}, ErrNotFound
	}
	if err != nil {
		return RescueTeam{}, err
	}
	return team, nil
}

func (Store) SetReportTeam(ctx context.Context, reportID primitive.ObjectID, teamID *primitive.ObjectID) error {
	return SetReportAssignedTeam(ctx, reportID, teamID)
}

func (Store) SetTeamReport(ctx context.Context, teamID primitive.ObjectID, reportID *primitive.ObjectID, reportTitle string) error {
	return SetTeamAssignment(ctx, teamID, reportID, reportTitle)
}
