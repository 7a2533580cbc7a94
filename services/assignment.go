package services

import (
	"context"
	"errors"

	"rescue-hub/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentStore is the record-level surface the assignment workflow needs.
// models.Store is the Mongo-backed implementation.
type AssignmentStore interface {
	ReportByID(ctx context.Context, id primitive.ObjectID) (models.Report, error)
	TeamByID(ctx context.Context, id primitive.ObjectID) (models.RescueTeam, error)
	SetReportTeam(ctx context.Context, reportID primitive.ObjectID, teamID *primitive.ObjectID) error
	SetTeamReport(ctx context.Context, teamID primitive.ObjectID, reportID *primitive.ObjectID, reportTitle string) error
}

// AssignmentResult is the confirmation payload shown to the admin.
type AssignmentResult struct {
	TeamID      string `json:"teamId"`
	TeamName    string `json:"teamName"`
	ReportID    string `json:"reportId"`
	ReportTitle string `json:"reportTitle"`
}

// AssignTeamToReport links a team and a report on both sides as one logical
// operation. Re-assignment policy: overwrite and release — a team already on
// another report is re-pointed and the stale references on both sides are
// cleared. The writes run as a compensated sequence so a mid-flight failure
// never leaves a half-applied pair.
func AssignTeamToReport(ctx context.Context, store AssignmentStore, teamID, reportID string) (AssignmentResult, error) {
	teamObjID, err := primitive.ObjectIDFromHex(teamID)
	if err != nil {
		return AssignmentResult{}, models.ErrInvalidID
	}
	reportObjID, err := primitive.ObjectIDFromHex(reportID)
	if err != nil {
		return AssignmentResult{}, models.ErrInvalidID
	}

	team, err := store.TeamByID(ctx, teamObjID)
	if err != nil {
		return AssignmentResult{}, err
	}
	report, err := store.ReportByID(ctx, reportObjID)
	if err != nil {
		return AssignmentResult{}, err
	}

	var undo []func()

	compensate := func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}

	// Release the team that currently holds this report, if it is another team.
	if report.AssignedTeamID != nil && *report.AssignedTeamID != teamObjID {
		prevTeamID := *report.AssignedTeamID
		if err := store.SetTeamReport(ctx, prevTeamID, nil, ""); err != nil && !errors.Is(err, models.ErrNotFound) {
			return AssignmentResult{}, err
		}
		undo = append(undo, func() {
			if err := store.SetTeamReport(ctx, prevTeamID, &reportObjID, report.Title); err != nil {
				logrus.WithError(err).Error("assignment rollback: restore previous team failed")
			}
		})
	}

	// Release the report this team was previously assigned to.
	if team.AssignedBlogID != nil && *team.AssignedBlogID != reportObjID {
		prevReportID := *team.AssignedBlogID
		if err := store.SetReportTeam(ctx, prevReportID, nil); err != nil && !errors.Is(err, models.ErrNotFound) {
			compensate()
			return AssignmentResult{}, err
		}
		undo = append(undo, func() {
			if err := store.SetReportTeam(ctx, prevReportID, &teamObjID); err != nil {
				logrus.WithError(err).Error("assignment rollback: restore previous report failed")
			}
		})
	}

	if err := store.SetReportTeam(ctx, reportObjID, &teamObjID); err != nil {
		compensate()
		return AssignmentResult{}, err
	}
	undo = append(undo, func() {
		if err := store.SetReportTeam(ctx, reportObjID, report.AssignedTeamID); err != nil {
			logrus.WithError(err).Error("assignment rollback: reset report failed")
		}
	})

	if err := store.SetTeamReport(ctx, teamObjID, &reportObjID, report.Title); err != nil {
		compensate()
		return AssignmentResult{}, err
	}

	return AssignmentResult{
		TeamID:      teamObjID.Hex(),
		TeamName:    team.TeamName,
		ReportID:    reportObjID.Hex(),
		ReportTitle: report.Title,
	}, nil
}
