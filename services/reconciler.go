package services

import (
	"context"
	"errors"
	"time"

	"rescue-hub/database"
	"rescue-hub/models"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Reconciler periodically clears assignment references left dangling by a
// deleted record on the other side of the link.
type Reconciler struct {
	cron *cron.Cron
}

func NewReconciler() *Reconciler {
	return &Reconciler{cron: cron.New()}
}

// Start schedules the reconciliation sweep. Interval errors are programming
// mistakes, so they are fatal.
func (r *Reconciler) Start() {
	if _, err := r.cron.AddFunc("@every 10m", func() { r.sweep() }); err != nil {
		logrus.WithError(err).Fatal("Failed to schedule assignment reconciler")
	}
	r.cron.Start()
	logrus.Info("Assignment reconciler started")
}

func (r *Reconciler) Stop() {
	r.cron.Stop()
}

func (r *Reconciler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cleared := r.clearDanglingTeamRefs(ctx) + r.clearDanglingReportRefs(ctx)
	if cleared > 0 {
		logrus.WithField("cleared", cleared).Info("Reconciled dangling assignment references")
	}
}

func (r *Reconciler) clearDanglingTeamRefs(ctx context.Context) int {
	cursor, err := db.RescueTeamCollection.Find(ctx, bson.M{"assigned_blog_id": bson.M{"$exists": true}})
	if err != nil {
		logrus.WithError(err).Warn("reconciler: list assigned teams failed")
		return 0
	}
	defer cursor.Close(ctx)

	var teams []models.RescueTeam
	if err := cursor.All(ctx, &teams); err != nil {
		logrus.WithError(err).Warn("reconciler: decode assigned teams failed")
		return 0
	}

	cleared := 0
	for _, team := range teams {
		if team.AssignedBlogID == nil {
			continue
		}
		err := db.ReportCollection.FindOne(ctx, bson.M{"_id": *team.AssignedBlogID}).Err()
		if err == nil {
			continue
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			logrus.WithError(err).Warn("reconciler: report lookup failed")
			continue
		}
		if err := models.SetTeamAssignment(ctx, team.ID, nil, ""); err != nil {
			logrus.WithError(err).Warn("reconciler: clear team assignment failed")
			continue
		}
		cleared++
	}
	return cleared
}

func (r *Reconciler) clearDanglingReportRefs(ctx context.Context) int {
	cursor, err := db.ReportCollection.Find(ctx, bson.M{"assigned_team_id": bson.M{"$exists": true}})
	if err != nil {
		logrus.WithError(err).Warn("reconciler: list assigned reports failed")
		return 0
	}
	defer cursor.Close(ctx)

	var reports []models.Report
	if err := cursor.All(ctx, &reports); err != nil {
		logrus.WithError(err).Warn("reconciler: decode assigned reports failed")
		return 0
	}

	cleared := 0
	for _, report := range reports {
		if report.AssignedTeamID == nil {
			continue
		}
		err := db.RescueTeamCollection.FindOne(ctx, bson.M{"_id": *report.AssignedTeamID}).Err()
		if err == nil {
			continue
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			logrus.WithError(err).Warn("reconciler: team lookup failed")
			continue
		}
		if err := models.SetReportAssignedTeam(ctx, report.ID, nil); err != nil {
			logrus.WithError(err).Warn("reconciler: clear report assignment failed")
			continue
		}
		cleared++
	}
	return cleared
}
