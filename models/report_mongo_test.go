package models

import (
	"testing"
	"time"

	"rescue-hub/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func reportDoc(id primitive.ObjectID, title string, createdAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "content", Value: "content"},
		{Key: "image", Value: "/uploads/report_images/a.jpeg"},
		{Key: "severity", Value: SeverityUrgent},
		{Key: "location", Value: "karachi"},
		{Key: "keywords", Value: "flood"},
		{Key: "author_name", Value: "Asma Khan"},
		{Key: "created_at", Value: primitive.NewDateTimeFromTime(createdAt)},
		{Key: "updated_at", Value: primitive.NewDateTimeFromTime(createdAt)},
	}
}

func bindMockCollections(mt *mtest.T) func() {
	origReports := db.ReportCollection
	origTeams := db.RescueTeamCollection
	db.ReportCollection = mt.Coll
	db.RescueTeamCollection = mt.DB.Collection("rescue_teams")
	return func() {
		db.ReportCollection = origReports
		db.RescueTeamCollection = origTeams
	}
}

func TestGetAllReportsMostRecentFirst(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sorts by created_at descending", func(mt *mtest.T) {
		defer bindMockCollections(mt)()

		base := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
		t1 := reportDoc(primitive.NewObjectID(), "first", base)
		t2 := reportDoc(primitive.NewObjectID(), "second", base.Add(time.Hour))
		t3 := reportDoc(primitive.NewObjectID(), "third", base.Add(2*time.Hour))

		// The server applies the sort; the mock returns the batch as given.
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "rescuehub_db.reports", mtest.FirstBatch, t3, t2, t1))
		mt.ClearEvents()

		reports, err := GetAllReports()
		require.NoError(mt, err)

		require.Len(mt, reports, 3)
		assert.Equal(mt, "third", reports[0].Title)
		assert.Equal(mt, "second", reports[1].Title)
		assert.Equal(mt, "first", reports[2].Title)
		assert.True(mt, reports[0].CreatedAt.After(reports[1].CreatedAt))
		assert.True(mt, reports[1].CreatedAt.After(reports[2].CreatedAt))

		// The ordering itself is delegated, so assert the descending sort
		// descriptor actually went out with the find.
		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)
		sortVal, err := evt.Command.LookupErr("sort")
		require.NoError(mt, err, "find command must carry a sort")
		direction, ok := sortVal.Document().Lookup("created_at").AsInt64OK()
		require.True(mt, ok)
		assert.Equal(mt, int64(-1), direction)
	})

	mt.Run("empty store yields empty slice", func(mt *mtest.T) {
		defer bindMockCollections(mt)()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "rescuehub_db.reports", mtest.FirstBatch))

		reports, err := GetAllReports()
		require.NoError(mt, err)
		assert.NotNil(mt, reports)
		assert.Empty(mt, reports)
	})
}

func TestDeleteReportRoundTrip(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deleted report is gone and teams are released", func(mt *mtest.T) {
		defer bindMockCollections(mt)()

		id := primitive.NewObjectID()
		doc := reportDoc(id, "Flood in Sukkur", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

		mt.AddMockResponses(
			// findAndModify (FindOneAndDelete) returns the removed document.
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: doc}},
			// UpdateMany clearing team references.
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			// Subsequent lookup finds nothing.
			mtest.CreateCursorResponse(0, "rescuehub_db.reports", mtest.FirstBatch),
		)
		mt.ClearEvents()

		deleted, err := DeleteReport(id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "Flood in Sukkur", deleted.Title)
		assert.Equal(mt, id, deleted.ID)

		_, err = GetReportByID(id.Hex())
		assert.ErrorIs(mt, err, ErrNotFound)

		// The cascade must target the rescue team collection.
		first := mt.GetStartedEvent()
		require.NotNil(mt, first)
		assert.Equal(mt, "findAndModify", first.CommandName)
		second := mt.GetStartedEvent()
		require.NotNil(mt, second)
		assert.Equal(mt, "update", second.CommandName)
		assert.Equal(mt, "rescue_teams", second.Command.Lookup("update").StringValue())
	})

	mt.Run("release failure does not undo the delete", func(mt *mtest.T) {
		defer bindMockCollections(mt)()

		id := primitive.NewObjectID()
		doc := reportDoc(id, "Flood in Sukkur", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: doc}},
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    11601,
				Name:    "Interrupted",
				Message: "operation interrupted",
			}),
		)

		deleted, err := DeleteReport(id.Hex())
		require.NoError(mt, err, "the report is already gone; release failures are swept up later")
		assert.Equal(mt, id, deleted.ID)
	})

	mt.Run("absent id is not found", func(mt *mtest.T) {
		defer bindMockCollections(mt)()

		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := DeleteReport(primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestGetReportByIDMalformed(t *testing.T) {
	_, err := GetReportByID("not-a-hex-id")
	assert.ErrorIs(t, err, ErrInvalidID)
}
