package jobshandler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"job-board-backend/lib/docstore"
	memclient "job-board-backend/lib/docstore/mem-client"
	entitymapper "job-board-backend/lib/entity-mapper"
	"job-board-backend/models"
	entitymodels "job-board-backend/models/entity"
)

func seedJob(t *testing.T, store docstore.Provider, title, status, postedAt string) string {
	id, err := store.Add(context.TODO(), docstore.JobsCollection, map[string]interface{}{
		"title":       title,
		"location":    "Remoto",
		"status":      status,
		"description": "long enough description",
		"postedAt":    postedAt,
	})
	require.Nil(t, err)
	return id
}

func startHandler(t *testing.T, store docstore.Provider) Provider {
	handler := NewInstance(store)
	require.Nil(t, handler.Start(context.TODO()))
	return handler
}

func waitForJobs(t *testing.T, handler Provider, count int) {
	require.Eventually(t, func() bool {
		return len(handler.List()) == count
	}, time.Second, 10*time.Millisecond)
}

func TestJobsHandler(t *testing.T) {
	t.Run(`view is ordered by postedAt descending`, func(t *testing.T) {
		store := memclient.NewClient()
		seedJob(t, store, "Oldest", "active", "2026-01-01")
		seedJob(t, store, "Newest", "active", "2026-06-01")
		seedJob(t, store, "Middle", "active", "2026-03-01")

		handler := startHandler(t, store)
		waitForJobs(t, handler, 3)

		list := handler.List()
		require.Equal(t, "Newest", list[0].Title)
		require.Equal(t, "Middle", list[1].Title)
		require.Equal(t, "Oldest", list[2].Title)
	})

	t.Run(`reapplying an identical snapshot leaves the view unchanged`, func(t *testing.T) {
		handler := NewInstance(memclient.NewClient()).(*impl)
		snap := docstore.Snapshot{
			{ID: "a", Data: map[string]interface{}{"title": "One", "status": "active", "postedAt": "2026-04-01"}},
			{ID: "b", Data: map[string]interface{}{"title": "Two", "status": "active", "postedAt": "2026-04-01"}},
		}
		handler.applySnapshot(snap)
		first := handler.List()
		// equal dates keep the snapshot order
		require.Equal(t, "One", first[0].Title)
		require.Equal(t, "Two", first[1].Title)

		handler.applySnapshot(snap)
		require.Equal(t, first, handler.List())
	})

	t.Run(`create returns the stored id without waiting for a push`, func(t *testing.T) {
		store := memclient.NewClient()
		handler := startHandler(t, store)

		job, err := handler.Create(context.TODO(), entitymodels.Job{
			Title:        "Backend Developer",
			Location:     "Remoto",
			Status:       models.JobStatusActive,
			Description:  "long enough description",
			Applications: 99,
		})
		require.Nil(t, err)
		require.NotEqual(t, "", job.ID)
		require.Equal(t, 0, job.Applications)
		require.Equal(t, entitymapper.Today(), job.PostedAt)

		require.Eventually(t, func() bool {
			_, ok := handler.GetByID(job.ID)
			return ok
		}, time.Second, 10*time.Millisecond)
	})

	t.Run(`broken documents are skipped, the rest still applies`, func(t *testing.T) {
		store := memclient.NewClient()
		seedJob(t, store, "Valid", "active", "2026-01-01")
		_, err := store.Add(context.TODO(), docstore.JobsCollection, map[string]interface{}{})
		require.Nil(t, err)

		handler := startHandler(t, store)
		waitForJobs(t, handler, 1)
		require.Equal(t, "Valid", handler.List()[0].Title)
	})

	t.Run(`update is reflected in the view`, func(t *testing.T) {
		store := memclient.NewClient()
		id := seedJob(t, store, "Before", "draft", "2026-01-01")
		handler := startHandler(t, store)
		waitForJobs(t, handler, 1)

		err := handler.Update(context.TODO(), id, map[string]interface{}{"title": "After", "status": "active"})
		require.Nil(t, err)
		require.Eventually(t, func() bool {
			job, ok := handler.GetByID(id)
			return ok && job.Title == "After" && job.Status == models.JobStatusActive
		}, time.Second, 10*time.Millisecond)
	})

	t.Run(`update stamps updatedAt even with no changed fields`, func(t *testing.T) {
		store := memclient.NewClient()
		id := seedJob(t, store, "Untouched", "active", "2026-01-01")
		handler := startHandler(t, store)
		waitForJobs(t, handler, 1)

		require.Nil(t, handler.Update(context.TODO(), id, map[string]interface{}{}))
		docs, err := store.Query(context.TODO(), docstore.JobsCollection, map[string]interface{}{})
		require.Nil(t, err)
		require.Len(t, docs, 1)
		_, stamped := docs[0].Data["updatedAt"]
		require.True(t, stamped)
	})

	t.Run(`delete removes the job from the view`, func(t *testing.T) {
		store := memclient.NewClient()
		id := seedJob(t, store, "Doomed", "active", "2026-01-01")
		handler := startHandler(t, store)
		waitForJobs(t, handler, 1)

		require.Nil(t, handler.Delete(context.TODO(), id))
		waitForJobs(t, handler, 0)
	})

	t.Run(`subscribe pushes the current list first`, func(t *testing.T) {
		store := memclient.NewClient()
		seedJob(t, store, "Existing", "active", "2026-01-01")
		handler := startHandler(t, store)
		waitForJobs(t, handler, 1)

		updates, unsubscribe := handler.Subscribe()
		defer unsubscribe()
		select {
		case list := <-updates:
			require.Len(t, list, 1)
			require.Equal(t, "Existing", list[0].Title)
		case <-time.After(time.Second):
			t.Fatal("no initial push received")
		}
	})
}
