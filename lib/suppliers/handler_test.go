package suppliershandler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	candidateshandler "job-board-backend/lib/candidates"
	"job-board-backend/lib/docstore"
	memclient "job-board-backend/lib/docstore/mem-client"
)

func setup(t *testing.T) (docstore.Provider, Provider, string) {
	store := memclient.NewClient()
	candidateID, err := store.Add(context.TODO(), docstore.ApplicationsCollection, map[string]interface{}{
		"candidateName":  "Maria Silva",
		"candidateEmail": "maria@example.com",
		"candidatePhone": "+55 11 99999-0000",
		"jobId":          "job-1",
		"jobTitle":       "Backend Developer",
		"status":         "approved",
	})
	require.Nil(t, err)

	candidates := candidateshandler.NewInstance(store)
	require.Nil(t, candidates.Start(context.TODO()))
	require.Eventually(t, func() bool {
		_, ok := candidates.GetByID(candidateID)
		return ok
	}, time.Second, 10*time.Millisecond)

	return store, NewInstance(candidates, store), candidateID
}

func TestSendForAnalysis(t *testing.T) {
	t.Run(`creates the supplier record and flips the flag`, func(t *testing.T) {
		store, handler, candidateID := setup(t)

		require.Nil(t, handler.SendForAnalysis(context.TODO(), candidateID))

		suppliers, err := store.Query(context.TODO(), docstore.SuppliersCollection, map[string]interface{}{
			"email": "maria@example.com",
		})
		require.Nil(t, err)
		require.Len(t, suppliers, 1)
		record := suppliers[0].Data
		require.Equal(t, "Maria Silva", record["nome"])
		require.Equal(t, "PF", record["tipo"])
		require.Equal(t, "Recursos Humanos", record["categoria"])
		require.Equal(t, "RH", record["centroDeCusto"])
		require.Equal(t, "job-1", record["jobId"])

		applications, err := store.Query(context.TODO(), docstore.ApplicationsCollection, map[string]interface{}{
			"candidateEmail": "maria@example.com",
		})
		require.Nil(t, err)
		require.Len(t, applications, 1)
		require.Equal(t, true, applications[0].Data["sentForAnalysis"])
	})

	t.Run(`repeat sends do not duplicate the supplier`, func(t *testing.T) {
		store, handler, candidateID := setup(t)

		require.Nil(t, handler.SendForAnalysis(context.TODO(), candidateID))
		require.Nil(t, handler.SendForAnalysis(context.TODO(), candidateID))

		suppliers, err := store.Query(context.TODO(), docstore.SuppliersCollection, map[string]interface{}{
			"email": "maria@example.com",
		})
		require.Nil(t, err)
		require.Len(t, suppliers, 1)
	})

	t.Run(`unknown candidate is an error`, func(t *testing.T) {
		_, handler, _ := setup(t)
		require.NotNil(t, handler.SendForAnalysis(context.TODO(), "missing"))
	})
}
