package initializers

import (
	"context"

	"job-board-backend/config"
	"job-board-backend/lib/docstore"
	memclient "job-board-backend/lib/docstore/mem-client"
	mongoclient "job-board-backend/lib/docstore/mongo-client"
)

func InitDocStore(ctx context.Context) {
	switch config.Conf.DocStore.Driver {
	case "memory":
		docstore.Instance = memclient.NewClient()
	default:
		store, err := mongoclient.NewClient(ctx, config.Conf.DocStore.URI, config.Conf.DocStore.Database)
		if err != nil {
			panic(err.Error())
		}
		docstore.Instance = store
	}
}
