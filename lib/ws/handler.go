package ws

import (
	"context"

	candidateshandler "job-board-backend/lib/candidates"
	jobshandler "job-board-backend/lib/jobs"
	wsclient "job-board-backend/lib/ws/client"
	connectionhub "job-board-backend/lib/ws/hub/connection-hub"
	wsmodels "job-board-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func InitWs(app *fiber.App) {
	app.Use("", func(ctx *fiber.Ctx) error {
		ctx.Locals("sessionID", uuid.NewString())
		return ctx.Next()
	})
	app.Get("/", websocket.New(dashboardHandler))
}

func dashboardHandler(c *websocket.Conn) {
	sessionID := c.Locals("sessionID").(string)
	client := wsclient.NewClient(sessionID, c)
	connectionhub.Instance.AddClient(sessionID, c)
	defer func() {
		connectionhub.Instance.DeleteClient(sessionID)
	}()
	client.Dispatch()
}

// Start relays store updates to the connection hub so the admin dashboard
// sees jobs and candidates change live. Both relays stop with the context;
// each unsubscribe matches its subscribe.
func Start(ctx context.Context) {
	go relayJobs(ctx)
	go relayCandidates(ctx)
}

func relayJobs(ctx context.Context) {
	updates, unsubscribe := jobshandler.Instance.Subscribe()
	defer unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case list, ok := <-updates:
			if !ok {
				return
			}
			connectionhub.Instance.Broadcast(wsmodels.ServerMessage{
				Event: wsmodels.EventJobsUpdated,
				Data:  list,
			})
		}
	}
}

func relayCandidates(ctx context.Context) {
	updates, unsubscribe := candidateshandler.Instance.Subscribe()
	defer unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case list, ok := <-updates:
			if !ok {
				return
			}
			connectionhub.Instance.Broadcast(wsmodels.ServerMessage{
				Event: wsmodels.EventCandidatesUpdated,
				Data:  list,
			})
		}
	}
}
