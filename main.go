package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"job-board-backend/config"
	apiv1 "job-board-backend/controllers/v1"
	"job-board-backend/fiberlog"
	"job-board-backend/initializers"
	"job-board-backend/lib/ws"
	"job-board-backend/middleware"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // limit of 100MB
	})
	app.Use(fiberRecover.New())

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))

	//public listing
	apiv1.InitJobApiRouters(apiV1)

	//candidate area
	candidate := fiber.New()
	apiV1.Mount("/candidate", candidate)
	apiv1.InitApplicationApiRouters(candidate)

	//admin panel
	adminPanel := fiber.New()
	apiV1.Mount("/admin_panel", adminPanel)
	apiv1.InitAdminAuthApiRouters(adminPanel)
	adminPanel.Use(middleware.AdminAuthorizationRequired())
	adminPanel.Use(middleware.AdminSessionRequired())
	apiv1.InitAdminJobApiRouters(adminPanel)
	apiv1.InitAdminCandidateApiRouters(adminPanel)

	//live dashboard feed
	wsApp := fiber.New()
	app.Mount("/ws", wsApp)
	ws.InitWs(wsApp)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		<-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
