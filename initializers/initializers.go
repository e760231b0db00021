package initializers

import (
	"context"
	"time"

	"job-board-backend/config"
	"job-board-backend/fiberlog"
	adminpanelauthhandler "job-board-backend/lib/admin-panel/auth"
	applicationhandler "job-board-backend/lib/application"
	candidateprofilehandler "job-board-backend/lib/candidate-profile"
	candidateshandler "job-board-backend/lib/candidates"
	xlsexport "job-board-backend/lib/export/xls"
	filestorage "job-board-backend/lib/file-storage"
	jobshandler "job-board-backend/lib/jobs"
	suppliershandler "job-board-backend/lib/suppliers"
	"job-board-backend/lib/ws"
	connectionhub "job-board-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDocStore(ctx)
	InitS3()
	InitSmtp()
	connectionhub.Init()
	filestorage.NewHandler()
	jobshandler.NewHandler()
	candidateshandler.NewHandler()
	candidateprofilehandler.NewHandler()
	applicationhandler.NewHandler()
	suppliershandler.NewHandler()
	adminpanelauthhandler.NewHandler(
		adminpanelauthhandler.StaticCredentialPolicy{
			Email:    config.Conf.AdminAuth.Email,
			Password: config.Conf.AdminAuth.Password,
		},
		config.Conf.AdminAuth.JWTSecret,
		time.Duration(config.Conf.AdminAuth.SessionTTLHours)*time.Hour,
	)
	xlsexport.NewHandler()

	if err := jobshandler.Instance.Start(ctx); err != nil {
		panic(err.Error())
	}
	if err := candidateshandler.Instance.Start(ctx); err != nil {
		panic(err.Error())
	}
	ws.Start(ctx)
}
