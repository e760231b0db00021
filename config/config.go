package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	DocStore struct {
		// memory driver keeps everything in-process; mongo talks to the hosted store.
		Driver   string `default:"mongo" env:"DOCSTORE_DRIVER"`
		URI      string `default:"mongodb://127.0.0.1:27017/?replicaSet=rs0" env:"DOCSTORE_URI"`
		Database string `default:"job-board" env:"DOCSTORE_DATABASE"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName      string `default:"job-board-files" env:"S3_BUCKET_NAME"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	Auth struct {
		// secret shared with the external identity provider issuing candidate tokens
		JWTSecret string `default:"candidate-secret" env:"AUTH_JWT_SECRET"`
	}
	AdminAuth struct {
		Email           string `default:"admin@dotgroup.com.br" env:"ADMIN_AUTH_EMAIL"`
		Password        string `default:"" env:"ADMIN_AUTH_PASSWORD"`
		JWTSecret       string `default:"admin-secret" env:"ADMIN_AUTH_JWT_SECRET"`
		SessionTTLHours int    `default:"24" env:"ADMIN_AUTH_SESSION_TTL_HOURS"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
