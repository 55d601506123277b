package database

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	glog "gorm.io/gorm/logger"
)

var C *gorm.DB

func NewGorm() error {
	var err error
	dialector := postgres.Open(viper.GetString("database.dsn"))
	C, err = gorm.Open(dialector, &gorm.Config{
		Logger:         glog.New(&log.Logger, glog.Config{Colorful: true, LogLevel: glog.Warn}),
		TranslateError: true,
	})
	if err != nil {
		return err
	}

	conn, err := C.DB()
	if err != nil {
		return err
	}
	conn.SetMaxIdleConns(viper.GetInt("database.max_idle_conns"))
	conn.SetMaxOpenConns(viper.GetInt("database.max_open_conns"))
	conn.SetConnMaxLifetime(time.Hour)

	return nil
}
