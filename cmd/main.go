package main

import (
	"database/sql"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	_ "github.com/mattn/go-sqlite3"

	"paypulse/config"
	"paypulse/internal/app/service"
	"paypulse/internal/delivery/telegram"
	"paypulse/internal/delivery/telegram/router"
	"paypulse/internal/earnings"
	"paypulse/internal/repository/sqlite"
	"paypulse/pkg/calendar"
	"paypulse/pkg/workerpool"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := config.NewLogger(cfg.LogLevel)
	log.Info("starting paypulse bot")

	db, err := sql.Open("sqlite3", cfg.DatabasePath)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	defer db.Close()

	if err := sqlite.Migrate(db); err != nil {
		log.WithError(err).Fatal("migrate")
	}

	pool := workerpool.NewWorkerPool(cfg.Workers, cfg.QueueSize)
	defer pool.Close()

	shiftRepo := sqlite.NewSqliteShiftRepo(db)
	builder := earnings.NewBuilder(cfg.TaxRate, cfg.ExpenseCategories)
	shiftService := service.NewShiftService(shiftRepo, builder, service.NewAsyncService(pool), log.WithField("module", "shifts"))
	goalService := service.NewGoalService(sqlite.NewSqliteGoalRepo(db), shiftRepo, log.WithField("module", "goals"))
	employeeService := service.NewEmployeeService(sqlite.NewSqliteEmployeeRepo(db), log.WithField("module", "employees"))

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10},
		OnError: func(err error, c telebot.Context) {
			log.WithError(err).Error("update failed")
		},
	})
	if err != nil {
		log.WithError(err).Fatal("start bot")
	}

	handler := &telegram.Handler{
		Bot:       bot,
		Shifts:    shiftService,
		Goals:     goalService,
		Employees: employeeService,
		Calendar:  &calendar.CalendarController{Bot: bot, Log: log, Now: shiftService.Now},
		Router:    router.New(log.WithField("module", "router")),
		Log:       log.WithField("module", "telegram"),
	}
	handler.Register()

	log.WithField("database", cfg.DatabasePath).Info("bot started")
	bot.Start()
}
