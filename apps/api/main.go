package main

import (
	"log"
	"os"

	echoapi "studycoach/apps/api/echo"
	"studycoach/core"
	"studycoach/core/course"
	"studycoach/core/material"
	"studycoach/core/plan"
	emailsvc "studycoach/services/email"
	extractorsvc "studycoach/services/extractor"
	logsvc "studycoach/services/logger"
	remindersvc "studycoach/services/reminder"
	"studycoach/storage/database"
	sqlxrepos "studycoach/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig(core.Getwd())
	if err != nil {
		std.Fatal(err)
	}

	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!(conf.Debug || conf.TestMode))

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		std.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	// set up repos & services
	courseRepo := sqlxrepos.NewCourseRepository(db)
	matRepo := sqlxrepos.NewMaterialRepository(db)
	taskRepo := sqlxrepos.NewTaskRepository(db)

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	courseSvc := course.NewService(courseRepo)
	extractor := extractorsvc.NewService(matRepo)
	planSvc := plan.NewService(courseRepo, extractor, taskRepo)
	matSvc := material.NewService(matRepo, planSvc, conf.Uploads.Dir)

	// daily digest job (optional)
	reminder, err := remindersvc.NewService(conf, planSvc, mailSvc, logger)
	if err != nil {
		std.Fatal(err)
	}
	if reminder != nil {
		if err = reminder.Start(); err != nil {
			std.Fatal(err)
		}
		defer reminder.Stop()
	}

	validate, translator := core.NewValidator()

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Address:    conf.ServerAddress(),
		Conf:       conf,
		Logger:     logger,
		CourseSvc:  courseSvc,
		MatSvc:     matSvc,
		PlanSvc:    planSvc,
		Validate:   validate,
		Translator: translator,
	})
	app.Start()
}
