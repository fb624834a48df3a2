package main

import (
	"log"
	"os"

	"github.com/trezcool/shule/apps/api/echo"
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assessment"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/dashboard"
	"github.com/trezcool/shule/core/identity"
	"github.com/trezcool/shule/services/email"
	"github.com/trezcool/shule/services/logger"
	"github.com/trezcool/shule/storage/database"
	"github.com/trezcool/shule/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, core.Conf.AppName+" - ", log.LstdFlags|log.Lshortfile)
	appLogger := logsvc.NewRollbarLogger(std, &core.Conf)
	appLogger.Enable(!core.Conf.Debug)

	// set up DB
	db, err := database.Open(&core.Conf)
	errAndDie(appLogger, err)
	defer db.Close()
	errAndDie(appLogger, database.Migrate(db))

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(appLogger)
	}

	idRepo := sqlxrepos.NewIdentityRepository(db)
	asmtRepo := sqlxrepos.NewAssessmentRepository(db)
	attRepo := sqlxrepos.NewAttendanceRepository(db)

	idSvc := identity.NewService(idRepo, mailSvc)
	asmtSvc := assessment.NewService(asmtRepo, idRepo)
	attSvc := attendance.NewService(attRepo, idRepo)
	dashSvc := dashboard.NewService(idRepo, asmtRepo, attRepo)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:          core.Conf.Server.Address(),
			Logger:        appLogger,
			IdentitySvc:   idSvc,
			AssessmentSvc: asmtSvc,
			AttendanceSvc: attSvc,
			DashboardSvc:  dashSvc,
		},
	)
	app.Start()
}

func errAndDie(logger core.Logger, err error) {
	if err != nil {
		logger.Fatal(err.Error())
	}
}
