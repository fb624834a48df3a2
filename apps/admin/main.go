package main

import (
	"log"
	"os"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assessment"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/identity"
	"github.com/trezcool/shule/services/email"
	"github.com/trezcool/shule/storage/database"
	"github.com/trezcool/shule/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up DB
	errAndDie(database.CreateIfNotExist(&core.Conf))
	db, err := database.Open(&core.Conf)
	errAndDie(err)
	defer db.Close()

	idRepo := sqlxrepos.NewIdentityRepository(db)
	asmtRepo := sqlxrepos.NewAssessmentRepository(db)
	attRepo := sqlxrepos.NewAttendanceRepository(db)

	idSvc := identity.NewService(idRepo, emailsvc.NewConsoleService())

	// start CLI
	cli := commandLine{
		db:      db,
		idRepo:  idRepo,
		idSvc:   idSvc,
		asmtSvc: assessment.NewService(asmtRepo, idRepo),
		attSvc:  attendance.NewService(attRepo, idRepo),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
