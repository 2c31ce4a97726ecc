package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/kumulworks/hris-backend-go/internal/config"
	"github.com/kumulworks/hris-backend-go/internal/domain/attendance"
	appHTTP "github.com/kumulworks/hris-backend-go/internal/handler/http"
	"github.com/kumulworks/hris-backend-go/internal/pkg/database"
	"github.com/kumulworks/hris-backend-go/internal/pkg/identity"
	"github.com/kumulworks/hris-backend-go/internal/pkg/jwt"
	"github.com/kumulworks/hris-backend-go/internal/repository/postgresql"
	applicationService "github.com/kumulworks/hris-backend-go/internal/service/application"
	attendanceService "github.com/kumulworks/hris-backend-go/internal/service/attendance"
	leavecreditService "github.com/kumulworks/hris-backend-go/internal/service/leavecredit"
	payrollService "github.com/kumulworks/hris-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.StoreTimeout)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	if err := database.Migrate(dsn, "migrations"); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveCreditRepo := postgresql.NewLeaveCreditRepository(db)
	applicationRepo := postgresql.NewApplicationRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	directory := identity.NewDirectory(employeeRepo)

	zeroPolicy := attendance.ZeroPolicy{
		AMZeroUnset:    cfg.Attendance.AMZeroUnset,
		PMOutZeroUnset: cfg.Attendance.PMOutZeroUnset,
	}

	attendanceSvc := attendanceService.NewService(attendanceRepo, zeroPolicy)
	leaveCreditSvc := leavecreditService.NewService(leaveCreditRepo)
	applicationSvc := applicationService.NewService(
		db,
		applicationRepo,
		leaveCreditSvc,
		directory,
		cfg.Payroll.StandardDayHours,
	)
	payrollSvc := payrollService.NewService(
		payrollRepo,
		attendanceRepo,
		applicationRepo,
		employeeRepo,
		cfg.Payroll,
		zeroPolicy,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveCreditHandler := appHTTP.NewLeaveCreditHandler(leaveCreditSvc)
	applicationHandler := appHTTP.NewApplicationHandler(applicationSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		cfg.App,
		jwtService,
		attendanceHandler,
		leaveCreditHandler,
		applicationHandler,
		payrollHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
