package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/hrcore/hr-backend-go/internal/config"
	appHTTP "github.com/hrcore/hr-backend-go/internal/handler/http"
	"github.com/hrcore/hr-backend-go/internal/pkg/database"
	"github.com/hrcore/hr-backend-go/internal/pkg/jwt"
	"github.com/hrcore/hr-backend-go/internal/pkg/lock"
	"github.com/hrcore/hr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hrcore/hr-backend-go/internal/service/attendance"
	authService "github.com/hrcore/hr-backend-go/internal/service/auth"
	employeeService "github.com/hrcore/hr-backend-go/internal/service/employee"
	leaveService "github.com/hrcore/hr-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "hr-backend"),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	// Redis backs the clock-in lock when configured; a process-local lock
	// is only safe for single-instance deployments.
	var locker lock.Locker
	if cfg.Redis.Addr != "" {
		redisLocker, err := lock.NewRedisLocker(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis: ", err)
		}
		defer redisLocker.Close()
		locker = redisLocker
	} else {
		logger.Warn("REDIS_ADDR not set, using in-process clock-in lock")
		locker = lock.NewMemoryLocker()
	}

	userRepo := postgresql.NewUserRepository(db)
	passwordResetRepo := postgresql.NewPasswordResetRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	attendancePolicyRepo := postgresql.NewAttendancePolicyRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	txRunner := postgresql.NewTxRunner(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(userRepo, passwordResetRepo, employeeRepo, jwtService, logger)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, logger)
	attendanceSvc, err := attendanceService.NewAttendanceService(
		attendanceRepo,
		attendancePolicyRepo,
		locker,
		attendanceService.DefaultRules(),
		cfg.Attendance.LockTTL,
		cfg.App.Timezone,
		logger,
	)
	if err != nil {
		log.Fatal("Failed to build attendance service: ", err)
	}
	leaveSvc, err := leaveService.NewLeaveService(
		leaveTypeRepo,
		leaveBalanceRepo,
		leaveRequestRepo,
		txRunner,
		leaveService.DefaultPolicies(),
		logger,
	)
	if err != nil {
		log.Fatal("Failed to build leave service: ", err)
	}

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		attendanceHandler,
		leaveHandler,
		employeeHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
