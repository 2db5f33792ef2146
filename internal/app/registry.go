package app

import (
	"os"

	"leave-portal/internal/announcement"
	"leave-portal/internal/auth"
	"leave-portal/internal/balance"
	"leave-portal/internal/employee"
	"leave-portal/internal/holiday"
	"leave-portal/internal/leave"
	"leave-portal/internal/messaging/kafka"
	"leave-portal/internal/rbac"
	"leave-portal/internal/report"
	"leave-portal/internal/shared/apperror"

	"github.com/casbin/casbin/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Registry is the wired object graph for the API binary. Everything hangs off
// the database handle; construction order follows the dependency arrows.
type Registry struct {
	DB       *gorm.DB
	RDB      *redis.Client
	Enforcer *casbin.Enforcer

	EmployeeRepo employee.Repository
	LeaveRepo    leave.Repository
	BalanceRepo  balance.Repository
	OutboxRepo   kafka.OutboxRepository

	BalanceService balance.Service
	LeaveService   leave.Service

	AuthHandler         *auth.Handler
	EmployeeHandler     *employee.Handler
	LeaveHandler        *leave.Handler
	BalanceHandler      *balance.Handler
	HolidayHandler      *holiday.Handler
	AnnouncementHandler *announcement.Handler
	ReportHandler       *report.Handler

	ActionTokens *leave.ActionTokenSigner
}

func BuildRegistry(db *gorm.DB, rdb *redis.Client, logger *zap.Logger) (*Registry, error) {
	apperror.Init()

	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return nil, err
	}

	employeeRepo := employee.NewRepository(db)
	leaveRepo := leave.NewRepository(db)
	balanceRepo := balance.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)
	holidayRepo := holiday.NewRepository(db)
	announcementRepo := announcement.NewRepository(db)
	reportRepo := report.NewRepository(db)
	authRepo := auth.NewRepository(db)

	locks := balance.NewEmployeeLocks()
	tokens := leave.NewActionTokenSigner(os.Getenv("LEAVE_TOKEN_SECRET"))

	balanceService := balance.NewService(balanceRepo, rdb, logger)
	leaveService := leave.NewService(
		db, leaveRepo, balanceRepo, balanceService,
		locks, employeeRepo, outboxRepo, holidayRepo, logger,
	)
	employeeService := employee.NewService(db, employeeRepo, balanceRepo, logger)
	holidayService := holiday.NewService(holidayRepo, logger)
	announcementService := announcement.NewService(announcementRepo, logger)
	reportService := report.NewService(reportRepo, employeeRepo, logger)
	authService := auth.NewService(authRepo, employeeRepo, logger)

	return &Registry{
		DB:       db,
		RDB:      rdb,
		Enforcer: enforcer,

		EmployeeRepo: employeeRepo,
		LeaveRepo:    leaveRepo,
		BalanceRepo:  balanceRepo,
		OutboxRepo:   outboxRepo,

		BalanceService: balanceService,
		LeaveService:   leaveService,

		AuthHandler:         auth.NewHandler(authService, logger),
		EmployeeHandler:     employee.NewHandler(employeeService, logger),
		LeaveHandler:        leave.NewHandler(leaveService, tokens, logger),
		BalanceHandler:      balance.NewHandler(balanceService, logger),
		HolidayHandler:      holiday.NewHandler(holidayService, logger),
		AnnouncementHandler: announcement.NewHandler(announcementService, logger),
		ReportHandler:       report.NewHandler(reportService, logger),

		ActionTokens: tokens,
	}, nil
}
