package main

import (
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/logger"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"
	"app/internal/validator"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// surfaceごとに別secretで作る
type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(subjectID int64, role string, tokenVersion int, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(subjectID, 10),
		"role": role,
		"tv":   tokenVersion,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.AdminUser{},
		&model.User{},
		&model.DeliveryPartner{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	partnerRepo := infraRepo.NewPartnerGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	adminRepo := infraRepo.NewAdminGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}

	//bcrypt（登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer（surfaceごと）
	adminIssuer := newJWTIssuer(cfg.AdminJWTSecret)
	partnerIssuer := newJWTIssuer(cfg.PartnerJWTSecret)

	loginValidator := validator.NewLoginValidator()

	//Usecase生成
	adminLoginUC := auth.NewAdminLoginUsecase(adminRepo, verifier, adminIssuer, loginValidator, clock)
	partnerLoginUC := auth.NewPartnerLoginUsecase(partnerRepo, verifier, partnerIssuer, loginValidator, clock)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager)
	partnerUC := usecase.NewPartnerUsecase(partnerRepo, auditRepo, hasher)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo, auditRepo)
	dashboardUC := usecase.NewDashboardUsecase(orderRepo, partnerRepo, userRepo)
	auditLogUC := usecase.NewAuditLogUsecase(auditRepo)
	portalUC := usecase.NewPortalUsecase(txManager, partnerRepo)

	//Handler生成
	h := server.Handlers{
		Auth:         handler.NewAuthHandler(adminLoginUC, partnerLoginUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		AdminPartner: handler.NewAdminPartnerHandler(partnerUC),
		AdminUser:    handler.NewAdminUserHandler(adminUserUC),
		Dashboard:    handler.NewDashboardHandler(dashboardUC),
		AuditLog:     handler.NewAuditLogHandler(auditLogUC),
		Portal:       handler.NewPortalHandler(portalUC),
	}

	//Server起動
	log.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.GoEnv))
	if err := server.Start(cfg, log, adminRepo, h); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
