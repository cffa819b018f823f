package main

import (
	"github.com/joho/godotenv"

	"marketplace/internal/config"
	"marketplace/internal/domain/model"
	"marketplace/internal/handler"
	"marketplace/internal/infra/db"
	infraRepo "marketplace/internal/infra/repository"
	"marketplace/internal/server"
	"marketplace/internal/usecase"
	"marketplace/pkg/logging"
	"marketplace/pkg/metrics"
)

func main() {
	//.envはあれば読む（本番は環境変数だけで動く）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New("api", cfg.GoEnv)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Buyer{},
		&model.Product{},
		&model.Voucher{},
		&model.Order{},
		&model.OrderItem{},
		&model.Rating{},
	); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	voucherRepo := infraRepo.NewVoucherGormRepository(gormDB)
	ratingRepo := infraRepo.NewRatingGormRepository(gormDB)
	buyerRepo := infraRepo.NewBuyerGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	m := metrics.NewServerMetrics("api")

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo)
	productUC := usecase.NewProductUsecase(productRepo, ratingRepo, userRepo)
	buyerUC := usecase.NewBuyerUsecase(buyerRepo)
	orderUC := usecase.NewOrderUsecase(txManager, m)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, userRepo)
	voucherUC := usecase.NewVoucherUsecase(voucherRepo)
	ratingUC := usecase.NewRatingUsecase(ratingRepo, productRepo, userRepo)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo)

	//Server組み立て
	e := server.New(logger, m)
	server.RegisterRoutes(e, cfg, server.Handlers{
		Auth:      handler.NewAuthHandler(authUC),
		Product:   handler.NewProductHandler(productUC),
		Buyer:     handler.NewBuyerHandler(buyerUC),
		Order:     handler.NewOrderHandler(orderUC, adminOrderUC),
		Voucher:   handler.NewVoucherHandler(voucherUC),
		Rating:    handler.NewRatingHandler(ratingUC),
		AdminUser: handler.NewAdminUserHandler(adminUserUC),
	})

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("server start")
	if err := e.Start(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
