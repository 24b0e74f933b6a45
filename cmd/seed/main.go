package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"app/internal/domain/model"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	auth "app/internal/usecase/auth_usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// 開発用データ投入ツール。
// 管理者1名 + パートナー2名 + 顧客2名 + 注文3件を入れる。
func main() {
	_ = godotenv.Load()

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

	ctx := context.Background()
	hasher := auth.NewBcryptPasswordHasher(12)

	//管理者（既にいればスキップ）
	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "password123"
	}

	adminRepo := infraRepo.NewAdminGormRepository(gormDB)
	existing, err := adminRepo.FindByEmail(ctx, adminEmail)
	if err != nil {
		panic(err)
	}
	if existing == nil {
		hash, err := hasher.Hash(adminPassword)
		if err != nil {
			panic(err)
		}
		admin := model.AdminUser{
			Email:        adminEmail,
			PasswordHash: hash,
			IsActive:     true,
		}
		if err := gormDB.WithContext(ctx).Create(&admin).Error; err != nil {
			panic(err)
		}
		fmt.Printf("admin created: %s\n", adminEmail)
	} else {
		fmt.Printf("admin exists: %s\n", adminEmail)
	}

	//パートナー
	partnerRepo := infraRepo.NewPartnerGormRepository(gormDB)
	partnerHash, err := hasher.Hash("partner123")
	if err != nil {
		panic(err)
	}
	partners := []model.DeliveryPartner{
		{
			Name:              "佐藤 健",
			Phone:             "+81-9000000001",
			PasswordHash:      partnerHash,
			VehicleType:       "bike",
			VehicleNumber:     "品川 あ 12-34",
			IsOnline:          true,
			IsActive:          true,
			DocumentsVerified: true,
		},
		{
			Name:          "鈴木 一郎",
			Phone:         "+81-9000000002",
			PasswordHash:  partnerHash,
			VehicleType:   "bike",
			VehicleNumber: "品川 い 56-78",
		},
	}
	partnerIDs := make([]int64, 0, len(partners))
	for _, p := range partners {
		id, err := partnerRepo.Create(ctx, p)
		if err != nil {
			//電話番号重複は投入済みとみなす
			fmt.Printf("partner skipped: %s (%v)\n", p.Phone, err)
			continue
		}
		partnerIDs = append(partnerIDs, id)
		fmt.Printf("partner created: id=%d %s\n", id, p.Name)
	}

	//顧客
	users := []model.User{
		{Name: "山田 太郎", Phone: "+81-8000000001", Email: "taro@example.com"},
		{Name: "田中 花子", Phone: "+81-8000000002", Email: "hanako@example.com"},
	}
	userIDs := make([]int64, 0, len(users))
	for i := range users {
		if err := gormDB.WithContext(ctx).Create(&users[i]).Error; err != nil {
			fmt.Printf("user skipped: %s (%v)\n", users[i].Phone, err)
			continue
		}
		userIDs = append(userIDs, users[i].ID)
		fmt.Printf("user created: id=%d %s\n", users[i].ID, users[i].Name)
	}
	if len(userIDs) == 0 {
		fmt.Println("no users available, skip orders")
		return
	}

	//注文（公開IDはORD-xxxxxxxx形式）
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	itemRepo := infraRepo.NewOrderItemGormRepository(gormDB)

	type seedOrder struct {
		order model.Order
		items []model.OrderItem
	}
	seeds := []seedOrder{
		{
			order: model.Order{
				UserID:        userIDs[0],
				Status:        model.OrderStatusPending,
				Subtotal:      1800,
				Discount:      100,
				DeliveryFee:   300,
				Total:         2000,
				PaymentMethod: model.PaymentMethodCOD,
				PaymentStatus: model.PaymentStatusPending,
			},
			items: []model.OrderItem{
				{ProductID: 101, NameSnapshot: "チキンカレー", PriceSnapshot: 900, Quantity: 2, Discount: 100},
			},
		},
		{
			order: model.Order{
				UserID:        userIDs[0],
				Status:        model.OrderStatusConfirmed,
				Subtotal:      1200,
				Discount:      0,
				DeliveryFee:   250,
				Total:         1450,
				PaymentMethod: model.PaymentMethodOnline,
				PaymentStatus: model.PaymentStatusCompleted,
			},
			items: []model.OrderItem{
				{ProductID: 102, NameSnapshot: "マルゲリータ", PriceSnapshot: 1200, Quantity: 1},
			},
		},
	}
	if len(userIDs) > 1 {
		seeds = append(seeds, seedOrder{
			order: model.Order{
				UserID:        userIDs[1],
				Status:        model.OrderStatusPreparing,
				Subtotal:      600,
				Discount:      0,
				DeliveryFee:   200,
				Total:         800,
				PaymentMethod: model.PaymentMethodCOD,
				PaymentStatus: model.PaymentStatusPending,
			},
			items: []model.OrderItem{
				{ProductID: 103, NameSnapshot: "おにぎりセット", PriceSnapshot: 300, Quantity: 2},
			},
		})
	}

	for _, s := range seeds {
		s.order.OrderID = newPublicOrderID()
		if len(partnerIDs) > 0 && s.order.Status == model.OrderStatusPreparing {
			s.order.PartnerID = &partnerIDs[0]
		}
		id, err := orderRepo.Create(ctx, s.order)
		if err != nil {
			panic(err)
		}
		if err := itemRepo.CreateBulk(ctx, id, s.items); err != nil {
			panic(err)
		}
		fmt.Printf("order created: id=%d %s\n", id, s.order.OrderID)
	}
}

// ORD-先頭8桁のUUIDで公開IDを作る
func newPublicOrderID() string {
	u := uuid.NewString()
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(u, "-", "")[:8])
}
