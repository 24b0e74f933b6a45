package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"golang.org/x/sync/errgroup"
)

type DashboardUsecase struct {
	orders   repo.OrderRepository
	partners repo.PartnerRepository
	users    repo.UserRepository
}

func NewDashboardUsecase(orders repo.OrderRepository, partners repo.PartnerRepository, users repo.UserRepository) *DashboardUsecase {
	return &DashboardUsecase{orders: orders, partners: partners, users: users}
}

type DashboardOutput struct {
	OrdersByStatus map[string]int64 `json:"ordersByStatus"`
	TotalOrders    int64            `json:"totalOrders"`
	PartnersOnline int64            `json:"partnersOnline"`
	TotalUsers     int64            `json:"totalUsers"`
}

// 初期表示用のカウンタ。3つ並列で取って揃ってから返す。
// 1つでも失敗したら全体を1つのエラーにまとめる
func (u *DashboardUsecase) Get(ctx context.Context) (DashboardOutput, error) {
	var (
		byStatus       map[model.OrderStatus]int64
		partnersOnline int64
		totalUsers     int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		m, err := u.orders.CountByStatus(gctx)
		if err != nil {
			return err
		}
		byStatus = m
		return nil
	})

	g.Go(func() error {
		n, err := u.partners.CountOnline(gctx)
		if err != nil {
			return err
		}
		partnersOnline = n
		return nil
	})

	g.Go(func() error {
		n, err := u.users.Count(gctx)
		if err != nil {
			return err
		}
		totalUsers = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := DashboardOutput{
		OrdersByStatus: make(map[string]int64, len(byStatus)),
		PartnersOnline: partnersOnline,
		TotalUsers:     totalUsers,
	}
	for s, n := range byStatus {
		out.OrdersByStatus[string(s)] = n
		out.TotalOrders += n
	}

	return out, nil
}
