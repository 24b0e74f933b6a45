package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 配達パートナーポータル用。actorは管理者ではなくパートナー本人。
type PortalUsecase struct {
	tx       repo.TransactionManager
	partners repo.PartnerRepository
}

func NewPortalUsecase(tx repo.TransactionManager, partners repo.PartnerRepository) *PortalUsecase {
	return &PortalUsecase{tx: tx, partners: partners}
}

// 勤務フラグ切替。停止中のパートナーはオンラインになれない
func (u *PortalUsecase) SetDuty(ctx context.Context, partnerID int64, online bool) (PartnerOutput, error) {
	if partnerID <= 0 {
		return PartnerOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	p, err := u.partners.FindByID(ctx, partnerID)
	if err == repo.ErrNotFound {
		return PartnerOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return PartnerOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if online && !p.IsActive {
		return PartnerOutput{}, NewHTTPError(http.StatusForbidden, "partner suspended")
	}

	if p.IsOnline != online {
		if err := u.partners.SetOnline(ctx, partnerID, online); err != nil {
			return PartnerOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		p.IsOnline = online
	}

	return toPartnerOutput(p), nil
}

// 自分に割り当て中の進行中注文
func (u *PortalUsecase) MyOrders(ctx context.Context, partnerID int64) ([]OrderOutput, error) {
	if partnerID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListActiveByPartnerID(ctx, partnerID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			oo, err := buildOrderOutput(ctx, r, o)
			if err != nil {
				return err
			}
			outs = append(outs, oo)
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

type PortalDeliverInput struct {
	//CODのときだけ必須（cash / upi）
	PaymentType string
}

// 配達完了報告。out_for_deliveryかつ自分の注文だけ
func (u *PortalUsecase) Deliver(ctx context.Context, partnerID int64, orderID int64, in PortalDeliverInput) (OrderOutput, error) {
	if partnerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//他人の注文は触れない
		if o.PartnerID == nil || *o.PartnerID != partnerID {
			return NewHTTPError(http.StatusForbidden, "forbidden")
		}

		if o.Status != model.OrderStatusOutForDelivery {
			return NewHTTPError(http.StatusBadRequest, "illegal transition")
		}

		if err := deliverOrder(ctx, r, o, in.PaymentType, ""); err != nil {
			return err
		}

		out, err = reloadOrderOutput(ctx, r, orderID)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}
