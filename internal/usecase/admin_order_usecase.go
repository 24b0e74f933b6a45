package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminOrderUsecase struct {
	tx repo.TransactionManager
}

func NewAdminOrderUsecase(tx repo.TransactionManager) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx}
}

type AdminUpdateOrderStatusInput struct {
	Status string
	Note   string
	//CODのdelivered遷移のときだけ必須（cash / upi）
	PaymentType string
}

type AdminCancelOrderInput struct {
	Reason string
}

type AdminAssignPartnerInput struct {
	PartnerID int64
}

// 注文一覧（status絞り込み＋ページング）
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.OrderListFilter) (OrderListOutput, error) {
	// page/limitの最低限チェック
	if f.Page < 1 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	// statusは閉じた集合。未知の値は弾く
	if f.Status != "" && !model.IsValidOrderStatus(f.Status) {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			oo, err := buildOrderOutput(ctx, r, o)
			if err != nil {
				return err
			}
			outs = append(outs, oo)
		}

		out = OrderListOutput{
			Orders:  outs,
			Total:   total,
			Page:    f.Page,
			Limit:   f.Limit,
			HasPrev: f.Page > 1,
			HasNext: hasNextPage(f.Page, f.Limit, total),
		}
		return nil
	})

	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

// 注文詳細（明細＋担当パートナー＋操作一覧つき）
func (u *AdminOrderUsecase) Detail(ctx context.Context, orderID int64) (OrderOutput, error) {
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

		out, err = buildOrderOutput(ctx, r, o)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ステータス更新（前進遷移のみ。キャンセルはCancelで）
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorAdminID int64, orderID int64, in AdminUpdateOrderStatusInput) (OrderOutput, error) {
	if actorAdminID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	if !model.IsValidOrderStatus(string(newStatus)) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	//キャンセルは理由必須の専用エンドポイント
	if newStatus == model.OrderStatusCancelled {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "use cancel endpoint")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 注文取得
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 遷移テーブルで判定（終端もここで弾ける）
		if !model.CanTransition(o.Status, newStatus) {
			return NewHTTPError(http.StatusBadRequest, "illegal transition")
		}

		beforeStatus := string(o.Status)

		if newStatus == model.OrderStatusDelivered {
			if err := deliverOrder(ctx, r, o, in.PaymentType, in.Note); err != nil {
				return err
			}
		} else {
			if err := r.Orders().UpdateStatus(ctx, orderID, newStatus, in.Note); err != nil {
				if err == repo.ErrNotFound {
					return NewHTTPError(http.StatusNotFound, "not found")
				}
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		// ★監査ログ（UPDATE_ORDER_STATUS）
		beforeJSON := `{"status":"` + beforeStatus + `"}`
		afterJSON := `{"status":"` + string(newStatus) + `"}`
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorAdminID: actorAdminID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//更新後の注文を同一Txで読み直して返す
		out, err = reloadOrderOutput(ctx, r, orderID)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// delivered遷移の本体。CODは支払い種別の確認が必須。
// 管理画面とパートナーポータルの両方から使う。
func deliverOrder(ctx context.Context, r repo.TxRepos, o model.Order, paymentType string, note string) error {
	now := time.Now()

	paymentStatus := o.PaymentStatus
	verified := o.VerifiedPaymentType

	if o.PaymentMethod == model.PaymentMethodCOD {
		pt := model.VerifiedPaymentType(strings.TrimSpace(paymentType))
		if pt != model.VerifiedPaymentCash && pt != model.VerifiedPaymentUPI {
			return NewHTTPError(http.StatusBadRequest, "payment confirmation required")
		}
		paymentStatus = model.PaymentStatusCompleted
		verified = pt
	}

	if err := r.Orders().MarkDelivered(ctx, o.ID, now, paymentStatus, verified, note); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//担当パートナーの集計更新（報酬＝配達料）
	if o.PartnerID != nil {
		if err := r.Partners().RecordDelivery(ctx, *o.PartnerID, o.DeliveryFee); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return nil
}

// キャンセル（非終端ならどこからでも。理由必須）
func (u *AdminOrderUsecase) Cancel(ctx context.Context, actorAdminID int64, orderID int64, in AdminCancelOrderInput) (OrderOutput, error) {
	if actorAdminID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "reason required")
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

		// 終端ガード
		if !model.CanCancel(o.Status) {
			return NewHTTPError(http.StatusBadRequest, "cannot cancel terminal order")
		}

		if err := r.Orders().Cancel(ctx, orderID, reason); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// ★監査ログ（CANCEL_ORDER）
		beforeJSON := `{"status":"` + string(o.Status) + `"}`
		afterJSON := `{"status":"cancelled","reason":` + quoteJSON(reason) + `}`
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorAdminID: actorAdminID,
			Action:       model.AuditActionCancelOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out, err = reloadOrderOutput(ctx, r, orderID)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// パートナー割り当て（終端は不可。同じ人への再割り当ても不可）
func (u *AdminOrderUsecase) AssignPartner(ctx context.Context, actorAdminID int64, orderID int64, in AdminAssignPartnerInput) (OrderOutput, error) {
	if actorAdminID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.PartnerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid partnerId")
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

		// 終端ガード
		if o.Status.IsTerminal() {
			return NewHTTPError(http.StatusBadRequest, "order is terminal")
		}

		// 同じパートナーへの付け直しは無意味なので弾く
		if o.PartnerID != nil && *o.PartnerID == in.PartnerID {
			return NewHTTPError(http.StatusBadRequest, "partner already assigned")
		}

		p, err := r.Partners().FindByID(ctx, in.PartnerID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "partner not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// online + active + 書類確認済みだけ割り当て可
		if !p.IsEligible() {
			return NewHTTPError(http.StatusBadRequest, "partner not eligible")
		}

		if err := r.Orders().AssignPartner(ctx, orderID, in.PartnerID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// ★監査ログ（ASSIGN_PARTNER）
		beforeJSON := `{"partner_id":` + int64JSON(o.PartnerID) + `}`
		afterJSON := `{"partner_id":` + int64JSON(&in.PartnerID) + `}`
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorAdminID: actorAdminID,
			Action:       model.AuditActionAssignPartner,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out, err = reloadOrderOutput(ctx, r, orderID)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 明細と担当パートナーを足してOutputにする
func buildOrderOutput(ctx context.Context, r repo.TxRepos, o model.Order) (OrderOutput, error) {
	items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var partner *model.DeliveryPartner
	if o.PartnerID != nil {
		p, err := r.Partners().FindByID(ctx, *o.PartnerID)
		if err != nil && err != repo.ErrNotFound {
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err == nil {
			partner = &p
		}
	}

	return toOrderOutput(o, items, partner), nil
}

// 更新系のあとに同一Txで読み直す（ローカルで継ぎ足さない）
func reloadOrderOutput(ctx context.Context, r repo.TxRepos, orderID int64) (OrderOutput, error) {
	o, err := r.Orders().FindByID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return buildOrderOutput(ctx, r, o)
}
