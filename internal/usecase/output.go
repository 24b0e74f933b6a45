package usecase

import (
	"time"

	"app/internal/domain/model"
)

// フロントに返す形。キー名は管理画面の契約に合わせてcamelCase
type OrderItemOutput struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Discount  int64  `json:"discount"`
	Quantity  int64  `json:"quantity"`
	Image     string `json:"image,omitempty"`
}

// 注文に添える担当パートナーの要約
type PartnerSummary struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	VehicleType   string  `json:"vehicleType,omitempty"`
	VehicleNumber string  `json:"vehicleNumber,omitempty"`
	Rating        float64 `json:"rating"`
}

type OrderOutput struct {
	ID      int64  `json:"id"`
	OrderID string `json:"orderId"`
	UserID  int64  `json:"userId"`

	Status string `json:"status"`
	//バッジ色のカテゴリ（success/warning/danger/info/secondary）
	StatusCategory string `json:"statusCategory"`
	StatusNote     string `json:"statusNote,omitempty"`

	Subtotal    int64 `json:"subtotal"`
	Discount    int64 `json:"discount"`
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`

	PaymentMethod       string `json:"paymentMethod"`
	PaymentStatus       string `json:"paymentStatus"`
	VerifiedPaymentType string `json:"verifiedPaymentType,omitempty"`

	CancelReason string `json:"cancelReason,omitempty"`

	DeliveryPartner *PartnerSummary `json:"deliveryPartner,omitempty"`

	Items []OrderItemOutput `json:"items"`

	//今の状態から押せる操作。終端なら空
	Actions []model.OrderAction `json:"actions"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
}

// 一覧レスポンス。has_prev/has_nextでページ境界を返す
type OrderListOutput struct {
	Orders  []OrderOutput `json:"orders"`
	Total   int64         `json:"total"`
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
	HasPrev bool          `json:"has_prev"`
	HasNext bool          `json:"has_next"`
}

type PartnerOutput struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	Phone               string  `json:"phone"`
	VehicleType         string  `json:"vehicleType,omitempty"`
	VehicleNumber       string  `json:"vehicleNumber,omitempty"`
	IsOnline            bool    `json:"isOnline"`
	IsActive            bool    `json:"isActive"`
	DocumentsVerified   bool    `json:"documentsVerified"`
	TotalDeliveries     int64   `json:"totalDeliveries"`
	CompletedDeliveries int64   `json:"completedDeliveries"`
	Earnings            int64   `json:"earnings"`
	Rating              float64 `json:"rating"`
}

type UserOutput struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email,omitempty"`
	IsBlacklisted   bool   `json:"isBlacklisted"`
	BlacklistReason string `json:"blacklistReason,omitempty"`
	TotalOrders     int64  `json:"totalOrders"`
	TotalSpent      int64  `json:"totalSpent"`
}

type UserListOutput struct {
	Users   []UserOutput `json:"users"`
	Total   int64        `json:"total"`
	Page    int          `json:"page"`
	Limit   int          `json:"limit"`
	HasPrev bool         `json:"has_prev"`
	HasNext bool         `json:"has_next"`
}

func toOrderOutput(o model.Order, items []model.OrderItem, partner *model.DeliveryPartner) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.NameSnapshot,
			Price:     it.PriceSnapshot,
			Discount:  it.Discount,
			Quantity:  it.Quantity,
			Image:     it.ImageURL,
		})
	}

	out := OrderOutput{
		ID:                  o.ID,
		OrderID:             o.OrderID,
		UserID:              o.UserID,
		Status:              string(o.Status),
		StatusCategory:      o.Status.DisplayCategory(),
		StatusNote:          o.StatusNote,
		Subtotal:            o.Subtotal,
		Discount:            o.Discount,
		DeliveryFee:         o.DeliveryFee,
		Total:               o.Total,
		PaymentMethod:       string(o.PaymentMethod),
		PaymentStatus:       string(o.PaymentStatus),
		VerifiedPaymentType: string(o.VerifiedPaymentType),
		CancelReason:        o.CancelReason,
		Items:               outItems,
		Actions:             model.ActionsFor(o),
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
		DeliveredAt:         o.DeliveredAt,
	}

	if partner != nil {
		out.DeliveryPartner = &PartnerSummary{
			ID:            partner.ID,
			Name:          partner.Name,
			Phone:         partner.Phone,
			VehicleType:   partner.VehicleType,
			VehicleNumber: partner.VehicleNumber,
			Rating:        partner.Rating,
		}
	}

	return out
}

func toPartnerOutput(p model.DeliveryPartner) PartnerOutput {
	return PartnerOutput{
		ID:                  p.ID,
		Name:                p.Name,
		Phone:               p.Phone,
		VehicleType:         p.VehicleType,
		VehicleNumber:       p.VehicleNumber,
		IsOnline:            p.IsOnline,
		IsActive:            p.IsActive,
		DocumentsVerified:   p.DocumentsVerified,
		TotalDeliveries:     p.TotalDeliveries,
		CompletedDeliveries: p.CompletedDeliveries,
		Earnings:            p.Earnings,
		Rating:              p.Rating,
	}
}

func toUserOutput(u model.User) UserOutput {
	return UserOutput{
		ID:              u.ID,
		Name:            u.Name,
		Phone:           u.Phone,
		Email:           u.Email,
		IsBlacklisted:   u.IsBlacklisted,
		BlacklistReason: u.BlacklistReason,
		TotalOrders:     u.TotalOrders,
		TotalSpent:      u.TotalSpent,
	}
}

// page*limit >= total なら次ページなし
func hasNextPage(page int, limit int, total int64) bool {
	return int64(page)*int64(limit) < total
}
