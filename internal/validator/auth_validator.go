package validator

import (
	"context"
	"errors"
	"net/mail"
	"regexp"
	"strings"

	auth "app/internal/usecase/auth_usecase"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")
)

type loginValidator struct{}

// Usecaseは interface を依存注入
func NewLoginValidator() auth.LoginValidator {
	return &loginValidator{}
}

// 管理者ログインの入力を検証
func (v *loginValidator) ValidateAdminLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return ErrInvalidInput
	}

	// email形式
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidInput
	}

	return nil
}

// パートナーログインの入力を検証
func (v *loginValidator) ValidatePartnerLogin(ctx context.Context, phone string, password string) error {
	phone = strings.TrimSpace(phone)

	// 必須チェック
	if phone == "" || password == "" {
		return ErrInvalidInput
	}

	// 電話番号の簡易チェック
	if !isPhoneLike(phone) {
		return ErrInvalidInput
	}

	return nil
}

// 数字と+-だけの簡易チェック
func isPhoneLike(s string) bool {
	re := regexp.MustCompile(`^\+?[0-9\-]{7,15}$`)
	return re.MatchString(s)
}
