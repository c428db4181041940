package user

import (
	"errors"
	"strings"

	"gitee.com/taoJie_1/mall-shop/model/dto"
)

type IValidator interface {
	ValidatorRegisterRequest(data *dto.RegisterRequest) error
	ValidatorChatMessage(message string) error
}

type Validator struct{}

func (v *Validator) ValidatorRegisterRequest(data *dto.RegisterRequest) error {
	if strings.TrimSpace(data.Email) == "" || len(data.Password) < 6 {
		return errors.New("参数错误[gftsd]")
	}
	return nil
}

func (v *Validator) ValidatorChatMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return errors.New("消息内容为空[h2d5k]")
	}
	return nil
}
