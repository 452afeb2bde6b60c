// Package validation 注册 gin 绑定使用的自定义校验标签
package validation

import (
	"fmt"
	"sync"

	"restaurant/domain/booking"
	"restaurant/domain/notification"
	"restaurant/domain/order"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	once        sync.Once
	registerErr error
)

func parses[T any](parse func(string) (T, error)) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := parse(fl.Field().String())
		return err == nil
	}
}

// Tags 标签名到校验函数
var Tags = map[string]validator.Func{
	"order_status":      parses(order.ParseStatus),
	"booking_status":    parses(booking.ParseStatus),
	"notification_type": parses(notification.ParseType),
}

// Register 只执行一次；gin 的默认校验器必须是 validator/v10
func Register() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		registerErr = RegisterOn(v)
	})
	return registerErr
}

func RegisterOn(v *validator.Validate) error {
	for tag, fn := range Tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s: %w", tag, err)
		}
	}
	return nil
}
