package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// MaxAmountDecimals is the finest amount precision an order may carry.
const MaxAmountDecimals = 8

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string {
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

var currencyRe = regexp.MustCompile(`^[A-Za-z0-9]{2,10}$`)

// New returns a validator that reports json field names and knows the
// "amount" and "currency" tags.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("amount", amount)
	_ = v.RegisterValidation("currency", func(fl validatorv10.FieldLevel) bool {
		return currencyRe.MatchString(fl.Field().String())
	})
	return v
}

// amount accepts a positive decimal string with at most MaxAmountDecimals
// fractional digits.
func amount(fl validatorv10.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil || !d.IsPositive() {
		return false
	}
	return d.Equal(d.Truncate(MaxAmountDecimals))
}

// Struct validates s and flattens failures into Errs. It returns nil when s
// is valid.
func Struct(v *validatorv10.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := make(Errs, 0, len(ve))
	for _, fe := range ve {
		out = append(out, ErrField{Field: fe.Field(), Msg: message(fe)})
	}
	return out
}

func message(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "amount":
		return "must be a positive decimal with at most 8 fractional digits"
	case "currency":
		return "must be 2-10 letters or digits"
	case "url":
		return "must be an absolute URL"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	}
	return "failed " + fe.Tag()
}
