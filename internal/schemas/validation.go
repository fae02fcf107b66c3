package schemas

import (
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	// amounts are stored as decimal(10,2)
	maxMoney = decimal.New(1, 8)

	registerOnce sync.Once
)

// RegisterValidators installs the custom tags and JSON field naming on gin's
// validator. It is safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	})
}

// Validate runs gin's validator outside of a request, as the import command does.
func Validate(obj any) error {
	RegisterValidators()
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return FromBindingError(err)
	}
	if v, ok := obj.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

func checkMoney(errs FieldErrors, field string, d *decimal.Decimal) {
	if d == nil {
		return
	}
	if !d.Equal(d.Round(2)) {
		errs[field] = "Ensure that there are no more than 2 decimal places."
		return
	}
	if d.Abs().GreaterThanOrEqual(maxMoney) {
		errs[field] = "Ensure that there are no more than 10 digits in total."
	}
}

// ParseDate parses a YYYY-MM-DD string as a UTC date.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatMoney renders an amount with exactly two decimal places.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func mustDate(value string) time.Time {
	t, err := ParseDate(value)
	if err != nil {
		// callers validate with the datetime tag first
		return time.Time{}
	}
	return t
}
