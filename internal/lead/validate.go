package lead

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// The patterns are intentionally loose; they reject obvious typos only.
var (
	emailPattern    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern    = regexp.MustCompile(`^\+?[0-9\s\-()]{7,15}$`)
	pincodePattern  = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	quantityPattern = regexp.MustCompile(`^[0-9]+$`)
)

var validate = newValidator()

// structFields maps form fields to the Go field names the validator reports.
var structFields = map[Field]string{
	FieldName:         "Name",
	FieldEmail:        "Email",
	FieldPhone:        "Phone",
	FieldCompany:      "Company",
	FieldQuantity:     "Quantity",
	FieldSize:         "Size",
	FieldPincode:      "Pincode",
	FieldAddress:      "Address",
	FieldBusinessType: "BusinessType",
	FieldStrawSizes:   "StrawSizes",
	FieldMessage:      "Message",
}

func newValidator() *validator.Validate {
	v := validator.New()
	rules := map[string]validator.Func{
		"trimmed_min":   trimmedMin,
		"loose_email":   matchTrimmed(emailPattern),
		"loose_phone":   matchTrimmed(phonePattern),
		"pincode":       matchTrimmed(pincodePattern),
		"positive_int":  positiveInt,
		"straw_size":    strawSize,
		"business_type": businessType,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic("lead: register validation " + tag + ": " + err.Error())
		}
	}
	return v
}

func trimmedMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
}

func matchTrimmed(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(strings.TrimSpace(fl.Field().String()))
	}
}

func positiveInt(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if !quantityPattern.MatchString(s) {
		return false
	}
	n, err := strconv.ParseUint(s, 10, 64)
	return err == nil && n > 0
}

func strawSize(fl validator.FieldLevel) bool {
	return lo.Contains(Sizes, fl.Field().String())
}

func businessType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return lo.ContainsBy(BusinessTypes, func(bt BusinessType) bool {
		return bt.Value == value
	})
}

// Validate reports whether every field the variant requires passes its
// constraint. It does not modify the form.
func Validate(form Form, variant Variant) bool {
	return len(Invalid(form, variant)) == 0
}

// Invalid returns the required fields of variant that fail validation, in the
// variant's display order.
func Invalid(form Form, variant Variant) []Field {
	names := lo.Map(variant.Required, func(f Field, _ int) string {
		return structFields[f]
	})
	err := validate.StructPartial(form, names...)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return variant.Required
	}

	failed := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		name := fe.StructField()
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		failed[name] = true
	}
	return lo.Filter(variant.Required, func(f Field, _ int) bool {
		return failed[structFields[f]]
	})
}
