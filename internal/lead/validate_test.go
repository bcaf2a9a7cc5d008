package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validClassic() Form {
	f := NewForm()
	f.Name = "Jo"
	f.Email = "a@b.com"
	f.Phone = "+911234567"
	f.Quantity = "5"
	return f
}

func validCampaign() Form {
	f := NewForm()
	f.Name = "Asha Rao"
	f.Email = "asha@x.com"
	f.Phone = "+919876543210"
	f.Pincode = "560001"
	f.Address = "12 MG Road"
	f.BusinessType = "cafe"
	f.StrawSizes = []string{"6.5mm", "8mm"}
	return f
}

func TestValidateClassic(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Form)
		expected bool
	}{
		{"all required fields", func(*Form) {}, true},
		{"bad email", func(f *Form) { f.Email = "bad" }, false},
		{"email without tld", func(f *Form) { f.Email = "a@b" }, false},
		{"email with spaces around", func(f *Form) { f.Email = "  a@b.com " }, true},
		{"single character name", func(f *Form) { f.Name = "J" }, false},
		{"name padded with whitespace", func(f *Form) { f.Name = "  J  " }, false},
		{"phone too short", func(f *Form) { f.Phone = "12345" }, false},
		{"phone with punctuation", func(f *Form) { f.Phone = "(987) 654-3210" }, true},
		{"phone with letters", func(f *Form) { f.Phone = "+91abc4567" }, false},
		{"phone too long", func(f *Form) { f.Phone = "1234567890123456" }, false},
		{"missing quantity", func(f *Form) { f.Quantity = "" }, false},
		{"zero quantity", func(f *Form) { f.Quantity = "0" }, false},
		{"negative quantity", func(f *Form) { f.Quantity = "-3" }, false},
		{"fractional quantity", func(f *Form) { f.Quantity = "2.5" }, false},
		{"unknown size", func(f *Form) { f.Size = "7mm" }, false},
		{"company and message are optional", func(f *Form) { f.Company = ""; f.Message = "" }, true},
		{"campaign fields are ignored", func(f *Form) { f.Pincode = "x" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validClassic()
			tt.mutate(&f)
			assert.Equal(t, tt.expected, Validate(f, Classic))
		})
	}
}

func TestValidateCampaign(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Form)
		expected bool
	}{
		{"all required fields", func(*Form) {}, true},
		{"pincode starting with zero", func(f *Form) { f.Pincode = "060001" }, false},
		{"pincode too short", func(f *Form) { f.Pincode = "56001" }, false},
		{"pincode with spaces around", func(f *Form) { f.Pincode = " 560001 " }, true},
		{"short address", func(f *Form) { f.Address = "12 MG" }, false},
		{"address padded to length", func(f *Form) { f.Address = "   abcde   " }, false},
		{"six character address", func(f *Form) { f.Address = "abcdef" }, true},
		{"no business type", func(f *Form) { f.BusinessType = "" }, false},
		{"unknown business type", func(f *Form) { f.BusinessType = "spaceport" }, false},
		{"no sizes", func(f *Form) { f.StrawSizes = []string{} }, false},
		{"nil sizes", func(f *Form) { f.StrawSizes = nil }, false},
		{"unknown size in set", func(f *Form) { f.StrawSizes = []string{"6.5mm", "99mm"} }, false},
		{"quantity is not collected", func(f *Form) { f.Quantity = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validCampaign()
			tt.mutate(&f)
			assert.Equal(t, tt.expected, Validate(f, Campaign))
		})
	}
}

func TestValidateIsRepeatable(t *testing.T) {
	f := validCampaign()
	before := f.clone()

	first := Validate(f, Campaign)
	second := Validate(f, Campaign)

	assert.Equal(t, first, second)
	assert.Equal(t, before, f)
}

func TestInvalid(t *testing.T) {
	f := NewForm()
	f.Name = "Asha"
	f.StrawSizes = []string{"8mm", "nope"}

	assert.Equal(t,
		[]Field{FieldEmail, FieldPhone, FieldPincode, FieldAddress, FieldBusinessType, FieldStrawSizes},
		Invalid(f, Campaign),
	)
	assert.Empty(t, Invalid(validCampaign(), Campaign))
}

func TestEmptyFormIsInvalid(t *testing.T) {
	assert.False(t, Validate(NewForm(), Classic))
	assert.False(t, Validate(NewForm(), Campaign))
}
