package lead

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Field identifies a single form field.
type Field string

const (
	FieldName         Field = "name"
	FieldEmail        Field = "email"
	FieldPhone        Field = "phone"
	FieldCompany      Field = "company"
	FieldQuantity     Field = "quantity"
	FieldSize         Field = "size"
	FieldPincode      Field = "pincode"
	FieldAddress      Field = "address"
	FieldBusinessType Field = "businessType"
	FieldStrawSizes   Field = "strawSizes"
	FieldMessage      Field = "message"
)

// Sizes lists the straw diameters on offer, smallest first.
var Sizes = []string{"6.5mm", "8mm", "10mm", "13mm"}

// BusinessType is one entry of the business type select.
type BusinessType struct {
	Value string
	Label string
}

// BusinessTypes lists the selectable business types. The empty value means
// nothing has been selected.
var BusinessTypes = []BusinessType{
	{Value: "cafe", Label: "Cafe"},
	{Value: "restaurant", Label: "Restaurant"},
	{Value: "hotel", Label: "Hotel"},
	{Value: "bar", Label: "Bar/Pub"},
	{Value: "caterer", Label: "Caterer"},
	{Value: "distributor", Label: "Distributor/Wholesaler"},
	{Value: "retailer", Label: "Retailer"},
	{Value: "event_organizer", Label: "Event Organizer"},
	{Value: "other", Label: "Other"},
}

// BusinessTypeLabel returns the display label for value, or value itself when
// it is not a known business type.
func BusinessTypeLabel(value string) string {
	bt, ok := lo.Find(BusinessTypes, func(bt BusinessType) bool {
		return bt.Value == value
	})
	if !ok {
		return value
	}
	return bt.Label
}

// Variant is a named set of form fields collected by one page layout.
type Variant struct {
	Name string
	// Fields lists every field the variant shows, in display order.
	Fields []Field
	// Required lists the fields that must pass validation.
	Required []Field
}

var (
	// Classic is the single-size order form: quantity and one size.
	Classic = Variant{
		Name:     "classic",
		Fields:   []Field{FieldName, FieldEmail, FieldPhone, FieldCompany, FieldQuantity, FieldSize, FieldMessage},
		Required: []Field{FieldName, FieldEmail, FieldPhone, FieldQuantity, FieldSize},
	}

	// Campaign is the free sample campaign form with delivery details and a
	// multi-select of sizes.
	Campaign = Variant{
		Name:     "campaign",
		Fields:   []Field{FieldName, FieldEmail, FieldPhone, FieldPincode, FieldAddress, FieldBusinessType, FieldStrawSizes, FieldMessage},
		Required: []Field{FieldName, FieldEmail, FieldPhone, FieldPincode, FieldAddress, FieldBusinessType, FieldStrawSizes},
	}
)

// VariantByName looks up a variant by its name.
func VariantByName(name string) (Variant, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Classic.Name:
		return Classic, true
	case Campaign.Name:
		return Campaign, true
	default:
		return Variant{}, false
	}
}

// Has reports whether the variant collects field f.
func (v Variant) Has(f Field) bool {
	return slices.Contains(v.Fields, f)
}

// Form holds the values of the lead form.
type Form struct {
	Name         string   `validate:"trimmed_min=2"`
	Email        string   `validate:"loose_email"`
	Phone        string   `validate:"loose_phone"`
	Company      string
	Quantity     string   `validate:"positive_int"`
	Size         string   `validate:"straw_size"`
	Pincode      string   `validate:"pincode"`
	Address      string   `validate:"trimmed_min=6"`
	BusinessType string   `validate:"business_type"`
	StrawSizes   []string `validate:"min=1,dive,straw_size"`
	Message      string
}

// NewForm returns the empty defaults of a form.
func NewForm() Form {
	return Form{
		Size:       Sizes[0],
		StrawSizes: []string{},
	}
}

// Get returns the scalar value of field f. The size set is comma-joined.
func (f Form) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldPhone:
		return f.Phone
	case FieldCompany:
		return f.Company
	case FieldQuantity:
		return f.Quantity
	case FieldSize:
		return f.Size
	case FieldPincode:
		return f.Pincode
	case FieldAddress:
		return f.Address
	case FieldBusinessType:
		return f.BusinessType
	case FieldStrawSizes:
		return strings.Join(f.StrawSizes, ", ")
	case FieldMessage:
		return f.Message
	default:
		return ""
	}
}

// set replaces a scalar field and reports whether the field is known.
func (f *Form) set(field Field, value string) bool {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	case FieldCompany:
		f.Company = value
	case FieldQuantity:
		f.Quantity = value
	case FieldSize:
		f.Size = value
	case FieldPincode:
		f.Pincode = value
	case FieldAddress:
		f.Address = value
	case FieldBusinessType:
		f.BusinessType = value
	case FieldMessage:
		f.Message = value
	default:
		return false
	}
	return true
}

// HasStrawSize reports whether size is selected in the size set.
func (f Form) HasStrawSize(size string) bool {
	return lo.Contains(f.StrawSizes, size)
}

// clone returns a copy that does not share the size slice.
func (f Form) clone() Form {
	f.StrawSizes = slices.Clone(f.StrawSizes)
	if f.StrawSizes == nil {
		f.StrawSizes = []string{}
	}
	return f
}

// toggleStrawSize adds size when absent and removes it when present. Unknown
// sizes are ignored.
func toggleStrawSize(sizes []string, size string) []string {
	if !lo.Contains(Sizes, size) {
		return sizes
	}
	if lo.Contains(sizes, size) {
		return lo.Without(sizes, size)
	}
	return append(slices.Clone(sizes), size)
}
