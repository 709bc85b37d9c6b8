package checkout

import (
	"errors"
	"regexp"
	"slices"
	"strings"
)

type DeliveryMethod string

const (
	DeliveryShip   DeliveryMethod = "ship"
	DeliveryPickup DeliveryMethod = "pickup"
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	// PaymentStore defers payment to pickup time; only valid with
	// DeliveryPickup.
	PaymentStore PaymentMethod = "store"
)

var ErrStoreRequiresPickup = errors.New("pay-at-store is only available with in-store pickup")

// Form field names, also the keys of the validation error map.
const (
	FieldEmail     = "email"
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldAddress   = "address"
	FieldCity      = "city"
	FieldZip       = "zip"
)

type Form struct {
	Email     string
	FirstName string
	LastName  string
	Address   string
	City      string
	Zip       string
	Phone     string
}

// Draft is the checkout state a shopper edits before submitting: the form,
// the two method axes, and the per-field validation errors.
type Draft struct {
	Form     Form
	delivery DeliveryMethod
	payment  PaymentMethod
	errs     map[string]string
}

func NewDraft() *Draft {
	return &Draft{
		delivery: DeliveryShip,
		payment:  PaymentCard,
		errs:     make(map[string]string),
	}
}

func (d *Draft) Delivery() DeliveryMethod { return d.delivery }
func (d *Draft) Payment() PaymentMethod   { return d.payment }

// SetDeliveryMethod switches the delivery axis. Switching to ship while
// pay-at-store is selected force-switches payment back to card; store is
// never a valid payment method for shipping.
func (d *Draft) SetDeliveryMethod(m DeliveryMethod) {
	d.delivery = m
	if m == DeliveryShip && d.payment == PaymentStore {
		d.payment = PaymentCard
	}
}

func (d *Draft) SetPaymentMethod(m PaymentMethod) error {
	if m == PaymentStore && d.delivery != DeliveryPickup {
		return ErrStoreRequiresPickup
	}
	d.payment = m
	return nil
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// requiredFields depends on the delivery method: shipping needs the full
// address block, pickup only a reachable email.
func (d *Draft) requiredFields() []string {
	if d.delivery == DeliveryPickup {
		return []string{FieldEmail}
	}
	return []string{FieldEmail, FieldFirstName, FieldLastName, FieldAddress, FieldCity, FieldZip}
}

func (d *Draft) fieldValue(name string) string {
	switch name {
	case FieldEmail:
		return d.Form.Email
	case FieldFirstName:
		return d.Form.FirstName
	case FieldLastName:
		return d.Form.LastName
	case FieldAddress:
		return d.Form.Address
	case FieldCity:
		return d.Form.City
	case FieldZip:
		return d.Form.Zip
	default:
		return ""
	}
}

// ValidateField runs the per-field (blur) validation and returns the
// message, "" when the field is fine. The draft's error map is updated
// either way.
func (d *Draft) ValidateField(name string) string {
	value := strings.TrimSpace(d.fieldValue(name))

	var msg string
	switch {
	case !slices.Contains(d.requiredFields(), name):
		// Not required under the current delivery method.
	case value == "":
		msg = "This field is required"
	case name == FieldEmail && !emailPattern.MatchString(value):
		msg = "Please enter a valid email address"
	}

	if msg == "" {
		delete(d.errs, name)
	} else {
		d.errs[name] = msg
	}
	return msg
}

// Validate runs the whole-form (submit) validation: exactly the fields
// required by the current delivery method are checked, and the error map
// is rebuilt from scratch.
func (d *Draft) Validate() map[string]string {
	d.errs = make(map[string]string)
	for _, name := range d.requiredFields() {
		d.ValidateField(name)
	}
	return d.Errors()
}

// Errors returns a copy of the current field error map.
func (d *Draft) Errors() map[string]string {
	out := make(map[string]string, len(d.errs))
	for k, v := range d.errs {
		out[k] = v
	}
	return out
}
