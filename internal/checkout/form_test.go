package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodStateMachine(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		d := NewDraft()
		assert.Equal(t, DeliveryShip, d.Delivery())
		assert.Equal(t, PaymentCard, d.Payment())
	})

	t.Run("Store requires pickup", func(t *testing.T) {
		d := NewDraft()
		assert.ErrorIs(t, d.SetPaymentMethod(PaymentStore), ErrStoreRequiresPickup)
		assert.Equal(t, PaymentCard, d.Payment())

		d.SetDeliveryMethod(DeliveryPickup)
		require.NoError(t, d.SetPaymentMethod(PaymentStore))
		assert.Equal(t, PaymentStore, d.Payment())
	})

	t.Run("Switching to ship forces card", func(t *testing.T) {
		d := NewDraft()
		d.SetDeliveryMethod(DeliveryPickup)
		require.NoError(t, d.SetPaymentMethod(PaymentStore))

		d.SetDeliveryMethod(DeliveryShip)
		assert.Equal(t, PaymentCard, d.Payment())
	})

	t.Run("Card survives delivery switches", func(t *testing.T) {
		d := NewDraft()
		d.SetDeliveryMethod(DeliveryPickup)
		d.SetDeliveryMethod(DeliveryShip)
		assert.Equal(t, PaymentCard, d.Payment())
	})
}

func filled() *Draft {
	d := NewDraft()
	d.Form = Form{
		Email:     "alice@example.test",
		FirstName: "Alice",
		LastName:  "Nguyen",
		Address:   "1 Main St",
		City:      "Hanoi",
		Zip:       "10000",
	}
	return d
}

func TestValidateShipping(t *testing.T) {
	t.Run("Complete form passes", func(t *testing.T) {
		assert.Empty(t, filled().Validate())
	})

	t.Run("Exactly the blank fields are errored", func(t *testing.T) {
		d := filled()
		d.Form.City = ""
		d.Form.Zip = "  " // whitespace counts as blank

		errs := d.Validate()
		assert.Len(t, errs, 2)
		assert.Contains(t, errs, FieldCity)
		assert.Contains(t, errs, FieldZip)
		assert.NotContains(t, errs, FieldEmail)
	})

	t.Run("All blank marks all six", func(t *testing.T) {
		d := NewDraft()
		errs := d.Validate()
		assert.Len(t, errs, 6)
		for _, f := range []string{FieldEmail, FieldFirstName, FieldLastName, FieldAddress, FieldCity, FieldZip} {
			assert.Contains(t, errs, f)
		}
	})

	t.Run("Malformed email", func(t *testing.T) {
		d := filled()
		d.Form.Email = "not-an-email"
		errs := d.Validate()
		assert.Len(t, errs, 1)
		assert.Contains(t, errs, FieldEmail)
	})
}

func TestValidatePickup(t *testing.T) {
	t.Run("Only email required", func(t *testing.T) {
		d := NewDraft()
		d.SetDeliveryMethod(DeliveryPickup)
		d.Form.Email = "alice@example.test"

		assert.Empty(t, d.Validate())
	})

	t.Run("Missing email blocks", func(t *testing.T) {
		d := NewDraft()
		d.SetDeliveryMethod(DeliveryPickup)

		errs := d.Validate()
		assert.Len(t, errs, 1)
		assert.Contains(t, errs, FieldEmail)
	})

	t.Run("Address fields ignored", func(t *testing.T) {
		d := NewDraft()
		d.SetDeliveryMethod(DeliveryPickup)
		d.Form.Email = "alice@example.test"
		// Address block entirely blank; irrelevant for pickup.
		assert.Empty(t, d.Validate())
	})
}

func TestValidateField(t *testing.T) {
	d := NewDraft()

	// Blur on a blank required field records the error.
	msg := d.ValidateField(FieldEmail)
	assert.NotEmpty(t, msg)
	assert.Contains(t, d.Errors(), FieldEmail)

	// Fixing the field and re-blurring clears it.
	d.Form.Email = "alice@example.test"
	assert.Empty(t, d.ValidateField(FieldEmail))
	assert.NotContains(t, d.Errors(), FieldEmail)

	// A field that is not required under pickup validates clean even blank.
	d.SetDeliveryMethod(DeliveryPickup)
	assert.Empty(t, d.ValidateField(FieldCity))
}

func TestSwitchingDeliveryRevalidates(t *testing.T) {
	d := NewDraft()
	d.SetDeliveryMethod(DeliveryPickup)
	d.Form.Email = "alice@example.test"
	require.Empty(t, d.Validate())

	// Same form under shipping is incomplete.
	d.SetDeliveryMethod(DeliveryShip)
	assert.Len(t, d.Validate(), 5)
}
