package masking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/David-Botos/data-quality/pkg/model"
)

func TestMaskName(t *testing.T) {
	assert.Equal(t, "J***", MaskName("John"))
	assert.Equal(t, "J*** D***", MaskName("John Doe"))
	assert.Equal(t, "M*** A*** J***", MaskName("  Mary  Ann   Jones "))
	assert.Equal(t, "É***", MaskName("Émile"))
	assert.Equal(t, model.PlaceholderName, MaskName(model.PlaceholderName))
	assert.Equal(t, "", MaskName(""))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@gmail.com", MaskEmail("john.doe@gmail.com"))
	assert.Equal(t, model.PlaceholderEmail, MaskEmail(model.PlaceholderEmail))
	assert.Equal(t, "no-at-sign", MaskEmail("no-at-sign"))
	assert.Equal(t, "@gmail.com", MaskEmail("@gmail.com"))
	assert.Equal(t, "a@b@c.com", MaskEmail("a@b@c.com"))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "***-***-4567", MaskPhone("555-123-4567"))
	assert.Equal(t, model.PlaceholderPhone, MaskPhone(model.PlaceholderPhone))
	assert.Equal(t, "5551234567", MaskPhone("5551234567"))
	assert.Equal(t, "+1 555-123-4567", MaskPhone("+1 555-123-4567"))
}

func TestMaskAddress(t *testing.T) {
	assert.Equal(t, MaskedAddress, MaskAddress("12 Main Street Springfield"))
	assert.Equal(t, model.PlaceholderAddress, MaskAddress(model.PlaceholderAddress))
}

func TestMaskDateOfBirth(t *testing.T) {
	assert.Equal(t, "1985-**-**", MaskDateOfBirth("1985-03-15"))
	assert.Equal(t, "1900-**-**", MaskDateOfBirth(model.PlaceholderDateOfBirth))
	assert.Equal(t, "03/15/1985", MaskDateOfBirth("03/15/1985"))
}

// Masked output is not a placeholder, so a second pass runs every transform
// again. The transforms map their own output onto itself, so values settle
// after one pass.
func TestRemaskingAppliesTransformsAgain(t *testing.T) {
	once := MaskName("John Doe")
	assert.NotEqual(t, model.PlaceholderName, once)
	assert.Equal(t, once, MaskName(once))

	email := MaskEmail("john.doe@gmail.com")
	assert.NotEqual(t, model.PlaceholderEmail, email)
	assert.Equal(t, email, MaskEmail(email))

	assert.Equal(t, MaskedAddress, MaskAddress(MaskAddress("12 Main Street Springfield")))
	assert.Equal(t, "***-***-4567", MaskPhone(MaskPhone("555-123-4567")))
	assert.Equal(t, "1985-**-**", MaskDateOfBirth(MaskDateOfBirth("1985-03-15")))
}

func TestMaskedColumns(t *testing.T) {
	assert.Equal(t, []string{
		model.ColumnFirstName,
		model.ColumnLastName,
		model.ColumnEmail,
		model.ColumnPhone,
		model.ColumnDateOfBirth,
		model.ColumnAddress,
	}, MaskedColumns())
}
