// Package masking produces a de-identified copy of a cleaned customer table.
package masking

import (
	"strings"

	"github.com/David-Botos/data-quality/pkg/model"
)

// Mask is the fixed string replacing the hidden part of a value
const Mask = "***"

// MaskedAddress replaces every real address
const MaskedAddress = "[MASKED ADDRESS]"

// MaskName keeps the first character of each space-separated token
func MaskName(name string) string {
	if name == model.PlaceholderName {
		return name
	}

	tokens := strings.Fields(name)
	for i, tok := range tokens {
		first := []rune(tok)[0]
		tokens[i] = string(first) + Mask
	}
	return strings.Join(tokens, " ")
}

// MaskEmail keeps the first character of the local part and the domain.
// Values without exactly one @ and a non-empty local part pass through.
func MaskEmail(email string) string {
	if email == model.PlaceholderEmail {
		return email
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return email
	}
	return string([]rune(local)[0]) + Mask + "@" + domain
}

// MaskPhone hides the first two groups of a DDD-DDD-DDDD number. Other
// layouts pass through.
func MaskPhone(phone string) string {
	if phone == model.PlaceholderPhone {
		return phone
	}

	m := model.NormalizedPhonePattern.FindStringSubmatch(phone)
	if m == nil {
		return phone
	}
	return Mask + "-" + Mask + "-" + m[1]
}

// MaskAddress replaces an address with MaskedAddress
func MaskAddress(address string) string {
	if address == model.PlaceholderAddress {
		return address
	}
	return MaskedAddress
}

// MaskDateOfBirth keeps the year of a YYYY-MM-DD date. Other layouts pass
// through.
func MaskDateOfBirth(dob string) string {
	m := model.DatePattern.FindStringSubmatch(dob)
	if m == nil {
		return dob
	}
	return m[1] + "-**-**"
}

// columnMasks maps each masked column to its transform
var columnMasks = map[string]func(string) string{
	model.ColumnFirstName:   MaskName,
	model.ColumnLastName:    MaskName,
	model.ColumnEmail:       MaskEmail,
	model.ColumnPhone:       MaskPhone,
	model.ColumnAddress:     MaskAddress,
	model.ColumnDateOfBirth: MaskDateOfBirth,
}

// MaskedColumns returns the columns the masker rewrites, in table order
func MaskedColumns() []string {
	var cols []string
	for _, name := range model.CustomerTable.PIIColumns() {
		if _, ok := columnMasks[name]; ok {
			cols = append(cols, name)
		}
	}
	return cols
}
