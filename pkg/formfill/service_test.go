package formfill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registrationForm = `<form>
	<label for="name">Full name</label>
	<input id="name" type="text">
	<fieldset>
		<input type="radio" name="sex" value="M">
		<input type="radio" name="sex" value="F">
	</fieldset>
	<select id="country">
		<option value="US">United States</option>
		<option value="DE">Germany</option>
	</select>
</form>`

func TestServiceExtractThenApply(t *testing.T) {
	doc := mustParse(t, registrationForm)
	svc := NewService(doc, nil)

	extracted := svc.Extract()
	require.Empty(t, extracted.Error)
	require.Len(t, extracted.Fields, 4)

	assert.Equal(t, "#name", extracted.Fields[0].Selector)
	assert.Equal(t, `input[name="sex"]:nth-of-type(1)`, extracted.Fields[1].Selector)
	assert.Equal(t, `input[name="sex"]:nth-of-type(2)`, extracted.Fields[2].Selector)
	assert.Equal(t, "#country", extracted.Fields[3].Selector)

	result := svc.Apply(ApplyRequest{Mappings: []Mapping{
		{Selector: "#name", Kind: KindText, Value: "Alice"},
		{Selector: `input[name="sex"]:nth-of-type(2)`, Kind: KindRadio, Value: "F"},
		{Selector: "#country", Kind: KindSelect, Value: "United States"},
	}})

	assert.Equal(t, 3, result.UpdatedCount)
	assert.Equal(t, 0, result.SkippedCount)
	assert.Empty(t, result.Error)

	name, err := doc.QuerySelector("#name")
	require.NoError(t, err)
	assert.Equal(t, "Alice", name.Value())

	radios := doc.FindAll(`input[name="sex"]`)
	require.Len(t, radios, 2)
	assert.False(t, radios[0].Checked())
	assert.True(t, radios[1].Checked())

	country, err := doc.QuerySelector("#country")
	require.NoError(t, err)
	assert.Equal(t, "US", country.Value())
}

func TestServiceExtractSurvivesReapplication(t *testing.T) {
	doc := mustParse(t, registrationForm)
	svc := NewService(doc, nil)

	first := svc.Extract()
	require.Empty(t, first.Error)

	svc.Apply(ApplyRequest{Mappings: []Mapping{
		{Selector: "#name", Kind: KindText, Value: "Bob"},
	}})

	second := svc.Extract()
	require.Empty(t, second.Error)
	require.Len(t, second.Fields, len(first.Fields))

	// Selectors stay stable across writes; only values move.
	for i := range first.Fields {
		assert.Equal(t, first.Fields[i].Selector, second.Fields[i].Selector)
	}
	assert.Equal(t, "Bob", second.Fields[0].CurrentValue)
}

func TestServiceApplyEmptyBatch(t *testing.T) {
	doc := mustParse(t, registrationForm)
	svc := NewService(doc, nil)

	result := svc.Apply(ApplyRequest{})

	assert.Equal(t, 0, result.UpdatedCount)
	assert.Equal(t, 0, result.SkippedCount)
	assert.Empty(t, result.Error)
}
