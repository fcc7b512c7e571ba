package formfill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yehiashouman/pawpaw-form-filler/pkg/dom"
)

func TestApplyMappingsTextInput(t *testing.T) {
	doc := mustParse(t, `<form><input id="name" type="text"></form>`)

	result := ApplyMappings(doc, []Mapping{
		{Selector: "#name", Kind: KindText, Value: "Alice"},
	})

	assert.Equal(t, 1, result.UpdatedCount)
	assert.Equal(t, 0, result.SkippedCount)
	assert.Empty(t, result.Error)

	el, err := doc.QuerySelector("#name")
	require.NoError(t, err)
	assert.Equal(t, "Alice", el.Value())
}

func TestApplyMappingsTextarea(t *testing.T) {
	doc := mustParse(t, `<form><textarea id="bio">old</textarea></form>`)

	result := ApplyMappings(doc, []Mapping{
		{Selector: "#bio", Kind: KindText, Value: "new text"},
	})

	assert.Equal(t, 1, result.UpdatedCount)

	el, err := doc.QuerySelector("#bio")
	require.NoError(t, err)
	assert.Equal(t, "new text", el.Value())
}

func TestApplyMappingsCheckboxTruthyValues(t *testing.T) {
	tests := []struct {
		value   string
		checked bool
	}{
		{"true", true},
		{"yes", true},
		{"1", true},
		{"checked", true},
		{"on", true},
		{"  TRUE  ", true},
		{"false", false},
		{"no", false},
		{"", false},
		{"maybe", false},
	}

	for _, tt := range tests {
		t.Run("value "+tt.value, func(t *testing.T) {
			doc := mustParse(t, `<form><input id="tos" type="checkbox"></form>`)

			result := ApplyMappings(doc, []Mapping{
				{Selector: "#tos", Kind: KindCheckbox, Value: tt.value},
			})

			// Writing an explicit false is still a write.
			assert.Equal(t, 1, result.UpdatedCount)

			el, err := doc.QuerySelector("#tos")
			require.NoError(t, err)
			assert.Equal(t, tt.checked, el.Checked())
		})
	}
}

func TestApplyMappingsRadioByValue(t *testing.T) {
	doc := mustParse(t, `<form>
		<fieldset>
			<input type="radio" name="sex" value="M" checked>
			<input type="radio" name="sex" value="F">
		</fieldset>
	</form>`)

	result := ApplyMappings(doc, []Mapping{
		{Selector: `input[name="sex"]:nth-of-type(1)`, Kind: KindRadio, Value: "F"},
	})

	assert.Equal(t, 1, result.UpdatedCount)

	radios := doc.FindAll("input")
	require.Len(t, radios, 2)
	assert.False(t, radios[0].Checked(), "previously checked member is cleared")
	assert.True(t, radios[1].Checked())
}

func TestApplyMappingsRadioByLabel(t *testing.T) {
	doc := mustParse(t, `<form>
		<fieldset>
			<label>Male <input type="radio" name="sex" value="M"></label>
			<label>Female <input type="radio" name="sex" value="F"></label>
		</fieldset>
	</form>`)

	result := ApplyMappings(doc, []Mapping{
		{Selector: `input[name="sex"]`, Kind: KindRadio, Value: "female"},
	})

	assert.Equal(t, 1, result.UpdatedCount)

	radios := doc.FindAll("input")
	require.Len(t, radios, 2)
	assert.False(t, radios[0].Checked())
	assert.True(t, radios[1].Checked())
}

func TestApplyMappingsRadioTruthyFallback(t *testing.T) {
	doc := mustParse(t, `<form>
		<input type="radio" name="opt" value="a">
		<input type="radio" name="opt" value="b">
	</form>`)

	result := ApplyMappings(doc, []Mapping{
		{Selector: `input[name="opt"]:nth-of-type(2)`, Kind: KindRadio, Value: "true"},
	})

	assert.Equal(t, 1, result.UpdatedCount)

	radios := doc.FindAll("input")
	assert.False(t, radios[0].Checked())
	assert.True(t, radios[1].Checked())
}

func TestApplyMappingsUnnamedRadioTruthyChecksOnlyTarget(t *testing.T) {
	doc := mustParse(t, `<form>
		<input id="a" type="radio" checked>
		<input id="b" type="radio">
	</form>`)

	result := ApplyMappings(doc, []Mapping{
		{Selector: "#b", Kind: KindRadio, Value: "true"},
	})

	assert.Equal(t, 1, result.UpdatedCount)

	a, err := doc.QuerySelector("#a")
	require.NoError(t, err)
	b, err := doc.QuerySelector("#b")
	require.NoError(t, err)

	assert.True(t, b.Checked())
	assert.True(t, a.Checked(), "radios outside the target's group stay untouched")
}

func TestApplyMappingsRadioUnmatchableValueSkips(t *testing.T) {
	doc := mustParse(t, `<form>
		<input type="radio" name="opt" value="a">
		<input type="radio" name="opt" value="b">
	</form>`)

	result := ApplyMappings(doc, []Mapping{
		{Selector: `input[name="opt"]`, Kind: KindRadio, Value: "z"},
	})

	assert.Equal(t, 0, result.UpdatedCount)
	assert.Equal(t, 1, result.SkippedCount)
}

func TestApplyMappingsSingleSelect(t *testing.T) {
	doc := mustParse(t, `<form>
		<select id="country">
			<option value="US" selected>United States</option>
			<option value="DE">Germany</option>
		</select>
	</form>`)

	result := ApplyMappings(doc, []Mapping{
		{Selector: "#country", Kind: KindSelect, Value: "Germany"},
	})

	assert.Equal(t, 1, result.UpdatedCount)

	el, err := doc.QuerySelector("#country")
	require.NoError(t, err)
	assert.Equal(t, "DE", el.Value())
}

func TestApplyMappingsMultiSelect(t *testing.T) {
	doc := mustParse(t, `<form>
		<select id="colors" multiple>
			<option value="red" selected>Red</option>
			<option value="green">Green</option>
			<option value="blue">Blue</option>
		</select>
	</form>`)

	result := ApplyMappings(doc, []Mapping{
		{Selector: "#colors", Kind: KindMultiSelect, Value: `["Green","Blue"]`},
	})

	// One control, one update, regardless of how many options changed.
	assert.Equal(t, 1, result.UpdatedCount)
	assert.Equal(t, 0, result.SkippedCount)

	el, err := doc.QuerySelector("#colors")
	require.NoError(t, err)

	var selected []string
	for _, opt := range el.Options() {
		if opt.Selected() {
			selected = append(selected, opt.OptionValue())
		}
	}
	assert.Equal(t, []string{"green", "blue"}, selected)
}

func TestApplyMappingsMultiSelectMalformedArrayStaysOpaque(t *testing.T) {
	doc := mustParse(t, `<form>
		<select id="colors" multiple>
			<option value="[oops">Weird</option>
			<option value="red">Red</option>
		</select>
	</form>`)

	result := ApplyMappings(doc, []Mapping{
		{Selector: "#colors", Kind: KindMultiSelect, Value: "[oops"},
	})

	assert.Equal(t, 1, result.UpdatedCount)

	el, err := doc.QuerySelector("#colors")
	require.NoError(t, err)
	options := el.Options()
	assert.True(t, options[0].Selected())
	assert.False(t, options[1].Selected())
}

func TestApplyMappingsSkipsUnresolvableSelectors(t *testing.T) {
	doc := mustParse(t, `<form><input id="name" type="text"></form>`)

	result := ApplyMappings(doc, []Mapping{
		{Selector: "", Kind: KindText, Value: "a"},
		{Selector: "#missing", Kind: KindText, Value: "b"},
		{Selector: "[unclosed", Kind: KindText, Value: "c"},
		{Selector: "#name", Kind: KindText, Value: "kept"},
	})

	assert.Equal(t, 1, result.UpdatedCount)
	assert.Equal(t, 3, result.SkippedCount)
	assert.Empty(t, result.Error)

	el, err := doc.QuerySelector("#name")
	require.NoError(t, err)
	assert.Equal(t, "kept", el.Value())
}

func TestApplyMappingsSkipsFileInputs(t *testing.T) {
	doc := mustParse(t, `<form><input id="resume" type="file"></form>`)

	result := ApplyMappings(doc, []Mapping{
		{Selector: "#resume", Kind: KindText, Value: "/etc/passwd"},
	})

	assert.Equal(t, 0, result.UpdatedCount)
	assert.Equal(t, 1, result.SkippedCount)
}

func TestApplyMappingsDispatchKeyedByActualControl(t *testing.T) {
	// The declared kind says text, but the resolved control is a checkbox.
	doc := mustParse(t, `<form><input id="tos" type="checkbox"></form>`)

	result := ApplyMappings(doc, []Mapping{
		{Selector: "#tos", Kind: KindText, Value: "yes"},
	})

	assert.Equal(t, 1, result.UpdatedCount)

	el, err := doc.QuerySelector("#tos")
	require.NoError(t, err)
	assert.True(t, el.Checked())
	assert.Empty(t, el.Attr("value"), "checkbox write must not set a value attribute")
}

func TestApplyMappingsCountsSumToBatchSize(t *testing.T) {
	doc := mustParse(t, `<form>
		<input id="a" type="text">
		<input id="b" type="text">
	</form>`)

	mappings := []Mapping{
		{Selector: "#a", Kind: KindText, Value: "1"},
		{Selector: "#b", Kind: KindText, Value: "2"},
		{Selector: "#c", Kind: KindText, Value: "3"},
		{Selector: "", Kind: KindText, Value: "4"},
	}

	result := ApplyMappings(doc, mappings)

	assert.Equal(t, len(mappings), result.UpdatedCount+result.SkippedCount)
}

func TestApplyMappingsFiresInputThenChange(t *testing.T) {
	doc := mustParse(t, `<form id="f"><input id="name" type="text"></form>`)

	el, err := doc.QuerySelector("#name")
	require.NoError(t, err)
	form, err := doc.QuerySelector("#f")
	require.NoError(t, err)

	var order []string
	el.AddEventListener("input", func(dom.Event) { order = append(order, "target:input") })
	el.AddEventListener("change", func(dom.Event) { order = append(order, "target:change") })
	form.AddEventListener("input", func(dom.Event) { order = append(order, "form:input") })
	form.AddEventListener("change", func(dom.Event) { order = append(order, "form:change") })

	ApplyMappings(doc, []Mapping{{Selector: "#name", Kind: KindText, Value: "x"}})

	assert.Equal(t, []string{
		"target:input",
		"form:input",
		"target:change",
		"form:change",
	}, order)
}

func TestIsTruthy(t *testing.T) {
	assert.True(t, IsTruthy("yes"))
	assert.True(t, IsTruthy(" On "))
	assert.False(t, IsTruthy("off"))
	assert.False(t, IsTruthy(""))
}

func TestMappingValues(t *testing.T) {
	multi := Mapping{Kind: KindMultiSelect, Value: `["a","b"]`}
	assert.Equal(t, []string{"a", "b"}, multi.Values())

	plain := Mapping{Kind: KindText, Value: "hello"}
	assert.Equal(t, []string{"hello"}, plain.Values())
}
