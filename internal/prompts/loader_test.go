package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get("classification.json", "classify-permit")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.EquipmentType}}")
	assert.Contains(t, prompt, "hvac-commercial")
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("classification.json", "no-such-prompt")
	assert.Error(t, err)
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("nonexistent.json", "classify-permit")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("classification.json", "no-such-prompt")
	})
}

func TestFormat(t *testing.T) {
	template := "Equipment: {{.EquipmentType}}, County: {{.County}}"
	result := Format(template, map[string]string{
		"EquipmentType": "heat-pump",
		"County":        "Pinellas",
	})
	assert.Equal(t, "Equipment: heat-pump, County: Pinellas", result)
}

func TestFormat_UnknownPlaceholderLeftIntact(t *testing.T) {
	result := Format("Value: {{.Missing}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Value: {{.Missing}}", result)
}

func TestFormat_FullClassificationPrompt(t *testing.T) {
	template := MustGet("classification.json", "classify-permit")
	result := Format(template, map[string]string{
		"EquipmentType":     "central-ac",
		"JobType":           "replacement",
		"BTU":               "36000",
		"Tonnage":           "3.0",
		"PropertyType":      "residential",
		"County":            "Hillsborough",
		"City":              "Tampa",
		"AdditionalDetails": "",
	})
	assert.NotContains(t, result, "{{.")
	assert.Contains(t, result, "Hillsborough")
}
