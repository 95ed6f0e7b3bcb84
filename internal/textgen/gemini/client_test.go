package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_PlainObject(t *testing.T) {
	res := Normalize(`{"UBER TRIP": "Transport", "SWIGGY": "Food"}`)

	assert.True(t, res.Recognized)
	assert.Equal(t, "Transport", res.Mapping["UBER TRIP"])
	assert.Equal(t, "Food", res.Mapping["SWIGGY"])
}

func TestNormalize_FencedObject(t *testing.T) {
	raw := "```json\n{\"NETFLIX.COM\": \"Entertainment\"}\n```"

	res := Normalize(raw)

	assert.True(t, res.Recognized)
	assert.Equal(t, "Entertainment", res.Mapping["NETFLIX.COM"])
	assert.Equal(t, raw, res.RawText)
}

func TestNormalize_ObjectWithSurroundingProse(t *testing.T) {
	res := Normalize("Here is the mapping you asked for:\n{\"OLA\": \"Transport\"}\nHope that helps!")

	assert.True(t, res.Recognized)
	assert.Equal(t, "Transport", res.Mapping["OLA"])
}

func TestNormalize_Unrecognized(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"free text", "I could not categorize these descriptors."},
		{"array not object", `["Food", "Transport"]`},
		{"non-string values", `{"UBER": 3}`},
		{"empty object", `{}`},
		{"truncated json", `{"UBER": "Trans`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Normalize(tc.raw)
			assert.False(t, res.Recognized)
			assert.Equal(t, tc.raw, res.RawText)
		})
	}
}

func TestCleanModelJSON_BareFence(t *testing.T) {
	got := cleanModelJSON("```\n{\"A\": \"B\"}\n```")
	assert.Equal(t, `{"A": "B"}`, got)
}
