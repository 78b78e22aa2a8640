package wikipedia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFieldName(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{name: "single word", label: "Country", want: "country"},
		{name: "multiple words", label: "Elevation above sea level", want: "elevationAboveSeaLevel"},
		{name: "bullet prefix", label: "• Total", want: "total"},
		{name: "non-breaking spaces", label: " • Density", want: "density"},
		{name: "parentheses", label: "GDP (PPP)", want: "gdpPpp"},
		{name: "source casing ignored", label: "Gdp ppp", want: "gdpPpp"},
		{name: "apostrophe does not split", label: "People's Republic", want: "peoplesRepublic"},
		{name: "typographic apostrophe", label: "Mayor’s office", want: "mayorsOffice"},
		{name: "leading digits", label: "2011 census", want: "2011Census"},
		{name: "digits kept in place", label: "Population (2023)", want: "population2023"},
		{name: "slash separated", label: "Area code(s)", want: "areaCodeS"},
		{name: "non-ascii letters", label: "Ääni kieli", want: "ääniKieli"},
		{name: "punctuation only", label: "—", want: ""},
		{name: "empty", label: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeFieldName(tc.label))
		})
	}
}
