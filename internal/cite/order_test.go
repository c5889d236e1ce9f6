package cite

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/scholarform/pkg/types"
)

func TestSurname(t *testing.T) {
	tests := []struct {
		author string
		want   string
	}{
		{"Smith, J.", "Smith"},
		{"de Kerviler, G.", "de Kerviler"},
		{"Jane Doe", "Doe"},
		{"Plato", "Plato"},
		{"  ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.author, func(t *testing.T) {
			assert.Equal(t, tt.want, Surname(tt.author))
		})
	}
}

func TestSorted(t *testing.T) {
	bib := []types.Citation{
		{ID: 1, Authors: []string{"Lou, C."}},
		{ID: 2, Authors: []string{"Audrezet, A."}},
		{ID: 3, Authors: []string{"de Kerviler, G."}},
		{ID: 4, Authors: []string{"Lou, X."}},
		{ID: 5, Authors: []string{"McCracken, G."}},
	}

	got := Sorted(bib)

	var ids []int
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	// Case-sensitive: lowercase "de" sorts after every capitalised surname;
	// equal surnames keep extraction order.
	assert.Equal(t, []int{2, 1, 4, 5, 3}, ids)

	// The stored order is untouched.
	assert.Equal(t, 1, bib[0].ID)
	assert.Equal(t, 5, bib[4].ID)
}

func TestSortedEmpty(t *testing.T) {
	assert.Empty(t, Sorted(nil))
}
