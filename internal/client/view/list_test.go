package view

import (
	"testing"

	"github.com/dmitrijs2005/roster/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []models.Record {
	return []models.Record{
		{ID: "1", FirstName: "Omar", LastName: "Saleh", RegNumber: "1010", PageNumber: "2", CreatedAt: 10},
		{ID: "2", FirstName: "sara", LastName: "Ali", RegNumber: "101", PageNumber: "5", CreatedAt: 30},
		{ID: "3", FirstName: "Ahmed", LastName: "Omari", RegNumber: "200", PageNumber: "5", CreatedAt: 20},
		{ID: "4", FirstName: "Sara", LastName: "Ali", RegNumber: " 101 ", PageNumber: "", CreatedAt: 40},
	}
}

func ids(rs []models.Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{"everything, newest first", ListOptions{}, []string{"4", "2", "3", "1"}},
		{"substring on names and reg", ListOptions{Query: "OMAR"}, []string{"3", "1"}},
		{"substring on reg", ListOptions{Query: "101"}, []string{"4", "2", "1"}},
		{"reg must be equal", ListOptions{Query: "101", RegOnly: true}, []string{"2"}},
		{"alphabetical", ListOptions{Sort: SortAlphabetical}, []string{"3", "1", "2", "4"}},
		{"no match", ListOptions{Query: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(sample(), tt.opts)))
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := sample()
	_ = Filter(in, ListOptions{Sort: SortAlphabetical})
	assert.Equal(t, sample(), in)
}

func TestParseSortOrder(t *testing.T) {
	got, err := ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, SortRecent, got)

	got, err = ParseSortOrder(" Alphabetical ")
	require.NoError(t, err)
	assert.Equal(t, SortAlphabetical, got)

	_, err = ParseSortOrder("random")
	require.Error(t, err)
}

func TestComputeStats(t *testing.T) {
	assert.Equal(t, Stats{UniqueStudents: 3, TotalRecords: 4, UsedPages: 2}, ComputeStats(sample()))
	assert.Equal(t, Stats{}, ComputeStats(nil))
}
