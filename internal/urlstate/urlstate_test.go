package urlstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/bednights/internal/listview"
)

var reportKeys = []string{"start_date", "end_date"}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		fs   listview.FilterSet
		keys []string
		want string
	}{
		{
			name: "dates only",
			fs:   listview.FilterSet{"start_date": {"2024-01-01"}, "end_date": {"2024-03-31"}, "agency": {"Acme"}},
			keys: reportKeys,
			want: "end_date=2024-03-31&start_date=2024-01-01",
		},
		{
			name: "list joined with pipe",
			fs:   listview.FilterSet{"property": {"Pier", "Loft", " "}},
			keys: []string{"property"},
			want: "property=Pier%7CLoft",
		},
		{
			name: "nothing set",
			fs:   listview.FilterSet{"start_date": {}},
			keys: reportKeys,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.fs, tt.keys))
		})
	}
}

func TestDecode(t *testing.T) {
	got, err := Decode("?start_date=2024-01-01&agency=Acme&property=Pier|Loft||", []string{"start_date", "end_date", "property"})
	require.NoError(t, err)
	assert.Equal(t, listview.FilterSet{
		"start_date": {"2024-01-01"},
		"property":   {"Pier", "Loft"},
	}, got)

	_, err = Decode("start_date=%zz", reportKeys)
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	fs := listview.FilterSet{"start_date": {"2024-02-01"}, "end_date": {"2024-02-28"}}

	got, err := Decode(Encode(fs, reportKeys), reportKeys)
	require.NoError(t, err)
	assert.True(t, fs.Equal(got))
}

func TestMerge(t *testing.T) {
	fs := listview.FilterSet{"start_date": {"2023-01-01"}, "agency": {"Acme"}}
	decoded := listview.FilterSet{"end_date": {"2024-01-01"}}

	got := Merge(fs, decoded, reportKeys)

	assert.Equal(t, listview.FilterSet{"agency": {"Acme"}, "end_date": {"2024-01-01"}}, got)
}
