package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecords(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []MarkerRecord
		wantErr string
	}{
		{
			name:  "valid rows",
			input: "name,latitude,longitude\nPizza Hut Toronto, 43.65 ,-79.38\nUnion Station,43.6453,-79.3806\n",
			want: []MarkerRecord{
				{Name: "Pizza Hut Toronto", Latitude: 43.65, Longitude: -79.38},
				{Name: "Union Station", Latitude: 43.6453, Longitude: -79.3806},
			},
		},
		{
			name:  "header only",
			input: "name,latitude,longitude\n",
			want:  nil,
		},
		{
			name:    "short row",
			input:   "name,latitude,longitude\nfoo,1\n",
			wantErr: "invalid record length",
		},
		{
			name:    "bad latitude",
			input:   "name,latitude,longitude\nfoo,north,1\n",
			wantErr: "invalid latitude",
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: "failed to read header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readRecords(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
