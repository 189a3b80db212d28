package sync

import (
	"reflect"
	"testing"
)

func TestParseFreeze(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name:   "plain pins",
			output: "shapely==2.0.7\nnumpy==1.26.4\nclick==8.1.7\n",
			want:   []string{"shapely==2.0.7", "numpy==1.26.4", "click==8.1.7"},
		},
		{
			name:   "comments and blank lines filtered",
			output: "# Python 3.12.7\nshapely==2.0.7\n\n\nnumpy==1.26.4\n# Comment\n",
			want:   []string{"shapely==2.0.7", "numpy==1.26.4"},
		},
		{
			name:   "lines without version separator excluded",
			output: "shapely==2.0.7\nsome-package\nnumpy==1.26.4\n",
			want:   []string{"shapely==2.0.7", "numpy==1.26.4"},
		},
		{
			name:   "order preserved",
			output: "zzz==1.0\naaa==2.0\nmmm==3.0\n",
			want:   []string{"zzz==1.0", "aaa==2.0", "mmm==3.0"},
		},
		{
			name:   "surrounding whitespace trimmed",
			output: "  shapely==2.0.7  \n\tnumpy==1.26.4\n",
			want:   []string{"shapely==2.0.7", "numpy==1.26.4"},
		},
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
		{
			name:   "only comments",
			output: "# one\n# two\n",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFreeze(tt.output)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFreeze() = %v, want %v", got, tt.want)
			}
		})
	}
}
