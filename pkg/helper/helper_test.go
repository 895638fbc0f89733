package helper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFuncName(t *testing.T) {
	got := GetFuncName()
	assert.True(t, strings.HasSuffix(got, "helper.TestGetFuncName"), got)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "comma separated", in: "Netflix, Hulu,Prime Video", want: []string{"Netflix", "Hulu", "Prime Video"}},
		{name: "blank items dropped", in: " ,Max,, ", want: []string{"Max"}},
		{name: "empty", in: "", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.in))
		})
	}
}
