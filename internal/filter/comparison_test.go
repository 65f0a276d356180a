package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dsync/internal/model"
)

func TestCompareMinutes(t *testing.T) {
	ref := time.Date(2024, 3, 1, 10, 15, 0, 0, time.Local)
	modified := func(d time.Duration) model.PathInfo {
		return model.PathInfo{Exists: true, ModTime: ref.Add(d)}
	}

	tests := []struct {
		name   string
		info   model.PathInfo
		want   Comparison
		wantOk bool
	}{
		{name: "same instant", info: modified(0), want: Equal, wantOk: true},
		{name: "same minute", info: modified(59 * time.Second), want: Equal, wantOk: true},
		{name: "sub-second in same minute", info: modified(59*time.Second + 999*time.Millisecond), want: Equal, wantOk: true},
		{name: "next minute", info: modified(60 * time.Second), want: Later, wantOk: true},
		{name: "one second back crosses minute", info: modified(-time.Second), want: Earlier, wantOk: true},
		{name: "hours earlier", info: modified(-3 * time.Hour), want: Earlier, wantOk: true},
		{name: "missing entry", info: model.PathInfo{}, want: Equal, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CompareMinutes(tt.info, ref)
			require.Equal(t, tt.wantOk, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestOperator_Accepts(t *testing.T) {
	requires := require.New(t)
	requires.True(EarlierThan.Accepts(Earlier))
	requires.False(EarlierThan.Accepts(Equal))
	requires.True(ExactlyOn.Accepts(Equal))
	requires.False(ExactlyOn.Accepts(Later))
	requires.True(LaterThan.Accepts(Later))
	requires.False(LaterThan.Accepts(Earlier))
	requires.False(Operator(0).Accepts(Equal))
}
