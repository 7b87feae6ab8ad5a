package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		token string
		want  Route
	}{
		{"", Route{View: ViewList}},
		{"#", Route{View: ViewList}},
		{"list", Route{View: ViewList}},
		{"add", Route{View: ViewAdd}},
		{"settings/ignored", Route{View: ViewSettings}},
		{"detail/abc", Route{View: ViewDetail, ID: "abc"}},
		{"#edit/abc", Route{View: ViewEdit, ID: "abc"}},
		{"detail", Route{View: ViewList}},
		{"edit/", Route{View: ViewList}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := Parse(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Parse("reports")
	require.ErrorIs(t, err, ErrUnknownView)
}

func TestRoute_StringRoundTrips(t *testing.T) {
	for _, r := range []Route{{View: ViewList}, {View: ViewDetail, ID: "x1"}} {
		got, err := Parse(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
}

func TestRouter_RendersExactlyOneView(t *testing.T) {
	r := New()
	var rendered []string
	for _, v := range []View{ViewList, ViewAdd, ViewDetail, ViewSettings, ViewEdit} {
		v := v
		r.Handle(v, func(ctx context.Context, id string) error {
			rendered = append(rendered, Route{View: v, ID: id}.String())
			return nil
		})
	}
	ctx := context.Background()

	require.NoError(t, r.Navigate(ctx, ViewDetail, "42"))
	assert.Equal(t, []string{"detail/42"}, rendered)
	assert.Equal(t, "detail/42", r.Current().String())

	require.NoError(t, r.Resolve(ctx, "edit"))
	assert.Equal(t, []string{"detail/42", "list"}, rendered)
	assert.Equal(t, Route{View: ViewList}, r.Current())
}

func TestRouter_UnknownViewKeepsCurrent(t *testing.T) {
	r := New()
	ctx := context.Background()
	require.NoError(t, r.Navigate(ctx, ViewAdd, ""))

	err := r.Resolve(ctx, "nope/1")
	require.ErrorIs(t, err, ErrUnknownView)
	assert.Equal(t, ViewAdd, r.Current().View)
}

func TestRouter_HandlerErrorPropagates(t *testing.T) {
	r := New()
	boom := errors.New("boom")
	r.Handle(ViewSettings, func(ctx context.Context, id string) error { return boom })

	require.ErrorIs(t, r.Resolve(context.Background(), "settings"), boom)
	assert.Equal(t, ViewSettings, r.Current().View)
}
