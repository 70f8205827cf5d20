package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{name: "デフォルト", in: PageRequest{}, want: PageRequest{Page: 0, Size: DefaultPageSize}},
		{name: "負のページ", in: PageRequest{Page: -3, Size: 10}, want: PageRequest{Page: 0, Size: 10}},
		{name: "上限超過", in: PageRequest{Page: 1, Size: 5000}, want: PageRequest{Page: 1, Size: MaxPageSize}},
		{name: "そのまま", in: PageRequest{Page: 2, Size: 10}, want: PageRequest{Page: 2, Size: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 0, Size: 10}.Offset())
	assert.Equal(t, 10, PageRequest{Page: 1, Size: 10}.Offset())
	assert.Equal(t, 40, PageRequest{Page: 2, Size: 20}.Offset())
}

func TestPage_Metadata(t *testing.T) {
	p := NewPage(nil, PageRequest{Page: 1, Size: 10}, 30)

	assert.NotNil(t, p.Content)
	assert.Equal(t, 3, p.TotalPages())
	assert.False(t, p.IsFirst())
	assert.False(t, p.IsLast())
	assert.True(t, p.HasNext())

	last := NewPage(nil, PageRequest{Page: 2, Size: 10}, 21)
	assert.Equal(t, 3, last.TotalPages())
	assert.True(t, last.IsLast())

	empty := NewPage(nil, PageRequest{Page: 0, Size: 10}, 0)
	assert.Equal(t, 0, empty.TotalPages())
	assert.True(t, empty.IsFirst())
	assert.True(t, empty.IsLast())
}

func TestParseDirection(t *testing.T) {
	d, ok := ParseDirection("desc")
	assert.True(t, ok)
	assert.Equal(t, Desc, d)

	d, ok = ParseDirection(" ASC ")
	assert.True(t, ok)
	assert.Equal(t, Asc, d)

	_, ok = ParseDirection("sideways")
	assert.False(t, ok)
}

func TestIsSortable(t *testing.T) {
	assert.True(t, IsSortable("name"))
	assert.True(t, IsSortable("basePrice"))
	assert.False(t, IsSortable("base_price"))
	assert.False(t, IsSortable("password"))
}
