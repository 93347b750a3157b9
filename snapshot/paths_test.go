package snapshot

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id := uuid.MustParse("01947000-3456-780f-bfa9-29881e3bac88")

	type args struct {
		prefix string
		key    string
	}
	tests := []struct {
		name string
		args args
		want uuid.UUID
	}{
		{
			name: "set key",
			args: args{prefix: "v1/sets/", key: "v1/sets/01947000-3456-780f-bfa9-29881e3bac88.cbor"},
			want: id,
		},
		{
			name: "filter key under a nested prefix",
			args: args{prefix: "filters/", key: "tenant/v1/filters/01947000-3456-780f-bfa9-29881e3bac88.pbf"},
			want: id,
		},
		{
			name: "uuid followed by a path component",
			args: args{prefix: "sets/", key: "sets/01947000-3456-780f-bfa9-29881e3bac88/old"},
			want: id,
		},
		{
			name: "exact match",
			args: args{prefix: "sets/", key: "sets/01947000-3456-780f-bfa9-29881e3bac88"},
			want: id,
		},
		{
			name: "missing prefix",
			args: args{prefix: "sets/", key: "filters/01947000-3456-780f-bfa9-29881e3bac88.pbf"},
			want: uuid.Nil,
		},
		{
			name: "truncated uuid",
			args: args{prefix: "sets/", key: "sets/01947000-3456-780f"},
			want: uuid.Nil,
		},
		{
			name: "trailing garbage",
			args: args{prefix: "sets/", key: "sets/01947000-3456-780f-bfa9-29881e3bac88x"},
			want: uuid.Nil,
		},
		{
			name: "not a uuid",
			args: args{prefix: "sets/", key: "sets/zzzzzzzz-3456-780f-bfa9-29881e3bac88.cbor"},
			want: uuid.Nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseID(tt.args.prefix, tt.args.key))
		})
	}
}

func TestObjectPath(t *testing.T) {
	id := uuid.MustParse("01947000-3456-780f-bfa9-29881e3bac88")

	p, err := ObjectPath(DefaultPrefix, id, KindFilter)
	require.NoError(t, err)
	require.Equal(t, "v1/filters/01947000-3456-780f-bfa9-29881e3bac88.pbf", p)

	p, err = ObjectPath("x/", id, KindSet)
	require.NoError(t, err)
	require.Equal(t, "x/sets/01947000-3456-780f-bfa9-29881e3bac88.cbor", p)

	dir, err := KindPrefix("x/", KindSet)
	require.NoError(t, err)
	require.Equal(t, "x/sets/", dir)
	require.Equal(t, id, ParseID(dir, p))

	_, err = ObjectPath(DefaultPrefix, id, KindUndefined)
	require.ErrorIs(t, err, ErrKindUnknown)
	require.Equal(t, "Kind(7)", Kind(7).String())
}
