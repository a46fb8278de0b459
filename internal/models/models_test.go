package models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// A float column with a gorm `default` tag drops zero values from the
// INSERT, so a stored 0 silently becomes the column default. The weight
// columns must therefore be pointers without a default tag: zero weight
// and zero upsolve credit are valid stored values.
func TestWeightColumnsSurviveZeroValues(t *testing.T) {
	cases := []struct {
		model reflect.Type
		field string
	}{
		{reflect.TypeOf(RanklistEvent{}), "Weight"},
		{reflect.TypeOf(Ranklist{}), "UpsolveWeight"},
	}
	for _, c := range cases {
		f, ok := c.model.FieldByName(c.field)
		require.True(t, ok, "%s.%s missing", c.model.Name(), c.field)
		require.Equal(t, reflect.Ptr, f.Type.Kind(),
			"%s.%s must be a pointer so 0 is representable", c.model.Name(), c.field)
		require.NotContains(t, strings.ToLower(f.Tag.Get("gorm")), "default",
			"%s.%s must not carry a column default", c.model.Name(), c.field)
	}
}
