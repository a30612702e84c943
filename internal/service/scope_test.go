package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeUserID(t *testing.T) {
	other := int64(99)

	t.Run("members are pinned to themselves", func(t *testing.T) {
		for _, c := range []struct {
			name string
			req  *int64
		}{{"nil", nil}, {"other", &other}} {
			got := ScopeUserID(student, c.req)
			require.NotNil(t, got, c.name)
			assert.Equal(t, student.ID, *got, c.name)

			got = ScopeUserID(colaborador, c.req)
			require.NotNil(t, got, c.name)
			assert.Equal(t, colaborador.ID, *got, c.name)
		}
	})

	t.Run("staff get what they ask for", func(t *testing.T) {
		assert.Nil(t, ScopeUserID(trainer, nil))
		assert.Nil(t, ScopeUserID(admin, nil))
		assert.Equal(t, &other, ScopeUserID(trainer, &other))
		assert.Equal(t, &other, ScopeUserID(admin, &other))
	})
}
