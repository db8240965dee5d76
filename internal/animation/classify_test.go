package animation_test

import (
	"testing"

	"github.com/aretw0/waypoint/internal/animation"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want domain.AnimationState
	}{
		{"real literal", `<real value="5.0"/>`, domain.StateStatic},
		{"vector literal", `<vector><x>1</x><y>2</y></vector>`, domain.StateStatic},
		{"color literal", `<color><r>1</r><g>0</g><b>0</b><a>1</a></color>`, domain.StateStatic},
		{"single waypoint", `<animated type="real"><waypoint time="0s" before="linear" after="linear"><real value="1"/></waypoint></animated>`, domain.StatePartiallyAnimated},
		{"bare value in wrapper", `<animated type="real"><real value="1"/></animated>`, domain.StatePartiallyAnimated},
		{"two waypoints", `<animated type="real">
			<waypoint time="0s" before="clamped" after="clamped"><real value="1"/></waypoint>
			<waypoint time="1s" before="clamped" after="clamped"><real value="2"/></waypoint>
		</animated>`, domain.StateFullyAnimated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := animation.Classify(parse(t, tt.xml))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_Malformed(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"linkable node", `<add type="real"><lhs><real value="1"/></lhs><rhs><real value="2"/></rhs></add>`},
		{"empty wrapper", `<animated type="real"/>`},
		{"wrapper around linkable", `<animated type="real"><scale type="real"/></animated>`},
		{"mixed children", `<animated type="real"><waypoint time="0s"><real value="1"/></waypoint><real value="2"/></animated>`},
		{"waypoint without time", `<animated type="real"><waypoint><real value="1"/></waypoint><waypoint time="1s"><real value="2"/></waypoint></animated>`},
		{"waypoint without value", `<animated type="real"><waypoint time="0s"/></animated>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := parse(t, tt.xml)
			_, err := animation.Classify(node)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedValueNode)

			var detail *domain.MalformedError
			assert.ErrorAs(t, err, &detail)
		})
	}

	t.Run("nil node", func(t *testing.T) {
		_, err := animation.Classify(nil)
		assert.ErrorIs(t, err, domain.ErrMalformedValueNode)
	})
}

func TestClassify_DoesNotMutate(t *testing.T) {
	node := parse(t, `<real value="5.0"/>`)
	_, err := animation.Classify(node)
	require.NoError(t, err)
	assert.Equal(t, "real", node.Tag)
	assert.Empty(t, node.ChildElements())
}
