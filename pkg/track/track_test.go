package track_test

import (
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/track"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	return doc.Root()
}

const realTrack = `<animated type="real">
	<waypoint time="1s" before="linear" after="linear"><real value="2.5"/></waypoint>
	<waypoint time="0s" before="constant" after="constant"><real value="5.0"/></waypoint>
</animated>`

func TestDecode(t *testing.T) {
	tests := []struct {
		xml  string
		want []float64
	}{
		{`<real value="5.0000000000"/>`, []float64{5}},
		{`<angle value="90"/>`, []float64{90}},
		{`<integer value="3"/>`, []float64{3}},
		{`<bool value="true"/>`, []float64{1}},
		{`<bool value="false"/>`, []float64{0}},
		{`<time value="12f"/>`, nil},
		{`<time value="0.5s"/>`, []float64{0.5}},
		{`<vector><x> 1.0 </x><y>-2.0</y></vector>`, []float64{1, -2}},
		{`<color><r>1</r><g>0.5</g><b>0</b><a>1</a></color>`, []float64{1, 0.5, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.xml, func(t *testing.T) {
			got, err := track.Decode(parse(t, tt.xml))
			if tt.want == nil {
				assert.ErrorIs(t, err, domain.ErrUnsupportedValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_Unsupported(t *testing.T) {
	for _, xml := range []string{
		`<string>hello</string>`,
		`<real value="abc"/>`,
		`<real value="NaN"/>`,
		`<angle value="-Inf"/>`,
		`<vector><x>1</x><y>+Inf</y></vector>`,
		`<time value="Inf"/>`,
		`<vector><x>1</x></vector>`,
		`<bline/>`,
	} {
		_, err := track.Decode(parse(t, xml))
		assert.ErrorIs(t, err, domain.ErrUnsupportedValue, xml)
	}
}

func TestScalar_Generate(t *testing.T) {
	path := domain.NewPath()
	err := track.NewScalar(24).Generate(path, parse(t, realTrack), 0)
	require.NoError(t, err)

	assert.Equal(t, track.NameScalar, path.Generator)
	assert.Equal(t, "real", path.Type)
	require.Equal(t, 2, path.Len())

	// Sorted by time, tags copied through.
	assert.Equal(t, "0s", path.Samples[0].Time)
	assert.Equal(t, []float64{5}, path.Samples[0].Value)
	assert.Equal(t, domain.InterpolationConstant, path.Samples[0].Before)
	assert.Equal(t, "1s", path.Samples[1].Time)
	assert.Equal(t, 24.0, path.Samples[1].Frame)
	assert.Equal(t, domain.InterpolationLinear, path.Samples[1].After)

	s, ok := path.At(1)
	require.True(t, ok)
	assert.Equal(t, []float64{2.5}, s.Value)
}

func TestScalar_ComponentIndex(t *testing.T) {
	node := parse(t, `<animated type="vector">
		<waypoint time="0s"><vector><x>1</x><y>2</y></vector></waypoint>
		<waypoint time="2s"><vector><x>3</x><y>4</y></vector></waypoint>
	</animated>`)

	path := domain.NewPath()
	require.NoError(t, track.NewScalar(24).Generate(path, node, 1))
	assert.Equal(t, []float64{2}, path.Samples[0].Value)
	assert.Equal(t, []float64{4}, path.Samples[1].Value)
	assert.Equal(t, domain.InterpolationClamped, path.Samples[0].Before)

	err := track.NewScalar(24).Generate(domain.NewPath(), node, 2)
	assert.ErrorIs(t, err, domain.ErrUnsupportedValue)
}

func TestScalar_RequiresAnimatedNode(t *testing.T) {
	err := track.NewScalar(24).Generate(domain.NewPath(), parse(t, `<real value="1"/>`), 0)
	assert.ErrorIs(t, err, domain.ErrMalformedValueNode)
}

func TestMultiDimensional_Generate(t *testing.T) {
	xml := `<animated type="vector">
		<waypoint time="0s" before="linear" after="linear"><vector><x>0</x><y>0</y></vector></waypoint>
		<waypoint time="12f" before="linear" after="linear"><vector><x>1</x><y>1</y></vector></waypoint>
	</animated>`
	units := track.Units{Scale: 60, OriginX: 240, OriginY: 135}

	t.Run("absolute", func(t *testing.T) {
		path := domain.NewPath()
		require.NoError(t, track.NewMultiDimensional(24, units).Generate(path, parse(t, xml), 0))
		assert.Equal(t, track.NameMulti, path.Generator)
		assert.False(t, path.TransformAxis)
		assert.Equal(t, []float64{240, 135}, path.Samples[0].Value)
		assert.Equal(t, []float64{300, 75}, path.Samples[1].Value)
		assert.InDelta(t, 0.5, path.Samples[1].Seconds, 1e-12)
		assert.Equal(t, 12.0, path.Samples[1].Frame)
	})

	t.Run("transform axis", func(t *testing.T) {
		node := parse(t, xml)
		node.CreateAttr(domain.AttrTransformAxis, "true")
		path := domain.NewPath()
		require.NoError(t, track.NewMultiDimensional(24, units).Generate(path, node, 0))
		assert.True(t, path.TransformAxis)
		assert.Equal(t, []float64{0, 0}, path.Samples[0].Value)
		assert.Equal(t, []float64{60, -60}, path.Samples[1].Value)
	})

	t.Run("color keeps components", func(t *testing.T) {
		node := parse(t, `<animated type="color">
			<waypoint time="0s"><color><r>1</r><g>0</g><b>0</b><a>1</a></color></waypoint>
			<waypoint time="1s"><color><r>0</r><g>0</g><b>1</b><a>0.5</a></color></waypoint>
		</animated>`)
		path := domain.NewPath()
		require.NoError(t, track.NewMultiDimensional(24, units).Generate(path, node, 0))
		assert.Equal(t, []float64{0, 0, 1, 0.5}, path.Samples[1].Value)
	})
}

func TestUnitsFromCanvas(t *testing.T) {
	c := domain.Canvas{Width: 480, Height: 270, ViewBox: [4]float64{-4, 2.25, 4, -2.25}}
	u := track.UnitsFromCanvas(c)
	assert.Equal(t, 60.0, u.Scale)
	assert.Equal(t, []float64{240, 135}, u.Point(0, 0, false))
	assert.Equal(t, []float64{0, 0}, u.Point(-4, 2.25, false))

	assert.Equal(t, track.DefaultUnits(), track.UnitsFromCanvas(domain.Canvas{}))
}

func TestGeneratorFunc(t *testing.T) {
	called := false
	var g track.Generator = track.GeneratorFunc(func(dst *domain.Path, node *etree.Element, idx int) error {
		called = true
		dst.Index = idx
		return nil
	})
	path := domain.NewPath()
	require.NoError(t, g.Generate(path, nil, 3))
	assert.True(t, called)
	assert.Equal(t, 3, path.Index)
}
