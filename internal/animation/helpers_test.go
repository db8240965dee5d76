package animation_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	require.NotNil(t, doc.Root())
	return doc.Root()
}
