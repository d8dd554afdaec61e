package frameio_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/nebulaframe/pkg/frame"
	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
	"github.com/ajitpratap0/nebulaframe/pkg/frameio"
	"github.com/ajitpratap0/nebulaframe/pkg/testutil"
)

func TestWriteJSON(t *testing.T) {
	tbl := testutil.FiveRowTable(t)
	_, err := frame.LoadColumn(tbl, "s", []float64{1.5, math.NaN()}, frame.DontPadWithNaNs)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, frameio.WriteJSON(&buf, tbl))

	out := buf.String()
	assert.JSONEq(t, `{
		"INDEX": {"N": 5, "T": "int", "D": [1, 2, 3, 4, 5]},
		"v": {"N": 5, "T": "int", "D": [10, 20, 30, 40, 50]},
		"s": {"N": 2, "T": "float64", "D": [1.5, null]}
	}`, out)

	// series keep index-first creation order
	assert.True(t, strings.HasPrefix(out, `{"INDEX":`))
	assert.Less(t, strings.Index(out, `"v":`), strings.Index(out, `"s":`))
}

func TestWriteJSONStrings(t *testing.T) {
	tbl := testutil.IBMTable(t)
	sel, err := tbl.DataByLoc(0, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, frameio.WriteJSON(&buf, sel))
	assert.Contains(t, buf.String(), `"INDEX":{"N":2,"T":"string","D":["2024-02-12","2024-02-13"]}`)
	assert.Contains(t, buf.String(), `"IBM_Volume":{"N":2,"T":"int64","D":[4210300,5120900]}`)
}

func TestWriteJSONUnsupportedType(t *testing.T) {
	tbl := testutil.FiveRowTable(t)
	_, err := frame.CreateColumn[point](tbl, "p")
	require.NoError(t, err)

	var buf bytes.Buffer
	err = frameio.WriteJSON(&buf, tbl)
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeNotImplemented)
}
