package frameio

import (
	"bufio"
	"fmt"
	"io"

	gojson "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/ajitpratap0/nebulaframe/pkg/frame"
	"github.com/ajitpratap0/nebulaframe/pkg/logger"
)

// jsonSeries is the wire shape of one series: its length, element type and
// data. Missing cells are null.
type jsonSeries struct {
	N int    `json:"N"`
	T string `json:"T"`
	D []any  `json:"D"`
}

// WriteJSON writes t as one JSON object keyed by series name, INDEX first
// and data columns in creation order:
//
//	{"INDEX":{"N":3,"T":"int","D":[1,2,3]},"price":{"N":2,"T":"float64","D":[1.5,null]}}
func WriteJSON[I comparable](w io.Writer, t *frame.Table[I]) error {
	indexInfo, index, cols, err := snapshot(t)
	if err != nil {
		return err
	}
	if err := checkEmittable("json", indexInfo, cols); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	series := jsonSeries{N: len(index), T: indexInfo.ElemType.String(), D: make([]any, len(index))}
	for i, x := range index {
		series.D[i] = x
	}

	_ = bw.WriteByte('{')
	if err := writeMember(bw, indexInfo.Name, series); err != nil {
		return err
	}
	for _, c := range cols {
		series = jsonSeries{N: c.info.Len, T: c.info.ElemType.String(), D: make([]any, c.info.Len)}
		for i := range series.D {
			if c.present(i) {
				series.D[i] = c.col.Value(i)
			}
		}
		_ = bw.WriteByte(',')
		if err := writeMember(bw, c.info.Name, series); err != nil {
			return err
		}
	}
	_ = bw.WriteByte('}')

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	logger.Debug("json written", zap.String("table", t.Name()), zap.Int("columns", len(cols)))
	return nil
}

func writeMember(bw *bufio.Writer, name string, s jsonSeries) error {
	key, err := gojson.Marshal(name)
	if err != nil {
		return fmt.Errorf("failed to encode series name %q: %w", name, err)
	}
	body, err := gojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode series %q: %w", name, err)
	}
	_, _ = bw.Write(key)
	_ = bw.WriteByte(':')
	_, err = bw.Write(body)
	return err
}
