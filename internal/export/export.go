// Package export writes the visible rows of a table using raw values, so
// abbreviated commands are exported in full.
package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"proctab/internal/column"
	"proctab/internal/util"
)

type Options struct {
	// Redact masks secrets passed on command lines.
	Redact bool
}

func (o Options) raw(c column.Column, pid int) string {
	v := c.Raw(pid)
	if o.Redact && c.Kind() == column.KindCommand {
		return util.RedactSecrets(v)
	}
	return v
}

// Write dispatches on format: csv or json (one object per line).
func Write(format, path string, cols []column.Column, pids []int, opt Options) error {
	switch format {
	case "csv":
		return ToCSV(path, cols, pids, opt)
	case "json", "ndjson":
		return ToNDJSON(path, cols, pids, opt)
	}
	return fmt.Errorf("unknown export format %q (want csv|json)", format)
}

func ToCSV(path string, cols []column.Column, pids []int, opt Options) error {
	if len(pids) == 0 {
		return errors.New("no rows to export")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = string(c.Kind())
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, pid := range pids {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = opt.raw(c, pid)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func ToNDJSON(path string, cols []column.Column, pids []int, opt Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	for _, pid := range pids {
		row := make(map[string]any, len(cols))
		for _, c := range cols {
			v, ok := c.Value(pid)
			if !ok {
				continue
			}
			if _, isText := v.(string); isText {
				v = opt.raw(c, pid)
			}
			row[string(c.Kind())] = v
		}
		b, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := bw.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Close()
}
