package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// write renders v in the selected output format.
func (a *app) write(w io.Writer, v any) error {
	var (
		out []byte
		err error
	)
	switch a.format {
	case "yaml", "yml":
		out, err = yaml.Marshal(v)
	case "json", "":
		out, err = json.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	default:
		return fmt.Errorf("unknown output format %q", a.format)
	}
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// parseFloats parses each argument as a float64.
func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, s := range args {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = f
	}
	return out, nil
}
