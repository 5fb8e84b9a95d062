package web

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/yuzeguitarist/qrgen/internal/qr"
)

type qrRequest struct {
	Options  qr.Options
	Download bool
}

// parseQRRequest maps query parameters onto qr.Options. Type errors and
// range errors are collected into a single *qr.ValidationError.
func parseQRRequest(q url.Values) (qrRequest, error) {
	text, _ := lookup(q, "texto")
	req := qrRequest{Options: qr.DefaultOptions(text)}
	bad := &qr.ValidationError{}

	if v, ok := lookup(q, "box_size"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err != nil {
			bad.Fields = append(bad.Fields, qr.FieldError{Field: "box_size", Message: "must be an integer"})
		} else {
			req.Options.BoxSize = n
		}
	}
	if v, ok := lookup(q, "border"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err != nil {
			bad.Fields = append(bad.Fields, qr.FieldError{Field: "border", Message: "must be an integer"})
		} else {
			req.Options.Border = n
		}
	}
	if v, ok := lookup(q, "fill_color"); ok {
		req.Options.Fill = v
	}
	if v, ok := lookup(q, "back_color"); ok {
		req.Options.Back = v
	}
	if v, ok := lookup(q, "format"); ok {
		req.Options.Format = qr.Format(v)
	}
	if v, ok := lookup(q, "download"); ok {
		if b, ok := parseBool(v); ok {
			req.Download = b
		} else {
			bad.Fields = append(bad.Fields, qr.FieldError{Field: "download", Message: "must be a boolean"})
		}
	}

	if err := req.Options.Validate(); err != nil {
		var ve *qr.ValidationError
		if !errors.As(err, &ve) {
			return req, err
		}
		for _, f := range ve.Fields {
			if !bad.Has(f.Field) {
				bad.Fields = append(bad.Fields, f)
			}
		}
	}
	if len(bad.Fields) > 0 {
		return req, bad
	}
	return req, nil
}

// lookup returns the last value for key, so a repeated parameter
// overrides earlier ones.
func lookup(q url.Values, key string) (string, bool) {
	vs, ok := q[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

func parseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, true
	case "0", "false", "f", "no", "n", "off":
		return false, true
	}
	return false, false
}
