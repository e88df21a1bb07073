package http

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// seriesParams are the query parameters shared by the series and chart routes.
type seriesParams struct {
	Month  string `query:"month" validate:"omitempty,oneof=all dec jan"`
	Smooth bool   `query:"smooth"`
	Window int    `query:"window" validate:"omitempty,min=1,max=31,odd"`
	Lang   string `query:"lang" validate:"omitempty,oneof=en ru"`
}

type chartParams struct {
	seriesParams
	Format string   `query:"format" validate:"omitempty,oneof=png svg"`
	Width  int      `query:"width" validate:"omitempty,min=200,max=4096"`
	Height int      `query:"height" validate:"omitempty,min=200,max=4096"`
	Hide   []string `query:"hide"`
}

type labelParams struct {
	Month string `query:"month" validate:"omitempty,oneof=all dec jan"`
	Lang  string `query:"lang" validate:"omitempty,oneof=en ru"`
}

type langParams struct {
	Lang string `query:"lang" validate:"omitempty,oneof=en ru"`
}

// newValidator registers the custom "odd" rule and reports fields by their
// query parameter name.
func newValidator() *validator.Validate {
	v := validator.New()
	//nolint:errcheck // tag name is static and valid
	v.RegisterValidation("odd", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%2 != 0
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("query")
	})
	return v
}

func parseSeriesParams(q url.Values) (seriesParams, error) {
	p := seriesParams{
		Month: q.Get("month"),
		Lang:  q.Get("lang"),
	}
	var err error
	if p.Smooth, err = parseBool(q, "smooth"); err != nil {
		return p, err
	}
	if p.Window, err = parseInt(q, "window"); err != nil {
		return p, err
	}
	return p, nil
}

func parseChartParams(q url.Values) (chartParams, error) {
	sp, err := parseSeriesParams(q)
	if err != nil {
		return chartParams{}, err
	}
	p := chartParams{seriesParams: sp, Format: q.Get("format")}
	if p.Width, err = parseInt(q, "width"); err != nil {
		return p, err
	}
	if p.Height, err = parseInt(q, "height"); err != nil {
		return p, err
	}
	for _, raw := range q["hide"] {
		for _, label := range strings.Split(raw, ",") {
			if label = strings.TrimSpace(label); label != "" {
				p.Hide = append(p.Hide, label)
			}
		}
	}
	return p, nil
}

func parseInt(q url.Values, key string) (int, error) {
	s := q.Get(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

func parseBool(q url.Values, key string) (bool, error) {
	s := q.Get(key)
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false", key)
	}
	return b, nil
}

// validationMessage turns the first validator failure into a short message
// naming the query parameter.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "odd":
		return fmt.Sprintf("%s must be odd", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
