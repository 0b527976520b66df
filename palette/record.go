package palette

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hupe1980/stitchgo/color"
)

var recordValidate *validator.Validate

func init() {
	recordValidate = validator.New()
	recordValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// Record is one palette colour as read from a catalog.
// Channels are pointers so a missing channel is distinguishable from zero.
type Record struct {
	R     *int   `json:"r" validate:"required,min=0,max=255"`
	G     *int   `json:"g" validate:"required,min=0,max=255"`
	B     *int   `json:"b" validate:"required,min=0,max=255"`
	Name  string `json:"name" validate:"required"`
	Brand string `json:"brand" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

// NewRecord builds a fully populated record.
func NewRecord(r, g, b int, name, brand, code string) Record {
	return Record{R: &r, G: &g, B: &b, Name: name, Brand: brand, Code: code}
}

// Validate checks that every field is present and channels are within [0,255].
func (r Record) Validate() error {
	return recordValidate.Struct(r)
}

// Color returns the record's colour. It must only be called on a valid record.
func (r Record) Color() color.Color {
	return color.New(*r.R, *r.G, *r.B)
}

// Validate checks every record and returns a *RecordError for the first failure.
func Validate(records []Record) error {
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return recordError(i, err)
		}
	}
	return nil
}

// Entries validates records and converts them to entries, assigning each
// entry its position as ID. No entries are returned if any record is invalid.
func Entries(records []Record) ([]Entry, error) {
	if err := Validate(records); err != nil {
		return nil, err
	}
	entries := make([]Entry, len(records))
	for i, rec := range records {
		entries[i] = Entry{
			ID:    uint32(i),
			Color: rec.Color(),
			Name:  rec.Name,
			Brand: rec.Brand,
			Code:  rec.Code,
		}
	}
	return entries, nil
}

// FilterBrand keeps the records whose brand matches (case-insensitively).
// An empty brand keeps everything.
func FilterBrand(records []Record, brand string) []Record {
	if brand == "" {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if strings.EqualFold(rec.Brand, brand) {
			out = append(out, rec)
		}
	}
	return out
}

func recordError(index int, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &RecordError{
			Index: index,
			Field: fe.Field(),
			cause: fmt.Errorf("failed %q check", fe.Tag()),
		}
	}
	return &RecordError{Index: index, cause: err}
}
