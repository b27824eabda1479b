package dto

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const DateLayout = "2006-01-02"

// Date is a calendar day serialized as yyyy-MM-dd.
type Date time.Time

func NewDate(t time.Time) Date {
	return Date(t)
}

func (d Date) Time() time.Time {
	return time.Time(d)
}

func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time().Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return err
	}
	*d = Date(t)
	return nil
}

// IDRef is the {"id": n} shape used for nested references.
type IDRef struct {
	ID int64 `json:"id" binding:"required,gt=0"`
}

type NamedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CountQuery struct {
	Count int `form:"count,default=10" binding:"gt=0"`
}
