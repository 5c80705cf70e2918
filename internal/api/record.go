package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Product is the wire representation of a catalog entry.
//
// The upstream API is loosely typed: prices arrive as strings (sometimes
// empty) and several spec fields arrive either as a string or as an array
// of strings. The tolerant field types below resolve that once at the
// edge so consumers see one well-defined shape.
type Product struct {
	ID              string     `json:"id"`
	Brand           string     `json:"brand"`
	Model           string     `json:"model"`
	Price           Price      `json:"price"`
	ImgURL          string     `json:"imgUrl"`
	CPU             string     `json:"cpu"`
	RAM             StringList `json:"ram"`
	OS              string     `json:"os"`
	DisplaySize     string     `json:"displaySize"`
	Battery         string     `json:"battery"`
	PrimaryCamera   StringList `json:"primaryCamera"`
	SecondaryCamera StringList `json:"secondaryCamera"`
	Dimensions      string     `json:"dimentions"`
	Weight          string     `json:"weight"`
	InternalMemory  StringList `json:"internalMemory"`
	Options         Options    `json:"options"`
}

// Options carries the selectable variants of a product.
type Options struct {
	Colors   []Variant `json:"colors"`
	Storages []Variant `json:"storages"`
}

// Variant is a selectable color or storage option.
type Variant struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// AddToCartRequest is the body of POST /api/cart.
type AddToCartRequest struct {
	ID          string `json:"id"`
	ColorCode   int    `json:"colorCode"`
	StorageCode int    `json:"storageCode"`
}

// CartCount is the response of POST /api/cart.
type CartCount struct {
	Count int `json:"count"`
}

// Price decodes a JSON number or a numeric string.
// An empty or absent string decodes to 0 (the upstream uses "" for
// products without a listed price).
type Price float64

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*p = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("price %q is not numeric: %w", s, err)
		}
		*p = Price(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = Price(f)
	return nil
}

// StringList decodes a JSON string, an array of strings, or null.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if data[0] == '[' {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*l = nil
		return nil
	}
	*l = []string{s}
	return nil
}

// First returns the first element, or empty string for an empty list.
func (l StringList) First() string {
	if len(l) == 0 {
		return ""
	}
	return l[0]
}
