package api

import (
	"fmt"

	"github.com/tidwall/gjson"

	"teamcomp/domain/boss"
	"teamcomp/internal/errors"
)

// ParsePayload decodes a page payload. Only invalid JSON is an error;
// missing or mistyped fields are left empty so a sparse table still renders.
func ParsePayload(body []byte) (*boss.Payload, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.InvalidPayload(fmt.Errorf("response is not valid JSON (%d bytes)", len(body)))
	}

	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return &boss.Payload{}, nil
	}

	return &boss.Payload{
		Title:        stringField(doc.Get("title")),
		Headers:      stringList(doc.Get("headers")),
		Rows:         stringGrid(doc.Get("rows")),
		LastUpdated:  stringField(doc.Get("last_updated")),
		HeaderImages: stringList(doc.Get("header_images")),
		BodyImages:   stringGrid(doc.Get("body_images")),
	}, nil
}

// stringField returns the value of a JSON string. Numbers and booleans are
// printed; null, objects and arrays become "".
func stringField(r gjson.Result) string {
	switch r.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return r.String()
	default:
		return ""
	}
}

func stringList(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	items := r.Array()
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = stringField(item)
	}
	return out
}

func stringGrid(r gjson.Result) [][]string {
	if !r.IsArray() {
		return nil
	}
	items := r.Array()
	out := make([][]string, len(items))
	for i, item := range items {
		out[i] = stringList(item)
	}
	return out
}
