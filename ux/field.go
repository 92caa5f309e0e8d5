package ux

import "github.com/drake/syncux/toolkit"

// Field is one named value shown in a review.
type Field struct {
	Name  string
	Value string
}

func tagValues(fields []Field) []toolkit.TagValue {
	out := make([]toolkit.TagValue, len(fields))
	for i, f := range fields {
		out[i] = toolkit.TagValue{Item: f.Name, Value: f.Value}
	}
	return out
}
