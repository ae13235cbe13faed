// Package firestore decodes Firestore document-event payloads, where every
// field is wrapped in a typed value object such as {"stringValue": "x"}.
package firestore

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/saransh1220/circle-notify/internal/modules/triggers/domain"
)

type UpdateMask struct {
	FieldPaths []string `json:"fieldPaths"`
}

// Envelope is the body Eventarc delivers for a document write.
type Envelope struct {
	OldValue   *Document  `json:"oldValue"`
	Value      *Document  `json:"value"`
	UpdateMask UpdateMask `json:"updateMask"`
}

type Document struct {
	Name       string           `json:"name"`
	Fields     map[string]Value `json:"fields"`
	CreateTime time.Time        `json:"createTime"`
	UpdateTime time.Time        `json:"updateTime"`
}

// Value is one typed Firestore value. Exactly one field is set.
type Value struct {
	StringValue    *string      `json:"stringValue,omitempty"`
	IntegerValue   *json.Number `json:"integerValue,omitempty"`
	DoubleValue    *float64     `json:"doubleValue,omitempty"`
	BooleanValue   *bool        `json:"booleanValue,omitempty"`
	TimestampValue *string      `json:"timestampValue,omitempty"`
	NullValue      *string      `json:"nullValue,omitempty"`
	ReferenceValue *string      `json:"referenceValue,omitempty"`
	BytesValue     *string      `json:"bytesValue,omitempty"`
	GeoPointValue  *GeoPoint    `json:"geoPointValue,omitempty"`
	MapValue       *MapValue    `json:"mapValue,omitempty"`
	ArrayValue     *ArrayValue  `json:"arrayValue,omitempty"`
}

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type MapValue struct {
	Fields map[string]Value `json:"fields"`
}

type ArrayValue struct {
	Values []Value `json:"values"`
}

// Decode reads an envelope from r.
func Decode(r io.Reader) (*Envelope, error) {
	var env Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedEvent, err)
	}
	return &env, nil
}

// ChangeEvent converts the envelope into a plain change event for trigger.
func (e *Envelope) ChangeEvent(trigger domain.Trigger, eventID string) (domain.ChangeEvent, error) {
	if e.Value == nil || e.Value.Name == "" {
		return domain.ChangeEvent{}, fmt.Errorf("%w: missing value document", domain.ErrMalformedEvent)
	}

	after, err := e.Value.Plain()
	if err != nil {
		return domain.ChangeEvent{}, err
	}

	ev := domain.ChangeEvent{
		EventID:    eventID,
		Trigger:    trigger,
		DocumentID: e.Value.ID(),
		After:      after,
	}
	if e.OldValue != nil && e.OldValue.Name != "" {
		if ev.Before, err = e.OldValue.Plain(); err != nil {
			return domain.ChangeEvent{}, err
		}
	}
	return ev, nil
}

// ID is the last path segment of the document resource name.
func (d *Document) ID() string {
	name := strings.TrimRight(d.Name, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Plain unwraps every typed value into Go values: string, int64, float64,
// bool, time.Time, nil, map[string]any and []any.
func (d *Document) Plain() (map[string]any, error) {
	return plainFields(d.Fields)
}

func plainFields(fields map[string]Value) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		pv, err := v.Plain()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		out[k] = pv
	}
	return out, nil
}

func (v Value) Plain() (any, error) {
	switch {
	case v.StringValue != nil:
		return *v.StringValue, nil
	case v.IntegerValue != nil:
		n, err := v.IntegerValue.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: integerValue %q", domain.ErrMalformedEvent, v.IntegerValue.String())
		}
		return n, nil
	case v.DoubleValue != nil:
		return *v.DoubleValue, nil
	case v.BooleanValue != nil:
		return *v.BooleanValue, nil
	case v.TimestampValue != nil:
		ts, err := time.Parse(time.RFC3339Nano, *v.TimestampValue)
		if err != nil {
			return nil, fmt.Errorf("%w: timestampValue %q", domain.ErrMalformedEvent, *v.TimestampValue)
		}
		return ts, nil
	case v.NullValue != nil:
		return nil, nil
	case v.ReferenceValue != nil:
		return *v.ReferenceValue, nil
	case v.BytesValue != nil:
		b, err := base64.StdEncoding.DecodeString(*v.BytesValue)
		if err != nil {
			return nil, fmt.Errorf("%w: bytesValue", domain.ErrMalformedEvent)
		}
		return b, nil
	case v.GeoPointValue != nil:
		return map[string]any{
			"latitude":  v.GeoPointValue.Latitude,
			"longitude": v.GeoPointValue.Longitude,
		}, nil
	case v.MapValue != nil:
		return plainFields(v.MapValue.Fields)
	case v.ArrayValue != nil:
		out := make([]any, 0, len(v.ArrayValue.Values))
		for i, item := range v.ArrayValue.Values {
			pv, err := item.Plain()
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out = append(out, pv)
		}
		return out, nil
	}
	// An empty object is how Firestore encodes an empty map in some exports.
	return nil, nil
}
