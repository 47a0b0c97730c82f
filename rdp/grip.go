// Copyright © 2026 The gripdap authors

// Package rdp models the remote debugging protocol's value
// representations and provides a client for issuing requests to a
// remote debuggee. A grip is the protocol's reference to a value in
// the debuggee: primitives travel by value, objects travel as a tagged
// reference (an actor id) that can later be resolved into the object's
// properties.
package rdp

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// GripKind classifies a grip. Object grips are resolvable into
// properties; every other kind carries an already-final value.
type GripKind int

const (
	KindUndefined GripKind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindObject
)

func (k GripKind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("GripKind(%d)", int(k))
	}
}

// ObjectGrip is the object variant's payload: a reference to a live
// object in the debuggee, addressed by its actor id.
type ObjectGrip struct {
	Actor string `json:"actor"`
	Class string `json:"class,omitempty"`
	// DisplayName is set for function objects.
	DisplayName string `json:"displayName,omitempty"`
}

// Grip is the tagged union of remote value representations. Exactly
// one payload field is meaningful, selected by Kind.
type Grip struct {
	Kind   GripKind
	Bool   bool
	Num    float64
	Str    string
	Object *ObjectGrip
}

// IsObject reports whether the grip references a live object and can
// be resolved into properties. This is the single dispatch point that
// selects which scope-adapter shape is built for the grip.
func (g Grip) IsObject() bool {
	return g.Kind == KindObject && g.Object != nil
}

// Convenience constructors, used mainly by tests and by embedders
// synthesizing grips outside a protocol connection.

func Undefined() Grip           { return Grip{Kind: KindUndefined} }
func Null() Grip                { return Grip{Kind: KindNull} }
func Boolean(b bool) Grip       { return Grip{Kind: KindBoolean, Bool: b} }
func Number(n float64) Grip     { return Grip{Kind: KindNumber, Num: n} }
func String(s string) Grip      { return Grip{Kind: KindString, Str: s} }
func Object(o *ObjectGrip) Grip { return Grip{Kind: KindObject, Object: o} }

// UnmarshalJSON decodes the protocol's heterogeneous grip encoding:
// JSON primitives travel bare, while null/undefined and objects travel
// as {"type": ...} forms. A shape outside the protocol's repertoire is
// a defect and fails the decode.
func (g *Grip) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*g = Boolean(v)
		return nil
	case float64:
		*g = Number(v)
		return nil
	case string:
		*g = String(v)
		return nil
	case nil:
		*g = Null()
		return nil
	case map[string]interface{}:
		typ, _ := v["type"].(string)
		switch typ {
		case "null":
			*g = Null()
			return nil
		case "undefined":
			*g = Undefined()
			return nil
		case "Infinity":
			*g = Number(math.Inf(1))
			return nil
		case "-Infinity":
			*g = Number(math.Inf(-1))
			return nil
		case "NaN":
			*g = Number(math.NaN())
			return nil
		case "object":
			var obj ObjectGrip
			if err := json.Unmarshal(data, &obj); err != nil {
				return err
			}
			*g = Object(&obj)
			return nil
		}
		return fmt.Errorf("rdp: unrecognized grip type %q", typ)
	}
	return fmt.Errorf("rdp: unrecognized grip encoding %T", raw)
}

// MarshalJSON encodes the grip back into the protocol's wire form.
func (g Grip) MarshalJSON() ([]byte, error) {
	switch g.Kind {
	case KindUndefined:
		return []byte(`{"type":"undefined"}`), nil
	case KindNull:
		return []byte(`{"type":"null"}`), nil
	case KindBoolean:
		return json.Marshal(g.Bool)
	case KindNumber:
		if math.IsNaN(g.Num) {
			return []byte(`{"type":"NaN"}`), nil
		}
		if math.IsInf(g.Num, 1) {
			return []byte(`{"type":"Infinity"}`), nil
		}
		if math.IsInf(g.Num, -1) {
			return []byte(`{"type":"-Infinity"}`), nil
		}
		return json.Marshal(g.Num)
	case KindString:
		return json.Marshal(g.Str)
	case KindObject:
		return json.Marshal(struct {
			Type string `json:"type"`
			*ObjectGrip
		}{Type: "object", ObjectGrip: g.Object})
	}
	return nil, fmt.Errorf("rdp: cannot marshal grip kind %v", g.Kind)
}

// Display renders the grip for a variables view. Object grips render
// by class (or function display name) since their contents are fetched
// lazily.
func (g Grip) Display() string {
	switch g.Kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return strconv.FormatBool(g.Bool)
	case KindNumber:
		return strconv.FormatFloat(g.Num, 'g', -1, 64)
	case KindString:
		return strconv.Quote(g.Str)
	case KindObject:
		if g.Object == nil {
			return "object"
		}
		if g.Object.Class == "Function" && g.Object.DisplayName != "" {
			return fmt.Sprintf("function %s()", g.Object.DisplayName)
		}
		if g.Object.Class != "" {
			return g.Object.Class
		}
		return "Object"
	default:
		return fmt.Sprintf("<%s>", g.Kind)
	}
}
