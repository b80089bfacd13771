package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind discriminates the closed set of answer value shapes.
type ValueKind int

const (
	// KindAbsent marks the zero Value (no answer submitted).
	KindAbsent ValueKind = iota
	// KindText covers free text, boolean/combo answer codes and ISO date strings.
	KindText
	// KindAmount is a structured monetary value.
	KindAmount
)

// Amount is the structured payload of an amount-typed answer.
// The numeric part is kept as its original string form so that values
// round-trip through JSON without floating point drift.
type Amount struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// Value is the polymorphic payload of an answer record, modeled as a closed
// tagged union so merge and validation logic can match exhaustively.
type Value struct {
	kind   ValueKind
	text   string
	amount Amount
}

// TextValue wraps a plain string (free text, answer code, date string).
func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

// AmountValue wraps a structured amount.
func AmountValue(amount, currency string) Value {
	return Value{kind: KindAmount, amount: Amount{Amount: amount, Currency: currency}}
}

// Kind returns the union discriminator.
func (v Value) Kind() ValueKind { return v.kind }

// IsZero reports whether no value is present.
func (v Value) IsZero() bool { return v.kind == KindAbsent }

// Text returns the text payload ("" for non-text kinds).
func (v Value) Text() string { return v.text }

// AmountPayload returns the structured amount and whether this is an amount value.
func (v Value) AmountPayload() (Amount, bool) {
	return v.amount, v.kind == KindAmount
}

// Equal compares kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == other.text
	case KindAmount:
		return v.amount == other.amount
	default:
		return true
	}
}

// String renders the value the way branch matching sees it: the raw text for
// text kinds, "amount currency" for amounts, "" when absent.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindAmount:
		return v.amount.Amount + " " + v.amount.Currency
	default:
		return ""
	}
}

// ValueFrom canonicalizes a dynamically-typed payload (as produced by JSON
// decoding of a request body) into a Value. Strings map to text, numbers and
// booleans are stringified, {amount, currency} objects map to amounts.
// nil maps to the absent value.
func ValueFrom(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return Value{}
	case Value:
		return t
	case string:
		return TextValue(t)
	case bool:
		return TextValue(strconv.FormatBool(t))
	case json.Number:
		return TextValue(t.String())
	case float64:
		return TextValue(strconv.FormatFloat(t, 'f', -1, 64))
	case int:
		return TextValue(strconv.Itoa(t))
	case map[string]any:
		if _, ok := t["amount"]; ok {
			return AmountValue(stringify(t["amount"]), stringify(t["currency"]))
		}
		return TextValue(fmt.Sprintf("%v", t))
	default:
		return TextValue(fmt.Sprintf("%v", t))
	}
}

func stringify(raw any) string {
	switch t := raw.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// MarshalJSON encodes text kinds as JSON strings, amounts as objects and the
// absent value as null, matching the wire layout of the session store.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindAmount:
		return json.Marshal(v.amount)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON is the inverse of MarshalJSON. Objects carrying an "amount"
// key decode as amounts; any other payload decodes through ValueFrom.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode answer value: %w", err)
	}
	*v = ValueFrom(raw)
	return nil
}
