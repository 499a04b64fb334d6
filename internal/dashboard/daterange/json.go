package daterange

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// serializedBounds is the JSON object form of a static range.
type serializedBounds struct {
	From Seconds `json:"from"`
	To   Seconds `json:"to"`
}

// MarshalJSON always writes the serialized form: a tag as a JSON string, bounds as an object of
// epoch seconds. A DateRange and its Stringify result therefore encode identically.
func (r Range[T]) MarshalJSON() ([]byte, error) {
	if r.IsDynamic() {
		return json.Marshal(string(r.tag))
	}
	return json.Marshal(serializedBounds{From: toSeconds(r.from), To: toSeconds(r.to)})
}

func (r *Range[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.WithStack(err)
		}
		tag, err := ParseTag(s)
		if err != nil {
			return err
		}
		*r = Dynamic[T](tag)
		return nil
	}
	bounds := serializedBounds{}
	if err := json.Unmarshal(data, &bounds); err != nil {
		return errors.WithStack(err)
	}
	*r = Static(fromSeconds[T](bounds.From), fromSeconds[T](bounds.To))
	return nil
}
