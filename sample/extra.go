package sample

import (
	"encoding/json"

	"google.golang.org/protobuf/types/known/structpb"
)

// Extra holds cells from columns the import profile does not
// recognize. They carry no import semantics but are preserved so a
// curator can review them instead of losing them silently.
type Extra struct {
	fields *structpb.Struct
}

// MarshalJSON renders the extra fields as a plain JSON object.
func (e *Extra) MarshalJSON() ([]byte, error) {
	if e == nil || e.fields == nil {
		return []byte("null"), nil
	}
	return json.Marshal(e.fields.AsMap())
}

// UnmarshalJSON restores extra fields from a JSON object.
func (e *Extra) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return err
	}
	e.fields = s
	return nil
}

// SetExtra records an unrecognized-column value on the row.
func (r *Row) SetExtra(key string, value any) {
	if r.Extra == nil {
		r.Extra = &Extra{}
	}
	if r.Extra.fields == nil {
		r.Extra.fields = &structpb.Struct{
			Fields: make(map[string]*structpb.Value),
		}
	}
	v, err := structpb.NewValue(value)
	if err == nil {
		r.Extra.fields.Fields[key] = v
	}
}

// GetExtra retrieves an unrecognized-column value.
func (r *Row) GetExtra(key string) (any, bool) {
	if r.Extra == nil || r.Extra.fields == nil || r.Extra.fields.Fields == nil {
		return nil, false
	}
	v, ok := r.Extra.fields.Fields[key]
	if !ok {
		return nil, false
	}
	return v.AsInterface(), true
}

// GetExtraString retrieves an unrecognized-column value as a string.
func (r *Row) GetExtraString(key string) string {
	v, ok := r.GetExtra(key)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// GetExtraFields returns all unrecognized-column values as a map.
func (r *Row) GetExtraFields() map[string]any {
	if r.Extra == nil || r.Extra.fields == nil {
		return nil
	}
	return r.Extra.fields.AsMap()
}
