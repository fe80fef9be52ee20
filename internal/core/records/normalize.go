package records

// sequenceKeys are the wrapper keys checked in priority order
var sequenceKeys = []string{"data", "results", "response"}

// Normalize flattens any decoded payload into records. It never fails:
//
//	array                          -> its elements
//	object with data/results/response holding an array -> that array, first key wins
//	any other object               -> its values in document order
//	anything else                  -> empty
//
// Elements that are not objects become empty records so they still count
func Normalize(payload any) []Record {
	switch v := payload.(type) {
	case []any:
		return fromSlice(v)
	case []Record:
		return v
	case *Object:
		if v == nil {
			return []Record{}
		}
		for _, k := range sequenceKeys {
			if inner, ok := v.Get(k); ok {
				if seq, ok := inner.([]any); ok {
					return fromSlice(seq)
				}
			}
		}
		return fromSlice(v.Values())
	case map[string]any:
		for _, k := range sequenceKeys {
			if seq, ok := v[k].([]any); ok {
				return fromSlice(seq)
			}
		}
		// plain maps carry no order, callers wanting document order decode with Decode
		vals := make([]any, 0, len(v))
		for _, e := range v {
			vals = append(vals, e)
		}
		return fromSlice(vals)
	default:
		return []Record{}
	}
}

func fromSlice(in []any) []Record {
	out := make([]Record, 0, len(in))
	for _, e := range in {
		out = append(out, toRecord(e))
	}
	return out
}

func toRecord(v any) Record {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return Record{}
		}
		r := make(Record, t.Len())
		for _, k := range t.keys {
			r[k] = t.values[k]
		}
		return r
	case map[string]any:
		return Record(t)
	case Record:
		return t
	default:
		return Record{}
	}
}
