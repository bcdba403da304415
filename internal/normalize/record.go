package normalize

// Record is a normalized payload. Values have the Go types produced by
// Shape: int64, float64, string, bool, []Record, Record and map[string]int64.
type Record map[string]any

func (r Record) Int(name string) int64 {
	v, _ := r[name].(int64)
	return v
}

func (r Record) Float(name string) float64 {
	v, _ := r[name].(float64)
	return v
}

func (r Record) Str(name string) string {
	v, _ := r[name].(string)
	return v
}

func (r Record) Bool(name string) bool {
	v, _ := r[name].(bool)
	return v
}

// List returns the nested list, never nil.
func (r Record) List(name string) []Record {
	if v, ok := r[name].([]Record); ok {
		return v
	}
	return []Record{}
}

// Object returns the nested record, never nil.
func (r Record) Object(name string) Record {
	if v, ok := r[name].(Record); ok {
		return v
	}
	return Record{}
}

// Counts returns the integer map, never nil.
func (r Record) Counts(name string) map[string]int64 {
	if v, ok := r[name].(map[string]int64); ok {
		return v
	}
	return map[string]int64{}
}

func (r Record) OptString(name string) Option[string] {
	if v, ok := r[name].(string); ok {
		return Some(v)
	}
	return None[string]()
}

func (r Record) OptFloat(name string) Option[float64] {
	if v, ok := r[name].(float64); ok {
		return Some(v)
	}
	return None[float64]()
}

func (r Record) OptInt(name string) Option[int64] {
	if v, ok := r[name].(int64); ok {
		return Some(v)
	}
	return None[int64]()
}

func (r Record) OptBool(name string) Option[bool] {
	if v, ok := r[name].(bool); ok {
		return Some(v)
	}
	return None[bool]()
}
