package metrics

// Metric is one line-protocol record: a measurement name, its fields and
// the tags that tell repeated measurements apart.
type Metric struct {
	Measurement string
	Fields      Fields
	Tags        Tags
}

// Field is a single named value. Value holds an int, int64, float64 or
// string.
type Field struct {
	Key   string
	Value any
}

// Tag is a single named string label.
type Tag struct {
	Key   string
	Value string
}

// Fields keeps insertion order so encoded output is reproducible.
type Fields []Field

// Tags keeps insertion order so encoded output is reproducible.
type Tags []Tag

// New returns a metric with the given fields and tags.
func New(measurement string, fields Fields, tags ...Tag) Metric {
	return Metric{
		Measurement: measurement,
		Fields:      fields,
		Tags:        Tags(tags),
	}
}

// Set assigns key, replacing an existing entry in place.
func (f *Fields) Set(key string, value any) {
	for i := range *f {
		if (*f)[i].Key == key {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Key: key, Value: value})
}

// Get returns the value stored under key.
func (f Fields) Get(key string) (any, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}

	return nil, false
}

// Keys returns the field keys in order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for _, field := range f {
		keys = append(keys, field.Key)
	}

	return keys
}

// Get returns the value stored under key.
func (t Tags) Get(key string) (string, bool) {
	for _, tag := range t {
		if tag.Key == key {
			return tag.Value, true
		}
	}

	return "", false
}
